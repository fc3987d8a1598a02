package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-logr/logr"

	"github.com/xtding233/idle-balance/internal/balance"
	"github.com/xtding233/idle-balance/internal/logging"
	"github.com/xtding233/idle-balance/internal/series"
)

// Server serves the current snapshot over HTTP and gRPC.
type Server struct {
	holder *Holder
	gen    *series.Generator
	log    logr.Logger
}

func NewServer(h *Holder, gen *series.Generator, log logr.Logger) *Server {
	return &Server{holder: h, gen: gen, log: log}
}

type errResp struct {
	Err string `json:"err"`
}

type costResp struct {
	Tier     string  `json:"tier"`
	Owned    int     `json:"owned"`
	Qty      int     `json:"qty"`
	CostMult float64 `json:"costMult"`
	Cost     float64 `json:"cost"`
}

type affordableResp struct {
	Tier       string  `json:"tier"`
	Owned      int     `json:"owned"`
	Budget     float64 `json:"budget"`
	Affordable int     `json:"affordable"`
	Cost       float64 `json:"cost"`
}

type consumptionResp struct {
	Units       float64  `json:"units"`
	Exponent    float64  `json:"exponent"`
	Consumption float64  `json:"consumption"`
	Production  float64  `json:"production"`
	Warnings    []string `json:"warnings,omitempty"`
}

type prestigeResp struct {
	Total       float64 `json:"total"`
	CanPrestige bool    `json:"canPrestige"`
	Wisdom      int64   `json:"wisdom"`
	Multiplier  float64 `json:"multiplier"`
}

type distillResp struct {
	Version    int                `json:"version"`
	Bonuses    map[string]float64 `json:"bonuses,omitempty"`
	Category   string             `json:"category,omitempty"`
	Value      float64            `json:"value,omitempty"`
	NextCost   float64            `json:"nextCost,omitempty"`
	CanDistill *bool              `json:"canDistill,omitempty"`
}

type chartInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type summaryResp struct {
	Chart  string                  `json:"chart"`
	Series map[string]series.Stats `json:"series"`
}

// Routes returns the HTTP handler for every endpoint.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/charts", s.handleCharts)
	mux.HandleFunc("/series", s.handleSeries)
	mux.HandleFunc("/summary", s.handleSummary)
	mux.HandleFunc("/cost", s.handleCost)
	mux.HandleFunc("/affordable", s.handleAffordable)
	mux.HandleFunc("/consumption", s.handleConsumption)
	mux.HandleFunc("/prestige", s.handlePrestige)
	mux.HandleFunc("/distill", s.handleDistill)
	return mux
}

func parseFloat(r *http.Request, key string) (float64, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

func parseInt(r *http.Request, key string) (int, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

// writeJSON encodes v before touching the response, so an unencodable value
// (NaN or ±Inf) becomes a 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, code int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		code = http.StatusInternalServerError
		b, _ = json.Marshal(errResp{Err: "encode response: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(append(b, '\n'))
}

func (s *Server) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	code := httpStatus(err)
	if code == http.StatusInternalServerError {
		s.log.Error(err, "Request failed", "path", r.URL.Path)
	} else {
		s.log.V(logging.DEBUG).Info("Request rejected", "path", r.URL.Path, "err", err.Error())
	}
	writeJSON(w, code, errResp{Err: err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	snap := s.holder.Load()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "scenario": snap.Scenario, "version": snap.Version})
}

func (s *Server) handleCharts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, listCharts())
}

func listCharts() []chartInfo {
	defs := series.Catalog()
	out := make([]chartInfo, len(defs))
	for i, d := range defs {
		out[i] = chartInfo{ID: d.ID, Title: d.Title}
	}
	return out
}

// handleSeries serves one chart, or every chart when the query omits it.
func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	snap := s.holder.Load()
	var (
		report *series.Report
		err    error
	)
	if id := r.URL.Query().Get("chart"); id != "" {
		report, err = s.gen.GenerateChart(r.Context(), snap.Model, snap.Plan, id)
	} else {
		report, err = s.gen.Generate(r.Context(), snap.Model, snap.Plan)
	}
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("chart")
	if id == "" {
		http.Error(w, "missing param chart", http.StatusBadRequest)
		return
	}
	snap := s.holder.Load()
	report, err := s.gen.GenerateChart(r.Context(), snap.Model, snap.Plan, id)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	resp := summaryResp{Chart: id, Series: map[string]series.Stats{}}
	for _, c := range report.Charts {
		for _, sr := range c.Series {
			if sr.Points != nil {
				resp.Series[sr.Name] = series.Summarize(sr.Points)
			}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCost(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("tier")
	if name == "" {
		http.Error(w, "missing param tier", http.StatusBadRequest)
		return
	}
	owned, _, msg := parseInt(r, "owned")
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	qty, hasQty, msg := parseInt(r, "qty")
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	costMult, hasMult, msg := parseFloat(r, "cost_mult")
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	if !hasQty {
		qty = 1
	}
	if !hasMult {
		costMult = 1
	}

	m := s.holder.Load().Model
	tier, err := m.Tier(name)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	var cost float64
	if !hasQty && !hasMult {
		cost, err = m.Cost(tier, owned)
	} else {
		cost, err = m.BulkCost(tier, owned, qty, costMult)
	}
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, costResp{Tier: name, Owned: owned, Qty: qty, CostMult: costMult, Cost: cost})
}

func (s *Server) handleAffordable(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("tier")
	if name == "" {
		http.Error(w, "missing param tier", http.StatusBadRequest)
		return
	}
	budget, ok, msg := parseFloat(r, "budget")
	if !ok {
		if msg == "" {
			msg = "missing param budget"
		}
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	owned, _, msg := parseInt(r, "owned")
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	costMult, hasMult, msg := parseFloat(r, "cost_mult")
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	if !hasMult {
		costMult = 1
	}

	m := s.holder.Load().Model
	tier, err := m.Tier(name)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	n, err := m.MaxAffordable(tier, owned, budget, costMult)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	cost, err := m.BulkCost(tier, owned, n, costMult)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, affordableResp{Tier: name, Owned: owned, Budget: budget, Affordable: n, Cost: cost})
}

// exponent defaults to the economy's base exponent shifted by delta
func (s *Server) handleConsumption(w http.ResponseWriter, r *http.Request) {
	units, ok, msg := parseFloat(r, "units")
	if !ok {
		if msg == "" {
			msg = "missing param units"
		}
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	exp, hasExp, msg := parseFloat(r, "exp")
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	delta, _, msg := parseFloat(r, "delta")
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	var warnings []string
	m := s.holder.Load().Model.WithHandler(func(wn balance.Warning) {
		warnings = append(warnings, wn.String())
	})
	e := m.Economy()
	if !hasExp {
		var err error
		if exp, err = m.EffectiveConsumeExponent(e, delta); err != nil {
			s.writeErr(w, r, err)
			return
		}
	}
	c, err := m.Consumption(e, units, exp)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	p, err := m.Production(e, units)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, consumptionResp{Units: units, Exponent: exp, Consumption: c, Production: p, Warnings: warnings})
}

func (s *Server) handlePrestige(w http.ResponseWriter, r *http.Request) {
	total, ok, msg := parseFloat(r, "total")
	if !ok {
		if msg == "" {
			msg = "missing param total"
		}
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	boost, _, msg := parseFloat(r, "boost")
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	m := s.holder.Load().Model
	p := m.Prestige()
	wisdom, err := m.WisdomEarned(total, p)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	mult, err := m.WisdomMultiplier(wisdom, p, boost)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prestigeResp{Total: total, CanPrestige: m.CanPrestige(total, p), Wisdom: wisdom, Multiplier: mult})
}

// version is the current distilled count; wisdom_since asks whether the next
// version is affordable
func (s *Server) handleDistill(w http.ResponseWriter, r *http.Request) {
	version, _, msg := parseInt(r, "version")
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	since, hasSince, msg := parseFloat(r, "wisdom_since")
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	m := s.holder.Load().Model
	l := m.Ladder()
	resp := distillResp{Version: version}
	if cat := r.URL.Query().Get("category"); cat != "" {
		v, err := m.CumulativeDistillationBonus(l, version, cat)
		if err != nil {
			s.writeErr(w, r, err)
			return
		}
		resp.Category, resp.Value = cat, v
	} else {
		b, err := m.DistillationBonuses(l, version)
		if err != nil {
			s.writeErr(w, r, err)
			return
		}
		resp.Bonuses = b
	}
	if version < l.Len() {
		next, err := m.DistillationCost(l, version+1)
		if err != nil {
			s.writeErr(w, r, err)
			return
		}
		resp.NextCost = next
	}
	if hasSince {
		can := m.CanDistill(l, since, version)
		resp.CanDistill = &can
	}
	writeJSON(w, http.StatusOK, resp)
}

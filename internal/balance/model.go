// Package balance evaluates the idle game's balance formulas: producer cost
// growth, the guac economy, prestige conversion, the distillation ladder and
// benchmark globals.
//
// A Model is built once from a validated Tuning and never changes. Every
// method is a pure function of its arguments and the tuning, so a Model can
// be shared by any number of goroutines without locking.
package balance

import (
	"fmt"

	"github.com/go-logr/logr"
)

// Warning flags an input that is allowed but outside the nominal range, such
// as a consume exponent above the economy's base exponent.
type Warning struct {
	Op      string
	Message string
	Value   float64
	Bound   float64
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s (value=%g bound=%g)", w.Op, w.Message, w.Value, w.Bound)
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger used for load-time notes and default warnings.
func WithLogger(log logr.Logger) Option {
	return func(m *Model) { m.log = log }
}

// WithWarningHandler routes warnings to fn instead of the logger. fn may be
// called from several goroutines when the Model is shared.
func WithWarningHandler(fn func(Warning)) Option {
	return func(m *Model) { m.warn = fn }
}

// Model is the immutable balance evaluator.
type Model struct {
	tuning Tuning
	tiers  map[string]int
	log    logr.Logger
	warn   func(Warning)
}

// New validates t and returns a Model over a private copy of it.
func New(t Tuning, opts ...Option) (*Model, error) {
	if t.CostGrowth == 0 {
		t.CostGrowth = DefaultCostGrowth
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	t.Producers = append([]ProducerTier(nil), t.Producers...)
	t.Benchmarks = append([]Benchmark(nil), t.Benchmarks...)

	m := &Model{
		tuning: t,
		tiers:  make(map[string]int, len(t.Producers)),
		log:    logr.Discard(),
	}
	for _, o := range opts {
		o(m)
	}
	for i, p := range t.Producers {
		m.tiers[p.Name] = i
	}
	if !t.Distillation.costsNonDecreasing() {
		m.log.Info("Distillation costs are not non-decreasing", "costs", t.Distillation.Costs())
	}
	return m, nil
}

// WithHandler returns a copy of m that reports warnings to fn. The tuning is
// shared, not copied.
func (m *Model) WithHandler(fn func(Warning)) *Model {
	cp := *m
	cp.warn = fn
	return &cp
}

func (m *Model) emit(w Warning) {
	if m.warn != nil {
		m.warn(w)
		return
	}
	m.log.Info("Balance warning", "op", w.Op, "msg", w.Message, "value", w.Value, "bound", w.Bound)
}

// CostGrowth is the geometric growth factor applied per owned unit.
func (m *Model) CostGrowth() float64 { return m.tuning.CostGrowth }

// Producers returns the producer tiers in configuration order.
func (m *Model) Producers() []ProducerTier {
	return append([]ProducerTier(nil), m.tuning.Producers...)
}

// Economy returns the guac economy configuration.
func (m *Model) Economy() EconomyConfig { return m.tuning.Economy }

// Prestige returns the prestige configuration.
func (m *Model) Prestige() PrestigeConfig { return m.tuning.Prestige }

// Ladder returns the distillation ladder. The ladder is read-only.
func (m *Model) Ladder() *DistillationLadder { return m.tuning.Distillation }

// Benchmarks returns the benchmark globals in unlock order.
func (m *Model) Benchmarks() []Benchmark {
	return append([]Benchmark(nil), m.tuning.Benchmarks...)
}

// Tier looks up a producer tier by name.
func (m *Model) Tier(name string) (ProducerTier, error) {
	i, ok := m.tiers[name]
	if !ok {
		names := make([]string, len(m.tuning.Producers))
		for j, p := range m.tuning.Producers {
			names[j] = p.Name
		}
		if s := Suggest(name, names); s != "" {
			return ProducerTier{}, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownTier, name, s)
		}
		return ProducerTier{}, fmt.Errorf("%w %q", ErrUnknownTier, name)
	}
	return m.tuning.Producers[i], nil
}

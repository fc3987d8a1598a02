// Package api exposes the balance model over HTTP and gRPC. Both surfaces
// read from a Holder whose snapshot is replaced wholesale on reload.
package api

import (
	"sync/atomic"

	"github.com/xtding233/idle-balance/internal/balance"
	"github.com/xtding233/idle-balance/internal/config"
	"github.com/xtding233/idle-balance/internal/series"
)

// Snapshot is one immutable model together with the chart plan it serves.
type Snapshot struct {
	Scenario string
	Version  string
	Model    *balance.Model
	Plan     series.Plan
}

// NewSnapshot builds a model from resolved tuning.
func NewSnapshot(scenario string, r config.Resolved, opts ...balance.Option) (*Snapshot, error) {
	m, err := balance.New(r.Tuning, opts...)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Scenario: scenario, Version: r.Raw.Version, Model: m, Plan: r.Plan}, nil
}

// Holder hands out the current snapshot.
type Holder struct {
	cur atomic.Pointer[Snapshot]
}

func NewHolder(s *Snapshot) *Holder {
	h := &Holder{}
	h.cur.Store(s)
	return h
}

func (h *Holder) Load() *Snapshot { return h.cur.Load() }

func (h *Holder) Store(s *Snapshot) { h.cur.Store(s) }

// Reload resolves scenario again and swaps in the result. On error the
// current snapshot stays live.
func (h *Holder) Reload(r config.Resolver, scenario string, opts ...balance.Option) error {
	res, err := r.Resolve(scenario)
	if err != nil {
		return err
	}
	s, err := NewSnapshot(scenario, res, opts...)
	if err != nil {
		return err
	}
	h.Store(s)
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrScenarioNotFound is returned when a named scenario has no file.
var ErrScenarioNotFound = errors.New("scenario not found")

const defaultKey = "$default"

// Paths helper for default/scenario files.
type Paths struct {
	BaseDir string // base directory, e.g., ./configs
}

func (p Paths) TuningDir() string {
	return filepath.Join(p.BaseDir, "tuning")
}
func (p Paths) DefaultPath() string {
	return filepath.Join(p.TuningDir(), "default.yaml")
}
func (p Paths) ScenarioDir() string {
	return filepath.Join(p.TuningDir(), "scenarios")
}
func (p Paths) ScenarioPath(scenario string) string {
	return filepath.Join(p.ScenarioDir(), scenario+".yaml")
}

// Loader reads tuning YAML and merges default → scenario.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawTuning // key: scenario name or "$default"
}

// NewLoader creates a tuning loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawTuning),
	}
}

// Paths returns the file layout the loader reads from.
func (l *Loader) Paths() Paths { return l.paths }

// LoadMerged loads default.yaml and overlays the named scenario on it. An
// empty scenario returns the default file alone. A missing default file
// reads as empty; a missing scenario file is ErrScenarioNotFound.
func (l *Loader) LoadMerged(scenario string) (RawTuning, error) {
	key := scenario
	if key == "" {
		key = defaultKey
	}
	l.mu.RLock()
	if cfg, ok := l.cache[key]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, _, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawTuning{}, fmt.Errorf("read default: %w", err)
	}
	merged := defCfg
	if scenario != "" {
		scCfg, found, err := readYAML(l.paths.ScenarioPath(scenario))
		if err != nil {
			return RawTuning{}, fmt.Errorf("read scenario %q: %w", scenario, err)
		}
		if !found {
			return RawTuning{}, fmt.Errorf("%w: %q (looked in %s)", ErrScenarioNotFound, scenario, l.paths.ScenarioDir())
		}
		merged = mergeRaw(defCfg, scCfg)
	}

	l.mu.Lock()
	l.cache[defaultKey] = defCfg
	l.cache[key] = merged
	l.mu.Unlock()

	return merged, nil
}

// Scenarios lists the scenario names present on disk.
func (l *Loader) Scenarios() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(l.paths.ScenarioDir(), "*.yaml"))
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		base := filepath.Base(m)
		out = append(out, base[:len(base)-len(".yaml")])
	}
	return out, nil
}

// Invalidate clears loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawTuning)
}

// readYAML loads a YAML file into RawTuning. Missing files return a zero cfg
// and found=false, no error.
func readYAML(path string) (RawTuning, bool, error) {
	var cfg RawTuning
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawTuning{}, false, nil
		}
		return RawTuning{}, false, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawTuning{}, true, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, true, nil
}

// mergeRaw performs a deep merge: 'b' overrides 'a' where set.
// Producers merge by name; other lists in 'b' replace those in 'a'.
func mergeRaw(a, b RawTuning) RawTuning {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}
	out.CostGrowth = pick(a.CostGrowth, b.CostGrowth)

	if len(b.Producers) > 0 {
		out.Producers = mergeProducers(a.Producers, b.Producers)
	}

	switch {
	case b.Economy == nil:
	case a.Economy == nil:
		c := *b.Economy
		out.Economy = &c
	default:
		out.Economy = &RawEconomy{
			BaseConsumption:      pick(a.Economy.BaseConsumption, b.Economy.BaseConsumption),
			ConsumeExponent:      pick(a.Economy.ConsumeExponent, b.Economy.ConsumeExponent),
			ConsumeExponentFloor: pick(a.Economy.ConsumeExponentFloor, b.Economy.ConsumeExponentFloor),
			BaseProduction:       pick(a.Economy.BaseProduction, b.Economy.BaseProduction),
			ProduceExponent:      pick(a.Economy.ProduceExponent, b.Economy.ProduceExponent),
			MultiplierPerSqrt:    pick(a.Economy.MultiplierPerSqrt, b.Economy.MultiplierPerSqrt),
		}
	}

	switch {
	case b.Prestige == nil:
	case a.Prestige == nil:
		c := *b.Prestige
		out.Prestige = &c
	default:
		out.Prestige = &RawPrestige{
			UnlockThreshold:    pick(a.Prestige.UnlockThreshold, b.Prestige.UnlockThreshold),
			Divisor:            pick(a.Prestige.Divisor, b.Prestige.Divisor),
			WisdomMultPerPoint: pick(a.Prestige.WisdomMultPerPoint, b.Prestige.WisdomMultPerPoint),
		}
	}

	switch {
	case b.Distillation == nil:
	case a.Distillation == nil:
		c := *b.Distillation
		out.Distillation = &c
	default:
		d := *a.Distillation
		if len(b.Distillation.Categories) > 0 {
			d.Categories = append([]RawCategory(nil), b.Distillation.Categories...)
		}
		if len(b.Distillation.Versions) > 0 {
			d.Versions = append([]RawVersion(nil), b.Distillation.Versions...)
		}
		out.Distillation = &d
	}

	if len(b.Benchmarks) > 0 {
		out.Benchmarks = append([]RawBenchmark(nil), b.Benchmarks...)
	}

	switch {
	case b.Charts == nil:
	case a.Charts == nil:
		c := *b.Charts
		out.Charts = &c
	default:
		c := RawCharts{
			OwnedMax:         pick(a.Charts.OwnedMax, b.Charts.OwnedMax),
			LabsMin:          pick(a.Charts.LabsMin, b.Charts.LabsMin),
			LabsMax:          pick(a.Charts.LabsMax, b.Charts.LabsMax),
			GuacMax:          pick(a.Charts.GuacMax, b.Charts.GuacMax),
			ConsumeExponents: a.Charts.ConsumeExponents,
			WisdomEarned:     a.Charts.WisdomEarned,
			WisdomPointsMax:  pick(a.Charts.WisdomPointsMax, b.Charts.WisdomPointsMax),
			WisdomBoost:      pick(a.Charts.WisdomBoost, b.Charts.WisdomBoost),
			StackingGuacMax:  pick(a.Charts.StackingGuacMax, b.Charts.StackingGuacMax),
			StackingWisdom:   a.Charts.StackingWisdom,
			ExcludeProducers: pick(a.Charts.ExcludeProducers, b.Charts.ExcludeProducers),
		}
		if len(b.Charts.ConsumeExponents) > 0 {
			c.ConsumeExponents = append([]RawExponentScenario(nil), b.Charts.ConsumeExponents...)
		}
		if len(b.Charts.StackingWisdom) > 0 {
			c.StackingWisdom = append([]int64(nil), b.Charts.StackingWisdom...)
		}
		if w := b.Charts.WisdomEarned; w != nil {
			if c.WisdomEarned == nil {
				c.WisdomEarned = &RawLogRange{}
			}
			c.WisdomEarned = &RawLogRange{
				StartExp: pick(c.WisdomEarned.StartExp, w.StartExp),
				StopExp:  pick(c.WisdomEarned.StopExp, w.StopExp),
				Count:    pick(c.WisdomEarned.Count, w.Count),
			}
		}
		out.Charts = &c
	}

	return out
}

func mergeProducers(a, b []RawProducer) []RawProducer {
	out := append([]RawProducer(nil), a...)
	idx := make(map[string]int, len(out))
	for i, p := range out {
		idx[p.Name] = i
	}
	for _, p := range b {
		i, ok := idx[p.Name]
		if !ok {
			idx[p.Name] = len(out)
			out = append(out, p)
			continue
		}
		out[i].BaseCost = pick(out[i].BaseCost, p.BaseCost)
		out[i].BaseRate = pick(out[i].BaseRate, p.BaseRate)
		out[i].ClickBonus = pick(out[i].ClickBonus, p.ClickBonus)
	}
	return out
}

func pick[T any](a, b *T) *T {
	if b != nil {
		return b
	}
	return a
}

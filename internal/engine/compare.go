package engine

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/BinPacker/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.PackSettings
}

// ComparisonResult holds the layout and computed statistics for a single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Layout        model.Layout
	PlacedCount   int
	UnplacedCount int
	FreeRects     int
	Efficiency    float64
}

// CompareScenarios packs the same requests once per scenario and returns the
// results in scenario order. Scenarios run concurrently; each gets its own
// packer. The first failing scenario's error is returned.
func CompareScenarios(scenarios []ComparisonScenario, requests []model.Request) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, len(scenarios))

	var g errgroup.Group
	for i, scenario := range scenarios {
		g.Go(func() error {
			layout, err := Pack(scenario.Settings, requests)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", scenario.Name, err)
			}

			results[i] = ComparisonResult{
				Scenario:      scenario,
				Layout:        layout,
				PlacedCount:   len(layout.Placements),
				UnplacedCount: len(layout.Unplaced),
				FreeRects:     len(layout.Free),
				Efficiency:    layout.Efficiency(),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// BuildDefaultScenarios generates every heuristic and ordering combination
// for the container described by baseSettings. The base settings come first.
func BuildDefaultScenarios(baseSettings model.PackSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: baseSettings,
		},
	}

	for _, h := range model.Heuristics {
		for _, sorted := range []bool{false, true} {
			if h == baseSettings.Heuristic && sorted == baseSettings.SortDescending {
				continue
			}
			s := baseSettings
			s.Heuristic = h
			s.SortDescending = sorted

			name := h.String()
			if sorted {
				name += ", largest first"
			} else {
				name += ", input order"
			}
			scenarios = append(scenarios, ComparisonScenario{Name: name, Settings: s})
		}
	}

	return scenarios
}

// BestResult returns the index of the result that placed the most rectangles,
// using efficiency as the tie breaker. It returns -1 for an empty slice.
func BestResult(results []ComparisonResult) int {
	best := -1
	for i, r := range results {
		if best < 0 ||
			r.PlacedCount > results[best].PlacedCount ||
			(r.PlacedCount == results[best].PlacedCount && r.Efficiency > results[best].Efficiency) {
			best = i
		}
	}
	return best
}

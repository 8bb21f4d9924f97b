// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: scenario.go — profiling scenario definitions
//
// Purpose:
//   - Decodes JSON scenario files into validated workload descriptions.
//   - Derives a content fingerprint so the results store can tell whether a
//     configuration has already been measured.
//
// Notes:
//   - Zero-valued fields fall back to the library defaults, so a scenario
//     file only has to name what it changes.
// ─────────────────────────────────────────────────────────────────────────────

package profiler

import (
	"errors"
	"fmt"

	"github.com/sugawarayuuta/sonnet"
	"golang.org/x/crypto/sha3"

	"gainbucket/constants"
	"gainbucket/utils"
)

// Workload patterns.
const (
	// PatternUniform mixes appends, detaches, re-keys and pops across the
	// whole key range with uniform node selection.
	PatternUniform = "uniform"

	// PatternSweep emulates a partition-refinement pass: pop the best node,
	// lock it, re-key a handful of neighbors, repeat until drained.
	PatternSweep = "fm-sweep"

	// PatternSparseTop keeps one node at the bottom of the range and churns
	// a single node at the top, forcing a full downward rescan per pop.
	PatternSparseTop = "sparse-top"
)

var ErrBadScenario = errors.New("profiler: invalid scenario")

// Scenario describes one profiling run. JSON field names match the file
// format consumed by cmd/latprofile.
type Scenario struct {
	Name    string `json:"name"`
	Pattern string `json:"pattern"`
	Nodes   int    `json:"nodes"`
	KeyLow  int    `json:"key_low"`
	KeyHigh int    `json:"key_high"`
	Ops     int    `json:"ops"`
	Seed    int64  `json:"seed"`
}

// LoadScenario decodes a JSON scenario, applies defaults for omitted
// fields, and validates the result.
func LoadScenario(data []byte) (Scenario, error) {
	var sc Scenario
	if err := sonnet.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("%w: %v", ErrBadScenario, err)
	}

	if sc.Pattern == "" {
		sc.Pattern = PatternUniform
	}
	if sc.Nodes == 0 {
		sc.Nodes = constants.DefaultNodes
	}
	if sc.KeyLow == 0 && sc.KeyHigh == 0 {
		sc.KeyLow, sc.KeyHigh = constants.DefaultKeyLow, constants.DefaultKeyHigh
	}
	if sc.Ops == 0 {
		sc.Ops = constants.DefaultOps
	}
	if sc.Seed == 0 {
		sc.Seed = constants.DefaultSeed
	}

	switch sc.Pattern {
	case PatternUniform, PatternSweep, PatternSparseTop:
	default:
		return Scenario{}, fmt.Errorf("%w: unknown pattern %q", ErrBadScenario, sc.Pattern)
	}
	if sc.KeyLow > sc.KeyHigh {
		return Scenario{}, fmt.Errorf("%w: key range [%d, %d]", ErrBadScenario, sc.KeyLow, sc.KeyHigh)
	}
	if sc.Nodes <= 0 || sc.Ops <= 0 {
		return Scenario{}, fmt.Errorf("%w: nodes=%d ops=%d", ErrBadScenario, sc.Nodes, sc.Ops)
	}
	return sc, nil
}

// Fingerprint reduces the measurement-relevant fields to a 64-bit id. The
// name is deliberately excluded: two scenarios that measure the same thing
// share a fingerprint regardless of labeling.
func (sc Scenario) Fingerprint() uint64 {
	canonical := fmt.Sprintf("%s|%d|%d|%d|%d|%d|v%d",
		sc.Pattern, sc.Nodes, sc.KeyLow, sc.KeyHigh, sc.Ops, sc.Seed,
		constants.SchemaVersion)
	sum := sha3.Sum256(utils.S2b(canonical))
	return utils.LoadBE64(sum[:8])
}

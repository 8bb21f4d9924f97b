// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: main.go — latency profiler CLI
//
// Usage:
//   latprofile [-scenario file.json] [-db results.db] [-force]
//
// Replays the scenario's operation stream against a live queue, prints the
// latency profile, and persists it to the results database keyed by the
// scenario fingerprint. Already-measured configurations are skipped unless
// -force is given.
// ─────────────────────────────────────────────────────────────────────────────

package main

import (
	"flag"
	"fmt"
	"os"

	"gainbucket/constants"
	"gainbucket/debug"
	"gainbucket/profiler"
)

func main() {
	scenarioPath := flag.String("scenario", "", "path to a JSON scenario file (empty: built-in baseline)")
	dbPath := flag.String("db", constants.DefaultDBPath, "results database path")
	force := flag.Bool("force", false, "re-run even if this configuration is already stored")
	flag.Parse()

	data := []byte(`{"name":"baseline"}`)
	if *scenarioPath != "" {
		var err error
		data, err = os.ReadFile(*scenarioPath)
		if err != nil {
			debug.DropError("SCENARIO_READ", err)
			os.Exit(1)
		}
	}

	sc, err := profiler.LoadScenario(data)
	if err != nil {
		debug.DropError("SCENARIO_DECODE", err)
		os.Exit(1)
	}

	store, err := profiler.OpenStore(*dbPath)
	if err != nil {
		debug.DropError("STORE_OPEN", err)
		os.Exit(1)
	}
	defer store.Close()

	if !*force {
		done, err := store.HasRun(sc.Fingerprint())
		if err != nil {
			debug.DropError("STORE_QUERY", err)
			os.Exit(1)
		}
		if done {
			debug.DropMessage("SKIP", "configuration already measured; use -force to re-run")
			return
		}
	}

	res, err := profiler.Run(sc)
	if err != nil {
		debug.DropError("RUN", err)
		os.Exit(1)
	}

	if err := store.SaveResult(res); err != nil {
		debug.DropError("STORE_SAVE", err)
		os.Exit(1)
	}

	fmt.Printf("%s (%s) nodes=%d keys=[%d,%d] ops=%d seed=%d\n",
		sc.Name, sc.Pattern, sc.Nodes, sc.KeyLow, sc.KeyHigh, sc.Ops, sc.Seed)
	fmt.Printf("  samples=%d  p50<=%dns  p99<=%dns  max=%dns  fingerprint=%016x\n",
		res.Hist.Count(), res.Hist.Percentile(0.50), res.Hist.Percentile(0.99),
		res.Hist.Max(), sc.Fingerprint())
}

// Command abcport is a small front end over the AIG engine packages: read
// and write AIGER files, enumerate cuts, run LUT mapping, SAT-sweep for
// equivalences, and bounded-model-check a safety property.
package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/berkeley-abc/abc-sub020/pkg/aig"
	"github.com/berkeley-abc/abc-sub020/pkg/aiger"
	"github.com/berkeley-abc/abc-sub020/pkg/cut"
	"github.com/berkeley-abc/abc-sub020/pkg/interp"
	"github.com/berkeley-abc/abc-sub020/pkg/lutmap"
	"github.com/berkeley-abc/abc-sub020/pkg/result"
	"github.com/berkeley-abc/abc-sub020/pkg/sweep"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "abcport",
		Short: "AIG engine — cut enumeration, LUT mapping, SAT-sweeping, BMC over AIGER files",
	}

	rootCmd.AddCommand(
		newReadCmd(),
		newWriteCmd(),
		newStatsCmd(),
		newCutCmd(),
		newMapCmd(),
		newSweepCmd(),
		newProveCmd(),
		newBenchCmd(),
	)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadManager(path string) (*aig.Manager, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return aiger.Read(f)
}

func printSummary(m *aig.Manager) {
	fmt.Printf("  CI=%d CO=%d And=%d Registers=%d\n", m.NumCI(), m.NumCO(), m.NumAnd(), m.RegisterCount())
}

func newReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read [file.aig]",
		Short: "Parse an AIGER file and print its header summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadManager(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s:\n", args[0])
			printSummary(m)
			return nil
		},
	}
}

func newWriteCmd() *cobra.Command {
	var ascii bool
	c := &cobra.Command{
		Use:   "write [in.aig] [out.aig]",
		Short: "Read an AIGER file and rewrite it, optionally switching modes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadManager(args[0])
			if err != nil {
				return err
			}
			out, err := os.Create(args[1])
			if err != nil {
				return err
			}
			defer out.Close()
			mode := aiger.ModeCompact
			if ascii {
				mode = aiger.ModeASCII
			}
			if err := aiger.Write(out, m, mode); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[1])
			return nil
		},
	}
	c.Flags().BoolVar(&ascii, "ascii", false, "write the ASCII latch/output literal variant instead of compact")
	return c
}

func newStatsCmd() *cobra.Command {
	var output string
	c := &cobra.Command{
		Use:   "stats [file.aig]",
		Short: "Print structural statistics (and optionally export them as JSON)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadManager(args[0])
			if err != nil {
				return err
			}
			levels := m.Levels()
			var depth int32
			for _, l := range levels {
				if l > depth {
					depth = l
				}
			}
			report := struct {
				CI, CO, And, Registers int
				Depth                  int32
			}{m.NumCI(), m.NumCO(), m.NumAnd(), m.RegisterCount(), depth}
			fmt.Printf("CI=%d CO=%d And=%d Registers=%d Depth=%d\n",
				report.CI, report.CO, report.And, report.Registers, report.Depth)
			if output != "" {
				if err := result.WriteJSON(output, report); err != nil {
					return err
				}
				fmt.Printf("written to %s\n", output)
			}
			return nil
		},
	}
	c.Flags().StringVar(&output, "output", "", "write the report as JSON to this path")
	return c
}

func newCutCmd() *cobra.Command {
	var k, maxCuts int
	c := &cobra.Command{
		Use:   "cut [file.aig]",
		Short: "Enumerate K-feasible cuts and print per-node retention statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadManager(args[0])
			if err != nil {
				return err
			}
			store := cut.Enumerate(m, cut.Config{K: k, MaxCuts: maxCuts, Policy: cut.DelayPolicy{}})
			var total, maxPer int
			m.ForEachAnd(func(id aig.ID, f0, f1 aig.Lit) {
				n := len(store.CutsOf(id))
				total += n
				if n > maxPer {
					maxPer = n
				}
			})
			and := m.NumAnd()
			avg := 0.0
			if and > 0 {
				avg = float64(total) / float64(and)
			}
			fmt.Printf("K=%d nodes=%d avg-cuts/node=%.2f max-cuts/node=%d\n", k, and, avg, maxPer)
			return nil
		},
	}
	c.Flags().IntVar(&k, "k", 6, "maximum cut size (leaves)")
	c.Flags().IntVar(&maxCuts, "max-cuts", 8, "maximum cuts retained per node")
	return c
}

func newMapCmd() *cobra.Command {
	var k, maxCuts int
	var output string
	c := &cobra.Command{
		Use:   "map [file.aig]",
		Short: "Run K-LUT technology mapping and print the resulting statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadManager(args[0])
			if err != nil {
				return err
			}
			mp := lutmap.New(m, lutmap.Config{K: k, MaxCuts: maxCuts})
			mp.Run()
			st := mp.Stats()
			fmt.Printf("LUTs=%d Edges=%d MaxFanins=%d Depth=%d\n", st.NumLuts, st.NumEdges, st.MaxFanins, st.Depth)
			if output != "" {
				if err := result.WriteJSON(output, st); err != nil {
					return err
				}
				fmt.Printf("written to %s\n", output)
			}
			return nil
		},
	}
	c.Flags().IntVar(&k, "k", 6, "LUT input count")
	c.Flags().IntVar(&maxCuts, "max-cuts", 8, "maximum cuts retained per node during enumeration")
	c.Flags().StringVar(&output, "output", "", "write mapping statistics as JSON to this path")
	return c
}

func newSweepCmd() *cobra.Command {
	var seed uint64
	var words, workers int
	var budget time.Duration
	var recycle int
	var output, carePath string
	c := &cobra.Command{
		Use:   "sweep [file.aig]",
		Short: "Run SAT-sweeping to discover and prove node equivalences",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadManager(args[0])
			if err != nil {
				return err
			}
			cfg := sweep.Config{Seed: seed, Words: words, QueryBudget: budget, SolverRecycle: recycle}
			if carePath != "" {
				care, err := loadManager(carePath)
				if err != nil {
					return err
				}
				cfg.Care = care
			}

			var res sweep.Result
			if workers > 1 {
				wp := sweep.NewWorkerPool(workers)
				res = wp.RunParallel(m, cfg)
			} else {
				res = sweep.Run(m, cfg)
			}
			fmt.Printf("merged=%d kept=%d queries=%d\n", res.Merged, res.Kept, res.Queries)
			if output != "" {
				if err := result.WriteJSON(output, res); err != nil {
					return err
				}
				fmt.Printf("written to %s\n", output)
			}
			return nil
		},
	}
	c.Flags().Uint64Var(&seed, "seed", 1, "random simulation seed")
	c.Flags().IntVar(&words, "words", 8, "simulation words (64 patterns per word)")
	c.Flags().IntVar(&workers, "workers", 1, "sweep worker goroutines (>1 uses the batched concurrent path)")
	c.Flags().DurationVar(&budget, "budget", time.Second, "per-query SAT time budget")
	c.Flags().IntVar(&recycle, "recycle", 100, "rebuild the incremental solver every N queries")
	c.Flags().StringVar(&output, "output", "", "write the equivalence report as JSON to this path")
	c.Flags().StringVar(&carePath, "care", "", "AIGER file whose single output is the care set (care ≡ 1 if omitted)")
	return c
}

func newProveCmd() *cobra.Command {
	var bad, maxFrames int
	var budget time.Duration
	c := &cobra.Command{
		Use:   "prove [file.aig]",
		Short: "Bounded-model-check a CO (by index) for reachability of the bad state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadManager(args[0])
			if err != nil {
				return err
			}
			res := interp.Check(m, bad, interp.Config{MaxFrames: maxFrames, QueryBudget: budget})
			switch res.Status {
			case interp.SatCounterexample:
				fmt.Printf("counterexample found at frame %d\n", res.Frames)
			case interp.Timeout:
				fmt.Printf("timed out after %d frames\n", res.Frames)
			default:
				fmt.Printf("no counterexample within %d frames\n", res.Frames)
			}
			return nil
		},
	}
	c.Flags().IntVar(&bad, "bad", 0, "CO index of the property to check")
	c.Flags().IntVar(&maxFrames, "max-frames", 32, "maximum number of frames to unroll")
	c.Flags().DurationVar(&budget, "budget", time.Second, "per-frame SAT time budget (accepted but not applied: each frame's SAT call runs to completion)")
	return c
}

func newBenchCmd() *cobra.Command {
	var k, maxCuts, workers int
	c := &cobra.Command{
		Use:   "bench [file.aig]",
		Short: "Run cut enumeration, LUT mapping, and SAT-sweeping back to back, reporting wall time for each",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadManager(args[0])
			if err != nil {
				return err
			}
			printSummary(m)

			t0 := time.Now()
			cut.Enumerate(m, cut.Config{K: k, MaxCuts: maxCuts, Policy: cut.DelayPolicy{}})
			fmt.Printf("  cut:   %s\n", time.Since(t0))

			t1 := time.Now()
			mp := lutmap.New(m, lutmap.Config{K: k, MaxCuts: maxCuts})
			mp.Run()
			fmt.Printf("  map:   %s (%d LUTs)\n", time.Since(t1), mp.Stats().NumLuts)

			t2 := time.Now()
			wp := sweep.NewWorkerPool(workers)
			res := wp.RunParallel(m, sweep.Config{Seed: 1, Words: 4, QueryBudget: time.Second, SolverRecycle: 100})
			fmt.Printf("  sweep: %s (%d merged / %d queries)\n", time.Since(t2), res.Merged, res.Queries)
			return nil
		},
	}
	c.Flags().IntVar(&k, "k", 6, "cut size / LUT input count")
	c.Flags().IntVar(&maxCuts, "max-cuts", 8, "maximum cuts retained per node")
	c.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "sweep worker goroutines")
	return c
}

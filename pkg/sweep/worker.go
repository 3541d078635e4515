package sweep

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/berkeley-abc/abc-sub020/pkg/aig"
	"github.com/berkeley-abc/abc-sub020/pkg/result"
	"github.com/berkeley-abc/abc-sub020/pkg/satsolver"
	"github.com/berkeley-abc/abc-sub020/pkg/sim"
)

// WorkerPool distributes one sweep round's candidate pairs across
// goroutines, each with its own solver and encoder so gini instances are
// never shared across threads. A round is a barrier: every pair in it is
// checked against the classes snapshot taken at round start, and any
// counterexamples the round produces are applied together before the next
// round's classes are computed, mirroring a batched SAT-sweep structure.
type WorkerPool struct {
	NumWorkers int
	Results    *result.Table

	queries atomic.Int64
	merged  atomic.Int64
}

// NewWorkerPool creates a pool with the given number of workers, defaulting
// to runtime.NumCPU() when numWorkers <= 0.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		NumWorkers: numWorkers,
		Results:    result.NewTable(),
	}
}

// pairTask is one class member queued for a single round.
type pairTask struct {
	classIdx int
	repr     aig.ID
	mem      sim.Member
}

// pairOutcome is a worker's verdict on one pairTask.
type pairOutcome struct {
	task   pairTask
	status satsolver.Outcome
	cexBit []bool // CI-indexed counterexample, only set on Sat
}

// Stats returns the running query and merge counts.
func (wp *WorkerPool) Stats() (queries, merged int64) {
	return wp.queries.Load(), wp.merged.Load()
}

// RunParallel seeds classes from simulation, then repeatedly resolves a
// full round of candidate pairs concurrently, applying merges and
// counterexample-driven refinement as a barrier between rounds, until no
// round produces further splits.
func (wp *WorkerPool) RunParallel(m *aig.Manager, cfg Config) Result {
	if cfg.SolverRecycle <= 0 {
		cfg.SolverRecycle = 100
	}
	v := sim.Simulate(m, sim.NewRandom(cfg.Words, cfg.Seed), cfg.Words)
	classes := sim.InitialClasses(m, v)

	var res Result
	for {
		tasks := wp.buildRoundTasks(m, classes)
		if len(tasks) == 0 {
			break
		}

		outcomes := wp.runRound(m, tasks, cfg)

		var cexBits [][]bool
		for _, oc := range outcomes {
			res.Queries++
			switch oc.status {
			case satsolver.Unsat:
				m.SetEquivRepr(oc.task.mem.Node, oc.task.repr, true)
				wp.Results.Add(result.EquivRecord{Repr: oc.task.repr, Node: oc.task.mem.Node, Inv: oc.task.mem.Inv, Proved: true})
				res.Merged++
				wp.merged.Add(1)
			case satsolver.Sat:
				res.Kept++
				cexBits = append(cexBits, oc.cexBit)
				wp.Results.Add(result.EquivRecord{Repr: oc.task.repr, Node: oc.task.mem.Node, Inv: oc.task.mem.Inv, Proved: false})
			default:
				res.Kept++
			}
		}
		wp.queries.Add(int64(len(outcomes)))

		if len(cexBits) == 0 {
			break
		}
		classes = refineWithCounterexamples(m, classes, cexBits, cfg.Words)
	}
	res.Pairs = make([]Pair, 0, wp.Results.Len())
	for _, r := range wp.Results.Records() {
		state := Kept
		if r.Proved {
			state = Merged
		}
		res.Pairs = append(res.Pairs, Pair{Repr: r.Repr, Node: r.Node, Inv: r.Inv, State: state})
	}
	return res
}

// buildRoundTasks flattens the current class snapshot into one task per
// not-yet-proved member (a node whose class assignment has not yet been
// confirmed by a successful SAT query in an earlier round).
func (wp *WorkerPool) buildRoundTasks(m *aig.Manager, classes []*sim.Class) []pairTask {
	var tasks []pairTask
	for ci, cls := range classes {
		for _, mem := range cls.Members {
			if m.EquivProved(mem.Node) {
				continue
			}
			tasks = append(tasks, pairTask{classIdx: ci, repr: cls.Repr, mem: mem})
		}
	}
	return tasks
}

// runRound distributes tasks across wp.NumWorkers goroutines, each owning
// a private solver that is recycled every cfg.SolverRecycle queries, and
// reports round throughput every 10 seconds.
func (wp *WorkerPool) runRound(m *aig.Manager, tasks []pairTask, cfg Config) []pairOutcome {
	in := make(chan pairTask, len(tasks))
	for _, t := range tasks {
		in <- t
	}
	close(in)

	out := make(chan pairOutcome, len(tasks))
	done := make(chan struct{})
	start := time.Now()
	var completed atomic.Int64
	total := int64(len(tasks))

	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				c := completed.Load()
				fmt.Printf("  [%s] %d/%d pairs resolved (%.1f%%)\n",
					time.Since(start).Round(time.Second), c, total, float64(c)/float64(total)*100)
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < wp.NumWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			solver := satsolver.New()
			enc := NewEncoder(m, solver)
			careLit := encodeCareIfSet(solver, enc, cfg.Care)
			queries := 0
			for t := range in {
				if queries > 0 && queries%cfg.SolverRecycle == 0 {
					solver = satsolver.New()
					enc = NewEncoder(m, solver)
					careLit = encodeCareIfSet(solver, enc, cfg.Care)
				}
				queries++

				reprLit := aig.NewLit(t.repr, false)
				memLit := aig.NewLit(t.mem.Node, t.mem.Inv)
				a := enc.Lit(reprLit)
				b := enc.Lit(memLit)
				miter := EncodeXor(solver, a, b)
				miterLit := satsolver.Pos(miter)
				if cfg.Care != nil {
					miterLit = satsolver.Pos(EncodeAnd(solver, miterLit, careLit))
				}
				solver.Assume(miterLit)

				status := solver.SolveWithBudget(cfg.QueryBudget)
				oc := pairOutcome{task: t, status: status}
				if status == satsolver.Sat {
					bits := make([]bool, m.NumCI())
					idx := 0
					m.ForEachCI(func(lit aig.Lit) {
						bits[idx] = enc.CIValue(lit.Var())
						idx++
					})
					oc.cexBit = bits
				}
				out <- oc
				completed.Add(1)
			}
		}()
	}
	wg.Wait()
	close(out)
	close(done)

	outcomes := make([]pairOutcome, 0, len(tasks))
	for oc := range out {
		outcomes = append(outcomes, oc)
	}
	return outcomes
}

// refineWithCounterexamples resimulates with every counterexample gathered
// in a round and re-splits classes against all of them before the next
// round starts.
func refineWithCounterexamples(m *aig.Manager, classes []*sim.Class, cexBits [][]bool, words int) []*sim.Class {
	for _, bits := range cexBits {
		v := sim.Simulate(m, sim.NewCounterexample(bits), 1)
		classes = sim.RefineClasses(classes, v)
	}
	return classes
}

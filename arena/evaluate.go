package arena

import "math/rand"
import "sort"

import "github.com/bnclabs/memarena/api"

// Setrandsource override the arena's random source, a seeded source
// makes Evaluate() and Pickstrategy() deterministic. By default the
// source is seeded from wall clock at construction.
func (arena *Arena) Setrandsource(rnd *rand.Rand) *Arena {
	arena.rnd = rnd
	return arena
}

// Evaluate a placement strategy against the current arena state.
// Runs a synthetic workload of "evaluate.steps" steps, each step
// either attempts an allocation of a size drawn uniformly from
// ["evaluate.minsize", "evaluate.maxsize"], with probability
// "evaluate.allocprob" or whenever no allocation is live, or releases
// one live allocation picked uniformly at random. Fragmentation is
// sampled after every step.
//
// Arena state is captured before the workload and restored afterward,
// the live arena is unaffected. Return the workload's allocation
// success rate and its average fragmentation per step.
func (arena *Arena) Evaluate(
	strategy api.Strategy) (successrate, avgfrag float64, err error) {

	if arena.allocs == nil {
		panicerr("arena released")
	}
	if strategy.IsValid() == false {
		return 0, 0, ErrorInvalidstrategy
	}

	// capture arena state, restored on the way out whatever the
	// workload does to it.
	freeblocks := make([]api.Block, len(arena.freeblocks))
	copy(freeblocks, arena.freeblocks)
	allocs := make(map[int64]api.Block, len(arena.allocs))
	for id, block := range arena.allocs {
		allocs[id] = block
	}
	nextid, usedmem := arena.nextid, arena.usedmem
	defer func() {
		arena.freeblocks, arena.allocs = freeblocks, allocs
		arena.nextid, arena.usedmem = nextid, usedmem
		arena.mergeblocks()
	}()

	success, failed, totalfrag := int64(0), int64(0), int64(0)
	for step := int64(0); step < arena.evalsteps; step++ {
		if arena.rnd.Float64() < arena.allocprob || len(arena.allocs) == 0 {
			size := arena.minsize + arena.rnd.Int63n(arena.maxsize-arena.minsize+1)
			if _, err := arena.Alloc(size, strategy); err == nil {
				success++
			} else {
				failed++
			}
		} else {
			arena.Free(arena.pickalloc())
		}
		totalfrag += arena.Stats()["fragmentation"].(int64)
	}
	if n := success + failed; n > 0 {
		successrate = float64(success) / float64(n)
	}
	avgfrag = float64(totalfrag) / float64(arena.evalsteps)
	debugf("%v evaluated %q: success %v, avgfrag %v\n",
		arena.logprefix, strategy, successrate, avgfrag)
	return successrate, avgfrag, nil
}

// pickalloc return one live allocation id, uniformly at random. Ids
// are walked in sorted order so that a seeded source reproduces the
// same pick.
func (arena *Arena) pickalloc() int64 {
	ids := make([]int64, 0, len(arena.allocs))
	for id := range arena.allocs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids[arena.rnd.Intn(len(ids))]
}

// Pickstrategy evaluate both placement strategies against the same
// starting state, fold each run's average fragmentation into that
// strategy's lifetime statistics, and install the strategy with the
// lower lifetime average as the arena's preferred strategy. Ties
// favour best-fit. Return the winner and the lifetime averages for
// "best" and "worst".
func (arena *Arena) Pickstrategy() (api.Strategy, map[string]float64) {
	_, bestfrag, _ := arena.Evaluate(api.Bestfit)
	_, worstfrag, _ := arena.Evaluate(api.Worstfit)
	arena.stratstats[api.Bestfit].Add(bestfrag)
	arena.stratstats[api.Worstfit].Add(worstfrag)

	bestavg := arena.stratstats[api.Bestfit].Mean()
	worstavg := arena.stratstats[api.Worstfit].Mean()
	if bestavg <= worstavg {
		arena.strategy = api.Bestfit
	} else {
		arena.strategy = api.Worstfit
	}
	infof("%v preferring %q strategy (best %v, worst %v)\n",
		arena.logprefix, arena.strategy, bestavg, worstavg)
	return arena.strategy, map[string]float64{
		"best":  bestavg,
		"worst": worstavg,
	}
}

// Strategystats return lifetime evaluation statistics for both
// placement strategies, each entry is an accumulator snapshot from
// lib.AverageFloat64.
func (arena *Arena) Strategystats() map[string]interface{} {
	return map[string]interface{}{
		"best":  arena.stratstats[api.Bestfit].Stats(),
		"worst": arena.stratstats[api.Worstfit].Stats(),
	}
}

package arena

import s "github.com/bnclabs/gosettings"

import "github.com/bnclabs/memarena/api"

// Defaultcapacity for arenas created by callers that don't have an
// opinion on sizing.
const Defaultcapacity = int64(1024)

// Maxcapacity maximum number of addresses a simulated arena can
// manage.
const Maxcapacity = int64(1024 * 1024 * 1024 * 1024)

// Arena configurable parameters and default settings.
//
// "strategy" (string, default: "best")
//		Placement strategy for unqualified allocation requests,
//		can be "best" or "worst". Pickstrategy() overwrites this
//		preference with the empirically better strategy.
//
// "evaluate.steps" (int64, default: 20)
//		Number of steps in one synthetic evaluation workload.
//
// "evaluate.allocprob" (float64, default: 0.7)
//		Probability that a workload step attempts an allocation
//		instead of releasing a live allocation.
//
// "evaluate.minsize" (int64, default: 10)
// "evaluate.maxsize" (int64, default: 100)
//		Inclusive range from which workload allocation sizes are
//		drawn, uniformly at random.
func Defaultsettings() s.Settings {
	return s.Settings{
		"strategy":           string(api.Bestfit),
		"evaluate.steps":     int64(20),
		"evaluate.allocprob": float64(0.7),
		"evaluate.minsize":   int64(10),
		"evaluate.maxsize":   int64(100),
	}
}

func (arena *Arena) readsettings(setts s.Settings) *Arena {
	arena.strategy = api.Strategy(setts.String("strategy"))
	arena.evalsteps = setts.Int64("evaluate.steps")
	arena.allocprob = setts.Float64("evaluate.allocprob")
	arena.minsize = setts.Int64("evaluate.minsize")
	arena.maxsize = setts.Int64("evaluate.maxsize")
	return arena
}

func (arena *Arena) validatesettings() {
	if arena.strategy.IsValid() == false {
		panicerr("invalid strategy %q", arena.strategy)
	} else if arena.evalsteps <= 0 {
		panicerr("evaluate.steps %v should be positive", arena.evalsteps)
	} else if arena.allocprob < 0 || arena.allocprob > 1 {
		panicerr("evaluate.allocprob %v outside [0,1]", arena.allocprob)
	} else if arena.minsize <= 0 {
		panicerr("evaluate.minsize %v should be positive", arena.minsize)
	} else if arena.minsize > arena.maxsize {
		fmsg := "evaluate.minsize %v > evaluate.maxsize %v"
		panicerr(fmsg, arena.minsize, arena.maxsize)
	}
}

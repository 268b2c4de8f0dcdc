package main

import "flag"
import "fmt"
import "math/rand"
import "os"
import "strconv"
import "strings"
import "time"

import "github.com/bnclabs/golog"
import s "github.com/bnclabs/gosettings"
import "github.com/cloudfoundry/gosigar"
import hm "github.com/dustin/go-humanize"

import "github.com/bnclabs/memarena/api"
import "github.com/bnclabs/memarena/arena"

var options struct {
	capacity int64
	strategy string
	n        int
	size     [2]int64 // min-size, max-size for workload requests
	seed     int64
	evaluate bool
	sysinfo  bool
	blocks   bool
	loglevel string
}

func argParse() {
	var size string

	flag.Int64Var(&options.capacity, "capacity", arena.Defaultcapacity,
		"number of simulated addresses managed by the arena")
	flag.StringVar(&options.strategy, "strategy", "best",
		"preferred placement strategy, best or worst")
	flag.IntVar(&options.n, "n", 100,
		"number of workload operations to replay")
	flag.StringVar(&size, "size", "",
		"minsize,maxsize - workload requests between [minsize,maxsize]")
	flag.Int64Var(&options.seed, "seed", 0,
		"seed for the workload random source, 0 uses wall clock")
	flag.BoolVar(&options.evaluate, "evaluate", false,
		"empirically pick the better placement strategy")
	flag.BoolVar(&options.sysinfo, "sysinfo", false,
		"print host memory usage before starting")
	flag.BoolVar(&options.blocks, "blocks", false,
		"dump the free list after the workload")
	flag.StringVar(&options.loglevel, "log", "info", "log level")
	flag.Parse()

	options.size = [2]int64{10, 100}
	if size != "" {
		for i, field := range strings.Split(size, ",") {
			ln, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				die("invalid -size %q: %v", size, err)
			}
			options.size[i] = ln
		}
	}

	// boundary validation, the arena core never sees bad input from
	// this layer.
	if options.capacity <= 0 {
		die("-capacity %v should be positive", options.capacity)
	} else if api.Strategy(options.strategy).IsValid() == false {
		die("-strategy %q should be best or worst", options.strategy)
	} else if options.size[0] <= 0 || options.size[0] > options.size[1] {
		die("-size %v,%v should be positive and ordered",
			options.size[0], options.size[1])
	} else if options.n < 0 {
		die("-n %v should not be negative", options.n)
	}
	if options.seed == 0 {
		options.seed = time.Now().UnixNano()
	}
}

func main() {
	argParse()
	log.SetLogger(nil, map[string]interface{}{
		"log.level": options.loglevel, "log.file": "",
	})
	arena.LogComponents("all")

	if options.sysinfo {
		printsysinfo()
	}

	setts := s.Settings{"strategy": options.strategy}
	marena := arena.NewArena(options.capacity, setts)
	rnd := rand.New(rand.NewSource(options.seed))
	marena.Setrandsource(rnd)

	now := time.Now()
	success, failed := runworkload(marena, rnd)
	fmt.Printf("Took %v for %v operations (%v ok, %v failed)\n",
		time.Since(now), options.n, success, failed)
	printstats(marena)

	if options.evaluate {
		strategy, avgs := marena.Pickstrategy()
		fmt.Printf("preferred strategy: %v (best %.2f, worst %.2f)\n",
			strategy, avgs["best"], avgs["worst"])
	}
	marena.Release()
}

// replay a random mix of allocations and releases, allocation
// requests go through the arena's preferred strategy.
func runworkload(marena *arena.Arena, rnd *rand.Rand) (success, failed int) {
	ids := make([]int64, 0, options.n)
	for i := 0; i < options.n; i++ {
		if rnd.Float64() < 0.7 || len(ids) == 0 {
			size := options.size[0] + rnd.Int63n(options.size[1]-options.size[0]+1)
			if id, err := marena.Alloc(size, ""); err == nil {
				ids = append(ids, id)
				success++
			} else {
				failed++
			}
		} else {
			at := rnd.Intn(len(ids))
			marena.Free(ids[at])
			ids = append(ids[:at], ids[at+1:]...)
		}
	}
	return success, failed
}

func printstats(marena *arena.Arena) {
	stats := marena.Stats()
	used := hm.Bytes(uint64(stats["used"].(int64)))
	free := hm.Bytes(uint64(stats["free"].(int64)))
	total := hm.Bytes(uint64(stats["total"].(int64)))
	fmt.Printf("arena: %v used, %v free of %v (%.2f%% utilized)\n",
		used, free, total, marena.Utilization())
	fmt.Printf("live allocations: %v, fragments: %v, fragmentation: %v\n",
		stats["allocations"], stats["fragments"], stats["fragmentation"])
	if options.blocks {
		for _, block := range marena.Freeblocks() {
			fmt.Printf("  free [%v, %v) size %v\n",
				block.Start, block.End(), block.Size)
		}
	}
}

func printsysinfo() {
	mem, swap := sigar.Mem{}, sigar.Swap{}
	if err := mem.Get(); err != nil {
		die("sysinfo: %v", err)
	}
	if err := swap.Get(); err != nil {
		die("sysinfo: %v", err)
	}
	fmt.Printf("system ram: %v used of %v, %v free\n",
		hm.Bytes(mem.Used), hm.Bytes(mem.Total), hm.Bytes(mem.Free))
	fmt.Printf("system swap: %v used of %v\n",
		hm.Bytes(swap.Used), hm.Bytes(swap.Total))
}

func die(fmsg string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, fmsg+"\n", args...)
	os.Exit(1)
}

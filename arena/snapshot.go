package arena

import humanize "github.com/dustin/go-humanize"

import "github.com/bnclabs/memarena/api"

// Stats return a read-only snapshot of arena state,
//
//   "total"         arena capacity in addresses.
//   "used"          sum of live allocation sizes.
//   "free"          sum of free block sizes, always total - used.
//   "fragments"     number of free blocks.
//   "allocations"   number of live allocations.
//   "fragmentation" number of free blocks beyond the first, floored
//                   at zero. The sole fragmentation metric used by
//                   strategy evaluation.
func (arena *Arena) Stats() map[string]interface{} {
	if arena.allocs == nil {
		panicerr("arena released")
	}
	fragments := int64(len(arena.freeblocks))
	fragmentation := fragments - 1
	if fragmentation < 0 {
		fragmentation = 0
	}
	return map[string]interface{}{
		"total":         arena.capacity,
		"used":          arena.usedmem,
		"free":          arena.capacity - arena.usedmem,
		"fragments":     fragments,
		"allocations":   int64(len(arena.allocs)),
		"fragmentation": fragmentation,
	}
}

// Info of address accounting for this arena.
func (arena *Arena) Info() (capacity, used, free, fragments int64) {
	capacity, used = arena.capacity, arena.usedmem
	free = arena.capacity - arena.usedmem
	fragments = int64(len(arena.freeblocks))
	return
}

// Freeblocks return a copy of the free list, ordered by start
// address, for rendering.
func (arena *Arena) Freeblocks() []api.Block {
	blocks := make([]api.Block, len(arena.freeblocks))
	copy(blocks, arena.freeblocks)
	return blocks
}

// Allocations return a copy of the live allocation table, keyed by
// allocation id, for rendering.
func (arena *Arena) Allocations() map[int64]api.Block {
	allocs := make(map[int64]api.Block, len(arena.allocs))
	for id, block := range arena.allocs {
		allocs[id] = block
	}
	return allocs
}

// Preferred return the placement strategy used for unqualified
// allocation requests.
func (arena *Arena) Preferred() api.Strategy {
	return arena.strategy
}

// Utilization return the percentage of arena addresses held by live
// allocations.
func (arena *Arena) Utilization() float64 {
	return (float64(arena.usedmem) / float64(arena.capacity)) * 100
}

// Log vital statistics.
func (arena *Arena) Log() {
	stats := arena.Stats()
	used := humanize.Bytes(uint64(stats["used"].(int64)))
	free := humanize.Bytes(uint64(stats["free"].(int64)))
	total := humanize.Bytes(uint64(stats["total"].(int64)))
	fmsg := "%v %v used, %v free of %v, %v live blocks over %v fragments\n"
	infof(fmsg, arena.logprefix, used, free, total,
		stats["allocations"], stats["fragments"])
}

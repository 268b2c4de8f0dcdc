// Functions and methods are not thread safe.

package arena

import "errors"
import "fmt"
import "math/rand"
import "sort"
import "time"

import s "github.com/bnclabs/gosettings"

import "github.com/bnclabs/memarena/api"
import "github.com/bnclabs/memarena/lib"

// ErrorAllocfailed no free block is large enough for the request.
// The arena is valid and usable afterwards, a later Free can make
// the same request serviceable.
var ErrorAllocfailed = errors.New("arena.allocfailed")

// ErrorInvalidsize allocation requested for zero or negative size.
var ErrorInvalidsize = errors.New("arena.invalidsize")

// ErrorInvalidstrategy unknown placement strategy name.
var ErrorInvalidstrategy = errors.New("arena.invalidstrategy")

// Arena simulates a fixed-capacity linear address space carved into
// allocated blocks and free blocks.
type Arena struct {
	capacity   int64
	usedmem    int64
	freeblocks []api.Block // ordered by start address
	allocs     map[int64]api.Block
	nextid     int64

	// strategy preference and lifetime evaluation statistics.
	strategy   api.Strategy
	stratstats map[api.Strategy]*lib.AverageFloat64
	rnd        *rand.Rand

	// settings
	evalsteps int64
	allocprob float64
	minsize   int64
	maxsize   int64
	setts     s.Settings
	logprefix string
}

// NewArena create a new simulated arena. The free list starts as a
// single block spanning [0, capacity).
func NewArena(capacity int64, setts s.Settings) *Arena {
	if capacity <= 0 {
		panicerr("arena capacity %v should be positive", capacity)
	} else if capacity > Maxcapacity {
		panicerr("arena cannot exceed %v addresses (%v)", Maxcapacity, capacity)
	}
	arena := &Arena{
		capacity:   capacity,
		freeblocks: []api.Block{{Start: 0, Size: capacity}},
		allocs:     make(map[int64]api.Block),
		nextid:     1,
		stratstats: map[api.Strategy]*lib.AverageFloat64{
			api.Bestfit:  &lib.AverageFloat64{},
			api.Worstfit: &lib.AverageFloat64{},
		},
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	arena.logprefix = fmt.Sprintf("ARENA [%d]", capacity)

	setts = make(s.Settings).Mixin(Defaultsettings(), setts)
	arena.readsettings(setts)
	arena.validatesettings()
	arena.setts = setts

	infof("%v started with %q strategy\n", arena.logprefix, arena.strategy)
	return arena
}

//---- operations

// Alloc a block of `size` addresses using `strategy`, empty strategy
// routes the request to the arena's preferred strategy. When more
// than one free block of the qualifying size is available, the one
// with the lowest start address wins.
func (arena *Arena) Alloc(size int64, strategy api.Strategy) (int64, error) {
	if arena.allocs == nil {
		panicerr("arena released")
	}
	if size <= 0 {
		return 0, ErrorInvalidsize
	}
	if strategy == "" {
		strategy = arena.strategy
	}
	if strategy.IsValid() == false {
		return 0, ErrorInvalidstrategy
	}

	at := -1
	for i, block := range arena.freeblocks {
		if block.Size < size {
			continue
		} else if at < 0 {
			at = i
		} else if strategy == api.Bestfit && block.Size < arena.freeblocks[at].Size {
			at = i
		} else if strategy == api.Worstfit && block.Size > arena.freeblocks[at].Size {
			at = i
		}
	}
	if at < 0 {
		debugf("%v alloc %v failed\n", arena.logprefix, size)
		return 0, ErrorAllocfailed
	}

	block := arena.freeblocks[at]
	if remaining := block.Size - size; remaining > 0 {
		// the remainder starts within the old block's interval, the
		// free list stays ordered by start address.
		arena.freeblocks[at] = api.Block{Start: block.Start + size, Size: remaining}
	} else {
		arena.freeblocks = append(arena.freeblocks[:at], arena.freeblocks[at+1:]...)
	}
	id := arena.nextid
	arena.allocs[id] = api.Block{Start: block.Start, Size: size}
	arena.nextid++
	arena.usedmem += size
	debugf("%v alloc %v addresses at %v, id %v\n",
		arena.logprefix, size, block.Start, id)
	return id, nil
}

// Free a live allocation and fold its block back into the free list.
// Return false, without touching the arena state, if id is not live.
func (arena *Arena) Free(id int64) bool {
	if arena.allocs == nil {
		panicerr("arena released")
	}
	block, ok := arena.allocs[id]
	if ok == false {
		warnf("%v free unknown id %v\n", arena.logprefix, id)
		return false
	}
	delete(arena.allocs, id)
	arena.usedmem -= block.Size
	arena.freeblocks = append(arena.freeblocks, block)
	arena.mergeblocks()
	debugf("%v free id %v, %v addresses at %v\n",
		arena.logprefix, id, block.Size, block.Start)
	return true
}

// Release arena state, all subsequent operations panic.
func (arena *Arena) Release() {
	infof("%v released\n", arena.logprefix)
	arena.freeblocks, arena.allocs = nil, nil
	arena.stratstats = nil
}

//---- local functions

// fold adjacent free blocks into one, the result is the minimal set
// of free blocks describing the same free space. Idempotent, and
// leaves the free list ordered by start address.
func (arena *Arena) mergeblocks() {
	if len(arena.freeblocks) == 0 {
		return
	}
	sort.Slice(arena.freeblocks, func(i, j int) bool {
		return arena.freeblocks[i].Start < arena.freeblocks[j].Start
	})
	merged := arena.freeblocks[:1]
	for _, block := range arena.freeblocks[1:] {
		last := &merged[len(merged)-1]
		if last.End() == block.Start {
			last.Size += block.Size
		} else {
			merged = append(merged, block)
		}
	}
	arena.freeblocks = merged
}

//---- maintenance

// Validate arena invariants, panic on failure:
//
//  * free blocks and allocated blocks are pairwise disjoint.
//  * together they partition the entire [0, capacity) range.
//  * used + free == capacity.
func (arena *Arena) Validate() {
	if arena.allocs == nil {
		panicerr("arena released")
	}
	blocks := make([]api.Block, 0, len(arena.freeblocks)+len(arena.allocs))
	blocks = append(blocks, arena.freeblocks...)
	freemem := int64(0)
	for _, block := range arena.freeblocks {
		freemem += block.Size
	}
	for _, block := range arena.allocs {
		blocks = append(blocks, block)
	}
	sort.Slice(blocks, func(i, j int) bool {
		return blocks[i].Start < blocks[j].Start
	})
	offset := int64(0)
	for _, block := range blocks {
		if block.Size <= 0 {
			panicerr("%v zero sized block at %v", arena.logprefix, block.Start)
		} else if block.Start != offset {
			fmsg := "%v expected block at %v, got %v"
			panicerr(fmsg, arena.logprefix, offset, block.Start)
		}
		offset = block.End()
	}
	if offset != arena.capacity {
		fmsg := "%v blocks cover %v of %v addresses"
		panicerr(fmsg, arena.logprefix, offset, arena.capacity)
	}
	if x := arena.usedmem + freemem; x != arena.capacity {
		fmsg := "%v used %v + free %v != capacity %v"
		panicerr(fmsg, arena.logprefix, arena.usedmem, freemem, arena.capacity)
	}
}

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}

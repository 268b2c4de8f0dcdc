// Package api define types and interfaces common to simulated
// allocators implemented by this module.
package api

// Strategy names a placement algorithm used to pick a free block
// for an allocation request.
type Strategy string

const (
	// Bestfit pick the smallest free block that can hold the request.
	Bestfit Strategy = "best"

	// Worstfit pick the largest free block that can hold the request.
	Worstfit Strategy = "worst"
)

// IsValid return true for a known placement strategy.
func (strategy Strategy) IsValid() bool {
	return strategy == Bestfit || strategy == Worstfit
}

// Block is a half-open interval [Start, Start+Size) of simulated
// addresses within an arena.
type Block struct {
	Start int64
	Size  int64
}

// End return the address one past the block's last address.
func (block Block) End() int64 {
	return block.Start + block.Size
}

// Allocator interface for simulated memory management. Presentation
// layers should drive an arena through this interface and render its
// state from the snapshot methods.
type Allocator interface {
	// Alloc a block of `size` addresses using `strategy`. Empty
	// strategy routes the request to the allocator's preferred
	// strategy.
	Alloc(size int64, strategy Strategy) (id int64, err error)

	// Free a live allocation. Return false, without touching the
	// allocator state, if id is not live.
	Free(id int64) bool

	// Stats return a snapshot of allocator state as a set of
	// key,value pairs.
	Stats() map[string]interface{}

	// Info of address accounting for this allocator.
	Info() (capacity, used, free, fragments int64)

	// Freeblocks return a copy of the free list, ordered by start
	// address.
	Freeblocks() []Block

	// Allocations return a copy of the live allocation table.
	Allocations() map[int64]Block

	// Preferred return the placement strategy used for unqualified
	// allocation requests.
	Preferred() Strategy

	// Evaluate a strategy against the current allocator state using
	// a synthetic workload. Must not mutate the live state.
	Evaluate(strategy Strategy) (successrate, avgfrag float64, err error)

	// Pickstrategy evaluate both strategies and install the winner
	// as the preferred strategy. Return the winner along with the
	// lifetime average fragmentation for both strategies.
	Pickstrategy() (Strategy, map[string]float64)

	// Release allocator state, all subsequent operations panic.
	Release()
}

// Package arena simulates memory management over a fixed-capacity
// linear address space, with a limited scope:
//
//  * Types and Functions exported by this package are not thread safe.
//  * Addresses are simulated, no real memory backs an allocation.
//  * Blocks are carved out of a free list using a best-fit or
//    worst-fit placement strategy, supplied per request or configured
//    as the arena's preferred strategy.
//  * Free blocks adjacent to a released block are folded back into a
//    single block, the free list always holds the minimal number of
//    blocks describing the free space.
//  * An arena can empirically compare both placement strategies
//    against its own current state, under a synthetic random
//    workload, and install the winner as its preferred strategy. The
//    live arena state is untouched by evaluation.
//
// Arena capacity is fixed at construction and the arena lives for the
// process lifetime, there is no persistence across runs.
package arena

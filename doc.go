// Package vector implements a generic resizable array with value semantics
// and all-or-nothing mutations.
//
// # Overview
//
// The package has two layers:
//
//   - RawMemory, a fixed-size block of slots that never constructs or
//     destroys elements
//   - Vector, which owns a RawMemory and a live element count and drives
//     element lifetimes inside it
//
// Appending is amortized O(1): a full vector doubles its capacity, starting
// at 1.
//
// # Basic Usage
//
//	v := vector.New[int](nil) // plain values
//	defer v.Release()
//
//	_ = v.PushBack(10)
//	_ = v.PushBack(30)
//	_, _ = v.Insert(1, 20) // [10 20 30]
//	v.Erase(0)             // [20 30]
//
//	for i, p := range v.All() {
//		*p += i
//	}
//
// # Element Lifetimes
//
// Elements that own resources describe their lifecycle with Traits: how to
// create, copy, move, assign and destroy one. Hooks report failures as
// errors. The vector guarantees that every element it creates is destroyed
// exactly once, and that a failing hook or allocation leaves the vector as it
// was before the call:
//
//	tr := &vector.Traits[*os.File]{
//		Destroy: func(f **os.File) { (*f).Close() },
//		NoCopy:  true,
//	}
//	files := vector.New(tr)
//
// When a full vector grows, elements are moved into the new block if moving
// cannot fail, T cannot be copied or Traits has no Copy hook. Otherwise they
// are copied so that the old block survives a failure intact.
//
// # Thread Safety
//
// A Vector has a single owner and is not safe for concurrent use. Ownership
// changes hands with Take, MoveFrom or Swap.
//
// # Debug Checks
//
// Index and position arguments are not validated. Building with
//
//	go test -tags vectordebug
//
// turns contract violations (out-of-range index, Erase or PopBack on an empty
// vector, insert position outside [0, Len()]) into panics.
//
// # Metrics and Monitoring
//
// Stats returns a snapshot of a single vector:
//
//	s := v.Stats()
//	fmt.Printf("Utilization: %.2f%%\n", s.Utilization*100)
//
// NewMetrics creates Prometheus collectors that can be shared by many
// vectors via WithMetrics.
package vector

package layout

import "sync"

// ============================================================================
// ChildSpec Slice Pooling
// ============================================================================
//
// Every layout pass measures all children into a fresh []ChildSpec that is
// dropped once Pack has copied the specs into placements. Pooling the scratch
// slice keeps repeated relayouts (data changes, row-count toggles) from
// allocating a new buffer each pass.
//
// Usage:
//   specs := AcquireSpecs(count)
//   specs = append(specs, ...)
//   res := Pack(specs, width, maxRows)
//   ReleaseSpecs(specs)

var specPool = sync.Pool{
	New: func() interface{} {
		return make([]ChildSpec, 0, 32)
	},
}

// AcquireSpecs returns an empty slice with capacity for at least n specs.
// Callers must hand it back with ReleaseSpecs when done.
func AcquireSpecs(n int) []ChildSpec {
	slice := specPool.Get().([]ChildSpec)
	if cap(slice) < n {
		specPool.Put(slice[:0])
		return make([]ChildSpec, 0, n)
	}
	return slice[:0]
}

// ReleaseSpecs returns a slice obtained from AcquireSpecs to the pool.
// The slice must not be used afterwards.
func ReleaseSpecs(slice []ChildSpec) {
	if slice == nil {
		return
	}
	// Oversized buffers are left to the GC
	if cap(slice) <= 1024 {
		specPool.Put(slice[:0])
	}
}

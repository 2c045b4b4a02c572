package lattice

// TransformMap is a read-through delegate over any Source, applying a pure
// function to every value observed. It lets a compact stored representation
// (say one byte per voxel in a cached chunk map) read as richer data, palette
// style, without the expansion ever touching backing memory.
//
// The function must be referentially pure: same input, same output, no
// captured mutable state. Results are never cached, so an impure function
// breaks the determinism the containers otherwise guarantee.
//
// TransformMap is read-only by construction. An arbitrary forward function is
// not generally invertible, so writes go through the delegate directly in the
// stored representation. The map holds only a reference to its delegate and
// must not outlive it.
type TransformMap[In, Out any, P Point[P]] struct {
	delegate Source[In, P]
	fn       func(In) Out
}

// NewTransformMap returns a map reading through delegate with fn applied to
// every value.
func NewTransformMap[In, Out any, P Point[P]](delegate Source[In, P], fn func(In) Out) *TransformMap[In, Out, P] {
	return &TransformMap[In, Out, P]{delegate: delegate, fn: fn}
}

// At returns the delegate's value at p passed through the transform.
func (m *TransformMap[In, Out, P]) At(p P) Out {
	return m.fn(m.delegate.At(p))
}

// Iterate visits the delegate's points over extent, passing each value
// through the transform before handing it to fn.
func (m *TransformMap[In, Out, P]) Iterate(extent Extent[P], fn func(p P, v Out) bool) {
	m.delegate.Iterate(extent, func(p P, v In) bool {
		return fn(p, m.fn(v))
	})
}

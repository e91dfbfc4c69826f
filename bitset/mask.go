package bitset

import "github.com/RoaringBitmap/roaring/v2"

// Mask is a fixed-size bit vector over a row population (include or
// exclude items), one bit per row index. It wraps roaring.Bitmap so
// the sparse-population case (most candidates match only a handful of
// rows) stays compact, while still behaving like a dense bit vector
// for the selector's And/Or/AndNot hot loop.
type Mask struct {
	rb *roaring.Bitmap
}

// NewMask returns an empty Mask.
func NewMask() *Mask {
	return &Mask{rb: roaring.New()}
}

// Set marks row i as hit.
func (m *Mask) Set(i uint32) {
	m.rb.Add(i)
}

// Has reports whether row i is hit.
func (m *Mask) Has(i uint32) bool {
	return m.rb.Contains(i)
}

// Popcount returns the number of set bits.
func (m *Mask) Popcount() int {
	return int(m.rb.GetCardinality())
}

// AnyBit reports whether any bit is set.
func (m *Mask) AnyBit() bool {
	return !m.rb.IsEmpty()
}

// EqualAllOnes reports whether m has exactly n bits set, covering every
// row index in [0,n) — the selector's early-termination check (spec
// §4.5 step 5) for "include_bits == all-1s of size N".
func (m *Mask) EqualAllOnes(n int) bool {
	return m.rb.GetCardinality() == uint64(n)
}

// Or returns a new Mask that is the bitwise union of m and other.
func (m *Mask) Or(other *Mask) *Mask {
	out := m.Clone()
	out.rb.Or(other.rb)
	return out
}

// OrInPlace unions other into m.
func (m *Mask) OrInPlace(other *Mask) {
	m.rb.Or(other.rb)
}

// And returns a new Mask that is the bitwise intersection of m and other.
func (m *Mask) And(other *Mask) *Mask {
	out := m.Clone()
	out.rb.And(other.rb)
	return out
}

// AndNot returns a new Mask with every bit of other cleared from m.
func (m *Mask) AndNot(other *Mask) *Mask {
	out := m.Clone()
	out.rb.AndNot(other.rb)
	return out
}

// Clone returns an independent copy of m.
func (m *Mask) Clone() *Mask {
	return &Mask{rb: m.rb.Clone()}
}

// ToArray returns the set bit indices in ascending order. Used only by
// witness sampling, never on the selector's hot loop.
func (m *Mask) ToArray() []uint32 {
	return m.rb.ToArray()
}

// Complement returns every index in [0,n) not set in m — used to
// recover the real false-negative/false-positive masks from an
// inverted (complement) selection, whose own masks are expressed in
// swapped terms (spec §4.5).
func (m *Mask) Complement(n int) *Mask {
	full := roaring.New()
	full.AddRange(0, uint64(n))
	full.AndNot(m.rb)
	return &Mask{rb: full}
}

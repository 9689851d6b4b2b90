package reduce

import "fmt"

// Data is a logical byte sequence with copy-on-mutate fill semantics
// (spec.md §3/§4.2).
//
// Internally it is a shared, never-mutated base buffer plus an overlay of
// fill patches. [Data.Fill] never copies the base buffer - it appends a
// small patch record - so taking O(depth) snapshots of partially-masked
// variants along a deep recursion is O(depth) in patch count, not
// O(depth * filesize). See spec.md §9 "Deep cloning of file variants".
//
// The zero value is not usable; construct one with [NewData].
type Data struct {
	base    []byte
	patches []fillPatch
}

type fillPatch struct {
	offset int
	length int
	fill   byte
}

// NewData wraps base as a Data view with no patches applied.
//
// base is not copied; callers must not mutate it after calling NewData,
// since every [Data.Clone] and [Data.Fill] descendant shares it.
func NewData(base []byte) Data {
	return Data{base: base}
}

// Len returns the logical length of the data. [Data.Fill] never changes it.
func (d Data) Len() int {
	return len(d.base)
}

// Range returns the byte content in [lo, hi), with any overlapping fill
// patches applied in the order they were added. The returned slice is a
// fresh copy the caller may retain or mutate freely.
func (d Data) Range(lo, hi int) []byte {
	if lo < 0 || hi > len(d.base) || lo > hi {
		panic(fmt.Sprintf("reduce: Range(%d,%d) out of bounds for length %d", lo, hi, len(d.base)))
	}

	out := make([]byte, hi-lo)
	copy(out, d.base[lo:hi])

	for _, p := range d.patches {
		overlapLo := max(lo, p.offset)
		overlapHi := min(hi, p.offset+p.length)

		for i := overlapLo; i < overlapHi; i++ {
			out[i-lo] = p.fill
		}
	}

	return out
}

// Bytes materializes the full logical content. Equivalent to
// Range(0, Len()).
func (d Data) Bytes() []byte {
	return d.Range(0, d.Len())
}

// Fill returns a new Data with length bytes starting at lo overwritten with
// the null byte (0x00). It never changes [Data.Len]. spec.md §4.2 notes a
// future extension may parameterize the fill byte - see [Data.FillByte].
func (d Data) Fill(lo, length int) Data {
	return d.FillByte(lo, length, 0x00)
}

// FillByte is [Data.Fill] parameterized on the fill byte.
func (d Data) FillByte(lo, length int, b byte) Data {
	if length <= 0 {
		return d.Clone()
	}

	if lo < 0 || lo+length > len(d.base) {
		panic(fmt.Sprintf("reduce: Fill(%d,%d) out of bounds for length %d", lo, length, len(d.base)))
	}

	next := d.Clone()
	next.patches = append(next.patches, fillPatch{offset: lo, length: length, fill: b})

	return next
}

// Clone returns an independent Data sharing the base buffer but with its
// own patch overlay, so appending to one clone's patches never affects
// another - callers may safely hold onto both a parent Data and any number
// of its clones.
func (d Data) Clone() Data {
	patches := make([]fillPatch, len(d.patches))
	copy(patches, d.patches)

	return Data{base: d.base, patches: patches}
}

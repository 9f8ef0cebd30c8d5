// Package sparse provides a sparse set of small integers with O(1) insert,
// membership and clear.
//
// The matcher uses it to remember which instructions were already reached at
// the current input position.
package sparse

// Set is a set of uint32 values below a fixed capacity.
// The zero value is an empty set with capacity 0.
type Set struct {
	sparse []uint32 // value -> index in dense
	dense  []uint32
}

// New returns an empty set that can hold values in [0, capacity).
func New(capacity int) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds v to the set and reports whether it was absent.
// It panics if v is out of range.
func (s *Set) Insert(v uint32) bool {
	if s.Contains(v) {
		return false
	}
	s.sparse[v] = uint32(len(s.dense))
	s.dense = append(s.dense, v)
	return true
}

// Contains reports whether v is in the set.
func (s *Set) Contains(v uint32) bool {
	if int(v) >= len(s.sparse) {
		return false
	}
	i := s.sparse[v]
	return int(i) < len(s.dense) && s.dense[i] == v
}

// Clear empties the set without touching its storage.
func (s *Set) Clear() {
	s.dense = s.dense[:0]
}

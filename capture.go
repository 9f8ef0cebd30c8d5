package pat

// Unset marks the Offset or Extent of a capture that has not been recorded.
const Unset = -1

// Capture is the span recorded for one capture group.
type Capture struct {
	// Offset is the byte offset in the input where the group started,
	// or Unset if the group did not participate in the match.
	Offset int
	// Extent is the length in bytes of the captured text, or Unset while the
	// group is still open or if it did not participate.
	Extent int
}

// Matched reports whether the group participated in the match.
func (c Capture) Matched() bool {
	return c.Offset != Unset && c.Extent != Unset
}

// End returns the exclusive end offset of the capture, or Unset.
func (c Capture) End() int {
	if !c.Matched() {
		return Unset
	}
	return c.Offset + c.Extent
}

// Substring returns the captured text of src, which must be the input the
// match was run against. It returns "" if the group did not participate.
func (c Capture) Substring(src string) string {
	if !c.Matched() {
		return ""
	}
	return src[c.Offset:c.End()]
}

var unsetCapture = Capture{Offset: Unset, Extent: Unset}

// captureStore hands out capture vectors of a fixed length and recycles the
// ones released by dead threads.
type captureStore struct {
	size int
	free [][]Capture
}

// get returns a vector initialized from init, or with every group unset if
// init is nil.
func (s *captureStore) get(init []Capture) []Capture {
	var caps []Capture
	if n := len(s.free); n > 0 {
		caps, s.free = s.free[n-1], s.free[:n-1]
	} else {
		caps = make([]Capture, s.size)
	}
	if init != nil {
		copy(caps, init)
		return caps
	}
	for i := range caps {
		caps[i] = unsetCapture
	}
	return caps
}

func (s *captureStore) put(caps []Capture) {
	if caps != nil {
		s.free = append(s.free, caps)
	}
}

// outranks reports whether the finished vector a is a better match than b:
// the left-most start wins, and among equal starts the longer match.
func outranks(a, b []Capture) bool {
	if a[0].Offset != b[0].Offset {
		return a[0].Offset < b[0].Offset
	}
	return a[0].Extent > b[0].Extent
}

// openGroup opens group at pos.
func openGroup(caps []Capture, group, pos int) {
	caps[group] = Capture{Offset: pos, Extent: Unset}
}

// closeGroup closes group at pos. A group that was never opened stays unset.
func closeGroup(caps []Capture, group, pos int) {
	if caps[group].Offset == Unset {
		return
	}
	caps[group].Extent = pos - caps[group].Offset
}

package interp

// series_ops.go holds the range-at-a-time series primitives — copy,
// insert-many, remove-many, append-many — built on top of series.go's
// single-cell Append/InsertAt/RemoveAt. generic_series.go's COPY/
// INSERT/REMOVE/APPEND dispatchers are the clients of these.

// CopyRange returns a new, independently pool-managed stub holding a
// shallow copy of s's live elements in [start, end). Indices are
// clamped into range rather than erroring, matching how HEAD/TAIL/SKIP
// already treat an out-of-range offset.
func (p *Pool) CopyRange(s *Stub, start, end int) *Stub {
	if start < 0 {
		start = 0
	}
	if end > s.Len() {
		end = s.Len()
	}
	if end < start {
		end = start
	}
	out := p.NewArray(s.Flavor, end-start)
	for i := start; i < end; i++ {
		out.Append(*s.At(i))
	}
	p.Manage(out)
	return out
}

// RemoveRange deletes up to count elements starting at index pos.
func (s *Stub) RemoveRange(pos, count int) {
	for i := 0; i < count && pos < s.Len(); i++ {
		s.RemoveAt(pos)
	}
}

// InsertRange inserts vals, in order, before index pos.
func (s *Stub) InsertRange(pos int, vals []Cell) {
	for i, v := range vals {
		s.InsertAt(pos+i, v)
	}
}

// AppendRange appends every cell in vals at the tail, in order.
func (s *Stub) AppendRange(vals []Cell) {
	for _, v := range vals {
		s.Append(v)
	}
}

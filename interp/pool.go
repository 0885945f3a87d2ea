package interp

// Pool is the fixed-size node allocator. Every Stub is born "manual"
// (tracked on Pool.manuals) until Manage promotes it to the GC's care;
// a Stub is never on both lists.
type Pool struct {
	manuals []*Stub
	managed []*Stub

	ballast int
	ballastCap int

	recycleRequested bool
	recycleMasked int // depth of "untransferrable" regions
}

// NewPool constructs a pool whose GC ballast starts at ballast
// allocations before the first recycle request.
func NewPool(ballast int) *Pool {
	if ballast <= 0 {
		ballast = 4096
	}
	return &Pool{ballast: ballast, ballastCap: ballast}
}

func (p *Pool) trackManual(s *Stub) {
	s.manualIndex = len(p.manuals)
	p.manuals = append(p.manuals, s)
	p.decrementBallast()
}

func (p *Pool) decrementBallast() {
	p.ballast--
	if p.ballast <= 0 && p.recycleMasked == 0 {
		p.recycleRequested = true
	}
}

// Manage removes s from the manuals list and marks it GC-owned.
func (p *Pool) Manage(s *Stub) {
	if s.Flags&StubManaged != 0 {
		return
	}
	p.removeManual(s)
	s.Flags |= StubManaged
	s.manualIndex = len(p.managed)
	p.managed = append(p.managed, s)
}

func (p *Pool) removeManual(s *Stub) {
	idx := s.manualIndex
	if idx < 0 || idx >= len(p.manuals) || p.manuals[idx] != s {
		return
	}
	last := len(p.manuals) - 1
	p.manuals[idx] = p.manuals[last]
	p.manuals[idx].manualIndex = idx
	p.manuals = p.manuals[:last]
	s.manualIndex = -1
}

func (p *Pool) removeManaged(s *Stub) {
	idx := s.manualIndex
	if idx < 0 || idx >= len(p.managed) || p.managed[idx] != s {
		return
	}
	last := len(p.managed) - 1
	p.managed[idx] = p.managed[last]
	p.managed[idx].manualIndex = idx
	p.managed = p.managed[:last]
	s.manualIndex = -1
}

// FreeUnmanaged releases a manual series explicitly. Errors if s is
// already managed.
func (p *Pool) FreeUnmanaged(s *Stub) *Failure {
	if s.Flags&StubManaged != 0 {
		return newFailure("bad-free", "series is managed, cannot be freed manually")
	}
	p.removeManual(s)
	p.releasePayload(s)
	return nil
}

// Kill releases a managed series' payload and marks it inaccessible; the
// node itself returns to being an empty husk with its dynamic storage
// cleared.
func (p *Pool) Kill(s *Stub) {
	if s.Flags&StubManaged != 0 {
		p.removeManaged(s)
	} else {
		p.removeManual(s)
	}
	p.releasePayload(s)
}

func (p *Pool) releasePayload(s *Stub) {
	s.Cells = nil
	s.Syms = nil
	s.Bytes = nil
	s.Link, s.Misc, s.Bonus = nil, nil, nil
	s.Flags &^= StubDynamic
	s.Flags |= StubInaccessible
	s.Used, s.Bias, s.Rest = 0, 0, 0
}

// MaskRecycle/UnmaskRecycle bracket GC-unsafe regions where a stub is
// reachable only through a reference the collector can't walk yet.
func (p *Pool) MaskRecycle() { p.recycleMasked++ }
func (p *Pool) UnmaskRecycle() {
	if p.recycleMasked > 0 {
		p.recycleMasked--
	}
}

// RecycleRequested reports whether a GC pass is due at the next safe
// point.
func (p *Pool) RecycleRequested() bool { return p.recycleMasked == 0 && p.recycleRequested }

func (p *Pool) resetBallast() {
	p.ballast = p.ballastCap
	p.recycleRequested = false
}

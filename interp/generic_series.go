package interp

// generic_series.go gives every series heart the INDEX?/LENGTH?/HEAD/
// TAIL/SKIP family: one set of dispatchers shared across block!,
// group!, path!, tuple!, text!, binary!, file!, url!, email!, tag!,
// bitset!, and issue! — the shared series-navigation surface, keyed
// only on "is this a series" rather than duplicated per type.
//
// A series cell's current position is its Word1, a 0-based offset into
// the backing Stub; HEAD/TAIL/SKIP build a new cell over the same Stub
// at a different Word1 rather than copying data.
//
// PICK/REMOVE/APPEND/COPY/INSERT additionally need direct element
// access and are only wired for the array-backed hearts (block!,
// group!, path!, tuple!); text!/binary! and the other byte-backed
// series share the navigation verbs above but not these, since their
// Stub payload lives in Bytes rather than Cells (series.go) and a
// byte-indexed element API is a separate piece of surface this pass
// does not add.

func init() {
	for _, h := range heartsWhere(Heart.IsSeries) {
		RegisterGeneric(h, VerbLength, seriesLength)
		RegisterGeneric(h, VerbIndexOf, seriesIndexOf)
		RegisterGeneric(h, VerbHead, seriesHead)
		RegisterGeneric(h, VerbTail, seriesTail)
		RegisterGeneric(h, VerbSkip, seriesSkip)
	}
	for _, h := range heartsWhere(Heart.IsArray) {
		RegisterGeneric(h, VerbPick, seriesPick)
		RegisterGeneric(h, VerbRemove, seriesRemove)
		RegisterGeneric(h, VerbAppend, seriesAppend)
		RegisterGeneric(h, VerbCopy, seriesCopy)
		RegisterGeneric(h, VerbInsert, seriesInsert)
	}
}

func seriesPosition(c Cell) int { return int(c.Word1) }

func seriesAt(c Cell, pos int) Cell {
	c.Word1 = uint64(pos)
	return c
}

func seriesLength(interp *Interpreter, subject Cell, args []Cell) (Cell, *Failure) {
	if subject.Node1 == nil {
		return Cell{}, newFailure(ErrBadCast, "value has no backing series")
	}
	n := subject.Node1.Len() - seriesPosition(subject)
	if n < 0 {
		n = 0
	}
	return NewInteger(int64(n)), nil
}

func seriesIndexOf(interp *Interpreter, subject Cell, args []Cell) (Cell, *Failure) {
	return NewInteger(int64(seriesPosition(subject)) + 1), nil
}

func seriesHead(interp *Interpreter, subject Cell, args []Cell) (Cell, *Failure) {
	return seriesAt(subject, 0), nil
}

func seriesTail(interp *Interpreter, subject Cell, args []Cell) (Cell, *Failure) {
	if subject.Node1 == nil {
		return Cell{}, newFailure(ErrBadCast, "value has no backing series")
	}
	return seriesAt(subject, subject.Node1.Len()), nil
}

func seriesSkip(interp *Interpreter, subject Cell, args []Cell) (Cell, *Failure) {
	if len(args) == 0 || args[0].Heart != HeartInteger {
		return Cell{}, newFailure(ErrBadParameter, "skip requires an integer offset")
	}
	if subject.Node1 == nil {
		return Cell{}, newFailure(ErrBadCast, "value has no backing series")
	}
	pos := seriesPosition(subject) + int(args[0].AsInteger())
	if pos < 0 {
		pos = 0
	}
	if max := subject.Node1.Len(); pos > max {
		pos = max
	}
	return seriesAt(subject, pos), nil
}

func seriesPick(interp *Interpreter, subject Cell, args []Cell) (Cell, *Failure) {
	if len(args) == 0 || args[0].Heart != HeartInteger {
		return Cell{}, newFailure(ErrBadParameter, "pick requires an integer index")
	}
	if subject.Node1 == nil {
		return Cell{}, newFailure(ErrBadCast, "value has no backing series")
	}
	idx := seriesPosition(subject) + int(args[0].AsInteger()) - 1
	cell := subject.Node1.At(idx)
	if cell == nil {
		return NewNullIsotope(), nil
	}
	return *cell, nil
}

func seriesRemove(interp *Interpreter, subject Cell, args []Cell) (Cell, *Failure) {
	s := subject.Node1
	if s == nil {
		return Cell{}, newFailure(ErrBadCast, "value has no backing series")
	}
	if fail := s.CheckMutable(); fail != nil {
		return Cell{}, fail
	}
	count := 1
	if len(args) > 0 && args[0].Heart == HeartInteger {
		count = int(args[0].AsInteger())
	}
	pos := seriesPosition(subject)
	s.RemoveRange(pos, count)
	return subject, nil
}

func seriesAppend(interp *Interpreter, subject Cell, args []Cell) (Cell, *Failure) {
	s := subject.Node1
	if s == nil {
		return Cell{}, newFailure(ErrBadCast, "value has no backing series")
	}
	if fail := s.CheckMutable(); fail != nil {
		return Cell{}, fail
	}
	s.AppendRange(args)
	return subject, nil
}

func seriesCopy(interp *Interpreter, subject Cell, args []Cell) (Cell, *Failure) {
	s := subject.Node1
	if s == nil {
		return Cell{}, newFailure(ErrBadCast, "value has no backing series")
	}
	out := interp.rt.pool.CopyRange(s, seriesPosition(subject), s.Len())
	result := Cell{Heart: subject.Heart}
	result.setNode1(out)
	return result, nil
}

func seriesInsert(interp *Interpreter, subject Cell, args []Cell) (Cell, *Failure) {
	s := subject.Node1
	if s == nil {
		return Cell{}, newFailure(ErrBadCast, "value has no backing series")
	}
	if fail := s.CheckMutable(); fail != nil {
		return Cell{}, fail
	}
	pos := seriesPosition(subject)
	s.InsertRange(pos, args)
	return seriesAt(subject, pos+len(args)), nil
}

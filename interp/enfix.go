package interp

// This file holds the narrow slice of enfix discipline that
// doesn't belong inline in the evalStep/maybeEnfix loop of eval.go:
// the ambiguous-infix guard, and the helper that decides whether a
// soft/medium-quoted parameter should defer to a left-quoting operator
// standing in the next feed slot.

// checkAmbiguousInfix raises ambiguous-infix error when two
// adjacent enfix actions both refuse to yield: the left one postpones
// entirely (it will never give up its chance to grab a right-hand
// argument) while the right one also wants to steal the same value.
func checkAmbiguousInfix(left, right *Action) *Failure {
	if left != nil && left.PostponesEntirely() && right != nil && right.IsEnfixed() {
		return newFailure(ErrAmbiguousInfix, "two enfix operators contend for the same left argument")
	}
	return nil
}

// softDefersToNext reports whether a soft/medium-quoted parameter should
// let the operator standing in the next feed slot win the argument
// instead of evaluating eagerly, giving `null then x -> [1] else [2]`
// the expected reading. medium differs from soft only in how many hops
// of deferral it allows; ember's feed is never more than one hop deep
// between a soft parameter and the next operator, so both classes
// resolve identically here.
func softDefersToNext(interp *Interpreter, feed *Feed) bool {
	cur := feed.Current()
	if cur == nil || cur.Heart != HeartWord {
		return false
	}
	v, ok := interp.lookupWord(feed, cur)
	if !ok || v.Heart != HeartAction {
		return false
	}
	action := ActionOf(v)
	return action != nil && action.IsEnfixed()
}

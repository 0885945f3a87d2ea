package interp

import "unicode"

// generic_char.go gives ISSUE!'s single-codepoint overload (the
// NewIssueChar/IsBlackhole pair in cell.go) the small per-character
// surface: case conversion and codepoint arithmetic. The case-conversion
// verbs return the zero-codepoint blackhole marker untouched rather than
// raising, since a refinement argument flowing through one of these
// unmodified is more useful than a hard error. The arithmetic verbs do
// not special-case it: they treat it as codepoint 0.

func init() {
	RegisterGeneric(HeartIssue, VerbUppercase, func(interp *Interpreter, subject Cell, args []Cell) (Cell, *Failure) {
		if subject.IsBlackhole() {
			return subject, nil
		}
		return NewIssueChar(unicode.ToUpper(rune(subject.Word1))), nil
	})
	RegisterGeneric(HeartIssue, VerbLowercase, func(interp *Interpreter, subject Cell, args []Cell) (Cell, *Failure) {
		if subject.IsBlackhole() {
			return subject, nil
		}
		return NewIssueChar(unicode.ToLower(rune(subject.Word1))), nil
	})
	RegisterGeneric(HeartIssue, VerbAdd, func(interp *Interpreter, subject Cell, args []Cell) (Cell, *Failure) {
		if len(args) == 0 || args[0].Heart != HeartInteger {
			return Cell{}, newFailure(ErrBadParameter, "char addition requires an integer operand")
		}
		return NewIssueChar(rune(int64(subject.Word1) + args[0].AsInteger())), nil
	})
	RegisterGeneric(HeartIssue, VerbSubtract, func(interp *Interpreter, subject Cell, args []Cell) (Cell, *Failure) {
		if len(args) == 0 || args[0].Heart != HeartInteger {
			return Cell{}, newFailure(ErrBadParameter, "char subtraction requires an integer operand")
		}
		return NewIssueChar(rune(int64(subject.Word1) - args[0].AsInteger())), nil
	})
}

package interp

import "strings"

// evalPath drives a PATH! callsite. pathCell's Node1 holds the path's
// segments as plain cells (the head word/group plus trailing
// refinement words or picker steps). The head is resolved first; if it
// names an action, every trailing WORD segment is pushed to the data
// stack as a refinement request before the frame is built, so that
// fulfillment can reorder them against the action's own parameter
// order. A non-action head is instead walked with successive PICK
// steps, one segment at a time.
func (interp *Interpreter) evalPath(feed *Feed, caller *Frame, pathCell *Cell) (Cell, *Failure) {
	segs := pathCell.Node1
	if segs == nil || segs.Len() == 0 {
		return Cell{}, newFailure(ErrInvalidChars, "empty path")
	}
	head := segs.At(0)
	headVal, fail := interp.evalPathHead(feed, head)
	if fail != nil {
		return Cell{}, fail
	}

	if headVal.Heart == HeartAction {
		return interp.invokeWithRefinements(feed, caller, wordSymbol(head), ActionOf(&headVal), segs)
	}

	val := headVal
	for i := 1; i < segs.Len(); i++ {
		step := segs.At(i)
		v, fail := interp.pickStep(val, step)
		if fail != nil {
			return Cell{}, fail
		}
		val = v
	}
	return val, nil
}

func (interp *Interpreter) evalPathHead(feed *Feed, head *Cell) (Cell, *Failure) {
	if head.Heart != HeartWord {
		return *head, nil
	}
	v, ok := interp.lookupWord(feed, head)
	if !ok {
		return Cell{}, newFailure(ErrNotInContext, "word has no value: "+wordName(head))
	}
	return *v, nil
}

// invokeWithRefinements pushes every trailing word segment of a path
// callsite to the data stack as a refinement request and runs the
// action, consuming subsequent feed values as its non-refinement
// arguments exactly as a bare WORD! call would.
func (interp *Interpreter) invokeWithRefinements(feed *Feed, caller *Frame, label *Symbol, action *Action, segs *Stub) (Cell, *Failure) {
	if action == nil {
		return Cell{}, newFailure(ErrBadCast, "path head is not callable")
	}
	baseline := interp.rt.stack.Len()
	for i := 1; i < segs.Len(); i++ {
		seg := segs.At(i)
		if seg.Heart != HeartWord {
			interp.rt.stack.DropTo(baseline)
			return Cell{}, newFailure(ErrInvalidChars, "path refinement must be a word")
		}
		interp.rt.stack.Push(*seg)
	}
	sub := NewActionFrame(caller, feed, action, label, interp.rt.stack)
	sub.Baseline = baseline
	out, fail := interp.Run(sub)
	if fail != nil {
		return Cell{}, fail
	}
	return interp.maybeEnfix(feed, caller, out)
}

// pickStep implements one non-action path step: an integer index into a
// series, or a word looked up as a context field.
func (interp *Interpreter) pickStep(container Cell, step *Cell) (Cell, *Failure) {
	switch {
	case container.Heart.IsContext():
		ctx := ctxFromVarlist(container.Node1)
		sym := wordSymbol(step)
		if sym == nil {
			return Cell{}, newFailure(ErrInvalidChars, "path step into a context must be a word")
		}
		v, ok := ctx.Get(sym)
		if !ok {
			return Cell{}, newFailure(ErrNotInContext, "no such field: "+sym.Name)
		}
		return *v, nil
	case container.Heart.IsArray():
		if step.Heart != HeartInteger {
			return Cell{}, newFailure(ErrBadCast, "path step into a series must be an integer")
		}
		idx := int(step.AsInteger()) - 1
		v := container.Node1.At(idx)
		if v == nil {
			return Cell{}, newFailure(ErrOutOfRange, "path index out of range")
		}
		return *v, nil
	default:
		return Cell{}, newFailure(ErrNotRelated, "value does not accept path steps: "+container.Heart.String())
	}
}

// --- to-local / to-rebol path normalization ---

// ToLocalOptions configures to-local's behavior.
type ToLocalOptions struct {
	Full bool
	TrimTailSlash bool
	Wild bool
	Windows bool
	CurrentDir string
}

// ToLocal converts a REBOL-style FILE! path (forward slashes, optional
// leading /c volume letter) into the host's local form.
func ToLocal(p string, opt ToLocalOptions) string {
	if opt.Full && !strings.HasPrefix(p, "/") {
		base := opt.CurrentDir
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		p = base + p
	}

	var volume string
	rest := p
	if opt.Windows && len(p) >= 3 && p[0] == '/' && isVolumeLetter(p[1]) && p[2] == '/' {
		volume = strings.ToUpper(p[1:2]) + ":"
		rest = p[2:]
	}

	segments := splitAndResolve(rest)

	sep := "/"
	if opt.Windows {
		sep = "\\"
	}
	out := volume + sep + strings.Join(segments, sep)
	if opt.TrimTailSlash {
		out = strings.TrimSuffix(out, sep)
	} else if strings.HasSuffix(rest, "/") && !strings.HasSuffix(out, sep) {
		out += sep
	}
	return out
}

func isVolumeLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// splitAndResolve walks p segment by segment, dropping "." segments and
// popping the previous segment on "..".
func splitAndResolve(p string) []string {
	var out []string
	for _, seg := range strings.Split(strings.Trim(p, "/"), "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, seg)
		}
	}
	return out
}

// ToRebolOptions configures to-rebol's behavior.
type ToRebolOptions struct {
	SrcIsDir bool
}

// ToRebol inverts ToLocal: collapses separator runs, rewrites a
// "C:\..." volume prefix to "/c/...", and appends a trailing slash
// when the source is known to be a directory.
func ToRebol(local string, opt ToRebolOptions) string {
	s := strings.ReplaceAll(local, "\\", "/")
	if len(s) >= 2 && isVolumeLetter(s[0]) && s[1] == ':' {
		s = "/" + strings.ToLower(s[:1]) + s[2:]
	}
	var collapsed strings.Builder
	prevSlash := false
	for i := 0; i < len(s); i++ {
		if s[i] == '/' {
			if prevSlash {
				continue
			}
			prevSlash = true
		} else {
			prevSlash = false
		}
		collapsed.WriteByte(s[i])
	}
	out := collapsed.String()
	if opt.SrcIsDir && !strings.HasSuffix(out, "/") {
		out += "/"
	}
	return out
}

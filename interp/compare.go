package interp

import "bytes"

// StrictCompare orders two cells of possibly different hearts the way
// strict-equal? needs to: different hearts are never equal (returns -1
// or 1 by heart number alone), same-heart values compare structurally.
// CellsEqual(a, b) built on top of this handles the void/quasi laws
// that apply before a strict-equal fallback is even reached.
func StrictCompare(a, b Cell) int {
	if a.Heart != b.Heart {
		if a.Heart < b.Heart {
			return -1
		}
		return 1
	}
	switch a.Heart {
	case HeartBlank, HeartVoid, HeartComma:
		return 0
	case HeartLogic:
		return compareBool(a.AsLogic(), b.AsLogic())
	case HeartInteger:
		return compareInt64(a.AsInteger(), b.AsInteger())
	case HeartDecimal, HeartPercent:
		return compareFloat64(a.AsDecimal(), b.AsDecimal())
	case HeartIssue:
		if a.IsBlackhole() != b.IsBlackhole() {
			if a.IsBlackhole() {
				return -1
			}
			return 1
		}
		return compareInt64(int64(a.Word1), int64(b.Word1))
	case HeartWord, HeartSetWord, HeartGetWord, HeartMetaWord, HeartTheWord, HeartTypeWord:
		return compareWords(a.Sym, b.Sym)
	case HeartText, HeartFile, HeartURL, HeartEmail, HeartTag:
		return compareBytes(a.Node1, b.Node1)
	case HeartBinary:
		return compareBytes(a.Node1, b.Node1)
	case HeartBlock, HeartGroup, HeartPath, HeartTuple:
		return compareArrays(a.Node1, b.Node1)
	default:
		if a.Word1 != b.Word1 {
			return compareInt64(int64(a.Word1), int64(b.Word1))
		}
		return compareInt64(int64(a.Word2), int64(b.Word2))
	}
}

func compareBool(a, b bool) int {
	if a == b {
		return 0
	}
	if !a {
		return -1
	}
	return 1
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareWords(a, b *Symbol) int {
	if a == b {
		return 0
	}
	ca, cb := a.Canon, b.Canon
	if ca == cb {
		return 0
	}
	if ca.Name < cb.Name {
		return -1
	}
	return 1
}

func compareBytes(a, b *Stub) int {
	if a == b {
		return 0
	}
	var ab, bb []byte
	if a != nil {
		ab = a.Bytes[a.Bias: a.Bias+a.Used]
	}
	if b != nil {
		bb = b.Bytes[b.Bias: b.Bias+b.Used]
	}
	return bytes.Compare(ab, bb)
}

func compareArrays(a, b *Stub) int {
	if a == b {
		return 0
	}
	if a == nil || b == nil {
		if a == nil && b == nil {
			return 0
		}
		if a == nil {
			return -1
		}
		return 1
	}
	n := a.Len()
	if b.Len() < n {
		n = b.Len()
	}
	for i := 0; i < n; i++ {
		if c := StrictCompare(*a.At(i), *b.At(i)); c != 0 {
			return c
		}
	}
	return compareInt64(int64(a.Len()), int64(b.Len()))
}

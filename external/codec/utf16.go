// Package codec implements the decode-side half of the "codec hooks"
// external collaborator: converting a source file's raw bytes to the
// UTF-8 the scanner requires, before anything reaches interp. None of
// this lives in the interp package itself, since the core treats
// encoding as an out-of-core concern mentioned only at its interface.
package codec

import (
	"bytes"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Endian selects which UTF-16 byte order to assume when no BOM is
// present (or when the BOM policy says to ignore one).
type Endian int

const (
	LittleEndian Endian = iota
	BigEndian
)

// BOMPolicy controls how a leading byte-order mark is treated.
type BOMPolicy int

const (
	// IgnoreBOM decodes strictly as Endian; a BOM, if present, passes
	// through as an ordinary (and likely unwanted) leading character.
	IgnoreBOM BOMPolicy = iota
	// UseBOM lets a present BOM override Endian; Endian is the
	// fallback when no BOM is found.
	UseBOM
	// ExpectBOM requires a BOM to be present, failing otherwise.
	ExpectBOM
)

func (e Endian) encoding() unicode.Endianness {
	if e == BigEndian {
		return unicode.BigEndian
	}
	return unicode.LittleEndian
}

func (b BOMPolicy) encoding() unicode.BOMPolicy {
	switch b {
	case UseBOM:
		return unicode.UseBOM
	case ExpectBOM:
		return unicode.ExpectBOM
	default:
		return unicode.IgnoreBOM
	}
}

// DecodeUTF16 reads all of r as UTF-16 and returns the equivalent
// UTF-8 bytes, honoring endian and bom the way mod-utf.c's decoder
// does: a BOM under UseBOM/ExpectBOM wins over the caller's stated
// endianness, and ExpectBOM fails outright if none is found.
func DecodeUTF16(r io.Reader, endian Endian, bom BOMPolicy) ([]byte, error) {
	enc := unicode.UTF16(endian.encoding(), bom.encoding())
	out, err := io.ReadAll(transform.NewReader(r, enc.NewDecoder()))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Normalize rewrites CRLF and lone CR line endings to LF. It is a
// separate pass from DecodeUTF16 rather than a folded-in option, since
// callers reading UTF-8 source directly (no UTF-16 decode involved)
// still need it applied.
func Normalize(b []byte) []byte {
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	b = bytes.ReplaceAll(b, []byte("\r"), []byte("\n"))
	return b
}

// Package encoding turns statement files of unknown encoding into UTF-8
// readers. Bank and broker CSV exports are frequently Windows-1252 or
// BOM-prefixed UTF-16 rather than plain UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// peekSize covers BOM detection and gives chardet enough material for a
// reliable guess.
const peekSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// NewUTF8Reader wraps r in a reader that yields UTF-8, detecting the source
// encoding from the leading bytes: BOM first, then a UTF-8 validity check,
// then chardet's heuristic, with Windows-1252 as the last resort.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(peekSize)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peeking input: %w", err)
	}

	if decoded, ok := fromBOM(br, head); ok {
		return decoded, nil
	}

	if utf8.Valid(head) {
		return br, nil
	}

	return fromHeuristic(br, head), nil
}

// fromBOM handles byte-order-marked input. A UTF-8 BOM is stripped and the
// rest passed through; UTF-16 marks select the matching decoder.
func fromBOM(br *bufio.Reader, head []byte) (io.Reader, bool) {
	switch {
	case bytes.HasPrefix(head, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return br, true

	case bytes.HasPrefix(head, bomUTF16LE):
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), true

	case bytes.HasPrefix(head, bomUTF16BE):
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), true
	}

	return nil, false
}

func fromHeuristic(br *bufio.Reader, head []byte) io.Reader {
	if guess, err := chardet.NewTextDetector().DetectBest(head); err == nil {
		switch guess.Charset {
		case "UTF-8":
			return br
		case "ISO-8859-1", "windows-1252":
			return transform.NewReader(br, charmap.Windows1252.NewDecoder())
		case "ISO-8859-9":
			return transform.NewReader(br, charmap.ISO8859_9.NewDecoder())
		}
	}

	// Windows-1252 decodes every byte, so the worst case is mangled
	// punctuation rather than an error.
	return transform.NewReader(br, charmap.Windows1252.NewDecoder())
}

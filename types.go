package iso8583

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

// ContentClass is the character set a field's value is drawn from.
type ContentClass int

const (
	ContentNumeric ContentClass = iota
	ContentAlphanumeric
	ContentBinary
	ContentTrack
)

// LengthClass describes how a field's length is carried on the wire.
type LengthClass int

const (
	LengthFixed LengthClass = iota
	LengthLLVAR
	LengthLLLVAR
	LengthLLLLVAR
)

type BitmapEncoding int

const (
	BitmapBinary BitmapEncoding = iota
	BitmapHex
)

const (
	MinFieldNumber      = 2
	MaxFieldNumber      = 128
	BitmapSize          = 8
	SecondaryBitmapSize = 8
	MTILength           = 4

	// maxFixedLength bounds Fixed rules; nothing in ISO 8583 comes close.
	maxFixedLength = 9999
)

// FieldRule is the encoding rule for a single data element.
// For LengthFixed, MaxLen is the exact length.
// Lengths count characters, or bytes for ContentBinary.
type FieldRule struct {
	Field       int          `json:"field" yaml:"field" mapstructure:"field"`
	Length      LengthClass  `json:"length" yaml:"length" mapstructure:"length"`
	MaxLen      int          `json:"max_length" yaml:"max_length" mapstructure:"max_length"`
	Content     ContentClass `json:"content" yaml:"content" mapstructure:"content"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
}

// prefixWidth returns the number of length digits preceding the value.
func (lc LengthClass) prefixWidth() int {
	switch lc {
	case LengthLLVAR:
		return 2
	case LengthLLLVAR:
		return 3
	case LengthLLLLVAR:
		return 4
	default:
		return 0
	}
}

// capacity is the largest length the class can describe.
func (lc LengthClass) capacity() int {
	switch lc {
	case LengthLLVAR:
		return 99
	case LengthLLLVAR:
		return 999
	case LengthLLLLVAR:
		return 9999
	default:
		return maxFixedLength
	}
}

func (lc LengthClass) String() string {
	switch lc {
	case LengthFixed:
		return "FIXED"
	case LengthLLVAR:
		return "LLVAR"
	case LengthLLLVAR:
		return "LLLVAR"
	case LengthLLLLVAR:
		return "LLLLVAR"
	default:
		return fmt.Sprintf("LengthClass(%d)", int(lc))
	}
}

func (cc ContentClass) String() string {
	switch cc {
	case ContentNumeric:
		return "N"
	case ContentAlphanumeric:
		return "ANS"
	case ContentBinary:
		return "B"
	case ContentTrack:
		return "Z"
	default:
		return fmt.Sprintf("ContentClass(%d)", int(cc))
	}
}

func (e BitmapEncoding) String() string {
	if e == BitmapHex {
		return "hex"
	}
	return "binary"
}

// normalizeName folds "Alpha-Numeric", "alphaNumeric" and "ALPHA_NUMERIC"
// into the same key.
func normalizeName(s string) string {
	return strings.ReplaceAll(strcase.ToSnake(strings.TrimSpace(s)), "_", "")
}

// ParseLengthClass accepts the usual spellings: "fixed", "LLVAR", "ll", ...
func ParseLengthClass(s string) (LengthClass, error) {
	switch normalizeName(s) {
	case "fixed", "f":
		return LengthFixed, nil
	case "llvar", "ll", "variable2":
		return LengthLLVAR, nil
	case "lllvar", "lll", "variable3":
		return LengthLLLVAR, nil
	case "llllvar", "llll", "variable4":
		return LengthLLLLVAR, nil
	}
	return 0, fmt.Errorf("unknown length class %q", s)
}

// ParseContentClass accepts ISO attribute codes (n, an, ans, b, z) and
// spelled out names.
func ParseContentClass(s string) (ContentClass, error) {
	switch normalizeName(s) {
	case "n", "numeric":
		return ContentNumeric, nil
	case "a", "an", "ans", "alphanumeric", "alphanumericspecial":
		return ContentAlphanumeric, nil
	case "b", "binary":
		return ContentBinary, nil
	case "z", "track", "trackdata":
		return ContentTrack, nil
	}
	return 0, fmt.Errorf("unknown content class %q", s)
}

func (lc *LengthClass) UnmarshalText(text []byte) error {
	v, err := ParseLengthClass(string(text))
	if err != nil {
		return err
	}
	*lc = v
	return nil
}

func (lc LengthClass) MarshalText() ([]byte, error) {
	return []byte(lc.String()), nil
}

func (cc *ContentClass) UnmarshalText(text []byte) error {
	v, err := ParseContentClass(string(text))
	if err != nil {
		return err
	}
	*cc = v
	return nil
}

func (cc ContentClass) MarshalText() ([]byte, error) {
	return []byte(cc.String()), nil
}

func (e *BitmapEncoding) UnmarshalText(text []byte) error {
	switch normalizeName(string(text)) {
	case "binary", "b", "":
		*e = BitmapBinary
	case "hex", "ascii":
		*e = BitmapHex
	default:
		return fmt.Errorf("unknown bitmap encoding %q", text)
	}
	return nil
}

func (e BitmapEncoding) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

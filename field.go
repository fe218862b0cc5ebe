package iso8583

import (
	"encoding/hex"
	"fmt"
)

// EncodeField appends the wire form of value to dst according to rule.
//
// Fixed fields are written as exactly rule.MaxLen units and the value must
// already have that length; Builder.Numeric pads integers for callers.
// Variable fields are preceded by a 2, 3 or 4 digit decimal length. Binary
// values are upper-case hex text and go on the wire as raw bytes.
func EncodeField(dst []byte, rule FieldRule, value string) ([]byte, error) {
	if err := validateValue(rule, value); err != nil {
		return dst, err
	}

	content := value
	if rule.Content == ContentBinary {
		raw, err := hex.DecodeString(value)
		if err != nil {
			// validateValue already accepted it as hex
			return dst, &FieldError{Field: rule.Field, Err: fmt.Errorf("%w: %v", ErrInvalidFieldValue, err)}
		}
		content = string(raw)
	}

	if rule.Length == LengthFixed {
		return append(dst, content...), nil
	}

	width := rule.Length.prefixWidth()
	start := len(dst)
	dst = append(dst, make([]byte, width)...)
	writeIntToASCII(dst[start:], len(content))
	return append(dst, content...), nil
}

// DecodeField decodes one field from the start of data and returns its value
// together with the number of bytes consumed. It never returns a short value:
// if fewer bytes remain than the rule or the length prefix demands it fails
// with ErrTruncatedMessage.
func DecodeField(data []byte, rule FieldRule) (string, int, error) {
	length, offset, err := fieldLength(data, rule)
	if err != nil {
		return "", 0, err
	}

	if len(data) < offset+length {
		return "", 0, &FieldError{
			Field: rule.Field,
			Err:   fmt.Errorf("%w: need %d bytes, have %d", ErrTruncatedMessage, length, len(data)-offset),
		}
	}

	raw := data[offset : offset+length]
	var value string
	if rule.Content == ContentBinary {
		buf := make([]byte, len(raw)*2)
		encodeHexUpper(buf, raw)
		value = string(buf)
	} else {
		value = string(raw)
	}

	if err := validateValue(rule, value); err != nil {
		return "", 0, err
	}

	return value, offset + length, nil
}

// fieldLength works out the content length of a field: the fixed length from
// the rule or the decimal prefix at the start of data. It returns the content
// length and the offset at which the content begins.
func fieldLength(data []byte, rule FieldRule) (int, int, error) {
	if rule.Length == LengthFixed {
		return rule.MaxLen, 0, nil
	}

	width := rule.Length.prefixWidth()
	if width == 0 {
		return 0, 0, &FieldError{Field: rule.Field, Err: fmt.Errorf("%w: unsupported length class %v", ErrInvalidFieldValue, rule.Length)}
	}
	if len(data) < width {
		return 0, 0, &FieldError{
			Field: rule.Field,
			Err:   fmt.Errorf("%w: need %d length digits, have %d bytes", ErrTruncatedMessage, width, len(data)),
		}
	}

	length, ok := parseASCIIToInt(data[:width])
	if !ok {
		return 0, 0, &FieldError{
			Field: rule.Field,
			Err:   fmt.Errorf("%w: non-numeric length prefix %q", ErrInvalidFieldValue, data[:width]),
		}
	}
	if length > rule.MaxLen {
		return 0, 0, &FieldError{
			Field: rule.Field,
			Err:   fmt.Errorf("%w: declared length %d exceeds maximum %d", ErrLengthExceeded, length, rule.MaxLen),
		}
	}

	return length, width, nil
}

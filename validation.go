package iso8583

import (
	"encoding/hex"
	"fmt"
)

// validateValue checks value against rule. It is shared by the encode and
// decode paths so both reject the same input, and a value that passes comes
// back unchanged from a decode. For ContentBinary the value is upper-case hex
// text.
func validateValue(rule FieldRule, value string) error {
	if err := validateContent(rule.Content, value); err != nil {
		return &ValidationError{
			Field:   rule.Field,
			Rule:    "content",
			Message: err.Error(),
			Kind:    ErrInvalidFieldValue,
		}
	}
	return validateLength(rule, wireLength(rule.Content, value))
}

// wireLength is the number of characters or bytes value occupies on the wire.
func wireLength(cc ContentClass, value string) int {
	if cc == ContentBinary {
		return len(value) / 2
	}
	return len(value)
}

func validateLength(rule FieldRule, n int) error {
	if n > rule.MaxLen || n > rule.Length.capacity() {
		return &ValidationError{
			Field:   rule.Field,
			Rule:    "length",
			Message: fmt.Sprintf("length %d exceeds maximum %d", n, rule.MaxLen),
			Kind:    ErrLengthExceeded,
		}
	}
	if rule.Length != LengthFixed || n == rule.MaxLen {
		return nil
	}
	return &ValidationError{
		Field:   rule.Field,
		Rule:    "length",
		Message: fmt.Sprintf("fixed length %d, got %d", rule.MaxLen, n),
		Kind:    ErrInvalidFieldValue,
	}
}

func validateContent(cc ContentClass, value string) error {
	switch cc {
	case ContentNumeric:
		return validateNumeric(value)
	case ContentAlphanumeric:
		return validatePrintable(value)
	case ContentTrack:
		return validateTrack(value)
	case ContentBinary:
		return validateHex(value)
	default:
		return fmt.Errorf("unsupported content class %v", cc)
	}
}

func validateNumeric(value string) error {
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return fmt.Errorf("non-numeric character %q at position %d", value[i], i)
		}
	}
	return nil
}

// validatePrintable allows printable ASCII (32-126).
func validatePrintable(value string) error {
	for i := 0; i < len(value); i++ {
		if value[i] < 32 || value[i] > 126 {
			return fmt.Errorf("invalid character 0x%02x at position %d", value[i], i)
		}
	}
	return nil
}

// validateTrack allows the track 2 alphabet: digits and the '=' or 'D'
// separator.
func validateTrack(value string) error {
	for i := 0; i < len(value); i++ {
		c := value[i]
		if (c < '0' || c > '9') && c != '=' && c != 'D' {
			return fmt.Errorf("invalid track character %q at position %d", c, i)
		}
	}
	return nil
}

func validateHex(value string) error {
	if len(value)%2 != 0 {
		return fmt.Errorf("odd number of hex digits (%d)", len(value))
	}
	if _, err := hex.DecodeString(value); err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}
	for i := 0; i < len(value); i++ {
		if value[i] >= 'a' && value[i] <= 'f' {
			return fmt.Errorf("lower-case hex digit %q at position %d", value[i], i)
		}
	}
	return nil
}

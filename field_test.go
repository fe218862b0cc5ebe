package iso8583

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeField(t *testing.T) {
	tests := []struct {
		name  string
		rule  FieldRule
		value string
		want  string
	}{
		{"LLVAR prefix", FieldRule{Field: 32, Length: LengthLLVAR, MaxLen: 11, Content: ContentNumeric}, "12345", "0512345"},
		{"LLVAR empty", FieldRule{Field: 44, Length: LengthLLVAR, MaxLen: 25, Content: ContentAlphanumeric}, "", "00"},
		{"LLLVAR prefix", FieldRule{Field: 48, Length: LengthLLLVAR, MaxLen: 999, Content: ContentAlphanumeric}, "abc DEF", "007abc DEF"},
		{"LLLLVAR prefix", FieldRule{Field: 120, Length: LengthLLLLVAR, MaxLen: 9999, Content: ContentAlphanumeric}, "xyz", "0003xyz"},
		{"fixed numeric", FieldRule{Field: 3, Length: LengthFixed, MaxLen: 6, Content: ContentNumeric}, "000150", "000150"},
		{"fixed alphanumeric", FieldRule{Field: 41, Length: LengthFixed, MaxLen: 8, Content: ContentAlphanumeric}, "TERM 001", "TERM 001"},
		{"track", FieldRule{Field: 35, Length: LengthLLVAR, MaxLen: 37, Content: ContentTrack}, "4242424242424242=2512", "214242424242424242=2512"},
		{"fixed binary", FieldRule{Field: 52, Length: LengthFixed, MaxLen: 2, Content: ContentBinary}, "0AFF", "\x0a\xff"},
		{"variable binary counts bytes", FieldRule{Field: 55, Length: LengthLLLVAR, MaxLen: 255, Content: ContentBinary}, "9F0206", "003\x9f\x02\x06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := EncodeField([]byte("head"), tt.rule, tt.value)
			require.NoError(t, err)
			require.Equal(t, "head"+tt.want, string(out))
		})
	}
}

func TestEncodeFieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		rule    FieldRule
		value   string
		wantErr []error
	}{
		{
			"variable over maximum",
			FieldRule{Field: 2, Length: LengthLLVAR, MaxLen: 19, Content: ContentNumeric},
			strings.Repeat("4", 20),
			[]error{ErrLengthExceeded, ErrInvalidFieldValue},
		},
		{
			"fixed over length",
			FieldRule{Field: 3, Length: LengthFixed, MaxLen: 6, Content: ContentNumeric},
			"1234567",
			[]error{ErrLengthExceeded, ErrInvalidFieldValue},
		},
		{
			"fixed alphanumeric too short",
			FieldRule{Field: 41, Length: LengthFixed, MaxLen: 8, Content: ContentAlphanumeric},
			"TERM",
			[]error{ErrInvalidFieldValue},
		},
		{
			"fixed numeric too short",
			FieldRule{Field: 3, Length: LengthFixed, MaxLen: 6, Content: ContentNumeric},
			"150",
			[]error{ErrInvalidFieldValue},
		},
		{
			"binary lower case",
			FieldRule{Field: 55, Length: LengthLLLVAR, MaxLen: 255, Content: ContentBinary},
			"9f0206",
			[]error{ErrInvalidFieldValue},
		},
		{
			"numeric with letters",
			FieldRule{Field: 11, Length: LengthFixed, MaxLen: 6, Content: ContentNumeric},
			"12A456",
			[]error{ErrInvalidFieldValue},
		},
		{
			"alphanumeric control character",
			FieldRule{Field: 48, Length: LengthLLLVAR, MaxLen: 999, Content: ContentAlphanumeric},
			"abc\x01",
			[]error{ErrInvalidFieldValue},
		},
		{
			"track with letters",
			FieldRule{Field: 35, Length: LengthLLVAR, MaxLen: 37, Content: ContentTrack},
			"4242ABC",
			[]error{ErrInvalidFieldValue},
		},
		{
			"binary odd hex digits",
			FieldRule{Field: 55, Length: LengthLLLVAR, MaxLen: 255, Content: ContentBinary},
			"ABC",
			[]error{ErrInvalidFieldValue},
		},
		{
			"binary not hex",
			FieldRule{Field: 55, Length: LengthLLLVAR, MaxLen: 255, Content: ContentBinary},
			"ZZ",
			[]error{ErrInvalidFieldValue},
		},
		{
			"fixed binary wrong size",
			FieldRule{Field: 52, Length: LengthFixed, MaxLen: 8, Content: ContentBinary},
			"0011",
			[]error{ErrInvalidFieldValue},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := EncodeField(nil, tt.rule, tt.value)
			require.Empty(t, out)
			for _, want := range tt.wantErr {
				require.ErrorIs(t, err, want)
			}

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tt.rule.Field, ve.Field)
		})
	}
}

func TestDecodeField(t *testing.T) {
	tests := []struct {
		name     string
		rule     FieldRule
		data     string
		want     string
		consumed int
	}{
		{"LLVAR", FieldRule{Field: 2, Length: LengthLLVAR, MaxLen: 19, Content: ContentNumeric}, "164242424242424242000150", "4242424242424242", 18},
		{"LLLVAR", FieldRule{Field: 48, Length: LengthLLLVAR, MaxLen: 999, Content: ContentAlphanumeric}, "003abcdef", "abc", 6},
		{"LLLLVAR", FieldRule{Field: 120, Length: LengthLLLLVAR, MaxLen: 9999, Content: ContentAlphanumeric}, "0000", "", 4},
		{"fixed", FieldRule{Field: 7, Length: LengthFixed, MaxLen: 3, Content: ContentNumeric}, "840123456", "840", 3},
		{"binary upper cased", FieldRule{Field: 52, Length: LengthFixed, MaxLen: 2, Content: ContentBinary}, "\x0a\xff", "0AFF", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, n, err := DecodeField([]byte(tt.data), tt.rule)
			require.NoError(t, err)
			require.Equal(t, tt.want, value)
			require.Equal(t, tt.consumed, n)
		})
	}
}

func TestDecodeFieldErrors(t *testing.T) {
	lllvar := FieldRule{Field: 48, Length: LengthLLLVAR, MaxLen: 999, Content: ContentAlphanumeric}

	tests := []struct {
		name    string
		rule    FieldRule
		data    string
		wantErr error
	}{
		{"declared length beyond input", lllvar, "150" + strings.Repeat("x", 149), ErrTruncatedMessage},
		{"prefix cut short", lllvar, "15", ErrTruncatedMessage},
		{"empty input", lllvar, "", ErrTruncatedMessage},
		{"fixed cut short", FieldRule{Field: 11, Length: LengthFixed, MaxLen: 6, Content: ContentNumeric}, "1234", ErrTruncatedMessage},
		{"non-numeric prefix", lllvar, "1a0abc", ErrInvalidFieldValue},
		{"declared over maximum", FieldRule{Field: 2, Length: LengthLLVAR, MaxLen: 19, Content: ContentNumeric}, "20" + strings.Repeat("4", 20), ErrLengthExceeded},
		{"numeric content", FieldRule{Field: 7, Length: LengthFixed, MaxLen: 3, Content: ContentNumeric}, "8A0", ErrInvalidFieldValue},
		{"alphanumeric content", lllvar, "002a\x00", ErrInvalidFieldValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, n, err := DecodeField([]byte(tt.data), tt.rule)
			require.ErrorIs(t, err, tt.wantErr)
			require.Empty(t, value)
			require.Zero(t, n)
		})
	}
}

func TestFieldRoundTrip(t *testing.T) {
	rules := []FieldRule{
		{Field: 2, Length: LengthLLVAR, MaxLen: 19, Content: ContentNumeric},
		{Field: 36, Length: LengthLLLVAR, MaxLen: 104, Content: ContentTrack},
		{Field: 55, Length: LengthLLLVAR, MaxLen: 255, Content: ContentBinary},
		{Field: 120, Length: LengthLLLLVAR, MaxLen: 9999, Content: ContentAlphanumeric},
	}
	values := []string{"4111111111111111", "0123=4567D89", "9F02060000000010005F2A020840", strings.Repeat("long text ", 150)}

	for i, rule := range rules {
		out, err := EncodeField(nil, rule, values[i])
		require.NoError(t, err)

		got, n, err := DecodeField(out, rule)
		require.NoError(t, err)
		require.Equal(t, values[i], got)
		require.Equal(t, len(out), n)
	}
}

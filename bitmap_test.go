package iso8583

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeBitmapLayout(t *testing.T) {
	tests := []struct {
		name   string
		fields []int
		want   []byte
	}{
		{"empty", nil, []byte{0, 0, 0, 0, 0, 0, 0, 0}},
		{"field 2", []int{2}, []byte{0x40, 0, 0, 0, 0, 0, 0, 0}},
		{"field 8", []int{8}, []byte{0x01, 0, 0, 0, 0, 0, 0, 0}},
		{"field 64", []int{64}, []byte{0, 0, 0, 0, 0, 0, 0, 0x01}},
		{"fields 2 3 7 11", []int{11, 2, 7, 3}, []byte{0x62, 0x20, 0, 0, 0, 0, 0, 0}},
		{
			"field 65",
			[]int{65},
			[]byte{0x80, 0, 0, 0, 0, 0, 0, 0, 0x80, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			"fields 3 and 128",
			[]int{128, 3},
			[]byte{0xA0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x01},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bm, err := EncodeBitmap(tt.fields)
			require.NoError(t, err)
			require.Equal(t, tt.want, bm.Bytes())
			require.Equal(t, len(tt.want), bm.Len())
		})
	}
}

func TestEncodeBitmapVariant(t *testing.T) {
	bm, err := EncodeBitmap([]int{2, 64})
	require.NoError(t, err)
	require.IsType(t, PrimaryBitmap{}, bm)
	require.False(t, bm.Has(1))

	bm, err = EncodeBitmap([]int{2, 65})
	require.NoError(t, err)
	require.IsType(t, ExtendedBitmap{}, bm)
	require.False(t, bm.Has(1), "bit 1 is the secondary flag, not a field")
	require.Equal(t, byte(0x80), bm.Bytes()[0]&0x80)
	require.Equal(t, []int{2, 65}, bm.Fields())
}

func TestEncodeBitmapRejectsInvalidFields(t *testing.T) {
	for _, f := range []int{-1, 0, 1, 129} {
		_, err := EncodeBitmap([]int{2, f})
		require.ErrorIs(t, err, ErrUnknownField, "field %d", f)

		var fe *FieldError
		require.ErrorAs(t, err, &fe)
		require.Equal(t, f, fe.Field)
	}
}

func TestBitmapSymmetry(t *testing.T) {
	check := func(t *testing.T, set []int) {
		t.Helper()
		want := slices.Clone(set)
		slices.Sort(want)
		want = slices.Compact(want)
		if want == nil {
			want = []int{}
		}

		bm, err := EncodeBitmap(set)
		require.NoError(t, err)

		decoded, n, err := DecodeBitmap(bm.Bytes())
		require.NoError(t, err)
		require.Equal(t, bm.Len(), n)
		require.Equal(t, want, decoded.Fields())
		for _, f := range want {
			require.True(t, decoded.Has(f))
		}
	}

	t.Run("empty", func(t *testing.T) {
		check(t, nil)
	})

	t.Run("every single field", func(t *testing.T) {
		for f := MinFieldNumber; f <= MaxFieldNumber; f++ {
			check(t, []int{f})
		}
	})

	t.Run("all fields", func(t *testing.T) {
		all := make([]int, 0, MaxFieldNumber-1)
		for f := MinFieldNumber; f <= MaxFieldNumber; f++ {
			all = append(all, f)
		}
		check(t, all)
	})

	t.Run("random subsets", func(t *testing.T) {
		rnd := rand.New(rand.NewSource(8583))
		for i := 0; i < 500; i++ {
			var set []int
			for f := MinFieldNumber; f <= MaxFieldNumber; f++ {
				if rnd.Intn(4) == 0 {
					set = append(set, f)
				}
			}
			rnd.Shuffle(len(set), func(a, b int) { set[a], set[b] = set[b], set[a] })
			check(t, set)
		}
	})
}

func TestDecodeBitmap(t *testing.T) {
	t.Run("primary only ignores the rest of the buffer", func(t *testing.T) {
		data := []byte{0x62, 0x20, 0, 0, 0, 0, 0, 0, '1', '6'}
		bm, n, err := DecodeBitmap(data)
		require.NoError(t, err)
		require.Equal(t, 8, n)
		require.Equal(t, []int{2, 3, 7, 11}, bm.Fields())
	})

	t.Run("secondary", func(t *testing.T) {
		data := []byte{0xC0, 0, 0, 0, 0, 0, 0, 0, 0x20, 0, 0, 0, 0, 0, 0, 0x01}
		bm, n, err := DecodeBitmap(data)
		require.NoError(t, err)
		require.Equal(t, 16, n)
		require.Equal(t, []int{2, 67, 128}, bm.Fields())
	})

	t.Run("short primary", func(t *testing.T) {
		_, _, err := DecodeBitmap([]byte{0x40, 0, 0})
		require.ErrorIs(t, err, ErrTruncatedBitmap)
	})

	t.Run("flagged secondary missing", func(t *testing.T) {
		_, _, err := DecodeBitmap([]byte{0x80, 0, 0, 0, 0, 0, 0, 0})
		require.ErrorIs(t, err, ErrTruncatedBitmap)
	})

	t.Run("flagged secondary short", func(t *testing.T) {
		_, _, err := DecodeBitmap([]byte{0x80, 0, 0, 0, 0, 0, 0, 0, 0x80, 0, 0})
		require.ErrorIs(t, err, ErrTruncatedBitmap)
	})
}

func TestBitmapHexEncoding(t *testing.T) {
	bm, err := EncodeBitmap([]int{2, 3, 7, 11, 70})
	require.NoError(t, err)

	out := AppendBitmap([]byte("0100"), bm, BitmapHex)
	require.Equal(t, "0100E2200000000000000400000000000000", string(out))

	decoded, n, err := ReadBitmap(out[4:], BitmapHex)
	require.NoError(t, err)
	require.Equal(t, 32, n)
	require.Equal(t, bm.Fields(), decoded.Fields())

	t.Run("binary passthrough", func(t *testing.T) {
		out := AppendBitmap(nil, bm, BitmapBinary)
		require.Equal(t, bm.Bytes(), out)
	})

	t.Run("lower case is accepted", func(t *testing.T) {
		decoded, _, err := ReadBitmap([]byte("e2200000000000000400000000000000"), BitmapHex)
		require.NoError(t, err)
		require.Equal(t, []int{2, 3, 7, 11, 70}, decoded.Fields())
	})

	t.Run("invalid hex", func(t *testing.T) {
		_, _, err := ReadBitmap([]byte("ZZ20000000000000"), BitmapHex)
		require.ErrorIs(t, err, ErrInvalidFieldValue)
	})

	t.Run("truncated secondary", func(t *testing.T) {
		_, _, err := ReadBitmap([]byte("E220000000000000040000"), BitmapHex)
		require.ErrorIs(t, err, ErrTruncatedBitmap)
	})
}

package iso8583

import (
	"encoding/hex"
	"fmt"
)

// Bitmap is the presence map of a message. It is either a PrimaryBitmap
// (fields 2-64 only) or an ExtendedBitmap (primary plus secondary, bit 1
// set). No other implementations exist.
type Bitmap interface {
	// Has reports whether field is present. Bit 1 is never a field.
	Has(field int) bool
	// Fields returns the present field numbers in ascending order.
	Fields() []int
	// Bytes returns the wire form: 8 or 16 bytes.
	Bytes() []byte
	// Len is the size of the wire form in bytes.
	Len() int

	bitmap()
}

// PrimaryBitmap covers fields 2-64. Bit 1 is always clear.
type PrimaryBitmap [BitmapSize]byte

// ExtendedBitmap holds the primary bitmap followed by the secondary one.
// Bit 1 is always set.
type ExtendedBitmap [BitmapSize + SecondaryBitmapSize]byte

func (PrimaryBitmap) bitmap()  {}
func (ExtendedBitmap) bitmap() {}

// bitSet reports whether bit (1-based, MSB first) is set in bits.
func bitSet(bits []byte, bit int) bool {
	byteIndex := (bit - 1) / 8
	bitIndex := 7 - ((bit - 1) % 8) // 7 (MSB) to 0 (LSB)
	return bits[byteIndex]&(1<<bitIndex) != 0
}

func setBit(bits []byte, bit int) {
	byteIndex := (bit - 1) / 8
	bitIndex := 7 - ((bit - 1) % 8)
	bits[byteIndex] |= 1 << bitIndex
}

// presentFields collects every set bit except bit 1, which is the
// secondary bitmap flag.
func presentFields(bits []byte) []int {
	fields := make([]int, 0, 16)
	for bit := MinFieldNumber; bit <= len(bits)*8; bit++ {
		if bitSet(bits, bit) {
			fields = append(fields, bit)
		}
	}
	return fields
}

func (bm PrimaryBitmap) Has(field int) bool {
	if field < MinFieldNumber || field > BitmapSize*8 {
		return false
	}
	return bitSet(bm[:], field)
}

func (bm PrimaryBitmap) Fields() []int { return presentFields(bm[:]) }
func (bm PrimaryBitmap) Bytes() []byte { return append([]byte(nil), bm[:]...) }
func (bm PrimaryBitmap) Len() int      { return BitmapSize }

func (bm ExtendedBitmap) Has(field int) bool {
	if field < MinFieldNumber || field > MaxFieldNumber {
		return false
	}
	return bitSet(bm[:], field)
}

func (bm ExtendedBitmap) Fields() []int { return presentFields(bm[:]) }
func (bm ExtendedBitmap) Bytes() []byte { return append([]byte(nil), bm[:]...) }
func (bm ExtendedBitmap) Len() int      { return BitmapSize + SecondaryBitmapSize }

func (bm PrimaryBitmap) String() string  { return fmt.Sprintf("%X", bm[:]) }
func (bm ExtendedBitmap) String() string { return fmt.Sprintf("%X", bm[:]) }

// EncodeBitmap builds the bitmap for the given field numbers. The input order
// does not matter and duplicates are ignored. Field 1 and numbers outside
// 2..128 are rejected with ErrUnknownField.
func EncodeBitmap(fields []int) (Bitmap, error) {
	var bits ExtendedBitmap
	extended := false

	for _, f := range fields {
		if f < MinFieldNumber || f > MaxFieldNumber {
			return nil, &FieldError{Field: f, Err: ErrUnknownField}
		}
		setBit(bits[:], f)
		if f > BitmapSize*8 {
			extended = true
		}
	}

	if !extended {
		var primary PrimaryBitmap
		copy(primary[:], bits[:BitmapSize])
		return primary, nil
	}

	setBit(bits[:], 1)
	return bits, nil
}

// DecodeBitmap reads a binary bitmap from the start of data and returns it
// together with the number of bytes consumed.
func DecodeBitmap(data []byte) (Bitmap, int, error) {
	if len(data) < BitmapSize {
		return nil, 0, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncatedBitmap, BitmapSize, len(data))
	}

	if !bitSet(data, 1) {
		var primary PrimaryBitmap
		copy(primary[:], data[:BitmapSize])
		return primary, BitmapSize, nil
	}

	total := BitmapSize + SecondaryBitmapSize
	if len(data) < total {
		return nil, 0, fmt.Errorf("%w: secondary bitmap flagged, need %d bytes, have %d", ErrTruncatedBitmap, total, len(data))
	}

	var extended ExtendedBitmap
	copy(extended[:], data[:total])
	return extended, total, nil
}

// AppendBitmap appends bm to dst in the requested encoding.
func AppendBitmap(dst []byte, bm Bitmap, encoding BitmapEncoding) []byte {
	raw := bm.Bytes()
	if encoding != BitmapHex {
		return append(dst, raw...)
	}

	start := len(dst)
	dst = append(dst, make([]byte, len(raw)*2)...)
	encodeHexUpper(dst[start:], raw)
	return dst
}

// ReadBitmap reads a bitmap from data in the requested encoding and returns
// the number of bytes consumed.
func ReadBitmap(data []byte, encoding BitmapEncoding) (Bitmap, int, error) {
	if encoding != BitmapHex {
		return DecodeBitmap(data)
	}

	const hexBitmapSize = BitmapSize * 2
	if len(data) < hexBitmapSize {
		return nil, 0, fmt.Errorf("%w: need %d hex characters, have %d", ErrTruncatedBitmap, hexBitmapSize, len(data))
	}

	var raw [BitmapSize + SecondaryBitmapSize]byte
	if _, err := hex.Decode(raw[:BitmapSize], data[:hexBitmapSize]); err != nil {
		return nil, 0, &FieldError{Field: 1, Err: fmt.Errorf("%w: bitmap hex: %v", ErrInvalidFieldValue, err)}
	}

	size := BitmapSize
	if bitSet(raw[:], 1) {
		if len(data) < 2*hexBitmapSize {
			return nil, 0, fmt.Errorf("%w: secondary bitmap flagged, need %d hex characters, have %d", ErrTruncatedBitmap, 2*hexBitmapSize, len(data))
		}
		if _, err := hex.Decode(raw[BitmapSize:], data[hexBitmapSize:2*hexBitmapSize]); err != nil {
			return nil, 0, &FieldError{Field: 1, Err: fmt.Errorf("%w: bitmap hex: %v", ErrInvalidFieldValue, err)}
		}
		size += SecondaryBitmapSize
	}

	bm, _, err := DecodeBitmap(raw[:size])
	if err != nil {
		return nil, 0, err
	}
	return bm, size * 2, nil
}

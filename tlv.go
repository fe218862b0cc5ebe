package iso8583

import (
	"encoding/hex"
	"fmt"

	"github.com/moov-io/bertlv"
)

// DecodeICC parses the hex value of an ICC data field (field 55) into its
// BER-TLV elements.
func DecodeICC(value string) ([]bertlv.TLV, error) {
	raw, err := hex.DecodeString(value)
	if err != nil {
		return nil, &FieldError{Field: FieldICCData, Err: fmt.Errorf("%w: %v", ErrInvalidFieldValue, err)}
	}
	tlvs, err := bertlv.Decode(raw)
	if err != nil {
		return nil, &FieldError{Field: FieldICCData, Err: fmt.Errorf("%w: BER-TLV: %v", ErrInvalidFieldValue, err)}
	}
	return tlvs, nil
}

// EncodeICC packs BER-TLV elements into the upper-case hex form used as the
// value of field 55.
func EncodeICC(tlvs []bertlv.TLV) (string, error) {
	raw, err := bertlv.Encode(tlvs)
	if err != nil {
		return "", &FieldError{Field: FieldICCData, Err: fmt.Errorf("%w: BER-TLV: %v", ErrInvalidFieldValue, err)}
	}
	buf := make([]byte, len(raw)*2)
	encodeHexUpper(buf, raw)
	return string(buf), nil
}

// ICC returns the decoded ICC data of the message, or nil if field 55 is
// absent.
func (m *Message) ICC() ([]bertlv.TLV, error) {
	v, ok := m.GetField(FieldICCData)
	if !ok {
		return nil, nil
	}
	return DecodeICC(v)
}

// SetICC encodes tlvs into field 55.
func (m *Message) SetICC(tlvs ...bertlv.TLV) error {
	v, err := EncodeICC(tlvs)
	if err != nil {
		return err
	}
	m.SetField(FieldICCData, v)
	return nil
}

// FindICCTag looks up the first occurrence of tag and returns its value as
// upper-case hex.
func FindICCTag(tlvs []bertlv.TLV, tag string) (string, bool) {
	t, found := bertlv.FindFirstTag(tlvs, tag)
	if !found {
		return "", false
	}
	return fmt.Sprintf("%X", t.Value), true
}

package iso8583

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

// Message is the logical form of an ISO 8583 message: an MTI and the values
// of the present data elements keyed by field number (2-128). Field 1, the
// secondary bitmap flag, is derived and never stored.
//
// Values are the text carried on the wire, except for binary fields whose
// values are upper-case hex text, the form Decode returns.
type Message struct {
	MTI    string
	Fields map[int]string
}

// NewMessage creates a message with a private copy of fields.
func NewMessage(mti string, fields map[int]string) *Message {
	m := &Message{MTI: mti, Fields: make(map[int]string, len(fields))}
	for f, v := range fields {
		m.Fields[f] = v
	}
	return m
}

// SetField sets the value of a field.
func (m *Message) SetField(field int, value string) {
	if m.Fields == nil {
		m.Fields = make(map[int]string)
	}
	m.Fields[field] = value
}

// GetField returns the value of a field and whether it is present.
func (m *Message) GetField(field int) (string, bool) {
	v, ok := m.Fields[field]
	return v, ok
}

// HasField returns true if the field is present in the message.
func (m *Message) HasField(field int) bool {
	_, ok := m.Fields[field]
	return ok
}

// RemoveField deletes a field from the message.
func (m *Message) RemoveField(field int) {
	delete(m.Fields, field)
}

// PresentFields returns the present field numbers in ascending order.
func (m *Message) PresentFields() []int {
	fields := make([]int, 0, len(m.Fields))
	for f := range m.Fields {
		fields = append(fields, f)
	}
	slices.Sort(fields)
	return fields
}

// Clone returns a deep copy of the message.
func (m *Message) Clone() *Message {
	return NewMessage(m.MTI, m.Fields)
}

// Response creates the response to this message: a copy with the MTI
// function digit moved from request to response (0100 -> 0110) and field 39
// set to code.
func (m *Message) Response(code string) (*Message, error) {
	if len(m.MTI) != MTILength || !isNumeric(m.MTI) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMTI, m.MTI)
	}
	if m.MTI[2] != '0' && m.MTI[2] != '2' {
		return nil, fmt.Errorf("cannot create response from MTI %s", m.MTI)
	}

	res := m.Clone()
	mti := []byte(m.MTI)
	mti[2]++
	res.MTI = string(mti)
	res.SetField(FieldResponseCode, code)
	return res, nil
}

// sensitiveFields are masked when a message is logged.
var sensitiveFields = map[int]func(string) string{
	FieldPAN:    maskPAN,
	FieldTrack2: maskAll,
	45:          maskAll, // track 1
	52:          maskAll, // PIN block
}

// maskPAN keeps the first six and last four digits.
func maskPAN(pan string) string {
	if len(pan) <= 10 {
		return strings.Repeat("*", len(pan))
	}
	return pan[:6] + strings.Repeat("*", len(pan)-10) + pan[len(pan)-4:]
}

func maskAll(v string) string {
	return strings.Repeat("*", len(v))
}

// LogValue implements the slog.LogValuer interface. Card data is masked.
func (m *Message) LogValue() slog.Value {
	fields := m.PresentFields()

	fieldArgs := make([]any, 0, len(fields))
	for _, f := range fields {
		v := m.Fields[f]
		if mask, ok := sensitiveFields[f]; ok {
			v = mask(v)
		}
		fieldArgs = append(fieldArgs, slog.String(strconv.Itoa(f), v))
	}

	return slog.GroupValue(
		slog.String("mti", m.MTI),
		slog.Group("fields", fieldArgs...),
	)
}

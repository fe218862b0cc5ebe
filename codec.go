package iso8583

import (
	"fmt"
	"log/slog"
)

// Codec packs and unpacks messages against a Registry. A Codec holds no
// mutable state and may be shared by any number of goroutines.
type Codec struct {
	registry       *Registry
	bitmapEncoding BitmapEncoding
	logger         *slog.Logger
}

// NewCodec creates a codec for registry.
func NewCodec(registry *Registry, opts ...CodecOption) *Codec {
	c := &Codec{
		registry:       registry,
		bitmapEncoding: BitmapBinary,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry returns the registry the codec encodes against.
func (c *Codec) Registry() *Registry {
	return c.registry
}

// Encode packs msg into its wire form: MTI, bitmap, then the present fields
// in ascending field number order. Nothing is returned on failure.
func (c *Codec) Encode(msg *Message) ([]byte, error) {
	if msg == nil {
		return nil, fmt.Errorf("%w: nil message", ErrInvalidMTI)
	}
	out, err := c.encode(msg)
	if err != nil {
		c.logger.Debug("encode failed", slog.String("mti", msg.MTI), slog.String("error", err.Error()))
		return nil, err
	}
	c.logger.Debug("encoded message", slog.Any("message", msg), slog.Int("size", len(out)))
	return out, nil
}

func (c *Codec) encode(msg *Message) ([]byte, error) {
	if err := validateMTI(msg.MTI); err != nil {
		return nil, err
	}

	// Validate every field before producing any output.
	fields := make([]int, 0, len(msg.Fields))
	for f, v := range msg.Fields {
		if f == 1 {
			return nil, &FieldError{Field: f, Err: fmt.Errorf("%w: field 1 is the bitmap flag", ErrUnknownField)}
		}
		if err := c.registry.Validate(f, v); err != nil {
			if _, ok := err.(*FieldError); ok {
				return nil, err
			}
			return nil, &FieldError{Field: f, Err: err}
		}
		fields = append(fields, f)
	}

	bitmap, err := EncodeBitmap(fields)
	if err != nil {
		return nil, err
	}

	buf := getBuffer()
	defer putBuffer(buf)

	out := append(*buf, msg.MTI...)
	out = AppendBitmap(out, bitmap, c.bitmapEncoding)

	// Wire order comes from the bitmap, not from map iteration.
	for _, f := range bitmap.Fields() {
		rule, err := c.registry.RuleFor(f)
		if err != nil {
			return nil, err
		}
		out, err = EncodeField(out, rule, msg.Fields[f])
		if err != nil {
			return nil, &FieldError{Field: f, Err: err}
		}
	}
	*buf = out

	return append([]byte(nil), out...), nil
}

// Decode unpacks a complete wire message. Every bit set in the bitmap must be
// matched by a decodable field and no bytes may remain afterwards.
func (c *Codec) Decode(data []byte) (*Message, error) {
	msg, err := c.decode(data)
	if err != nil {
		c.logger.Debug("decode failed", slog.Int("size", len(data)), slog.String("error", err.Error()))
		return nil, err
	}
	c.logger.Debug("decoded message", slog.Any("message", msg), slog.Int("size", len(data)))
	return msg, nil
}

func (c *Codec) decode(data []byte) (*Message, error) {
	if len(data) < MTILength {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrInvalidMTI, MTILength, len(data))
	}
	mti := string(data[:MTILength])
	if err := validateMTI(mti); err != nil {
		return nil, err
	}
	offset := MTILength

	bitmap, n, err := ReadBitmap(data[offset:], c.bitmapEncoding)
	if err != nil {
		return nil, err
	}
	offset += n

	present := bitmap.Fields()
	msg := &Message{MTI: mti, Fields: make(map[int]string, len(present))}

	for _, f := range present {
		rule, err := c.registry.RuleFor(f)
		if err != nil {
			return nil, err
		}

		value, n, err := DecodeField(data[offset:], rule)
		if err != nil {
			if _, ok := err.(*FieldError); ok {
				return nil, err
			}
			return nil, &FieldError{Field: f, Err: err}
		}
		msg.Fields[f] = value
		offset += n
	}

	if offset != len(data) {
		return nil, fmt.Errorf("%w: %d bytes after field %d", ErrTrailingBytes, len(data)-offset, lastField(present))
	}

	return msg, nil
}

func validateMTI(mti string) error {
	if len(mti) != MTILength || !isNumeric(mti) {
		return fmt.Errorf("%w: %q", ErrInvalidMTI, mti)
	}
	return nil
}

func lastField(fields []int) int {
	if len(fields) == 0 {
		return 0
	}
	return fields[len(fields)-1]
}

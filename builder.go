package iso8583

import (
	"errors"
	"strconv"
)

// Builder assembles a Message field by field, validating each value against
// a registry as it goes. The first error is kept and returned by Build.
type Builder struct {
	registry *Registry
	msg      *Message
	errors   []error
}

func NewBuilder(registry *Registry) *Builder {
	return &Builder{
		registry: registry,
		msg:      &Message{Fields: make(map[int]string)},
		errors:   make([]error, 0, 4),
	}
}

func (b *Builder) MTI(mti string) *Builder {
	if err := validateMTI(mti); err != nil {
		b.errors = append(b.errors, err)
		return b
	}
	b.msg.MTI = mti
	return b
}

func (b *Builder) Field(field int, value string) *Builder {
	if err := b.registry.Validate(field, value); err != nil {
		var fe *FieldError
		if !errors.As(err, &fe) {
			err = &FieldError{Field: field, Err: err}
		}
		b.errors = append(b.errors, err)
		return b
	}
	b.msg.SetField(field, value)
	return b
}

// Numeric sets a numeric field from an integer, zero padded to the field's
// fixed length when it has one.
func (b *Builder) Numeric(field int, value int64) *Builder {
	s := strconv.FormatInt(value, 10)
	if rule, err := b.registry.RuleFor(field); err == nil && value >= 0 && rule.Length == LengthFixed && len(s) < rule.MaxLen {
		buf := make([]byte, rule.MaxLen)
		writeIntToASCII(buf, int(value))
		s = string(buf)
	}
	return b.Field(field, s)
}

func (b *Builder) PAN(pan string) *Builder {
	return b.Field(FieldPAN, pan)
}

func (b *Builder) ProcessingCode(code string) *Builder {
	return b.Field(FieldProcessingCode, code)
}

func (b *Builder) Amount(minor int64) *Builder {
	return b.Numeric(FieldAmount, minor)
}

func (b *Builder) STAN(stan string) *Builder {
	return b.Field(FieldSTAN, stan)
}

func (b *Builder) Build() (*Message, error) {
	if len(b.errors) > 0 {
		return nil, b.errors[0]
	}
	if b.msg.MTI == "" {
		return nil, ErrInvalidMTI
	}
	msg := b.msg
	b.msg = &Message{Fields: make(map[int]string)} // Transfer ownership
	return msg, nil
}

func (b *Builder) MustBuild() *Message {
	msg, err := b.Build()
	if err != nil {
		panic(err)
	}
	return msg
}

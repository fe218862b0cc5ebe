package iso8583

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Registry maps field numbers to their FieldRule. It is immutable once built
// and safe for concurrent use without locking.
type Registry struct {
	name  string
	rules [MaxFieldNumber + 1]*FieldRule
	count int
}

// NewRegistry validates rules and builds a Registry from them. Every rule
// must be valid and field numbers must be unique.
func NewRegistry(name string, rules ...FieldRule) (*Registry, error) {
	r := &Registry{name: name}

	for i := range rules {
		rule := rules[i]
		if err := rule.Validate(); err != nil {
			return nil, fmt.Errorf("%w: field %d: %v", ErrInvalidRegistry, rule.Field, err)
		}
		if r.rules[rule.Field] != nil {
			return nil, fmt.Errorf("%w: duplicate rule for field %d", ErrInvalidRegistry, rule.Field)
		}
		r.rules[rule.Field] = &rule
		r.count++
	}

	return r, nil
}

// MustRegistry is like NewRegistry but panics on error. It is meant for
// package-level tables.
func MustRegistry(name string, rules ...FieldRule) *Registry {
	r, err := NewRegistry(name, rules...)
	if err != nil {
		panic(err)
	}
	return r
}

// Validate checks the rule's own invariants: the field number is in 2..128
// and MaxLen fits the digit capacity of the length prefix.
func (fr FieldRule) Validate() error {
	return validation.ValidateStruct(&fr,
		validation.Field(&fr.Field, validation.Required, validation.Min(MinFieldNumber), validation.Max(MaxFieldNumber)),
		validation.Field(&fr.Length, validation.In(LengthFixed, LengthLLVAR, LengthLLLVAR, LengthLLLLVAR)),
		validation.Field(&fr.MaxLen,
			validation.Required,
			validation.Min(1),
			validation.Max(fr.Length.capacity()).Error(fmt.Sprintf("must be no greater than %d for %v", fr.Length.capacity(), fr.Length)),
		),
		validation.Field(&fr.Content, validation.In(ContentNumeric, ContentAlphanumeric, ContentBinary, ContentTrack)),
	)
}

// Name returns the registry name, e.g. the network variant it describes.
func (r *Registry) Name() string {
	return r.name
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	return r.count
}

// RuleFor returns the rule registered for field.
func (r *Registry) RuleFor(field int) (FieldRule, error) {
	if field < 0 || field > MaxFieldNumber || r.rules[field] == nil {
		return FieldRule{}, &FieldError{Field: field, Err: ErrUnknownField}
	}
	return *r.rules[field], nil
}

// Validate checks value against the rule for field. Failures are
// *ValidationError values; an unregistered field yields ErrUnknownField.
func (r *Registry) Validate(field int, value string) error {
	rule, err := r.RuleFor(field)
	if err != nil {
		return err
	}
	return validateValue(rule, value)
}

// Fields returns the registered field numbers in ascending order.
func (r *Registry) Fields() []int {
	fields := make([]int, 0, r.count)
	for f := MinFieldNumber; f <= MaxFieldNumber; f++ {
		if r.rules[f] != nil {
			fields = append(fields, f)
		}
	}
	return fields
}

// Rules returns a copy of every rule in ascending field order.
func (r *Registry) Rules() []FieldRule {
	rules := make([]FieldRule, 0, r.count)
	for f := MinFieldNumber; f <= MaxFieldNumber; f++ {
		if r.rules[f] != nil {
			rules = append(rules, *r.rules[f])
		}
	}
	return rules
}

package iso8583

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownField      = errors.New("unknown field")
	ErrInvalidFieldValue = errors.New("invalid field value")
	ErrInvalidMTI        = errors.New("invalid MTI")
	ErrTruncatedBitmap   = errors.New("truncated bitmap")
	ErrTruncatedMessage  = errors.New("truncated message")
	ErrLengthExceeded    = errors.New("length exceeded")
	ErrTrailingBytes     = errors.New("trailing bytes")

	ErrInvalidRegistry = errors.New("invalid registry")
)

// FieldError ties a failure to the data element it happened in.
type FieldError struct {
	Field int
	Err   error
}

func (fe *FieldError) Error() string {
	return fmt.Sprintf("field %d: %v", fe.Field, fe.Err)
}

func (fe *FieldError) Unwrap() error {
	return fe.Err
}

// ValidationError reports a value that does not satisfy its FieldRule.
// It matches ErrInvalidFieldValue, and Kind when one is set.
type ValidationError struct {
	Field   int
	Rule    string
	Message string
	Kind    error
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %d (%s): %s", ve.Field, ve.Rule, ve.Message)
}

func (ve *ValidationError) Unwrap() []error {
	if ve.Kind == nil || ve.Kind == ErrInvalidFieldValue {
		return []error{ErrInvalidFieldValue}
	}
	return []error{ErrInvalidFieldValue, ve.Kind}
}

// BatchError is returned by Processor.ProcessBatch for the first message
// that failed to decode.
type BatchError struct {
	Index int
	Err   error
}

func (be *BatchError) Error() string {
	return fmt.Sprintf("message %d: %v", be.Index, be.Err)
}

func (be *BatchError) Unwrap() error {
	return be.Err
}

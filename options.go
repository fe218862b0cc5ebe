package iso8583

import "log/slog"

// CodecOption represents a functional option for codec configuration
type CodecOption func(*Codec)

// WithBitmapEncoding selects how the bitmap is written on the wire.
// The default is BitmapBinary.
func WithBitmapEncoding(encoding BitmapEncoding) CodecOption {
	return func(c *Codec) {
		c.bitmapEncoding = encoding
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) CodecOption {
	return func(c *Codec) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// ProcessorOption defines a function signature for configuring a Processor.
type ProcessorOption func(*Processor)

// WithConcurrency sets the maximum number of concurrent goroutines for the processor.
func WithConcurrency(n int) ProcessorOption {
	return func(p *Processor) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithErrorHandler sets a custom error handler for errors encountered during
// batch or stream processing.
func WithErrorHandler(handler func(error)) ProcessorOption {
	return func(p *Processor) {
		p.errorHandler = handler
	}
}

package iso8583

import (
	"context"
	"log/slog"
	"sync"
)

// Processor decodes many messages concurrently with a shared Codec, for a
// transport layer that hands over one complete buffer per message.
type Processor struct {
	codec        *Codec
	concurrency  int         // Max number of goroutines for processing
	errorHandler func(error) // Callback for handling errors
}

// NewProcessor creates a new Processor with the given codec and options.
func NewProcessor(codec *Codec, opts ...ProcessorOption) *Processor {
	p := &Processor{
		codec:       codec,
		concurrency: 4,
	}
	p.errorHandler = func(err error) {
		p.codec.logger.Warn("processor error", slog.String("error", err.Error()))
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Process decodes a single raw message.
func (p *Processor) Process(data []byte) (*Message, error) {
	return p.codec.Decode(data)
}

// ProcessBatch decodes a slice of raw messages concurrently. Results keep the
// input order. If any message fails, the *BatchError for the lowest failing
// index is returned along with the results that did decode. If ctx is done
// before every message has started, ctx.Err() is returned together with the
// results of the messages that finished; the rest are nil.
func (p *Processor) ProcessBatch(ctx context.Context, batch [][]byte) ([]*Message, error) {
	results := make([]*Message, len(batch))
	errs := make([]error, len(batch))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, p.concurrency) // Limit concurrent goroutines

	for i, data := range batch {
		// Don't start new jobs once the context is cancelled
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return results, err
		}
		select {
		case <-ctx.Done():
			wg.Wait()
			return results, ctx.Err()
		case semaphore <- struct{}{}:
		}

		wg.Add(1)
		go func(idx int, msgData []byte) {
			defer wg.Done()
			defer func() { <-semaphore }()

			msg, err := p.codec.Decode(msgData)
			if err != nil {
				errs[idx] = &BatchError{Index: idx, Err: err}
				if p.errorHandler != nil {
					p.errorHandler(errs[idx])
				}
				return
			}
			results[idx] = msg
		}(i, data)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// ProcessStream decodes messages from input and sends them to output until
// input is closed or ctx is done. Output order is not preserved. Messages
// that fail to decode are reported to the error handler and dropped.
func (p *Processor) ProcessStream(ctx context.Context, input <-chan []byte, output chan<- *Message) error {
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, p.concurrency)

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return ctx.Err()

		case data, ok := <-input:
			if !ok {
				wg.Wait()
				return nil
			}

			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				wg.Wait()
				return ctx.Err()
			}

			wg.Add(1)
			go func(msgData []byte) {
				defer wg.Done()
				defer func() { <-semaphore }()

				msg, err := p.codec.Decode(msgData)
				if err != nil {
					if p.errorHandler != nil {
						p.errorHandler(err)
					}
					return
				}

				select {
				case output <- msg:
				case <-ctx.Done():
				}
			}(data)
		}
	}
}

package llm

import (
	"context"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// DebugProvider decorates a Provider with request/response logging.
// Every Generate call is tagged with a short request ID so the request and
// its outcome can be correlated in the log stream. It is installed by
// NewFromConfig when the Debug flag is set.
type DebugProvider struct {
	inner  Provider
	logger zerolog.Logger
}

// NewDebugProvider wraps the given provider.
func NewDebugProvider(inner Provider, logger zerolog.Logger) *DebugProvider {
	return &DebugProvider{
		inner:  inner,
		logger: logger,
	}
}

// Name reports the wrapped provider's name.
func (d *DebugProvider) Name() string {
	return d.inner.Name()
}

// Generate forwards to the wrapped provider, logging a summary of the
// request and of the response or error.
func (d *DebugProvider) Generate(ctx context.Context, req *Request) (*Response, error) {
	requestID, _ := gonanoid.New()
	start := time.Now()

	d.logger.Debug().
		Str("request_id", requestID).
		Str("provider", d.inner.Name()).
		Str("model", req.Model.Name).
		Int("messages", len(req.Messages)).
		Int("tools", len(req.Tools)).
		Msg("Model request started")

	resp, err := d.inner.Generate(ctx, req)
	if err != nil {
		d.logger.Debug().
			Str("request_id", requestID).
			Dur("elapsed", time.Since(start)).
			Err(err).
			Msg("Model request failed")
		return nil, err
	}

	evt := d.logger.Debug().
		Str("request_id", requestID).
		Dur("elapsed", time.Since(start)).
		Int("response_chars", len(resp.Text))
	if resp.Usage != nil {
		evt = evt.Int("total_tokens", resp.Usage.TotalTokens)
	}
	evt.Msg("Model request completed")

	return resp, nil
}

// IsTransientError delegates to the wrapped provider.
func (d *DebugProvider) IsTransientError(err error) bool {
	return d.inner.IsTransientError(err)
}

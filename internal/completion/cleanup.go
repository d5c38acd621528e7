package completion

import (
	"context"

	"github.com/valpere/gemtext/internal/postprocess"
	"github.com/valpere/gemtext/internal/prompt"
)

type cleaning struct {
	Completer
}

// WithCleanup wraps c so that returned text passes through postprocess.Clean.
// A completion that is empty after cleaning is reported as a ServiceError.
func WithCleanup(c Completer) Completer {
	return &cleaning{Completer: c}
}

func (c *cleaning) Complete(ctx context.Context, text string, params prompt.GenerationParams) (*Completion, error) {
	res, err := c.Completer.Complete(ctx, text, params)
	if err != nil {
		return nil, err
	}
	res.Text = postprocess.Clean(res.Text)
	if res.Text == "" {
		return nil, serviceError(c.Name(), 0, ErrEmptyCompletion)
	}
	return res, nil
}

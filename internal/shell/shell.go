// Package shell runs one request/response cycle per user trigger: validate the
// form, build the instruction, call the model, hand back what to render.
package shell

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/valpere/gemtext/internal/completion"
	"github.com/valpere/gemtext/internal/history"
	"github.com/valpere/gemtext/internal/prompt"
)

// ValidationError is shown inline; no call is made when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

type State int32

const (
	Idle State = iota
	Calling
)

func (s State) String() string {
	if s == Calling {
		return "calling"
	}
	return "idle"
}

// Form is the page state captured when a trigger fires.
type Form struct {
	Mode   prompt.Mode
	Text   string
	Option string
	Params prompt.GenerationParams
}

type Result struct {
	Heading string
	Text    string
	// Lang is the BCP 47 tag of Text when known (translation mode).
	Lang string
	RTL  bool
}

// Recorder receives finished cycles. Failures are logged and swallowed.
type Recorder interface {
	Save(ctx context.Context, e *history.Entry) error
}

type Shell struct {
	completer completion.Completer
	recorder  Recorder
	logger    *zap.Logger

	mu    sync.Mutex
	state atomic.Int32
}

type Option func(*Shell)

func WithRecorder(r Recorder) Option {
	return func(s *Shell) { s.recorder = r }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Shell) { s.logger = l }
}

func New(c completion.Completer, opts ...Option) *Shell {
	s := &Shell{completer: c, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Shell) State() State {
	return State(s.state.Load())
}

// Handle runs one cycle. Only one cycle is in flight at a time; a second
// caller blocks until the first returns. Completer errors are returned
// unchanged and the Result is zero.
func (s *Shell) Handle(ctx context.Context, f Form) (Result, error) {
	if f.Text == "" {
		return Result{}, &ValidationError{Message: emptyTextMessage(f.Mode)}
	}

	text, err := prompt.Build(f.Mode, f.Text, f.Option)
	if err != nil {
		return Result{}, &ValidationError{Message: err.Error()}
	}
	if err := f.Params.Validate(); err != nil {
		return Result{}, &ValidationError{Message: err.Error()}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Store(int32(Calling))
	defer s.state.Store(int32(Idle))

	start := time.Now()
	res, err := s.completer.Complete(ctx, text, f.Params)
	if err != nil {
		s.logger.Error("completion failed",
			zap.String("mode", string(f.Mode)),
			zap.String("provider", s.completer.Name()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return Result{}, err
	}

	s.logger.Info("completion",
		zap.String("mode", string(f.Mode)),
		zap.String("option", f.Option),
		zap.Float64("temperature", f.Params.Temperature),
		zap.Int("max_tokens", f.Params.MaxTokens),
		zap.String("model", res.Model),
		zap.Duration("latency", res.Latency),
	)

	out := Result{Heading: heading(f.Mode), Text: res.Text}
	if f.Mode == prompt.Translation {
		// option already validated by prompt.Build
		lang, _ := prompt.ParseLanguage(f.Option)
		out.Lang = lang.Tag().String()
		out.RTL = lang.RTL()
	}

	s.record(ctx, f, res)
	return out, nil
}

func (s *Shell) record(ctx context.Context, f Form, res *completion.Completion) {
	if s.recorder == nil {
		return
	}
	e := &history.Entry{
		Mode:        string(f.Mode),
		Option:      canonicalOption(f.Mode, f.Option),
		SourceText:  f.Text,
		Output:      res.Text,
		Provider:    s.completer.Name(),
		Model:       res.Model,
		Temperature: f.Params.Temperature,
		MaxTokens:   f.Params.MaxTokens,
		LatencyMs:   res.Latency.Milliseconds(),
	}
	if err := s.recorder.Save(ctx, e); err != nil {
		s.logger.Warn("failed to record history", zap.Error(err))
	}
}

func emptyTextMessage(m prompt.Mode) string {
	if m == prompt.Enhancement {
		return "Please enter text to enhance."
	}
	return "Please enter text to translate."
}

func heading(m prompt.Mode) string {
	if m == prompt.Enhancement {
		return "Enhanced Text:"
	}
	return "Translated Text:"
}

// BusyText is the spinner caption shown while a cycle is running.
func BusyText(m prompt.Mode) string {
	if m == prompt.Enhancement {
		return "Enhancing text..."
	}
	return "Translating text..."
}

func canonicalOption(m prompt.Mode, option string) string {
	switch m {
	case prompt.Translation:
		if l, err := prompt.ParseLanguage(option); err == nil {
			return string(l)
		}
	case prompt.Enhancement:
		if st, err := prompt.ParseStyle(option); err == nil {
			return string(st)
		}
	}
	return option
}

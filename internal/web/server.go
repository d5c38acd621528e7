// Package web serves the single-page UI. Each trigger control posts to its own
// handler, which runs one shell cycle and renders the page with the outcome.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/valpere/gemtext/internal/prompt"
	"github.com/valpere/gemtext/internal/shell"
)

//go:embed templates/*.html
var templateFS embed.FS

const Title = "Gemini AI Text Processing App"

type Options struct {
	// Defaults seed the sidebar controls on first render and fill in fields
	// the browser does not send.
	Defaults prompt.GenerationParams
	// Markdown renders the model output as Markdown instead of plain text.
	Markdown bool
}

type Server struct {
	shell  *shell.Shell
	opts   Options
	logger *zap.Logger
	engine *gin.Engine
}

func New(sh *shell.Shell, opts Options, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	engine := gin.New()
	engine.SetHTMLTemplate(tmpl)
	engine.Use(RequestLogger(logger), gin.Recovery())

	s := &Server{
		shell:  sh,
		opts:   opts,
		logger: logger,
		engine: engine,
	}

	engine.GET("/", s.handleIndex)
	engine.POST("/translate", s.handleTrigger(prompt.Translation))
	engine.POST("/enhance", s.handleTrigger(prompt.Enhancement))
	engine.GET("/healthz", s.handleHealth)

	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

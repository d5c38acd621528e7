/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/valpere/gemtext/internal/completion"
	"github.com/valpere/gemtext/internal/config"
	"github.com/valpere/gemtext/internal/history"
	"github.com/valpere/gemtext/internal/shell"
)

// newLogger builds a zap logger writing to stderr so that command output on
// stdout stays clean.
func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	zc := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}

// app is everything a command needs to run cycles.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	shell  *shell.Shell
	store  *history.Store
}

// newApp loads and validates the configuration, failing fast on a missing
// credential, then wires the completer, optional history store and shell.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	completer, err := completion.New(ctx, cfg.Completion)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to create completer: %w", err)
	}

	a := &app{cfg: cfg, logger: logger}
	opts := []shell.Option{shell.WithLogger(logger)}

	if cfg.History.Enabled {
		a.store, err = history.New(cfg.History.Path)
		if err != nil {
			_ = logger.Sync()
			return nil, fmt.Errorf("failed to open history: %w", err)
		}
		opts = append(opts, shell.WithRecorder(a.store))
	}

	a.shell = shell.New(completer, opts...)

	logger.Debug("configured",
		zap.String("provider", completer.Name()),
		zap.String("model", cfg.Completion.Model),
		zap.Bool("history", cfg.History.Enabled),
	)
	return a, nil
}

func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("failed to close history", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

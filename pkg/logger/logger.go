/*
 * Copyright 2026 onStreetCloud Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package logger provides JSON structured logging using zerolog.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config controls log level and destination.
type Config struct {
	Level      string `json:"level"`
	Debug      bool   `json:"debug"`
	Output     string `json:"output"`
	TimeFormat string `json:"time_format"`
}

// Impl implements the Logger interface without global state.
type Impl struct {
	logger zerolog.Logger
}

// New creates a logger from the given configuration. A nil config uses
// the defaults.
func New(config *Config) (*Impl, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var output io.Writer = os.Stdout
	if config.Output == "stderr" {
		output = os.Stderr
	}

	level := zerolog.InfoLevel

	if config.Debug {
		level = zerolog.DebugLevel
	} else if config.Level != "" {
		var err error

		level, err = zerolog.ParseLevel(config.Level)
		if err != nil {
			return nil, err
		}
	}

	if config.TimeFormat != "" {
		zerolog.TimeFieldFormat = config.TimeFormat
	} else {
		zerolog.TimeFieldFormat = time.RFC3339
	}

	zl := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &Impl{logger: zl}, nil
}

// NewWithWriter creates a logger writing to the given writer. Used by tests.
func NewWithWriter(w io.Writer, level zerolog.Level) *Impl {
	return &Impl{logger: zerolog.New(w).Level(level).With().Timestamp().Logger()}
}

// NewTestLogger returns a logger that discards all output.
func NewTestLogger() *Impl {
	return &Impl{logger: zerolog.New(io.Discard)}
}

func (l *Impl) Trace() *zerolog.Event { return l.logger.Trace() }
func (l *Impl) Debug() *zerolog.Event { return l.logger.Debug() }
func (l *Impl) Info() *zerolog.Event  { return l.logger.Info() }
func (l *Impl) Warn() *zerolog.Event  { return l.logger.Warn() }
func (l *Impl) Error() *zerolog.Event { return l.logger.Error() }
func (l *Impl) Fatal() *zerolog.Event { return l.logger.Fatal() }

func (l *Impl) With() zerolog.Context { return l.logger.With() }

// WithComponent returns a child logger tagged with a component name.
func (l *Impl) WithComponent(component string) Logger {
	return &Impl{logger: l.logger.With().Str("component", component).Logger()}
}

func (l *Impl) SetLevel(level zerolog.Level) {
	l.logger = l.logger.Level(level)
}

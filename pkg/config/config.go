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

// Package config loads service configuration from JSON files.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
)

var errLoadConfigFailed = errors.New("failed to load configuration")

// Loader loads a configuration document into dst.
type Loader interface {
	Load(ctx context.Context, path string, dst interface{}) error
}

// Validator is implemented by config structs that can validate themselves
// after loading.
type Validator interface {
	Validate() error
}

// Load reads the config file at path into dst, applies env var overrides via
// the optional Overrider, and validates the result when dst implements
// Validator.
func Load(ctx context.Context, path string, dst interface{}) error {
	loader := &FileConfigLoader{}

	if err := loader.Load(ctx, path, dst); err != nil {
		return fmt.Errorf("%w: %w", errLoadConfigFailed, err)
	}

	if o, ok := dst.(Overrider); ok {
		o.ApplyEnv()
	}

	if v, ok := dst.(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("%w: %w", errLoadConfigFailed, err)
		}
	}

	return nil
}

// Overrider is implemented by config structs that accept env var overrides
// for secrets that should not live in the config file.
type Overrider interface {
	ApplyEnv()
}

// EnvOrDefault returns the env var value for key, or def when unset.
func EnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

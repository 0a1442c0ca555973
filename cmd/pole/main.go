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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/wassim-ahmad/onStreetCloud/pkg/agent"
	"github.com/wassim-ahmad/onStreetCloud/pkg/config"
	"github.com/wassim-ahmad/onStreetCloud/pkg/logger"
	"github.com/wassim-ahmad/onStreetCloud/pkg/models"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/onstreetcloud/pole.json", "Path to pole agent config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cfg models.PoleAgentConfig
	if err := config.Load(ctx, *configPath, &cfg); err != nil {
		return err
	}

	logConfig := cfg.Logging
	if logConfig == nil {
		logConfig = logger.DefaultConfig()
	}

	agentLogger, err := logger.New(logConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a, err := agent.New(&cfg, agentLogger.WithComponent("agent"))
	if err != nil {
		return err
	}

	return a.Run(ctx)
}

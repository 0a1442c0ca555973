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
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/wassim-ahmad/onStreetCloud/pkg/config"
	"github.com/wassim-ahmad/onStreetCloud/pkg/db"
	"github.com/wassim-ahmad/onStreetCloud/pkg/hub"
	"github.com/wassim-ahmad/onStreetCloud/pkg/hub/api"
	"github.com/wassim-ahmad/onStreetCloud/pkg/logger"
	"github.com/wassim-ahmad/onStreetCloud/pkg/models"
	"github.com/wassim-ahmad/onStreetCloud/pkg/natsutil"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/onstreetcloud/cloud.json", "Path to cloud config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cfg models.CloudConfig
	if err := config.Load(ctx, *configPath, &cfg); err != nil {
		return err
	}

	logConfig := cfg.Logging
	if logConfig == nil {
		logConfig = logger.DefaultConfig()
	}

	cloudLogger, err := logger.New(logConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	database, err := db.New(ctx, &cfg.Database, cloudLogger.WithComponent("db"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	hubOpts := []hub.Option{hub.WithAckTimeout(time.Duration(cfg.AckTimeout))}

	if cfg.NATS != nil && cfg.NATS.URL != "" {
		publisher, nc, pubErr := natsutil.ConnectWithEventPublisher(ctx,
			cfg.NATS.URL, cfg.NATS.Stream, cfg.NATS.Subject)
		if pubErr != nil {
			return fmt.Errorf("failed to set up event export: %w", pubErr)
		}

		defer nc.Close()

		hubOpts = append(hubOpts, hub.WithEventPublisher(publisher))
		cloudLogger.Info().Str("nats_url", cfg.NATS.URL).Msg("presence event export enabled")
	}

	h := hub.New(database, cloudLogger.WithComponent("hub"), hubOpts...)

	server := api.NewServer(h, cloudLogger.WithComponent("api"),
		api.WithCORS(cfg.CORS),
		api.WithAPIKey(cfg.APIKey),
	)

	errCh := make(chan error, 1)

	go func() {
		if srvErr := server.Start(cfg.ListenAddr); srvErr != nil &&
			!errors.Is(srvErr, http.ErrServerClosed) {
			errCh <- srvErr
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("gateway failed: %w", err)
	case <-ctx.Done():
	}

	cloudLogger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

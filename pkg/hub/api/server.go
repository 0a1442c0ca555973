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

// Package api exposes the cloud over HTTP: the websocket gateway that poles
// and dashboards dial, and the REST routes the administrative backend calls.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	osHTTP "github.com/wassim-ahmad/onStreetCloud/pkg/http"
	"github.com/wassim-ahmad/onStreetCloud/pkg/hub"
	"github.com/wassim-ahmad/onStreetCloud/pkg/logger"
	"github.com/wassim-ahmad/onStreetCloud/pkg/models"
)

const (
	defaultReadTimeout  = 30 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 120 * time.Second
)

// HubService is the hub surface the gateway drives. Satisfied by *hub.Hub.
type HubService interface {
	AddConn(conn hub.Conn)
	RemoveConn(ctx context.Context, connID string)

	PoleOnline(ctx context.Context, conn hub.Conn, announce models.OnlineDevicePayload)
	CameraOnline(ctx context.Context, conn hub.Conn, announce models.CameraPresencePayload)
	CameraOffline(ctx context.Context, conn hub.Conn, announce models.CameraPresencePayload)
	JoinGroup(conn hub.Conn, group string)
	OrderResources(payload models.OrderResourcesPayload)
	ServerResources(payload models.ServerResourcesPayload)
	RestartOrder(payload models.RestartOrderPayload)
	Alert(ctx context.Context, alert models.AlertPayload)

	DevicesWithStatus(ctx context.Context) (*models.StatusSnapshot, error)
	CamerasWithStatus(ctx context.Context, poleCode string) (*models.StatusSnapshot, error)
	AllCamerasWithStatus(ctx context.Context) (*models.StatusSnapshot, error)
	Statistics(ctx context.Context) (*models.CameraStatistics, error)
	Dispatch(ctx context.Context, cmd *models.CameraCommand) (bool, string, error)
	Resync(ctx context.Context, pendingID string) (bool, error)
	PendingCommands(ctx context.Context) ([]models.PendingCommand, error)
}

// Server is the HTTP and websocket gateway in front of the hub.
type Server struct {
	hub    HubService
	router *mux.Router
	logger logger.Logger

	corsConfig models.CORSConfig
	apiKey     string

	httpSrv *http.Server
}

// WithCORS sets the cross-origin policy for the REST routes and the websocket
// upgrade origin check.
func WithCORS(cors models.CORSConfig) func(*Server) {
	return func(s *Server) {
		s.corsConfig = cors
	}
}

// WithAPIKey protects the REST routes with a static key.
func WithAPIKey(apiKey string) func(*Server) {
	return func(s *Server) {
		s.apiKey = apiKey
	}
}

// NewServer creates the gateway around a hub.
func NewServer(h HubService, log logger.Logger, options ...func(*Server)) *Server {
	s := &Server{
		hub:    h,
		router: mux.NewRouter(),
		logger: log,
	}

	for _, o := range options {
		o(s)
	}

	s.setupRoutes()

	return s
}

// Router exposes the configured handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.Use(osHTTP.RequestLogger(s.logger))
	s.router.Use(osHTTP.CORSMiddleware(s.corsConfig))
	s.router.Use(osHTTP.APIKeyMiddleware(s.apiKey, s.logger))

	s.router.HandleFunc("/api/ws", s.handleWS).Methods(http.MethodGet)

	s.router.HandleFunc("/api/devices", s.getDevices).Methods(http.MethodGet)
	s.router.HandleFunc("/api/cameras", s.getAllCameras).Methods(http.MethodGet)
	s.router.HandleFunc("/api/statistics/cameras", s.getCameraStatistics).Methods(http.MethodGet)

	s.router.HandleFunc("/api/cameras/execute", s.executeCameraCommand).Methods(http.MethodPost)
	s.router.HandleFunc("/api/cameras/execute/pending", s.getPendingCommands).Methods(http.MethodGet)
	s.router.HandleFunc("/api/cameras/execute/{id}/resync", s.resyncCameraCommand).Methods(http.MethodPost)

	s.router.HandleFunc("/api/cameras/{pole_code}", s.getCamerasByPole).Methods(http.MethodGet)
}

// checkOrigin applies the CORS origin list to websocket upgrades. An empty
// list admits any origin so poles can dial without browser semantics.
func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.corsConfig.AllowedOrigins) == 0 {
		return true
	}

	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	for _, allowed := range s.corsConfig.AllowedOrigins {
		if allowed == origin {
			return true
		}
	}

	return false
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start(addr string) error {
	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	s.logger.Info().Str("addr", addr).Msg("gateway listening")

	return s.httpSrv.ListenAndServe()
}

// Shutdown drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}

	return s.httpSrv.Shutdown(ctx)
}

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

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wassim-ahmad/onStreetCloud/pkg/db"
	"github.com/wassim-ahmad/onStreetCloud/pkg/models"
)

// ExecuteResponse is the outcome of a dispatch attempt. PendingID is set only
// when delivery failed and a durable record was created.
type ExecuteResponse struct {
	Delivered bool   `json:"delivered"`
	PendingID string `json:"pending_id,omitempty"`
}

// ResyncResponse is the outcome of replaying one pending command.
type ResyncResponse struct {
	Delivered bool `json:"delivered"`
}

func (s *Server) getDevices(w http.ResponseWriter, r *http.Request) {
	snap, err := s.hub.DevicesWithStatus(r.Context())
	if err != nil {
		s.serverError(w, err, "failed to build device snapshot")
		return
	}

	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) getAllCameras(w http.ResponseWriter, r *http.Request) {
	snap, err := s.hub.AllCamerasWithStatus(r.Context())
	if err != nil {
		s.serverError(w, err, "failed to build camera snapshot")
		return
	}

	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) getCamerasByPole(w http.ResponseWriter, r *http.Request) {
	poleCode := mux.Vars(r)["pole_code"]

	snap, err := s.hub.CamerasWithStatus(r.Context(), poleCode)
	if err != nil {
		s.serverError(w, err, "failed to build pole camera snapshot")
		return
	}

	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) getCameraStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.hub.Statistics(r.Context())
	if err != nil {
		s.serverError(w, err, "failed to build camera statistics")
		return
	}

	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) executeCameraCommand(w http.ResponseWriter, r *http.Request) {
	var cmd models.CameraCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	delivered, pendingID, err := s.hub.Dispatch(r.Context(), &cmd)
	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s.serverError(w, err, "dispatch failed")

		return
	}

	s.writeJSON(w, http.StatusOK, ExecuteResponse{Delivered: delivered, PendingID: pendingID})
}

func (s *Server) resyncCameraCommand(w http.ResponseWriter, r *http.Request) {
	pendingID := mux.Vars(r)["id"]

	delivered, err := s.hub.Resync(r.Context(), pendingID)
	if err != nil {
		if errors.Is(err, db.ErrPendingCommandNotFound) {
			http.Error(w, "Pending command not found", http.StatusNotFound)
			return
		}

		s.serverError(w, err, "resync failed")

		return
	}

	s.writeJSON(w, http.StatusOK, ResyncResponse{Delivered: delivered})
}

func (s *Server) getPendingCommands(w http.ResponseWriter, r *http.Request) {
	pending, err := s.hub.PendingCommands(r.Context())
	if err != nil {
		s.serverError(w, err, "failed to list pending commands")
		return
	}

	if pending == nil {
		pending = []models.PendingCommand{}
	}

	s.writeJSON(w, http.StatusOK, pending)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) serverError(w http.ResponseWriter, err error, msg string) {
	s.logger.Error().Err(err).Msg(msg)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func isValidationError(err error) bool {
	return errors.Is(err, models.ErrUnknownCommandOp) ||
		errors.Is(err, models.ErrMissingPoleCode) ||
		errors.Is(err, models.ErrMissingCameraIP) ||
		errors.Is(err, models.ErrMissingOldCameraIP) ||
		errors.Is(err, models.ErrUnexpectedOldCamera)
}

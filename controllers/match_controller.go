package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"matchup_server/models"
	"matchup_server/services"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// MatchController handles HTTP requests for match creation and lookup
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController creates a new MatchController instance
func NewMatchController(matchService *services.MatchService) *MatchController {
	return &MatchController{MatchService: matchService}
}

// CreateMatch handles POST /: decodes the submitted roster, persists it and
// responds 201 with the match view carrying the generated label.
func (c *MatchController) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var roster models.Roster
	if err := json.NewDecoder(r.Body).Decode(&roster); err != nil {
		logrus.WithError(err).Warn("Failed to decode roster payload")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	match, err := c.MatchService.CreateMatch(r.Context(), roster)
	if err != nil {
		logrus.WithError(err).Error("Failed to create match")
		writeStatusJSON(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(match)
}

// GetMatch handles GET /{label}: reconstructs the match view for the label.
func (c *MatchController) GetMatch(w http.ResponseWriter, r *http.Request) {
	label := mux.Vars(r)["label"]

	match, err := c.MatchService.GetMatch(r.Context(), label)
	if err != nil {
		if errors.Is(err, services.ErrMatchNotFound) {
			writeStatusJSON(w, http.StatusNotFound, "not found")
			return
		}
		logrus.WithError(err).WithField("label", label).Error("Failed to fetch match")
		writeStatusJSON(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(match)
}

// writeStatusJSON emits the terse {"status": ...} error body; storage detail
// stays in the logs, never in the response.
func writeStatusJSON(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}

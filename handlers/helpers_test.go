package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sgce/sports-competition-system/services"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"competition not found", services.ErrCompetitionNotFound, http.StatusNotFound},
		{"duplicate registration", services.ErrRegistrationConflict, http.StatusConflict},
		{"not enough teams", fmt.Errorf("%w: 1 confirmed", services.ErrNotEnoughTeams), http.StatusBadRequest},
		{"inconsistent standings", fmt.Errorf("%w: game 7", services.ErrStandingsInconsistent), http.StatusConflict},
		{"wrapped invalid transition", fmt.Errorf("start: %w", services.ErrCompetitionInvalidStatusTransition), http.StatusBadRequest},
		{"bad credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"registration closed", services.ErrRegistrationNotOpen, http.StatusForbidden},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/competitions/1/start", nil)

			mapServiceErrorToHTTP(w, r, tt.err)

			assert.Equal(t, tt.want, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		})
	}
}

package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/sgce/sports-competition-system/models"
	"github.com/sgce/sports-competition-system/services"
)

type GameHandler struct {
	gameService services.GameService
}

func NewGameHandler(gameService services.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

func (h *GameHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, err := h.gameService.GetGameByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"game": game}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) ListByCompetition(w http.ResponseWriter, r *http.Request) {
	competitionID, err := readIDParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var round *int
	if raw := r.URL.Query().Get("round"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			badRequestResponse(w, r, errors.New("invalid round filter"))
			return
		}
		round = &value
	}

	var status *models.GameStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := models.GameStatus(raw)
		switch s {
		case models.GameScheduled, models.GameOngoing, models.GameFinished,
			models.GamePostponed, models.GameCancelled:
			status = &s
		default:
			badRequestResponse(w, r, errors.New("unknown status filter"))
			return
		}
	}

	games, err := h.gameService.ListCompetitionGames(r.Context(), competitionID, round, status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"games": games}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) Finish(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.FinishGameInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if problems := validateInput(input); problems != nil {
		failedValidationResponse(w, r, problems)
		return
	}

	game, err := h.gameService.FinishGame(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"game": game}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.ScheduleGameInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if problems := validateInput(input); problems != nil {
		failedValidationResponse(w, r, problems)
		return
	}

	game, err := h.gameService.ScheduleGame(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"game": game}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type gameStatusInput struct {
	Observations string `json:"observations" validate:"max=500"`
}

func (h *GameHandler) Postpone(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, h.gameService.PostponeGame)
}

func (h *GameHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, h.gameService.CancelGame)
}

func (h *GameHandler) updateStatus(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id int, observations string) error) {
	id, err := readIDParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input gameStatusInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := fn(r.Context(), id, input.Observations); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

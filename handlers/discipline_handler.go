package handlers

import (
	"net/http"
	"strconv"

	"github.com/sgce/sports-competition-system/services"
)

type DisciplineHandler struct {
	disciplineService services.DisciplineService
}

func NewDisciplineHandler(disciplineService services.DisciplineService) *DisciplineHandler {
	return &DisciplineHandler{disciplineService: disciplineService}
}

func (h *DisciplineHandler) RecordCard(w http.ResponseWriter, r *http.Request) {
	competitionID, err := readIDParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.RecordCardInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.CompetitionID = competitionID
	if problems := validateInput(input); problems != nil {
		failedValidationResponse(w, r, problems)
		return
	}

	record, err := h.disciplineService.RecordCard(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"record": record}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DisciplineHandler) ClearSuspension(w http.ResponseWriter, r *http.Request) {
	competitionID, err := readIDParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playerID, err := readIDParam(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	record, err := h.disciplineService.ClearSuspension(r.Context(), competitionID, playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"record": record}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DisciplineHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	competitionID, err := readIDParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playerID, err := readIDParam(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	record, err := h.disciplineService.GetRecord(r.Context(), competitionID, playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"record": record}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DisciplineHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	competitionID, err := readIDParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	suspendedOnly, _ := strconv.ParseBool(r.URL.Query().Get("suspended"))

	records, err := h.disciplineService.ListCompetitionRecords(r.Context(), competitionID, suspendedOnly)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"records": records}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

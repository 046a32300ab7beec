package app

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/metinatakli/theater-reservation-system/api"
	"github.com/metinatakli/theater-reservation-system/internal/domain"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

func (app *application) CreateShow(w http.ResponseWriter, r *http.Request) {
	var req api.CreateShowRequest

	err := app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	show := &domain.Show{
		TheaterID:   req.TheaterId,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date.Time,
		Time:        req.Time,
	}

	err = app.showRepo.Create(r.Context(), show)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrShowAlreadyExists):
			app.conflictResponse(w, r, "a show is already scheduled at this theater, date and time")
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := toShowResponse(show)

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) ListShows(w http.ResponseWriter, r *http.Request) {
	pagination, err := app.readPagination(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	theaterID := 0
	if qs := r.URL.Query(); qs.Has("theater_id") {
		theaterID, err = strconv.Atoi(qs.Get("theater_id"))
		if err != nil || theaterID < 1 {
			app.badRequestResponse(w, r, errors.New("theater_id must be a positive integer"))
			return
		}
	}

	shows, metadata, err := app.showRepo.GetAll(r.Context(), theaterID, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ShowsResponse{
		Shows:    make([]api.ShowResponse, 0, len(shows)),
		Metadata: toMetadataResponse(metadata),
	}
	for i := range shows {
		resp.Shows = append(resp.Shows, toShowResponse(&shows[i]))
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toShowResponse(show *domain.Show) api.ShowResponse {
	return api.ShowResponse{
		Id:          show.ID,
		TheaterId:   show.TheaterID,
		Title:       show.Title,
		Description: show.Description,
		Date:        openapi_types.Date{Time: show.Date},
		Time:        show.Time,
	}
}

package app

import (
	"net/http"

	"github.com/metinatakli/theater-reservation-system/api"
	"github.com/metinatakli/theater-reservation-system/internal/domain"
)

func (app *application) CreateTheater(w http.ResponseWriter, r *http.Request) {
	var req api.CreateTheaterRequest

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

	if req.BasePrice.IsNegative() {
		app.errorResponse(w, r, http.StatusUnprocessableEntity, "base price must not be negative")
		return
	}

	theater := &domain.Theater{
		Name:       req.Name,
		Location:   req.Location,
		TotalSeats: req.TotalSeats,
	}

	err = app.theaterRepo.Create(r.Context(), theater, req.BasePrice)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := toTheaterResponse(theater)

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) ListTheaters(w http.ResponseWriter, r *http.Request) {
	pagination, err := app.readPagination(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	location := r.URL.Query().Get("location")

	theaters, metadata, err := app.theaterRepo.GetAll(r.Context(), location, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.TheatersResponse{
		Theaters: make([]api.TheaterResponse, 0, len(theaters)),
		Metadata: toMetadataResponse(metadata),
	}
	for i := range theaters {
		resp.Theaters = append(resp.Theaters, toTheaterResponse(&theaters[i]))
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toTheaterResponse(theater *domain.Theater) api.TheaterResponse {
	return api.TheaterResponse{
		Id:         theater.ID,
		Name:       theater.Name,
		Location:   theater.Location,
		TotalSeats: theater.TotalSeats,
		CreatedAt:  theater.CreatedAt,
	}
}

func toMetadataResponse(metadata *domain.Metadata) api.Metadata {
	if metadata == nil {
		return api.Metadata{}
	}

	return api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}

package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/theater-reservation-system/internal/domain"
)

func (app *application) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID := app.contextGetUserId(r)

	user, err := app.userRepo.GetById(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.unauthorizedAccessResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := toUserResponse(user)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

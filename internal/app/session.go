package app

import (
	"net/http"

	"github.com/metinatakli/theater-reservation-system/internal/domain"
)

const (
	SessionKeyUserId  = "userId"
	SessionKeyIsAdmin = "isAdmin"
)

// contextGetUserId returns the id of the logged in user, or zero when the
// request carries no authenticated session.
func (app *application) contextGetUserId(r *http.Request) int {
	return app.sessionManager.GetInt(r.Context(), SessionKeyUserId)
}

// canAccessReservation reports whether the session user owns the reservation
// or is an admin.
func (app *application) canAccessReservation(r *http.Request, reservation *domain.Reservation) bool {
	if reservation.UserID == app.contextGetUserId(r) {
		return true
	}

	return app.sessionManager.GetBool(r.Context(), SessionKeyIsAdmin)
}

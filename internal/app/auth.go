package app

import (
	"crypto/sha256"
	"errors"
	"net/http"
	"time"

	"github.com/metinatakli/theater-reservation-system/api"
	"github.com/metinatakli/theater-reservation-system/internal/domain"
)

const activationTokenTTL = 3 * 24 * time.Hour

func (app *application) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest

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

	user := &domain.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}

	err = user.Password.Set(req.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	token, err := app.userRepo.CreateWithToken(r.Context(), user, func(u *domain.User) (*domain.Token, error) {
		return domain.GenerateToken(int64(u.ID), activationTokenTTL, domain.UserActivationScope)
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			app.conflictResponse(w, r, "a user with this email address already exists")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.background(func() {
		data := map[string]any{
			"firstName":       user.FirstName,
			"activationToken": token.Plaintext,
		}

		err := app.mailer.Send(user.Email, "user_welcome.tmpl", data)
		if err != nil {
			app.logger.Error("failed to send welcome email", "error", err, "user_id", user.ID)
		}
	})

	resp := toUserResponse(user)

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) ActivateUser(w http.ResponseWriter, r *http.Request) {
	var req api.UserActivationRequest

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

	tokenHash := sha256.Sum256([]byte(req.Token))

	user, err := app.userRepo.GetByToken(r.Context(), tokenHash[:], domain.UserActivationScope)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.errorResponse(w, r, http.StatusUnprocessableEntity, "invalid or expired activation token")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	user.Activated = true

	err = app.userRepo.ActivateUser(r.Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEditConflict):
			app.editConflictResponse(w, r)
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

// ResendActivationToken replaces any outstanding activation tokens for a
// not-yet-activated account and emails a fresh one.
func (app *application) ResendActivationToken(w http.ResponseWriter, r *http.Request) {
	var req api.ResendActivationTokenRequest

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

	user, err := app.userRepo.GetByEmail(r.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.errorResponse(w, r, http.StatusUnprocessableEntity, "no matching email address found")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if user.Activated {
		app.errorResponse(w, r, http.StatusUnprocessableEntity, "user has already been activated")
		return
	}

	err = app.tokenRepo.DeleteAllForUser(r.Context(), domain.UserActivationScope, user.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	token, err := domain.GenerateToken(int64(user.ID), activationTokenTTL, domain.UserActivationScope)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.tokenRepo.Create(r.Context(), token)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.background(func() {
		data := map[string]any{
			"firstName":       user.FirstName,
			"activationToken": token.Plaintext,
		}

		err := app.mailer.Send(user.Email, "user_welcome.tmpl", data)
		if err != nil {
			app.logger.Error("failed to send activation email", "error", err, "user_id", user.ID)
		}
	})

	resp := api.MessageResponse{Message: "an email will be sent to you containing activation instructions"}

	err = app.writeJSON(w, http.StatusAccepted, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) Login(w http.ResponseWriter, r *http.Request) {
	if app.contextGetUserId(r) != 0 {
		resp := api.AlreadyLoggedInResponse{Message: "you are already logged in"}

		err := app.writeJSON(w, http.StatusOK, resp, nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	var req api.LoginRequest

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

	user, err := app.userRepo.GetByEmail(r.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.invalidCredentialsResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	match, err := user.Password.Matches(req.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if !match {
		app.invalidCredentialsResponse(w, r)
		return
	}

	if !user.Activated || !user.IsActive {
		app.forbiddenResponse(w, r)
		return
	}

	err = app.sessionManager.RenewToken(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.sessionManager.Put(r.Context(), SessionKeyUserId, user.ID)
	app.sessionManager.Put(r.Context(), SessionKeyIsAdmin, user.IsAdmin)

	err = app.userRepo.UpdateLastLogin(r.Context(), user.ID)
	if err != nil {
		app.contextGetLogger(r).Error("failed to record login time", "error", err, "user_id", user.ID)
	}

	resp := toUserResponse(user)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) Logout(w http.ResponseWriter, r *http.Request) {
	if app.contextGetUserId(r) == 0 {
		app.unauthorizedAccessResponse(w, r)
		return
	}

	err := app.sessionManager.Destroy(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toUserResponse(user *domain.User) api.UserResponse {
	return api.UserResponse{
		Id:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Activated: user.Activated,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
		Version:   user.Version,
	}
}

package app

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/metinatakli/theater-reservation-system/api"
	"github.com/metinatakli/theater-reservation-system/internal/domain"
	"github.com/metinatakli/theater-reservation-system/internal/mailer"
	"github.com/metinatakli/theater-reservation-system/internal/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AuthHandlerSuite struct {
	suite.Suite
	app       *application
	userRepo  *mocks.MockUserRepo
	tokenRepo *mocks.MockTokenRepo
	mailer    *mailer.MockMailer
}

func (s *AuthHandlerSuite) SetupTest() {
	s.app = newTestApplication()
	s.userRepo = new(mocks.MockUserRepo)
	s.tokenRepo = new(mocks.MockTokenRepo)
	s.mailer = mailer.NewMockMailer()
	s.app.userRepo = s.userRepo
	s.app.tokenRepo = s.tokenRepo
	s.app.mailer = s.mailer
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerSuite))
}

func (s *AuthHandlerSuite) TestRegisterUser() {
	token := &domain.Token{Plaintext: "M5ZTE3ZWYyYTg3ZDhhNWFiYzhmNTEyNDM0NWIyNDBmM"}

	s.userRepo.On("CreateWithToken", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*domain.User)
			user.ID = 7
			user.CreatedAt = time.Now()
		}).
		Return(token, nil)

	body := `{"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "password": "Sup3rSecret!"}`
	req := httptestRequest(http.MethodPost, "/users", body, nil)

	rr := executeRequest(s.app, req)

	s.Equal(http.StatusCreated, rr.Code)

	var resp api.UserResponse
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.Equal(7, resp.Id)
	s.Equal("ada@example.com", resp.Email)
	s.False(resp.Activated)

	s.Require().Eventually(func() bool {
		return len(s.mailer.GetSentEmails()) == 1
	}, time.Second, 10*time.Millisecond)

	email := s.mailer.GetSentEmails()[0]
	s.Equal("ada@example.com", email.Recipient)
	s.Equal("user_welcome.tmpl", email.TemplateFile)
	s.Equal(token.Plaintext, email.Data.(map[string]any)["activationToken"])

	s.userRepo.AssertExpectations(s.T())
}

func (s *AuthHandlerSuite) TestRegisterUser_DuplicateEmail() {
	s.userRepo.On("CreateWithToken", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.ErrUserAlreadyExists)

	body := `{"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "password": "Sup3rSecret!"}`
	req := httptestRequest(http.MethodPost, "/users", body, nil)

	rr := executeRequest(s.app, req)

	checkErrorResponse(s.T(), rr, http.StatusConflict, "a user with this email address already exists")
}

func (s *AuthHandlerSuite) TestRegisterUser_ValidationFailures() {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{
			name:      "missing email",
			body:      `{"firstName": "Ada", "lastName": "Lovelace", "password": "Sup3rSecret!"}`,
			wantField: "Email",
		},
		{
			name:      "weak password",
			body:      `{"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "password": "short"}`,
			wantField: "Password",
		},
		{
			name:      "numeric first name",
			body:      `{"firstName": "4d4", "lastName": "Lovelace", "email": "ada@example.com", "password": "Sup3rSecret!"}`,
			wantField: "FirstName",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := httptestRequest(http.MethodPost, "/users", tt.body, nil)

			rr := executeRequest(s.app, req)

			s.Equal(http.StatusUnprocessableEntity, rr.Code)

			var resp api.ValidationErrorResponse
			s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
			s.Require().Len(resp.ValidationErrors, 1)
			s.Equal(tt.wantField, resp.ValidationErrors[0].Field)
		})
	}
}

func (s *AuthHandlerSuite) TestActivateUser() {
	plaintext := "M5ZTE3ZWYyYTg3ZDhhNWFiYzhmNTEyNDM0NWIyNDBmM"
	tokenHash := sha256.Sum256([]byte(plaintext))

	user := &domain.User{ID: 7, Email: "ada@example.com", Version: 1}

	s.userRepo.On("GetByToken", mock.Anything, tokenHash[:], domain.UserActivationScope).Return(user, nil)
	s.userRepo.On("ActivateUser", mock.Anything, user).Return(nil)

	body := `{"token": "` + plaintext + `"}`
	req := httptestRequest(http.MethodPut, "/users/activated", body, nil)

	rr := executeRequest(s.app, req)

	s.Equal(http.StatusOK, rr.Code)

	var resp api.UserResponse
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.True(resp.Activated)

	s.userRepo.AssertExpectations(s.T())
}

func (s *AuthHandlerSuite) TestActivateUser_InvalidToken() {
	s.userRepo.On("GetByToken", mock.Anything, mock.Anything, domain.UserActivationScope).
		Return(nil, domain.ErrRecordNotFound)

	body := `{"token": "M5ZTE3ZWYyYTg3ZDhhNWFiYzhmNTEyNDM0NWIyNDBmM"}`
	req := httptestRequest(http.MethodPut, "/users/activated", body, nil)

	rr := executeRequest(s.app, req)

	checkErrorResponse(s.T(), rr, http.StatusUnprocessableEntity, "invalid or expired activation token")
}

func (s *AuthHandlerSuite) TestResendActivationToken() {
	user := &domain.User{ID: 7, FirstName: "Ada", Email: "ada@example.com"}

	s.userRepo.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil)
	s.tokenRepo.On("DeleteAllForUser", mock.Anything, domain.UserActivationScope, 7).Return(nil)
	s.tokenRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	body := `{"email": "ada@example.com"}`
	req := httptestRequest(http.MethodPost, "/tokens/activation", body, nil)

	rr := executeRequest(s.app, req)

	s.Equal(http.StatusAccepted, rr.Code)

	s.Require().Eventually(func() bool {
		return len(s.mailer.GetSentEmails()) == 1
	}, time.Second, 10*time.Millisecond)

	email := s.mailer.GetSentEmails()[0]
	s.Equal("ada@example.com", email.Recipient)
	s.Equal("user_welcome.tmpl", email.TemplateFile)

	s.tokenRepo.AssertExpectations(s.T())
}

func (s *AuthHandlerSuite) TestResendActivationToken_AlreadyActivated() {
	user := &domain.User{ID: 7, Email: "ada@example.com", Activated: true}

	s.userRepo.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil)

	body := `{"email": "ada@example.com"}`
	req := httptestRequest(http.MethodPost, "/tokens/activation", body, nil)

	rr := executeRequest(s.app, req)

	checkErrorResponse(s.T(), rr, http.StatusUnprocessableEntity, "user has already been activated")
}

func (s *AuthHandlerSuite) TestLogin() {
	user := &domain.User{ID: 7, Email: "ada@example.com", Activated: true, IsActive: true}
	s.Require().NoError(user.Password.Set("Sup3rSecret!"))

	s.userRepo.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil)
	s.userRepo.On("UpdateLastLogin", mock.Anything, 7).Return(nil)

	body := `{"email": "ada@example.com", "password": "Sup3rSecret!"}`
	req := httptestRequest(http.MethodPost, "/sessions", body, nil)

	rr := executeRequest(s.app, req)

	s.Equal(http.StatusOK, rr.Code)
	s.NotEmpty(rr.Result().Cookies())

	s.userRepo.AssertExpectations(s.T())
}

func (s *AuthHandlerSuite) TestLogin_WrongPassword() {
	user := &domain.User{ID: 7, Email: "ada@example.com", Activated: true, IsActive: true}
	s.Require().NoError(user.Password.Set("Sup3rSecret!"))

	s.userRepo.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil)

	body := `{"email": "ada@example.com", "password": "NotTheRight1!"}`
	req := httptestRequest(http.MethodPost, "/sessions", body, nil)

	rr := executeRequest(s.app, req)

	checkErrorResponse(s.T(), rr, http.StatusUnauthorized, ErrInvalidCredentials)
}

func (s *AuthHandlerSuite) TestLogin_UnknownEmail() {
	s.userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").
		Return(nil, domain.ErrRecordNotFound)

	body := `{"email": "nobody@example.com", "password": "Sup3rSecret!"}`
	req := httptestRequest(http.MethodPost, "/sessions", body, nil)

	rr := executeRequest(s.app, req)

	checkErrorResponse(s.T(), rr, http.StatusUnauthorized, ErrInvalidCredentials)
}

func (s *AuthHandlerSuite) TestLogin_NotActivated() {
	user := &domain.User{ID: 7, Email: "ada@example.com", Activated: false, IsActive: true}
	s.Require().NoError(user.Password.Set("Sup3rSecret!"))

	s.userRepo.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil)

	body := `{"email": "ada@example.com", "password": "Sup3rSecret!"}`
	req := httptestRequest(http.MethodPost, "/sessions", body, nil)

	rr := executeRequest(s.app, req)

	checkErrorResponse(s.T(), rr, http.StatusForbidden, ErrForbiddenAccess)
}

func (s *AuthHandlerSuite) TestLogout() {
	cookie := setupTestSession(s.T(), s.app, 7, false)

	req := httptestRequest(http.MethodDelete, "/sessions", "", cookie)

	rr := executeRequest(s.app, req)

	s.Equal(http.StatusNoContent, rr.Code)
}

func (s *AuthHandlerSuite) TestLogout_NotLoggedIn() {
	req := httptestRequest(http.MethodDelete, "/sessions", "", nil)

	rr := executeRequest(s.app, req)

	checkErrorResponse(s.T(), rr, http.StatusUnauthorized, ErrUnauthorizedAccess)
}

func httptestRequest(method, target, body string, cookie *http.Cookie) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if cookie != nil {
		req.AddCookie(cookie)
	}

	return req
}

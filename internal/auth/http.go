// Copyright (c) 2026 Taskora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/taskora/internal/platform/constants"
	"github.com/taibuivan/taskora/internal/platform/middleware"
	requestutil "github.com/taibuivan/taskora/internal/platform/request"
	"github.com/taibuivan/taskora/internal/platform/respond"
	"github.com/taibuivan/taskora/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler is a thin mediation layer between the web and the [Service]:
// it owns transport concerns only (status codes, headers, JSON shape).
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register : Creates a new account (no token issued).
//   - POST /login    : Authenticates and returns a signed token.
//   - POST /logout   : Discards the session (denylists the token when configured).
//   - GET  /profile  : Returns the authenticated account's public view.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", handler.logout)
		r.Get("/profile", handler.profile)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

/*
Register handles the creation of a new user account.

POST /api/v1/auth/register

Description: Decodes input and delegates to the service, which enforces the
password policy and username uniqueness.

Request:
  - Body: registerRequest (Username, Password)

Response:
  - 201: User: Created account (id, username)
  - 400: ErrInvalidJSON: Bad input or weak password
  - 409: ErrConflict: Username already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Username: input.Username,
		Password: input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
Login authenticates a user and issues a session token.

POST /api/v1/auth/login

Description: Verifies credentials and returns a signed bearer token that the
client must supply on every subsequent request.

Request:
  - Body: loginRequest (Username, Password)

Response:
  - 200: Session: Access token and user profile
  - 401: ErrUnauthorized: Invalid credentials (cause deliberately opaque)
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldAccessToken: session.AccessToken,
		FieldTokenType:   "Bearer",
		FieldExpiresIn:   int64(session.ExpiresIn / time.Second),
		FieldUser:        session.User,
	})
}

/*
Logout terminates the current session.

POST /api/v1/auth/logout

Description: The client discards its token; when a denylist backend is
configured, the token's signature is additionally revoked server-side for
its remaining life. Always succeeds (idempotent).

Response:
  - 204: No Content: Session terminated
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if token := bearerToken(request); token != "" {
		if err := handler.authService.Logout(request.Context(), token); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	respond.NoContent(writer)
}

/*
Profile returns the authenticated user's public account view.

GET /api/v1/auth/profile

Description: Resolves the identity embedded in the validated token into the
stored account record. The password hash is never included.

Response:
  - 200: User: {id, username, created_at, updated_at}
  - 401: ErrUnauthorized: Missing, invalid, or expired token
*/
func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Profile(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// bearerToken extracts the raw token from the Authorization header.
// Returns an empty string if the header is absent or not a bearer scheme.
func bearerToken(request *http.Request) string {
	header := request.Header.Get(constants.HeaderAuthorization)
	parts := strings.Split(header, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != constants.AuthSchemeBearer {
		return ""
	}
	return parts[1]
}

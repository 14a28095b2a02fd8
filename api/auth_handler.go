package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	jwtSecret string
}

func newAuthHandler(userRepo *database.UserRepo, jwtSecret string) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// userPayload is the user shape returned by login/register. The credential
// hash never leaves the server.
type userPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type authResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    userPayload `json:"user"`
}

// register creates a new admin credential and returns a signed token.
// Registration is open: anyone reaching this endpoint can create an admin
// account. That matches the current product behavior.
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("register", err))
			return
		}

		if req.Username == "" || req.Email == "" || req.Password == "" {
			h.responder.WriteError(w, errs.BadRequest("username, email and password are required"))
			return
		}

		existing, err := h.userRepo.FindByUsernameOrEmail(req.Username, req.Email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if existing != nil {
			h.responder.WriteError(w, errs.BadRequest("User with this email or username already exists"))
			return
		}

		user := models.User{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
			Role:     "admin",
		}
		if err := h.userRepo.Add(&user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create user", "user", err))
			return
		}

		token, err := issueToken(h.jwtSecret, &user, time.Now())
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("error signing token", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, authResponse{
			Message: "Admin user created successfully",
			Token:   token,
			User: userPayload{
				ID:       user.ID.String(),
				Username: user.Username,
				Email:    user.Email,
				Role:     user.Role,
			},
		})
	}
}

// login exchanges username+password for a bearer token. Unknown user and bad
// password are indistinguishable to the caller.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("login", err))
			return
		}

		user, err := h.userRepo.FindByUsername(req.Username)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil || !user.ComparePassword(req.Password) {
			h.responder.WriteError(w, errs.NewUnauthorizedError("Invalid credentials"))
			return
		}

		token, err := issueToken(h.jwtSecret, user, time.Now())
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("error signing token", err))
			return
		}

		h.responder.WriteJSON(w, authResponse{
			Message: "Login successful",
			Token:   token,
			User: userPayload{
				ID:       user.ID.String(),
				Username: user.Username,
				Email:    user.Email,
				Role:     user.Role,
			},
		})
	}
}

// verify reports whether the presented token is still valid. The auth
// middleware has already parsed it by the time this runs.
func (h authHandler) verify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := ctxGetClaims(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"message": "Access granted",
			"user": map[string]string{
				"userId": claims.UserID.String(),
				"role":   claims.Role,
			},
		})
	}
}

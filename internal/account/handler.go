package account

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/friendpay/pkg/middleware"
	"github.com/fkhayef/friendpay/pkg/response"
)

// Handler handles HTTP requests for account operations
type Handler struct {
	service *Service
	authMW  func(http.Handler) http.Handler
}

// NewHandler creates a new account handler with service dependency injected
func NewHandler(service *Service, authMW func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, authMW: authMW}
}

// Routes returns the router for account endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(h.authMW)
		r.Post("/find-by-phone", h.FindByPhone)
		r.Get("/me", h.Me)
	})

	return r
}

// Register handles POST /users/register
// @Summary      Register a new user
// @Description  Create a verified account, optionally claiming a debt invitation token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration request"
// @Success      201 {object} response.APIResponse{data=AuthResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /users/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	result, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidPhoneNumber),
			errors.Is(err, ErrPasswordTooShort),
			errors.Is(err, ErrFullNameRequired),
			errors.Is(err, ErrInvalidInvitation):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrPhoneAlreadyRegistered):
			response.Conflict(w, err.Error())
		default:
			response.InternalError(w, "Failed to register user")
		}
		return
	}

	response.JSON(w, http.StatusCreated, result)
}

// Login handles POST /users/login
// @Summary      Login
// @Description  Verify credentials and issue a session token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login request"
// @Success      200 {object} response.APIResponse{data=AuthResponse}
// @Failure      401 {object} response.APIResponse
// @Router       /users/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	result, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Unauthorized(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to login")
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// FindByPhone handles POST /users/find-by-phone
// @Summary      Find a user by phone number
// @Description  Look up a registered account by its phone number
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body FindByPhoneRequest true "Lookup request"
// @Success      200 {object} response.APIResponse{data=AccountResponse}
// @Failure      404 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /users/find-by-phone [post]
func (h *Handler) FindByPhone(w http.ResponseWriter, r *http.Request) {
	var req FindByPhoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	acct, err := h.service.FindByPhone(r.Context(), req.PhoneNumber)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to find user")
		return
	}

	response.JSON(w, http.StatusOK, acct.ToResponse())
}

// Me handles GET /users/me
// @Summary      Get the authenticated user
// @Tags         users
// @Produce      json
// @Success      200 {object} response.APIResponse{data=AccountResponse}
// @Failure      404 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /users/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	acct, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get user")
		return
	}

	response.JSON(w, http.StatusOK, acct.ToResponse())
}

package dashboard

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/friendpay/pkg/middleware"
	"github.com/fkhayef/friendpay/pkg/response"
)

// Handler handles HTTP requests for the dashboard
type Handler struct {
	service *Service
}

// NewHandler creates a new dashboard handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for dashboard endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Get)

	return r
}

// Get handles GET /dashboard
// @Summary      Get the caller's dashboard
// @Description  Owed/owing totals and per-friend balances
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} response.APIResponse{data=View}
// @Failure      404 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /dashboard [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	view, err := h.service.Build(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to build dashboard")
		return
	}

	response.JSON(w, http.StatusOK, view)
}

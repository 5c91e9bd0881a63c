package expense

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/friendpay/internal/expense/split"
	"github.com/fkhayef/friendpay/pkg/middleware"
	"github.com/fkhayef/friendpay/pkg/response"
)

// Handler handles HTTP requests for expense splitting
type Handler struct {
	service *Service
}

// NewHandler creates a new expense handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for expense endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Split)

	return r
}

// Split handles POST /splits
// @Summary      Split a shared expense
// @Description  Fan a shared expense out into one independent debt invitation per participant. Failures are isolated per participant.
// @Tags         splits
// @Accept       json
// @Produce      json
// @Param        request body SplitExpenseRequest true "Split request"
// @Success      200 {object} response.APIResponse{data=SplitExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /splits [post]
func (h *Handler) Split(w http.ResponseWriter, r *http.Request) {
	payerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req SplitExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	result, err := h.service.SplitExpense(r.Context(), payerID, &req)
	if err != nil {
		if errors.Is(err, split.ErrNoParticipants) ||
			errors.Is(err, split.ErrNonPositiveAmount) ||
			errors.Is(err, split.ErrMissingWeight) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to split expense")
		return
	}

	response.JSON(w, http.StatusOK, result)
}

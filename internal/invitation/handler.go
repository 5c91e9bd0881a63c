package invitation

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/friendpay/pkg/middleware"
	"github.com/fkhayef/friendpay/pkg/response"
)

// Handler handles HTTP requests for invitation operations
type Handler struct {
	service *Service
}

// NewHandler creates a new invitation handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for invitation endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)

	return r
}

// Create handles POST /invitations
// @Summary      Invite a contact with a pending debt
// @Description  Create a debt invitation and send its deep link to the invitee by SMS
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Param        request body CreateInvitationRequest true "Invitation request"
// @Success      201 {object} response.APIResponse{data=InvitationResponse}
// @Failure      400 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /invitations [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	inviterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	inv, deepLink, err := h.service.Create(r.Context(), inviterID, req.InviteePhone, req.Amount, req.Description)
	if err != nil {
		if errors.Is(err, ErrInvalidAmount) || errors.Is(err, ErrPhoneRequired) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create debt invitation")
		return
	}

	response.JSON(w, http.StatusCreated, inv.ToResponse(deepLink))
}

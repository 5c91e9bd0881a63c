package receipt

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/friendpay/pkg/response"
)

// Handler handles HTTP requests for receipt operations
type Handler struct {
	service *Service
}

// NewHandler creates a new receipt handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for receipt endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/scan", h.Scan)
	r.Post("/shares", h.Shares)

	return r
}

// Scan handles POST /receipts/scan
// @Summary      Scan a receipt image
// @Description  Extract structured line items and a fee multiplier from a receipt image
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Param        request body ScanRequest true "Scan request"
// @Success      200 {object} response.APIResponse{data=Extraction}
// @Failure      400 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /receipts/scan [post]
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	extraction, err := h.service.Scan(r.Context(), req.ImageBase64, req.MimeType)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidImage):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrExtractionFailed):
			response.Error(w, http.StatusUnprocessableEntity, "EXTRACTION_FAILED", err.Error())
		default:
			response.InternalError(w, "Receipt extraction unavailable")
		}
		return
	}

	response.JSON(w, http.StatusOK, extraction)
}

// Shares handles POST /receipts/shares
// @Summary      Compute per-person shares for a scanned receipt
// @Description  Sum each person's assigned items and apply the fee multiplier
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Param        request body SharesRequest true "Shares request"
// @Success      200 {object} response.APIResponse{data=SharesResponse}
// @Failure      400 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /receipts/shares [post]
func (h *Handler) Shares(w http.ResponseWriter, r *http.Request) {
	var req SharesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	shares, err := ComputeShares(req.Items, req.FeeMultiplier, req.Assignments)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	response.JSON(w, http.StatusOK, &SharesResponse{Shares: shares})
}

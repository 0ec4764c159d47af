package list_venues

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/venues/models"
)

const (
	msgInvalidCustodianID = "некорректный ID ответственного"
)

type Handler struct {
	service VenueService
	logger  Logger
}

func NewHandler(service VenueService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues
// Query params: building, custodianId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceReq := &models.ListVenuesRequest{}

	if building := r.URL.Query().Get("building"); building != "" {
		serviceReq.Building = &building
	}

	if custodianStr := r.URL.Query().Get("custodianId"); custodianStr != "" {
		custodianID, err := strconv.ParseInt(custodianStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /venues - Invalid custodian ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCustodianID)
			return
		}
		serviceReq.CustodianID = &custodianID
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		h.logger.Error("GET /venues - Failed to list venues: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /venues - Venues retrieved successfully: count=%d", len(result.Venues))
	handlers.RespondJSON(w, http.StatusOK, result)
}

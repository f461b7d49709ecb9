package booking

import (
	"errors"
	"net/http"

	"agenda/internal/middleware"
	"agenda/internal/pkg/response"
	"agenda/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the guest-facing endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/providers/:providerId", h.GetReserveData)
	rg.GET("/providers/:providerId/slots", h.GetSlots)
	rg.POST("/providers/:providerId/bookings", h.CreateGuestBooking)
	rg.GET("/bookings/:id", h.GetBooking)
}

// RegisterProviderRoutes mounts endpoints for the authenticated provider.
func (h *Handler) RegisterProviderRoutes(rg *gin.RouterGroup) {
	rg.GET("/agenda", h.GetAgenda)
}

func (h *Handler) GetReserveData(c *gin.Context) {
	data, err := h.service.GetPublicReserveData(
		c.Request.Context(),
		c.Param("providerId"),
		c.Query("service_id"),
		c.Query("date"),
	)
	if err != nil {
		if errors.Is(err, ErrProfileNotConfigured) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Provider not found")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load provider")
		return
	}
	response.Success(c, http.StatusOK, data)
}

// GetSlots never rejects bad input; it answers with an empty list.
func (h *Handler) GetSlots(c *gin.Context) {
	var q SlotsQuery
	_ = c.ShouldBindQuery(&q)

	slots, err := h.service.GetSlots(c.Request.Context(), c.Param("providerId"), q.ServiceID, q.Date)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load slots")
		return
	}
	response.Success(c, http.StatusOK, SlotsResponse{Slots: slots})
}

var rejections = []struct {
	err    error
	status int
	code   string
}{
	{ErrInvalidContact, http.StatusBadRequest, response.CodeValidation},
	{ErrInvalidSlot, http.StatusBadRequest, "INVALID_SLOT"},
	{ErrPastSlot, http.StatusBadRequest, "PAST_SLOT"},
	{ErrProfileNotConfigured, http.StatusNotFound, "PROFILE_NOT_CONFIGURED"},
	{ErrServiceNotFound, http.StatusNotFound, "SERVICE_NOT_FOUND"},
	{ErrSlotUnavailable, http.StatusConflict, "SLOT_UNAVAILABLE"},
	{ErrSlotTaken, http.StatusConflict, "SLOT_TAKEN"},
}

func (h *Handler) CreateGuestBooking(c *gin.Context) {
	var req CreateGuestBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body", validator.FieldErrors(err))
		return
	}

	b, err := h.service.CreateGuestBooking(c.Request.Context(), req.toInput(c.Param("providerId")))
	if err != nil {
		for _, r := range rejections {
			if errors.Is(err, r.err) {
				response.Error(c, r.status, r.code, RejectionMessage(err))
				return
			}
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, RejectionMessage(err))
		return
	}

	response.Success(c, http.StatusCreated, CreateGuestBookingResponse{OK: true, BookingID: b.ID})
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Booking not found")
		return
	}

	d, err := h.service.GetBookingDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Booking not found")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load booking")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": d})
}

func (h *Handler) GetAgenda(c *gin.Context) {
	items, err := h.service.ListAgenda(c.Request.Context(), middleware.ProviderID(c))
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load agenda")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": items})
}

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/Domenick1991/aerodrome/internal/service/billing"
	"github.com/gin-gonic/gin"
)

type FuelingHandler struct {
	service billing.BillingUseCase
}

type recordFuelingRequest struct {
	Time           *time.Time `json:"time"`
	QuantityLiters float64    `json:"quantity_liters"`
	Cost           *float64   `json:"cost"`
	AircraftID     string     `json:"aircraft_id"`
}

type fuelingResponse struct {
	ID             int64    `json:"id"`
	Time           string   `json:"time"`
	QuantityLiters float64  `json:"quantity_liters"`
	Cost           *float64 `json:"cost,omitempty"`
	AircraftID     string   `json:"aircraft_id"`
}

func NewFuelingHandler(service billing.BillingUseCase) *FuelingHandler {
	return &FuelingHandler{service: service}
}

func (h *FuelingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/:id", h.get)
}

func (h *FuelingHandler) create(c *gin.Context) {
	var req recordFuelingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := billing.RecordFuelingInput{
		QuantityLiters: req.QuantityLiters,
		Cost:           req.Cost,
		AircraftID:     req.AircraftID,
	}
	if req.Time != nil {
		input.Time = *req.Time
	}

	fueling, err := h.service.RecordFueling(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFuelingResponse(fueling))
}

func (h *FuelingHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fueling id"})
		return
	}

	fueling, err := h.service.GetFueling(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFuelingResponse(fueling))
}

func toFuelingResponse(f *domain.Fueling) fuelingResponse {
	return fuelingResponse{
		ID:             f.ID,
		Time:           f.Time.Format(time.RFC3339),
		QuantityLiters: f.QuantityLiters,
		Cost:           f.Cost,
		AircraftID:     f.AircraftID,
	}
}

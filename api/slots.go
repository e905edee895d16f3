package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/Domenick1991/aerodrome/internal/service/slots"
	"github.com/gin-gonic/gin"
)

type SlotHandler struct {
	service slots.SlotUseCase
}

type createSlotRequest struct {
	PilotID          int64     `json:"pilot_id"`
	InfrastructureID int64     `json:"infrastructure_id"`
	AircraftID       *string   `json:"aircraft_id"`
	FuelingID        *int64    `json:"fueling_id"`
	PlannedStart     time.Time `json:"planned_start"`
	PlannedEnd       time.Time `json:"planned_end"`
}

type advanceStateRequest struct {
	State       string     `json:"state"`
	ActualStart *time.Time `json:"actual_start"`
	ActualEnd   *time.Time `json:"actual_end"`
}

type attachFuelingRequest struct {
	FuelingID int64 `json:"fueling_id"`
}

type slotResponse struct {
	ID               int64    `json:"id"`
	Reference        string   `json:"reference"`
	PilotID          int64    `json:"pilot_id"`
	InfrastructureID int64    `json:"infrastructure_id"`
	AircraftID       *string  `json:"aircraft_id,omitempty"`
	FuelingID        *int64   `json:"fueling_id,omitempty"`
	PlannedStart     string   `json:"planned_start"`
	PlannedEnd       string   `json:"planned_end"`
	ActualStart      *string  `json:"actual_start,omitempty"`
	ActualEnd        *string  `json:"actual_end,omitempty"`
	State            string   `json:"state"`
	TotalCost        *float64 `json:"total_cost,omitempty"`
}

func NewSlotHandler(service slots.SlotUseCase) *SlotHandler {
	return &SlotHandler{service: service}
}

func (h *SlotHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.PUT("/:id/state", h.advanceState)
	router.POST("/:id/fueling", h.attachFueling)
	router.DELETE("/:id", h.cancel)
}

func (h *SlotHandler) create(c *gin.Context) {
	var req createSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slot, err := h.service.CreateSlot(c.Request.Context(), slots.CreateSlotInput{
		PilotID:          req.PilotID,
		InfrastructureID: req.InfrastructureID,
		AircraftID:       req.AircraftID,
		FuelingID:        req.FuelingID,
		PlannedStart:     req.PlannedStart,
		PlannedEnd:       req.PlannedEnd,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toSlotResponse(slot))
}

func (h *SlotHandler) list(c *gin.Context) {
	var pilotID *int64
	if raw := c.Query("pilot_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pilot_id"})
			return
		}
		pilotID = &id
	}

	list, err := h.service.ListSlots(c.Request.Context(), pilotID)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]slotResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toSlotResponse(&list[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SlotHandler) get(c *gin.Context) {
	id, err := slotID(c)
	if err != nil {
		return
	}

	slot, err := h.service.GetSlot(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSlotResponse(slot))
}

func (h *SlotHandler) advanceState(c *gin.Context) {
	id, err := slotID(c)
	if err != nil {
		return
	}

	var req advanceStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slot, err := h.service.AdvanceState(c.Request.Context(), id, slots.AdvanceStateInput{
		State:       domain.SlotState(req.State),
		ActualStart: req.ActualStart,
		ActualEnd:   req.ActualEnd,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSlotResponse(slot))
}

func (h *SlotHandler) attachFueling(c *gin.Context) {
	id, err := slotID(c)
	if err != nil {
		return
	}

	var req attachFuelingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slot, err := h.service.AttachFueling(c.Request.Context(), id, req.FuelingID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSlotResponse(slot))
}

func (h *SlotHandler) cancel(c *gin.Context) {
	id, err := slotID(c)
	if err != nil {
		return
	}

	slot, err := h.service.CancelSlot(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSlotResponse(slot))
}

func slotID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slot id"})
		return 0, err
	}
	return id, nil
}

func toSlotResponse(s *domain.Slot) slotResponse {
	resp := slotResponse{
		ID:               s.ID,
		Reference:        s.Reference,
		PilotID:          s.PilotID,
		InfrastructureID: s.InfrastructureID,
		AircraftID:       s.AircraftID,
		FuelingID:        s.FuelingID,
		PlannedStart:     s.PlannedStart.Format(time.RFC3339),
		PlannedEnd:       s.PlannedEnd.Format(time.RFC3339),
		State:            string(s.State),
		TotalCost:        s.TotalCost,
	}
	if s.ActualStart != nil {
		v := s.ActualStart.Format(time.RFC3339)
		resp.ActualStart = &v
	}
	if s.ActualEnd != nil {
		v := s.ActualEnd.Format(time.RFC3339)
		resp.ActualEnd = &v
	}
	return resp
}

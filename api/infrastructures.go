package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/Domenick1991/aerodrome/internal/service/infras"
	"github.com/gin-gonic/gin"
)

type InfrastructureHandler struct {
	service infras.InfraUseCase
}

type infrastructureResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	MaxCapacity int     `json:"max_capacity"`
	PriceDay    float64 `json:"price_day"`
	PriceWeek   float64 `json:"price_week"`
	PriceMonth  float64 `json:"price_month"`
}

func NewInfrastructureHandler(service infras.InfraUseCase) *InfrastructureHandler {
	return &InfrastructureHandler{service: service}
}

func (h *InfrastructureHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
}

func (h *InfrastructureHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]infrastructureResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toInfrastructureResponse(&list[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InfrastructureHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid infrastructure id"})
		return
	}

	infra, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toInfrastructureResponse(infra))
}

func toInfrastructureResponse(i *domain.Infrastructure) infrastructureResponse {
	return infrastructureResponse{
		ID:          i.ID,
		Name:        i.Name,
		Type:        i.Type,
		MaxCapacity: i.MaxCapacity,
		PriceDay:    i.PriceDay,
		PriceWeek:   i.PriceWeek,
		PriceMonth:  i.PriceMonth,
	}
}

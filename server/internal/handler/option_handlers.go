package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openquant/nsechain/server/internal/service"
)

type OptionChainHandler struct {
	optionService *service.OptionChainService
}

func NewOptionChainHandler(service *service.OptionChainService) *OptionChainHandler {
	return &OptionChainHandler{
		optionService: service,
	}
}

func (h *OptionChainHandler) GetLatest(c *gin.Context) {
	if c.Query("allUnderlyings") == "true" {
		grouped, err := h.optionService.GetLatestRowsPerUnderlying()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, grouped)
		return
	}

	rows, err := h.optionService.GetLatestRows()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *OptionChainHandler) GetCount(c *gin.Context) {
	underlying := c.Query("underlying")
	if underlying == "all" {
		counts, err := h.optionService.GetRowCountPerUnderlying()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, counts)
		return
	}

	count, err := h.optionService.GetRowsCount(underlying)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if underlying != "" {
		c.JSON(http.StatusOK, gin.H{underlying: count})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *OptionChainHandler) GetMarketStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.optionService.MarketStatus())
}

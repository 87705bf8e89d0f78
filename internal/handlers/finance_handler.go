package handlers

import (
	"net/http"

	"gescom/internal/services"

	"github.com/gin-gonic/gin"
)

type FinanceHandler struct {
	financeService services.FinanceService
}

func NewFinanceHandler(financeService services.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// Bilan serves the aggregated figures for one period. The period name is
// part of the path: hebdomadaire, mensuel or annuel.
func (h *FinanceHandler) Bilan(c *gin.Context) {
	var (
		bilan *services.BilanResponse
		err   error
	)
	switch c.Param("periode") {
	case "hebdomadaire":
		bilan, err = h.financeService.BilanHebdomadaire(c.Request.Context())
	case "mensuel":
		bilan, err = h.financeService.BilanMensuel(c.Request.Context())
	case "annuel":
		bilan, err = h.financeService.BilanAnnuel(c.Request.Context())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown period"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bilan)
}

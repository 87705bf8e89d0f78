package handlers

import (
	"net/http"
	"strconv"

	"gescom/internal/middleware"
	"gescom/internal/services"

	"github.com/gin-gonic/gin"
)

type SyncHandler struct {
	syncService services.SyncService
}

func NewSyncHandler(syncService services.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// Run drains the outbox immediately instead of waiting for the next tick.
func (h *SyncHandler) Run(c *gin.Context) {
	if err := h.syncService.RunOnce(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "synced"})
}

func (h *SyncHandler) Pull(c *gin.Context) {
	session := middleware.Session(c)
	if session.IDEntreprise == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no entreprise attached to session"})
		return
	}
	if err := h.syncService.Pull(c.Request.Context(), session.IDEntreprise); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "pulled"})
}

func (h *SyncHandler) History(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}
	history, err := h.syncService.History(limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

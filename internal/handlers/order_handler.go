package handlers

import (
	"net/http"

	"gescom/internal/middleware"
	"gescom/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService   services.OrderService
	invoiceService services.InvoiceService
}

func NewOrderHandler(orderService services.OrderService, invoiceService services.InvoiceService) *OrderHandler {
	return &OrderHandler{orderService: orderService, invoiceService: invoiceService}
}

func (h *OrderHandler) List(c *gin.Context) {
	commandes, err := h.orderService.List(middleware.Session(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, commandes)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	commande, err := h.orderService.Get(middleware.Session(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, commande)
}

func (h *OrderHandler) Create(c *gin.Context) {
	var input services.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}
	commande, err := h.orderService.Create(middleware.Session(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, commande)
}

// Validate marks an order delivered; the transition is one-way.
func (h *OrderHandler) Validate(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	commande, err := h.orderService.Validate(middleware.Session(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, commande)
}

func (h *OrderHandler) ListInvoices(c *gin.Context) {
	factures, err := h.invoiceService.List(middleware.Session(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, factures)
}

func (h *OrderHandler) GetInvoice(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	facture, err := h.invoiceService.Get(middleware.Session(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, facture)
}

func (h *OrderHandler) PayInvoice(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	facture, err := h.invoiceService.Pay(middleware.Session(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, facture)
}

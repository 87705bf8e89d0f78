package handlers

import (
	"net/http"
	"strconv"

	"gescom/internal/middleware"
	"gescom/internal/services"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productService     services.ProductService
	transactionService services.TransactionService
}

func NewProductHandler(productService services.ProductService, transactionService services.TransactionService) *ProductHandler {
	return &ProductHandler{productService: productService, transactionService: transactionService}
}

func (h *ProductHandler) List(c *gin.Context) {
	produits, err := h.productService.List(middleware.Session(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, produits)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	produit, err := h.productService.Get(middleware.Session(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, produit)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var input services.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}
	produit, err := h.productService.Create(middleware.Session(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, produit)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	var input services.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}
	produit, err := h.productService.Update(middleware.Session(c), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, produit)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	if err := h.productService.Delete(middleware.Session(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Transactions lists the stock ledger of one product.
func (h *ProductHandler) Transactions(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	transactions, err := h.transactionService.GetByProduct(middleware.Session(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, transactions)
}

// AddTransaction books a stock movement against a product.
func (h *ProductHandler) AddTransaction(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	var input services.TransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}
	input.IDProduit = id
	transaction, err := h.transactionService.Add(middleware.Session(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, transaction)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, err
	}
	return uint(id), nil
}

package repository

import (
	"time"

	"gescom/internal/database"
	"gescom/internal/models"

	"gorm.io/gorm"
)

// TransactionRepository is append-only: the ledger has no update or delete
// surface.
type TransactionRepository interface {
	WithTx(tx *gorm.DB) TransactionRepository
	Create(transaction *models.Transaction) error
	GetByProduct(idProduit uint) ([]models.Transaction, error)
	GetByDateRange(start, end time.Time) ([]models.Transaction, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) WithTx(tx *gorm.DB) TransactionRepository {
	return &transactionRepository{db: tx}
}

func (r *transactionRepository) Create(transaction *models.Transaction) error {
	return database.ClassifyError(r.db.Create(transaction).Error)
}

func (r *transactionRepository) GetByProduct(idProduit uint) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.db.Where("id_produit = ?", idProduit).Order("date DESC").Find(&transactions).Error
	return transactions, database.ClassifyError(err)
}

// GetByDateRange returns all ledger rows inside the inclusive range, the
// read path of the finance aggregator.
func (r *transactionRepository) GetByDateRange(start, end time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.db.Where("date >= ? AND date <= ?", start, end).Find(&transactions).Error
	return transactions, database.ClassifyError(err)
}

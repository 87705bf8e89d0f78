package repository

import (
	"gescom/internal/database"
	"gescom/internal/models"

	"gorm.io/gorm"
)

type InvoiceRepository interface {
	WithTx(tx *gorm.DB) InvoiceRepository
	Create(facture *models.Facture) error
	GetByID(id, idEntreprise uint) (*models.Facture, error)
	GetByEntreprise(idEntreprise uint) ([]models.Facture, error)
	Update(facture *models.Facture) error
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) WithTx(tx *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: tx}
}

func (r *invoiceRepository) Create(facture *models.Facture) error {
	return database.ClassifyError(r.db.Create(facture).Error)
}

func (r *invoiceRepository) GetByID(id, idEntreprise uint) (*models.Facture, error) {
	var facture models.Facture
	err := r.db.Preload("Commande").Preload("Commande.Produit").Preload("Commande.Client").
		Joins("JOIN commandes ON commandes.id = factures.id_commande").
		Joins("JOIN produits ON produits.id = commandes.id_produit").
		Where("factures.id = ? AND produits.id_entreprise = ?", id, idEntreprise).
		First(&facture).Error
	if err != nil {
		return nil, database.ClassifyError(err)
	}
	return &facture, nil
}

func (r *invoiceRepository) GetByEntreprise(idEntreprise uint) ([]models.Facture, error) {
	var factures []models.Facture
	err := r.db.Preload("Commande").Preload("Commande.Produit").Preload("Commande.Client").
		Joins("JOIN commandes ON commandes.id = factures.id_commande").
		Joins("JOIN produits ON produits.id = commandes.id_produit").
		Where("produits.id_entreprise = ?", idEntreprise).
		Order("factures.date_paiement").
		Find(&factures).Error
	return factures, database.ClassifyError(err)
}

func (r *invoiceRepository) Update(facture *models.Facture) error {
	return database.ClassifyError(r.db.Save(facture).Error)
}

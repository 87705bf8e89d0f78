package repository

import (
	"gescom/internal/database"
	"gescom/internal/models"

	"gorm.io/gorm"
)

type ProductRepository interface {
	WithTx(tx *gorm.DB) ProductRepository
	Create(produit *models.Produit) error
	GetByID(id, idEntreprise uint) (*models.Produit, error)
	GetByEntreprise(idEntreprise uint) ([]models.Produit, error)
	Update(produit *models.Produit) error
	Delete(id, idEntreprise uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) WithTx(tx *gorm.DB) ProductRepository {
	return &productRepository{db: tx}
}

func (r *productRepository) Create(produit *models.Produit) error {
	return database.ClassifyError(r.db.Create(produit).Error)
}

func (r *productRepository) GetByID(id, idEntreprise uint) (*models.Produit, error) {
	var produit models.Produit
	err := r.db.Where("id = ? AND id_entreprise = ?", id, idEntreprise).First(&produit).Error
	if err != nil {
		return nil, database.ClassifyError(err)
	}
	return &produit, nil
}

func (r *productRepository) GetByEntreprise(idEntreprise uint) ([]models.Produit, error) {
	var produits []models.Produit
	err := r.db.Where("id_entreprise = ?", idEntreprise).Order("nom").Find(&produits).Error
	return produits, database.ClassifyError(err)
}

func (r *productRepository) Update(produit *models.Produit) error {
	return database.ClassifyError(r.db.Save(produit).Error)
}

func (r *productRepository) Delete(id, idEntreprise uint) error {
	return database.ClassifyError(
		r.db.Where("id = ? AND id_entreprise = ?", id, idEntreprise).
			Delete(&models.Produit{}).Error)
}

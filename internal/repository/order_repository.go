package repository

import (
	"gescom/internal/database"
	"gescom/internal/models"

	"gorm.io/gorm"
)

type OrderRepository interface {
	WithTx(tx *gorm.DB) OrderRepository
	Create(commande *models.Commande) error
	GetByID(id, idEntreprise uint) (*models.Commande, error)
	GetByEntreprise(idEntreprise uint) ([]models.Commande, error)
	Update(commande *models.Commande) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) WithTx(tx *gorm.DB) OrderRepository {
	return &orderRepository{db: tx}
}

func (r *orderRepository) Create(commande *models.Commande) error {
	return database.ClassifyError(r.db.Create(commande).Error)
}

func (r *orderRepository) GetByID(id, idEntreprise uint) (*models.Commande, error) {
	var commande models.Commande
	err := r.db.Preload("Produit").Preload("Client").Preload("Factures").
		Joins("JOIN produits ON produits.id = commandes.id_produit").
		Where("commandes.id = ? AND produits.id_entreprise = ?", id, idEntreprise).
		First(&commande).Error
	if err != nil {
		return nil, database.ClassifyError(err)
	}
	return &commande, nil
}

func (r *orderRepository) GetByEntreprise(idEntreprise uint) ([]models.Commande, error) {
	var commandes []models.Commande
	err := r.db.Preload("Produit").Preload("Client").Preload("Factures").
		Joins("JOIN produits ON produits.id = commandes.id_produit").
		Where("produits.id_entreprise = ?", idEntreprise).
		Order("commandes.date DESC").
		Find(&commandes).Error
	return commandes, database.ClassifyError(err)
}

func (r *orderRepository) Update(commande *models.Commande) error {
	return database.ClassifyError(r.db.Save(commande).Error)
}

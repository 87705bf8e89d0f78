package repository

import (
	"gescom/internal/database"
	"gescom/internal/models"

	"gorm.io/gorm"
)

type ClientRepository interface {
	WithTx(tx *gorm.DB) ClientRepository
	Create(client *models.Client) error
	GetByID(id, idEntreprise uint) (*models.Client, error)
	GetByEntreprise(idEntreprise uint) ([]models.Client, error)
	Update(client *models.Client) error
	Delete(id, idEntreprise uint) error
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) WithTx(tx *gorm.DB) ClientRepository {
	return &clientRepository{db: tx}
}

func (r *clientRepository) Create(client *models.Client) error {
	return database.ClassifyError(r.db.Create(client).Error)
}

func (r *clientRepository) GetByID(id, idEntreprise uint) (*models.Client, error) {
	var client models.Client
	err := r.db.Where("id = ? AND id_entreprise = ?", id, idEntreprise).First(&client).Error
	if err != nil {
		return nil, database.ClassifyError(err)
	}
	return &client, nil
}

func (r *clientRepository) GetByEntreprise(idEntreprise uint) ([]models.Client, error) {
	var clients []models.Client
	err := r.db.Where("id_entreprise = ?", idEntreprise).Order("nom").Find(&clients).Error
	return clients, database.ClassifyError(err)
}

func (r *clientRepository) Update(client *models.Client) error {
	return database.ClassifyError(r.db.Save(client).Error)
}

func (r *clientRepository) Delete(id, idEntreprise uint) error {
	return database.ClassifyError(
		r.db.Where("id = ? AND id_entreprise = ?", id, idEntreprise).
			Delete(&models.Client{}).Error)
}

package repository

import (
	"gescom/internal/database"
	"gescom/internal/models"

	"gorm.io/gorm"
)

type EntrepriseRepository interface {
	WithTx(tx *gorm.DB) EntrepriseRepository
	Create(entreprise *models.Entreprise) error
	GetByID(id uint) (*models.Entreprise, error)
	// Upsert writes the authoritative remote copy during a pull; remote
	// wins for entity identity.
	Upsert(entreprise *models.Entreprise) error
	Count() (int64, error)
}

type entrepriseRepository struct {
	db *gorm.DB
}

func NewEntrepriseRepository(db *gorm.DB) EntrepriseRepository {
	return &entrepriseRepository{db: db}
}

func (r *entrepriseRepository) WithTx(tx *gorm.DB) EntrepriseRepository {
	return &entrepriseRepository{db: tx}
}

func (r *entrepriseRepository) Create(entreprise *models.Entreprise) error {
	return database.ClassifyError(r.db.Create(entreprise).Error)
}

func (r *entrepriseRepository) GetByID(id uint) (*models.Entreprise, error) {
	var entreprise models.Entreprise
	err := r.db.First(&entreprise, id).Error
	if err != nil {
		return nil, database.ClassifyError(err)
	}
	return &entreprise, nil
}

func (r *entrepriseRepository) Upsert(entreprise *models.Entreprise) error {
	return database.ClassifyError(r.db.Save(entreprise).Error)
}

func (r *entrepriseRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Entreprise{}).Count(&count).Error
	return count, database.ClassifyError(err)
}

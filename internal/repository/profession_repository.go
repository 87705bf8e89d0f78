package repository

import (
	"gescom/internal/database"
	"gescom/internal/models"

	"gorm.io/gorm"
)

type ProfessionRepository interface {
	WithTx(tx *gorm.DB) ProfessionRepository
	Create(profession *models.Profession) error
	GetByID(id, idEntreprise uint) (*models.Profession, error)
	GetByEntreprise(idEntreprise uint) ([]models.Profession, error)
	Update(profession *models.Profession) error
	Delete(id, idEntreprise uint) error
}

type professionRepository struct {
	db *gorm.DB
}

func NewProfessionRepository(db *gorm.DB) ProfessionRepository {
	return &professionRepository{db: db}
}

func (r *professionRepository) WithTx(tx *gorm.DB) ProfessionRepository {
	return &professionRepository{db: tx}
}

func (r *professionRepository) Create(profession *models.Profession) error {
	return database.ClassifyError(r.db.Create(profession).Error)
}

func (r *professionRepository) GetByID(id, idEntreprise uint) (*models.Profession, error) {
	var profession models.Profession
	err := r.db.Where("id = ? AND id_entreprise = ?", id, idEntreprise).First(&profession).Error
	if err != nil {
		return nil, database.ClassifyError(err)
	}
	return &profession, nil
}

func (r *professionRepository) GetByEntreprise(idEntreprise uint) ([]models.Profession, error) {
	var professions []models.Profession
	err := r.db.Where("id_entreprise = ?", idEntreprise).Order("poste").Find(&professions).Error
	return professions, database.ClassifyError(err)
}

func (r *professionRepository) Update(profession *models.Profession) error {
	return database.ClassifyError(r.db.Save(profession).Error)
}

func (r *professionRepository) Delete(id, idEntreprise uint) error {
	return database.ClassifyError(
		r.db.Where("id = ? AND id_entreprise = ?", id, idEntreprise).
			Delete(&models.Profession{}).Error)
}

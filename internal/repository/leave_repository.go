package repository

import (
	"time"

	"gescom/internal/database"
	"gescom/internal/models"

	"gorm.io/gorm"
)

type LeaveRepository interface {
	WithTx(tx *gorm.DB) LeaveRepository
	Create(conge *models.Conge) error
	GetByID(id uint) (*models.Conge, error)
	GetByUser(idUser uint) ([]models.Conge, error)
	GetAll() ([]models.Conge, error)
	Delete(id uint) error
	HasActiveLeave(idUser uint, now time.Time) (bool, error)
}

type leaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) LeaveRepository {
	return &leaveRepository{db: db}
}

func (r *leaveRepository) WithTx(tx *gorm.DB) LeaveRepository {
	return &leaveRepository{db: tx}
}

func (r *leaveRepository) Create(conge *models.Conge) error {
	return database.ClassifyError(r.db.Create(conge).Error)
}

func (r *leaveRepository) GetByID(id uint) (*models.Conge, error) {
	var conge models.Conge
	err := r.db.Preload("Utilisateur").Preload("Utilisateur.Profession").First(&conge, id).Error
	if err != nil {
		return nil, database.ClassifyError(err)
	}
	return &conge, nil
}

func (r *leaveRepository) GetByUser(idUser uint) ([]models.Conge, error) {
	var conges []models.Conge
	err := r.db.Where("id_user = ?", idUser).Order("date_debut DESC").Find(&conges).Error
	return conges, database.ClassifyError(err)
}

func (r *leaveRepository) GetAll() ([]models.Conge, error) {
	var conges []models.Conge
	err := r.db.Preload("Utilisateur").Order("date_debut DESC").Find(&conges).Error
	return conges, database.ClassifyError(err)
}

func (r *leaveRepository) Delete(id uint) error {
	return database.ClassifyError(r.db.Delete(&models.Conge{}, id).Error)
}

// HasActiveLeave reports whether the user is on leave: now is at or before
// the end date of some leave record.
func (r *leaveRepository) HasActiveLeave(idUser uint, now time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.Conge{}).
		Where("id_user = ? AND date_fin >= ?", idUser, now).
		Count(&count).Error
	return count > 0, database.ClassifyError(err)
}

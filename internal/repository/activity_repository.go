package repository

import (
	"time"

	"gescom/internal/database"
	"gescom/internal/models"

	"gorm.io/gorm"
)

// ActivityRepository is append-only. There is deliberately no update or
// delete method: the audit trail is permanent.
type ActivityRepository interface {
	WithTx(tx *gorm.DB) ActivityRepository
	Create(activite *models.Activite) error
	GetByUser(idUser uint) ([]models.Activite, error)
	CreateArchive(archive *models.Archive) error
	PurgeExpiredArchives(now time.Time) error
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) WithTx(tx *gorm.DB) ActivityRepository {
	return &activityRepository{db: tx}
}

func (r *activityRepository) Create(activite *models.Activite) error {
	return database.ClassifyError(r.db.Create(activite).Error)
}

func (r *activityRepository) GetByUser(idUser uint) ([]models.Activite, error) {
	var activites []models.Activite
	err := r.db.Where("id_user = ?", idUser).Order("date DESC").Find(&activites).Error
	return activites, database.ClassifyError(err)
}

func (r *activityRepository) CreateArchive(archive *models.Archive) error {
	return database.ClassifyError(r.db.Create(archive).Error)
}

func (r *activityRepository) PurgeExpiredArchives(now time.Time) error {
	return database.ClassifyError(
		r.db.Where("expiration < ?", now).Delete(&models.Archive{}).Error)
}

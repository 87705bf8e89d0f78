package repository

import (
	"gescom/internal/database"
	"gescom/internal/models"

	"gorm.io/gorm"
)

type SyncRepository interface {
	WithTx(tx *gorm.DB) SyncRepository
	CreateEntry(entry *models.SyncEntry) error
	// PendingEntreprises lists the distinct entreprise ids with queued
	// entries, oldest queue first. Entries without an entreprise come back
	// under the nil key.
	PendingEntreprises() ([]*uint, error)
	// PendingByEntreprise returns queued entries for one entreprise in FIFO
	// order.
	PendingByEntreprise(idEntreprise *uint) ([]models.SyncEntry, error)
	DeleteEntry(id uint) error
	CreateHistory(history *models.SyncHistory) error
	GetHistory(limit int) ([]models.SyncHistory, error)
}

type syncRepository struct {
	db *gorm.DB
}

func NewSyncRepository(db *gorm.DB) SyncRepository {
	return &syncRepository{db: db}
}

func (r *syncRepository) WithTx(tx *gorm.DB) SyncRepository {
	return &syncRepository{db: tx}
}

func (r *syncRepository) CreateEntry(entry *models.SyncEntry) error {
	return database.ClassifyError(r.db.Create(entry).Error)
}

func (r *syncRepository) PendingEntreprises() ([]*uint, error) {
	var ids []*uint
	err := r.db.Model(&models.SyncEntry{}).
		Select("id_entreprise").
		Group("id_entreprise").
		Order("min(id)").
		Pluck("id_entreprise", &ids).Error
	return ids, database.ClassifyError(err)
}

func (r *syncRepository) PendingByEntreprise(idEntreprise *uint) ([]models.SyncEntry, error) {
	var entries []models.SyncEntry
	q := r.db.Order("id")
	if idEntreprise == nil {
		q = q.Where("id_entreprise IS NULL")
	} else {
		q = q.Where("id_entreprise = ?", *idEntreprise)
	}
	err := q.Find(&entries).Error
	return entries, database.ClassifyError(err)
}

func (r *syncRepository) DeleteEntry(id uint) error {
	return database.ClassifyError(r.db.Delete(&models.SyncEntry{}, id).Error)
}

func (r *syncRepository) CreateHistory(history *models.SyncHistory) error {
	return database.ClassifyError(r.db.Create(history).Error)
}

func (r *syncRepository) GetHistory(limit int) ([]models.SyncHistory, error) {
	var history []models.SyncHistory
	err := r.db.Order("date_sync DESC").Limit(limit).Find(&history).Error
	return history, database.ClassifyError(err)
}

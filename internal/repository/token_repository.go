package repository

import (
	"time"

	"gescom/internal/database"
	"gescom/internal/models"

	"gorm.io/gorm"
)

// TokenRepository persists blacklisted session tokens, password reset codes
// and the login journal.
type TokenRepository interface {
	WithTx(tx *gorm.DB) TokenRepository
	Blacklist(token string, expiry time.Time) error
	IsBlacklisted(token string) (bool, error)
	PurgeExpired(now time.Time) error
	CreateReset(reset *models.PasswordReset) error
	GetResetByCode(code string) (*models.PasswordReset, error)
	MarkResetUsed(id uint) error
	RecordAuthentication(auth *models.Authentication) error
	RecordLogout(token string, at time.Time) error
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) WithTx(tx *gorm.DB) TokenRepository {
	return &tokenRepository{db: tx}
}

func (r *tokenRepository) Blacklist(token string, expiry time.Time) error {
	return database.ClassifyError(
		r.db.Create(&models.BlacklistedToken{Token: token, Expired: expiry}).Error)
}

func (r *tokenRepository) IsBlacklisted(token string) (bool, error) {
	var count int64
	err := r.db.Model(&models.BlacklistedToken{}).Where("token = ?", token).Count(&count).Error
	return count > 0, database.ClassifyError(err)
}

// PurgeExpired drops blacklist rows whose token has passed its natural
// expiry anyway.
func (r *tokenRepository) PurgeExpired(now time.Time) error {
	return database.ClassifyError(
		r.db.Where("expired < ?", now).Delete(&models.BlacklistedToken{}).Error)
}

func (r *tokenRepository) CreateReset(reset *models.PasswordReset) error {
	return database.ClassifyError(r.db.Create(reset).Error)
}

func (r *tokenRepository) GetResetByCode(code string) (*models.PasswordReset, error) {
	var reset models.PasswordReset
	err := r.db.Where("code = ?", code).First(&reset).Error
	if err != nil {
		return nil, database.ClassifyError(err)
	}
	return &reset, nil
}

func (r *tokenRepository) MarkResetUsed(id uint) error {
	return database.ClassifyError(
		r.db.Model(&models.PasswordReset{}).Where("id = ?", id).Update("used", true).Error)
}

func (r *tokenRepository) RecordAuthentication(auth *models.Authentication) error {
	return database.ClassifyError(r.db.Create(auth).Error)
}

func (r *tokenRepository) RecordLogout(token string, at time.Time) error {
	return database.ClassifyError(
		r.db.Model(&models.Authentication{}).
			Where("token = ? AND logout_at IS NULL", token).
			Update("logout_at", at).Error)
}

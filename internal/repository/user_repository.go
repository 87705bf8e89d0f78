package repository

import (
	"strings"

	"gescom/internal/database"
	"gescom/internal/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	WithTx(tx *gorm.DB) UserRepository
	Create(user *models.Utilisateur) error
	GetByID(id uint) (*models.Utilisateur, error)
	GetByEmail(email string) (*models.Utilisateur, error)
	GetByEntreprise(idEntreprise uint) ([]models.Utilisateur, error)
	Update(user *models.Utilisateur) error
	UpdatePassword(id uint, hash string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) WithTx(tx *gorm.DB) UserRepository {
	return &userRepository{db: tx}
}

func (r *userRepository) Create(user *models.Utilisateur) error {
	return database.ClassifyError(r.db.Create(user).Error)
}

func (r *userRepository) GetByID(id uint) (*models.Utilisateur, error) {
	var user models.Utilisateur
	err := r.db.Preload("Profession").Preload("Profession.Entreprise").First(&user, id).Error
	if err != nil {
		return nil, database.ClassifyError(err)
	}
	return &user, nil
}

// GetByEmail looks a user up case-insensitively, joined with profession and
// entreprise for the auth fallback path.
func (r *userRepository) GetByEmail(email string) (*models.Utilisateur, error) {
	var user models.Utilisateur
	err := r.db.Preload("Profession").Preload("Profession.Entreprise").
		Where("lower(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return nil, database.ClassifyError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEntreprise(idEntreprise uint) ([]models.Utilisateur, error) {
	var users []models.Utilisateur
	err := r.db.Preload("Profession").
		Joins("JOIN professions ON professions.id = utilisateurs.id_profession").
		Where("professions.id_entreprise = ?", idEntreprise).
		Order("utilisateurs.nom").
		Find(&users).Error
	return users, database.ClassifyError(err)
}

func (r *userRepository) Update(user *models.Utilisateur) error {
	return database.ClassifyError(r.db.Save(user).Error)
}

func (r *userRepository) UpdatePassword(id uint, hash string) error {
	return database.ClassifyError(
		r.db.Model(&models.Utilisateur{}).Where("id = ?", id).Update("mdp", hash).Error)
}

package models

import "time"

type Role string

const (
	RoleSuperAdmin Role = "SUPERADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleUser       Role = "USER"
)

type Utilisateur struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Nom          string `json:"nom" gorm:"not null"`
	Email        string `json:"email" gorm:"unique;not null"`
	MotDePasse   string `json:"-" gorm:"column:mdp;not null"` // bcrypt hash, never serialized
	Role         Role   `json:"role" gorm:"not null;default:'USER'"`
	IDProfession uint   `json:"idProfession" gorm:"column:id_profession;not null"`

	Profession *Profession `json:"profession,omitempty" gorm:"foreignKey:IDProfession"`
}

func (Utilisateur) TableName() string { return "utilisateurs" }

type Profession struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Poste        string `json:"poste" gorm:"not null"`
	Salaire      int    `json:"salaire" gorm:"not null"`
	IDEntreprise uint   `json:"idEntreprise" gorm:"column:id_entreprise;not null"`

	Entreprise *Entreprise `json:"entreprise,omitempty" gorm:"foreignKey:IDEntreprise"`
}

func (Profession) TableName() string { return "professions" }

type Conge struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	IDUser    uint      `json:"idUser" gorm:"column:id_user;not null"`
	DateDebut time.Time `json:"dateDebut" gorm:"not null"`
	DateFin   time.Time `json:"dateFin" gorm:"not null"`

	Utilisateur *Utilisateur `json:"utilisateur,omitempty" gorm:"foreignKey:IDUser"`
}

func (Conge) TableName() string { return "conges" }

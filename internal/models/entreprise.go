package models

type Entreprise struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Nom      string `json:"nom" gorm:"not null"`
	Email    string `json:"email" gorm:"unique;not null"`
	Ref      string `json:"ref" gorm:"not null"`
	Activite string `json:"activite" gorm:"not null"`
}

func (Entreprise) TableName() string { return "entreprises" }

type Client struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Nom          string `json:"nom" gorm:"not null"`
	Email        string `json:"email" gorm:"unique;not null"`
	Telephone    string `json:"telephone" gorm:"not null"`
	IDEntreprise uint   `json:"idEntreprise" gorm:"column:id_entreprise;not null"`

	Entreprise *Entreprise `json:"entreprise,omitempty" gorm:"foreignKey:IDEntreprise"`
}

func (Client) TableName() string { return "clients" }

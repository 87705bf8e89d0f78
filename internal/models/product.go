package models

type Produit struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Numero       string `json:"numero" gorm:"unique;not null"`
	Nom          string `json:"nom" gorm:"not null"`
	PrixAchat    int    `json:"prixAchat" gorm:"not null;default:0"`
	PrixVente    int    `json:"prixVente" gorm:"not null;default:0"`
	Type         string `json:"type" gorm:"not null"`
	Quantite     int    `json:"quantite" gorm:"not null;default:0"`
	IDEntreprise uint   `json:"idEntreprise" gorm:"column:id_entreprise;not null"`

	Entreprise *Entreprise `json:"entreprise,omitempty" gorm:"foreignKey:IDEntreprise"`
}

func (Produit) TableName() string { return "produits" }

package models

import "time"

type TransactionType string

const (
	// Entree is a restock movement, it increases product quantity.
	Entree TransactionType = "ENTREE"
	// Sortie is a sale movement, it decreases product quantity.
	Sortie TransactionType = "SORTIE"
)

// Transaction is the immutable stock movement ledger. Product quantities and
// all financial aggregates are derived from it.
type Transaction struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	Type         TransactionType `json:"type" gorm:"not null"`
	Quantite     int             `json:"quantite" gorm:"not null"`
	PrixUnitaire int             `json:"prixUnitaire" gorm:"not null"`
	Date         time.Time       `json:"date" gorm:"not null"`
	IDProduit    uint            `json:"produitId" gorm:"column:id_produit;not null"`
	Ref          string          `json:"ref" gorm:"default:''"`

	Produit *Produit `json:"produit,omitempty" gorm:"foreignKey:IDProduit"`
}

func (Transaction) TableName() string { return "transactions" }

package models

import "time"

type Commande struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	IDProduit    uint      `json:"idProduit" gorm:"column:id_produit;not null"`
	IDClient     uint      `json:"idClient" gorm:"column:id_client;not null"`
	Quantite     int       `json:"quantite" gorm:"not null"`
	Valide       bool      `json:"valide" gorm:"not null;default:false"`
	Date         time.Time `json:"date" gorm:"not null"`
	DatePaiement time.Time `json:"datePaiement" gorm:"not null"`

	Produit  *Produit  `json:"produit,omitempty" gorm:"foreignKey:IDProduit"`
	Client   *Client   `json:"client,omitempty" gorm:"foreignKey:IDClient"`
	Factures []Facture `json:"factures,omitempty" gorm:"foreignKey:IDCommande"`
}

func (Commande) TableName() string { return "commandes" }

type Facture struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Numero       string    `json:"numero" gorm:"unique;not null"`
	IDCommande   uint      `json:"idCommande" gorm:"column:id_commande;not null"`
	DatePaiement time.Time `json:"datePaiement" gorm:"not null"`
	Payed        bool      `json:"payed" gorm:"not null;default:false"`
	Retard       bool      `json:"retard" gorm:"not null;default:false"`

	Commande *Commande `json:"commande,omitempty" gorm:"foreignKey:IDCommande"`
}

func (Facture) TableName() string { return "factures" }

// EstEnRetard derives the overdue flag: unpaid and past its due date.
func (f *Facture) EstEnRetard(now time.Time) bool {
	return !f.Payed && f.DatePaiement.Before(now)
}

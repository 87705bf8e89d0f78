package models

import (
	"encoding/json"
	"time"
)

// Known action payload discriminants. Payloads with any other type survive
// round-trips as opaque entries, they are never rejected on read.
const (
	ActionCreationUtilisateur = "Création d'utilisateur"
	ActionModifUtilisateur    = "Modification d'utilisateur"
	ActionValidationConge     = "Validation de congé"
	ActionAnnulationConge     = "Annulation de congé"
	ActionCreationProduit     = "Création de produit"
	ActionModifProduit        = "Modification de produit"
	ActionSuppressionProduit  = "Suppression de produit"
	ActionTransactionStock    = "Transaction de stock"
	ActionCreationCommande    = "Création de commande"
	ActionValidationCommande  = "Validation de commande"
	ActionPaiementFacture     = "Paiement de facture"

	// ActionUnknown marks a degraded entry whose stored payload could not be
	// parsed; the raw string is kept in Raw.
	ActionUnknown = "UNKNOWN"
)

// Activite is the append-only audit trail. Rows are written in the same
// transaction as the mutation they document and are never updated or deleted.
type Activite struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	IDUser     uint      `json:"idUser" gorm:"column:id_user;not null"`
	Action     string    `json:"action" gorm:"not null"` // serialized ActionPayload
	Date       time.Time `json:"date" gorm:"not null"`
	SuperAdmin bool      `json:"superAdmin" gorm:"not null"` // acting user's role at write time

	Utilisateur *Utilisateur `json:"utilisateur,omitempty" gorm:"foreignKey:IDUser"`
}

func (Activite) TableName() string { return "activites" }

// ActionPayload is the wire format of an audit action: a type discriminant
// plus opaque JSON data.
type ActionPayload struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
	Date time.Time       `json:"date"`
}

// ActiviteDetail is an Activite with its action payload materialized. Raw is
// only set on degraded entries whose payload failed to parse.
type ActiviteDetail struct {
	ID         uint          `json:"id"`
	IDUser     uint          `json:"idUser"`
	Action     ActionPayload `json:"action"`
	Date       time.Time     `json:"date"`
	SuperAdmin bool          `json:"superAdmin"`
	Raw        string        `json:"raw,omitempty"`
}

// ParseAction lazily materializes the serialized action payload. A payload
// that fails to parse comes back as an UNKNOWN entry with the raw string
// retained instead of being dropped.
func (a *Activite) ParseAction() ActiviteDetail {
	d := ActiviteDetail{
		ID:         a.ID,
		IDUser:     a.IDUser,
		Date:       a.Date,
		SuperAdmin: a.SuperAdmin,
	}
	var p ActionPayload
	if err := json.Unmarshal([]byte(a.Action), &p); err != nil || p.Type == "" {
		d.Action = ActionPayload{Type: ActionUnknown}
		d.Raw = a.Action
		return d
	}
	d.Action = p
	return d
}

// Archive keeps a serialized copy of deleted business records until its
// expiration date, linked to the audit entry that recorded the deletion.
type Archive struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	IDActivity uint      `json:"idActivity" gorm:"column:id_activity;not null"`
	DataType   DataType  `json:"dataType" gorm:"not null"`
	Data       string    `json:"data" gorm:"not null"`
	Date       time.Time `json:"date" gorm:"not null"`
	Expiration time.Time `json:"expiration" gorm:"not null"`

	Activite *Activite `json:"activite,omitempty" gorm:"foreignKey:IDActivity"`
}

func (Archive) TableName() string { return "archives" }

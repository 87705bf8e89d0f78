package services

import (
	"context"
	"testing"
	"time"

	"gescom/internal/models"
	"gescom/internal/repository"

	"gorm.io/gorm"
)

func seedMovement(t *testing.T, db *gorm.DB, idProduit uint, typ models.TransactionType, quantite, prix int, date time.Time) {
	t.Helper()
	tr := models.Transaction{
		Type:         typ,
		Quantite:     quantite,
		PrixUnitaire: prix,
		Date:         date,
		IDProduit:    idProduit,
	}
	if err := db.Create(&tr).Error; err != nil {
		t.Fatalf("failed to seed movement: %v", err)
	}
}

func TestBilanHebdomadaire(t *testing.T) {
	deps := newDeps(t)

	// Wednesday 2024-01-10: the current week runs Monday the 8th through
	// Sunday the 14th.
	now := time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC)
	svc := NewFinanceService(repository.NewTransactionRepository(deps.db), nil, func() time.Time { return now })

	monday := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	tuesday := time.Date(2024, 1, 9, 9, 0, 0, 0, time.UTC)
	seedMovement(t, deps.db, deps.produit.ID, models.Sortie, 5, 1000, monday)
	seedMovement(t, deps.db, deps.produit.ID, models.Entree, 3, 500, tuesday)

	bilan, err := svc.BilanHebdomadaire(context.Background())
	if err != nil {
		t.Fatalf("BilanHebdomadaire returned error: %v", err)
	}

	cur := bilan.Current
	if cur.Periode != "08 - 14 Jan 2024" {
		t.Errorf("periode = %q, want %q", cur.Periode, "08 - 14 Jan 2024")
	}
	if cur.ChiffreAffaires != 5000 {
		t.Errorf("chiffreAffaires = %d, want 5000", cur.ChiffreAffaires)
	}
	if cur.CoutVentes != 1500 {
		t.Errorf("coutVentes = %d, want 1500", cur.CoutVentes)
	}
	if cur.MargeBrute != 3500 {
		t.Errorf("margeBrute = %d, want 3500", cur.MargeBrute)
	}
	if cur.MargePourcentage != "70.0%" {
		t.Errorf("margePourcentage = %q, want %q", cur.MargePourcentage, "70.0%")
	}

	// the previous week is empty: +100% against zero, never a division
	if bilan.Previous.MargePourcentage != "0.0%" {
		t.Errorf("previous margePourcentage = %q, want %q", bilan.Previous.MargePourcentage, "0.0%")
	}
	if bilan.Variation.CA != "+100%" {
		t.Errorf("variation ca = %q, want %q", bilan.Variation.CA, "+100%")
	}
}

func TestBilanSundayBelongsToCurrentWeek(t *testing.T) {
	deps := newDeps(t)

	// Sunday 2024-01-14 closes the week started Monday the 8th.
	now := time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC)
	svc := NewFinanceService(repository.NewTransactionRepository(deps.db), nil, func() time.Time { return now })

	seedMovement(t, deps.db, deps.produit.ID, models.Sortie, 1, 1000,
		time.Date(2024, 1, 8, 8, 0, 0, 0, time.UTC))

	bilan, err := svc.BilanHebdomadaire(context.Background())
	if err != nil {
		t.Fatalf("BilanHebdomadaire returned error: %v", err)
	}
	if bilan.Current.ChiffreAffaires != 1000 {
		t.Fatalf("chiffreAffaires = %d, want 1000", bilan.Current.ChiffreAffaires)
	}
}

func TestBilanMensuelVariation(t *testing.T) {
	deps := newDeps(t)

	now := time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC)
	svc := NewFinanceService(repository.NewTransactionRepository(deps.db), nil, func() time.Time { return now })

	// January: ca 2000. February: ca 5000, cout 1000.
	seedMovement(t, deps.db, deps.produit.ID, models.Sortie, 2, 1000,
		time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC))
	seedMovement(t, deps.db, deps.produit.ID, models.Sortie, 5, 1000,
		time.Date(2024, 2, 5, 10, 0, 0, 0, time.UTC))
	seedMovement(t, deps.db, deps.produit.ID, models.Entree, 2, 500,
		time.Date(2024, 2, 6, 10, 0, 0, 0, time.UTC))

	bilan, err := svc.BilanMensuel(context.Background())
	if err != nil {
		t.Fatalf("BilanMensuel returned error: %v", err)
	}
	if bilan.Current.Periode != "February 2024" {
		t.Errorf("periode = %q, want %q", bilan.Current.Periode, "February 2024")
	}
	if bilan.Previous.ChiffreAffaires != 2000 {
		t.Errorf("previous ca = %d, want 2000", bilan.Previous.ChiffreAffaires)
	}
	if bilan.Variation.CA != "+150.0%" {
		t.Errorf("variation ca = %q, want %q", bilan.Variation.CA, "+150.0%")
	}
	// cost went from 0 to 1000
	if bilan.Variation.Cout != "+100%" {
		t.Errorf("variation cout = %q, want %q", bilan.Variation.Cout, "+100%")
	}
}

func TestBilanAnnuelEmptyLedger(t *testing.T) {
	deps := newDeps(t)

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	svc := NewFinanceService(repository.NewTransactionRepository(deps.db), nil, func() time.Time { return now })

	bilan, err := svc.BilanAnnuel(context.Background())
	if err != nil {
		t.Fatalf("BilanAnnuel returned error: %v", err)
	}
	if bilan.Current.Periode != "2024" {
		t.Errorf("periode = %q, want %q", bilan.Current.Periode, "2024")
	}
	if bilan.Current.MargePourcentage != "0.0%" {
		t.Errorf("margePourcentage = %q, want %q", bilan.Current.MargePourcentage, "0.0%")
	}
	if bilan.Variation.CA != "0%" {
		t.Errorf("variation ca = %q, want %q", bilan.Variation.CA, "0%")
	}
}

func TestVariationNegative(t *testing.T) {
	if got := variation(500, 1000); got != "-50.0%" {
		t.Errorf("variation(500, 1000) = %q, want %q", got, "-50.0%")
	}
	if got := variation(1000, 1000); got != "0.0%" {
		t.Errorf("variation(1000, 1000) = %q, want %q", got, "0.0%")
	}
}

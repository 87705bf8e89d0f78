package services

import (
	"errors"
	"testing"
	"time"

	"gescom/internal/apperr"
	"gescom/internal/models"
	"gescom/internal/repository"
)

func newProductService(deps *testDeps) ProductService {
	return NewProductService(
		deps.db,
		repository.NewProductRepository(deps.db),
		repository.NewActivityRepository(deps.db),
		NewActivityService(repository.NewActivityRepository(deps.db)),
		newQueueOnlySyncService(deps.db),
		90*24*time.Hour,
	)
}

func TestUpdateNeverTouchesQuantity(t *testing.T) {
	deps := newDeps(t)
	svc := newProductService(deps)

	updated, err := svc.Update(deps.session, deps.produit.ID, ProductInput{
		Numero:    deps.produit.Numero,
		Nom:       "Sac de riz 50kg",
		PrixAchat: 600,
		PrixVente: 1200,
		Type:      deps.produit.Type,
		Quantite:  999, // must be ignored
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Nom != "Sac de riz 50kg" || updated.PrixVente != 1200 {
		t.Fatalf("product = %+v, fields not updated", updated)
	}
	if updated.Quantite != deps.produit.Quantite {
		t.Fatalf("quantity = %d, want untouched %d", updated.Quantite, deps.produit.Quantite)
	}
}

func TestDeleteArchivesBeforeRemoval(t *testing.T) {
	deps := newDeps(t)
	svc := newProductService(deps)

	if err := svc.Delete(deps.session, deps.produit.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if _, err := svc.Get(deps.session, deps.produit.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound after delete", err)
	}

	var archive models.Archive
	if err := deps.db.First(&archive).Error; err != nil {
		t.Fatalf("failed to load archive: %v", err)
	}
	if archive.DataType != models.DataProduct {
		t.Errorf("archive dataType = %s, want PRODUCT", archive.DataType)
	}
	if archive.Data == "" {
		t.Error("archive kept no serialized copy")
	}
	if !archive.Expiration.After(archive.Date) {
		t.Error("archive expiration must be after its creation date")
	}
	if archive.IDActivity == 0 {
		t.Error("archive not linked to its audit entry")
	}

	// delete and archive creation each enqueue one outbox entry
	if n := countRows(t, deps.db, &models.SyncEntry{}); n != 2 {
		t.Errorf("sync entries = %d, want 2", n)
	}
}

func TestCreateRejectsDuplicateNumero(t *testing.T) {
	deps := newDeps(t)
	svc := newProductService(deps)

	_, err := svc.Create(deps.session, ProductInput{
		Numero: deps.produit.Numero, Nom: "Doublon", Type: "Alimentaire",
	})
	if !errors.Is(err, apperr.ErrIntegrity) {
		t.Fatalf("error = %v, want ErrIntegrity", err)
	}
}

package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"gescom/internal/apperr"
	"gescom/internal/models"
	"gescom/internal/repository"
)

func newOrderFixture(t *testing.T) (*testDeps, OrderService, models.Client) {
	t.Helper()
	deps := newDeps(t)

	client := models.Client{
		Nom:          "Client Test",
		Email:        "client@test.local",
		Telephone:    "770000000",
		IDEntreprise: deps.ent.ID,
	}
	if err := deps.db.Create(&client).Error; err != nil {
		t.Fatalf("failed to seed client: %v", err)
	}

	activities := NewActivityService(repository.NewActivityRepository(deps.db))
	sync := newQueueOnlySyncService(deps.db)
	transactions := NewTransactionService(
		deps.db,
		repository.NewTransactionRepository(deps.db),
		repository.NewProductRepository(deps.db),
		activities,
		sync,
	)
	orders := NewOrderService(
		deps.db,
		repository.NewOrderRepository(deps.db),
		repository.NewInvoiceRepository(deps.db),
		repository.NewClientRepository(deps.db),
		repository.NewProductRepository(deps.db),
		transactions,
		activities,
		sync,
	)
	return deps, orders, client
}

func TestValidateBooksSaleAndIssuesInvoice(t *testing.T) {
	deps, orders, client := newOrderFixture(t)

	commande, err := orders.Create(deps.session, OrderInput{
		IDProduit:    deps.produit.ID,
		IDClient:     client.ID,
		Quantite:     4,
		DatePaiement: time.Now().AddDate(0, 0, 30),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if commande.Valide {
		t.Fatal("new order must not be validated")
	}

	validated, err := orders.Validate(deps.session, commande.ID)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if !validated.Valide {
		t.Fatal("order not marked valide")
	}

	var produit models.Produit
	if err := deps.db.First(&produit, deps.produit.ID).Error; err != nil {
		t.Fatalf("failed to reload product: %v", err)
	}
	if produit.Quantite != deps.produit.Quantite-4 {
		t.Fatalf("quantity = %d, want %d", produit.Quantite, deps.produit.Quantite-4)
	}

	var movement models.Transaction
	if err := deps.db.First(&movement).Error; err != nil {
		t.Fatalf("failed to load ledger row: %v", err)
	}
	if movement.Type != models.Sortie || movement.Quantite != 4 || movement.PrixUnitaire != deps.produit.PrixVente {
		t.Fatalf("ledger row = %+v, want SORTIE 4 x %d", movement, deps.produit.PrixVente)
	}

	var facture models.Facture
	if err := deps.db.Where("id_commande = ?", commande.ID).First(&facture).Error; err != nil {
		t.Fatalf("failed to load facture: %v", err)
	}
	if !strings.HasPrefix(facture.Numero, "FAC-") {
		t.Fatalf("facture numero = %q, want FAC- prefix", facture.Numero)
	}
	if facture.Payed {
		t.Fatal("new facture must not be paid")
	}
}

func TestValidateTwiceIsNoop(t *testing.T) {
	deps, orders, client := newOrderFixture(t)

	commande, err := orders.Create(deps.session, OrderInput{
		IDProduit: deps.produit.ID, IDClient: client.ID, Quantite: 2,
		DatePaiement: time.Now().AddDate(0, 0, 15),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := orders.Validate(deps.session, commande.ID); err != nil {
		t.Fatalf("first Validate returned error: %v", err)
	}
	if _, err := orders.Validate(deps.session, commande.ID); err != nil {
		t.Fatalf("second Validate returned error: %v", err)
	}

	if n := countRows(t, deps.db, &models.Facture{}); n != 1 {
		t.Fatalf("facture rows = %d after double validation, want 1", n)
	}
	if n := countRows(t, deps.db, &models.Transaction{}); n != 1 {
		t.Fatalf("ledger rows = %d after double validation, want 1", n)
	}
}

func TestValidateInsufficientStockRollsBack(t *testing.T) {
	deps, orders, client := newOrderFixture(t)

	commande, err := orders.Create(deps.session, OrderInput{
		IDProduit: deps.produit.ID, IDClient: client.ID,
		Quantite:     deps.produit.Quantite + 5,
		DatePaiement: time.Now().AddDate(0, 0, 15),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := orders.Validate(deps.session, commande.ID); !errors.Is(err, apperr.ErrIntegrity) {
		t.Fatalf("error = %v, want ErrIntegrity", err)
	}

	reloaded, err := orders.Get(deps.session, commande.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if reloaded.Valide {
		t.Fatal("order marked valide despite rejected delivery")
	}
	if n := countRows(t, deps.db, &models.Facture{}); n != 0 {
		t.Fatalf("facture rows = %d after rollback, want 0", n)
	}
}

func TestCreateRejectsUnknownClient(t *testing.T) {
	deps, orders, _ := newOrderFixture(t)

	_, err := orders.Create(deps.session, OrderInput{
		IDProduit: deps.produit.ID, IDClient: 999, Quantite: 1,
		DatePaiement: time.Now(),
	})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"gescom/internal/apperr"
	"gescom/internal/models"
	"gescom/internal/repository"
	"gescom/pkg/remote"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

func newSyncService(db *gorm.DB, baseURL, token string) SyncService {
	tokens := NewTokenSource()
	tokens.Set(token)
	return NewSyncService(
		db,
		repository.NewSyncRepository(db),
		repository.NewEntrepriseRepository(db),
		remote.NewClient(baseURL, 2*time.Second),
		tokens,
		zerolog.Nop(),
	)
}

func enqueueProduct(t *testing.T, svc SyncService, produit models.Produit) {
	t.Helper()
	id := produit.IDEntreprise
	if err := svc.Enqueue(nil, models.DataProduct, models.SyncUpdate, &id, produit); err != nil {
		t.Fatalf("Enqueue returned error: %v", err)
	}
}

func TestRunOnceDrainsQueueFIFO(t *testing.T) {
	deps := newDeps(t)

	var mu sync.Mutex
	var received []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req remote.PushRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode push: %v", err)
		}
		mu.Lock()
		received = append(received, req.ClientID)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := newSyncService(deps.db, srv.URL, "token")
	enqueueProduct(t, svc, deps.produit)
	enqueueProduct(t, svc, deps.produit)
	enqueueProduct(t, svc, deps.produit)

	var queued []models.SyncEntry
	if err := deps.db.Order("id").Find(&queued).Error; err != nil {
		t.Fatalf("failed to read queue: %v", err)
	}

	if err := svc.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce returned error: %v", err)
	}

	if n := countRows(t, deps.db, &models.SyncEntry{}); n != 0 {
		t.Fatalf("queue left with %d entries, want 0", n)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(received) != len(queued) {
		t.Fatalf("remote received %d pushes, want %d", len(received), len(queued))
	}
	for i, entry := range queued {
		if received[i] != entry.ClientID {
			t.Fatalf("push %d = %s, want %s (queue order broken)", i, received[i], entry.ClientID)
		}
	}

	history, err := svc.History(10)
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if len(history) != len(queued) {
		t.Fatalf("history rows = %d, want %d", len(history), len(queued))
	}
	for _, h := range history {
		if h.Type != models.SyncPush {
			t.Fatalf("history type = %s, want PUSH", h.Type)
		}
	}
}

func TestRunOnceNetworkFailureLeavesQueueUntouched(t *testing.T) {
	deps := newDeps(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from now on

	svc := newSyncService(deps.db, srv.URL, "token")
	enqueueProduct(t, svc, deps.produit)
	enqueueProduct(t, svc, deps.produit)

	err := svc.RunOnce(context.Background())
	if !errors.Is(err, apperr.ErrNetwork) {
		t.Fatalf("error = %v, want ErrNetwork", err)
	}
	if n := countRows(t, deps.db, &models.SyncEntry{}); n != 2 {
		t.Fatalf("queue has %d entries after network failure, want 2", n)
	}
	if n := countRows(t, deps.db, &models.SyncHistory{}); n != 0 {
		t.Fatalf("history rows = %d after failed pass, want 0", n)
	}
}

func TestRunOnceTerminalRejectionSurfacesConflict(t *testing.T) {
	deps := newDeps(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "duplicate numero", http.StatusConflict)
	}))
	defer srv.Close()

	svc := newSyncService(deps.db, srv.URL, "token")
	enqueueProduct(t, svc, deps.produit)
	enqueueProduct(t, svc, deps.produit)

	err := svc.RunOnce(context.Background())
	if !errors.Is(err, apperr.ErrSyncConflict) {
		t.Fatalf("error = %v, want ErrSyncConflict", err)
	}
	// a rejected entry is kept, and so is everything behind it
	if n := countRows(t, deps.db, &models.SyncEntry{}); n != 2 {
		t.Fatalf("queue has %d entries after rejection, want 2", n)
	}
}

func TestRunOnceTransientFailureRetriesLater(t *testing.T) {
	deps := newDeps(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	svc := newSyncService(deps.db, srv.URL, "token")
	enqueueProduct(t, svc, deps.produit)

	// a 5xx is transient: no conflict reported, entry kept for the next pass
	if err := svc.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce returned error: %v", err)
	}
	if n := countRows(t, deps.db, &models.SyncEntry{}); n != 1 {
		t.Fatalf("queue has %d entries, want 1", n)
	}
}

func TestRunOnceWithoutSessionIsNoop(t *testing.T) {
	deps := newDeps(t)

	svc := newSyncService(deps.db, "http://127.0.0.1:0", "")
	enqueueProduct(t, svc, deps.produit)

	if err := svc.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce returned error: %v", err)
	}
	if n := countRows(t, deps.db, &models.SyncEntry{}); n != 1 {
		t.Fatalf("queue has %d entries, want 1", n)
	}
}

func TestPullReplaysPendingLocalEdits(t *testing.T) {
	deps := newDeps(t)

	// remote claims quantity 99; a local un-pushed edit says 42
	remoteCopy := deps.produit
	remoteCopy.Quantite = 99
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := remote.PullResponse{
			Entreprise: &deps.ent,
			Produits:   []models.Produit{remoteCopy},
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("failed to encode pull response: %v", err)
		}
	}))
	defer srv.Close()

	svc := newSyncService(deps.db, srv.URL, "token")
	localCopy := deps.produit
	localCopy.Quantite = 42
	enqueueProduct(t, svc, localCopy)

	if err := svc.Pull(context.Background(), deps.ent.ID); err != nil {
		t.Fatalf("Pull returned error: %v", err)
	}

	var produit models.Produit
	if err := deps.db.First(&produit, deps.produit.ID).Error; err != nil {
		t.Fatalf("failed to reload product: %v", err)
	}
	if produit.Quantite != 42 {
		t.Fatalf("quantity = %d after pull, want the un-pushed local 42", produit.Quantite)
	}

	var history []models.SyncHistory
	if err := deps.db.Find(&history).Error; err != nil {
		t.Fatalf("failed to read history: %v", err)
	}
	if len(history) != 1 || history[0].Type != models.SyncPull {
		t.Fatalf("history = %+v, want one PULL row", history)
	}
}

func TestPullWithoutSessionRejected(t *testing.T) {
	deps := newDeps(t)
	svc := newSyncService(deps.db, "http://127.0.0.1:0", "")
	if err := svc.Pull(context.Background(), deps.ent.ID); !errors.Is(err, apperr.ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}
}

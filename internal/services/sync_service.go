package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gescom/internal/apperr"
	"gescom/internal/models"
	"gescom/internal/repository"
	"gescom/internal/utils"
	"gescom/pkg/remote"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// SyncService is the outbox: local mutations enqueue entries in the same
// transaction as the mutation, a background runner drains them FIFO per
// entreprise, and a pull path reconciles authoritative remote state back
// into the store.
type SyncService interface {
	Enqueue(tx *gorm.DB, dataType models.DataType, action models.SyncAction, idEntreprise *uint, payload interface{}) error
	// RunOnce drains the queue once. A network failure stops the pass with
	// every remaining entry untouched; terminal remote rejections are
	// surfaced as sync conflicts and never reorder a queue.
	RunOnce(ctx context.Context) error
	// Pull fetches authoritative remote state for one entreprise and
	// reconciles it, replaying still-queued local entries on top so no
	// un-pushed edit is silently dropped.
	Pull(ctx context.Context, idEntreprise uint) error
	// Run drains the queue on a fixed interval until the context is
	// cancelled. Cancellation never corrupts an entry: each confirmed push
	// is settled in its own transaction.
	Run(ctx context.Context, interval time.Duration)
	History(limit int) ([]models.SyncHistory, error)
}

type syncService struct {
	db             *gorm.DB
	syncRepo       repository.SyncRepository
	entrepriseRepo repository.EntrepriseRepository
	remote         *remote.Client
	tokens         *TokenSource
	log            zerolog.Logger
}

func NewSyncService(
	db *gorm.DB,
	syncRepo repository.SyncRepository,
	entrepriseRepo repository.EntrepriseRepository,
	remoteClient *remote.Client,
	tokens *TokenSource,
	log zerolog.Logger,
) SyncService {
	return &syncService{
		db:             db,
		syncRepo:       syncRepo,
		entrepriseRepo: entrepriseRepo,
		remote:         remoteClient,
		tokens:         tokens,
		log:            log,
	}
}

func (s *syncService) Enqueue(tx *gorm.DB, dataType models.DataType, action models.SyncAction, idEntreprise *uint, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal sync payload: %w", err)
	}
	entry := &models.SyncEntry{
		ClientID:     utils.NewSyncClientID(),
		DataType:     dataType,
		Data:         string(data),
		IDEntreprise: idEntreprise,
		Action:       action,
		CreatedAt:    time.Now().UTC(),
	}
	repo := s.syncRepo
	if tx != nil {
		repo = repo.WithTx(tx)
	}
	return repo.CreateEntry(entry)
}

func (s *syncService) RunOnce(ctx context.Context) error {
	token := s.tokens.Get()
	if token == "" {
		return nil // no session yet, nothing to push
	}

	ids, err := s.syncRepo.PendingEntreprises()
	if err != nil {
		return err
	}

	var conflict error
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		entries, err := s.syncRepo.PendingByEntreprise(id)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := s.remote.PushEntry(ctx, token, entry)
			if err == nil {
				if err := s.settleEntry(entry.ID); err != nil {
					return err
				}
				continue
			}

			var httpErr *remote.HTTPError
			if errors.As(err, &httpErr) {
				if httpErr.Terminal() {
					conflict = apperr.SyncConflict("entry %s (%s %s) rejected: %v",
						entry.ClientID, entry.Action, entry.DataType, httpErr)
					s.log.Error().
						Str("clientId", entry.ClientID).
						Str("dataType", string(entry.DataType)).
						Int("status", httpErr.StatusCode).
						Msg("sync entry rejected by remote")
				} else {
					s.log.Warn().
						Str("clientId", entry.ClientID).
						Int("status", httpErr.StatusCode).
						Msg("transient remote failure, entry left for retry")
				}
				// stop this entreprise's queue to preserve FIFO order
				break
			}

			// network failure: stop the whole pass, entries untouched
			return err
		}
	}
	return conflict
}

// settleEntry removes a confirmed entry and appends its history row in one
// transaction, so a cancelled drain never half-settles an entry.
func (s *syncService) settleEntry(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.syncRepo.WithTx(tx)
		if err := repo.DeleteEntry(id); err != nil {
			return err
		}
		return repo.CreateHistory(&models.SyncHistory{
			Type:     models.SyncPush,
			DateSync: time.Now().UTC(),
		})
	})
}

func (s *syncService) Pull(ctx context.Context, idEntreprise uint) error {
	token := s.tokens.Get()
	if token == "" {
		return apperr.ErrInvalidCredentials
	}

	pull, err := s.remote.Pull(ctx, token, idEntreprise)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		// remote wins for entity identity and foreign keys
		if pull.Entreprise != nil {
			if err := s.entrepriseRepo.WithTx(tx).Upsert(pull.Entreprise); err != nil {
				return err
			}
		}
		for i := range pull.Professions {
			if err := tx.Save(&pull.Professions[i]).Error; err != nil {
				return err
			}
		}
		for i := range pull.Utilisateurs {
			if err := tx.Save(&pull.Utilisateurs[i]).Error; err != nil {
				return err
			}
		}
		for i := range pull.Clients {
			if err := tx.Save(&pull.Clients[i]).Error; err != nil {
				return err
			}
		}
		for i := range pull.Produits {
			if err := tx.Save(&pull.Produits[i]).Error; err != nil {
				return err
			}
		}

		// replay locally queued mutations on top: an un-pushed edit must
		// survive the pull
		pending, err := s.syncRepo.WithTx(tx).PendingByEntreprise(&idEntreprise)
		if err != nil {
			return err
		}
		for _, entry := range pending {
			if err := s.replayEntry(tx, entry); err != nil {
				return err
			}
		}

		return s.syncRepo.WithTx(tx).CreateHistory(&models.SyncHistory{
			Type:     models.SyncPull,
			DateSync: time.Now().UTC(),
		})
	})
}

// replayEntry re-applies a queued local mutation over freshly pulled state.
// Append-only data (transactions, activities, archives, commandes) is
// already present locally and untouched by the pull, so only the mutable
// aggregates need replaying.
func (s *syncService) replayEntry(tx *gorm.DB, entry models.SyncEntry) error {
	if entry.Action == models.SyncDelete {
		// a locally deleted record stays deleted until the remote confirms
		return s.replayDelete(tx, entry)
	}
	switch entry.DataType {
	case models.DataProduct:
		var p models.Produit
		if err := json.Unmarshal([]byte(entry.Data), &p); err != nil {
			return apperr.SyncConflict("unreadable queued payload %s: %v", entry.ClientID, err)
		}
		return tx.Save(&p).Error
	case models.DataClient:
		var c models.Client
		if err := json.Unmarshal([]byte(entry.Data), &c); err != nil {
			return apperr.SyncConflict("unreadable queued payload %s: %v", entry.ClientID, err)
		}
		return tx.Save(&c).Error
	case models.DataProfession:
		var p models.Profession
		if err := json.Unmarshal([]byte(entry.Data), &p); err != nil {
			return apperr.SyncConflict("unreadable queued payload %s: %v", entry.ClientID, err)
		}
		return tx.Save(&p).Error
	case models.DataUser:
		var u models.Utilisateur
		if err := json.Unmarshal([]byte(entry.Data), &u); err != nil {
			return apperr.SyncConflict("unreadable queued payload %s: %v", entry.ClientID, err)
		}
		return tx.Save(&u).Error
	default:
		return nil
	}
}

func (s *syncService) replayDelete(tx *gorm.DB, entry models.SyncEntry) error {
	type ided struct {
		ID uint `json:"id"`
	}
	var ref ided
	if err := json.Unmarshal([]byte(entry.Data), &ref); err != nil || ref.ID == 0 {
		return nil
	}
	switch entry.DataType {
	case models.DataProduct:
		return tx.Delete(&models.Produit{}, ref.ID).Error
	case models.DataClient:
		return tx.Delete(&models.Client{}, ref.ID).Error
	case models.DataProfession:
		return tx.Delete(&models.Profession{}, ref.ID).Error
	default:
		return nil
	}
}

func (s *syncService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("sync runner stopped")
			return
		case <-ticker.C:
			if err := s.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
				if errors.Is(err, apperr.ErrNetwork) {
					s.log.Debug().Err(err).Msg("remote unreachable, drain deferred")
				} else {
					s.log.Error().Err(err).Msg("sync drain failed")
				}
			}
		}
	}
}

func (s *syncService) History(limit int) ([]models.SyncHistory, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.syncRepo.GetHistory(limit)
}

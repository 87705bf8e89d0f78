package services

import (
	"time"

	"gescom/internal/apperr"
	"gescom/internal/models"
	"gescom/internal/repository"

	"gorm.io/gorm"
)

type InvoiceService interface {
	// List returns the entreprise's invoices with the derived overdue flag
	// refreshed against the current clock.
	List(session models.Session) ([]models.Facture, error)
	Get(session models.Session, id uint) (*models.Facture, error)
	Pay(session models.Session, id uint) (*models.Facture, error)
}

type invoiceService struct {
	db          *gorm.DB
	invoiceRepo repository.InvoiceRepository
	activities  ActivityService
	sync        SyncService
	now         func() time.Time
}

func NewInvoiceService(
	db *gorm.DB,
	invoiceRepo repository.InvoiceRepository,
	activities ActivityService,
	syncService SyncService,
	now func() time.Time,
) InvoiceService {
	if now == nil {
		now = time.Now
	}
	return &invoiceService{
		db:          db,
		invoiceRepo: invoiceRepo,
		activities:  activities,
		sync:        syncService,
		now:         now,
	}
}

func (s *invoiceService) List(session models.Session) ([]models.Facture, error) {
	factures, err := s.invoiceRepo.GetByEntreprise(session.IDEntreprise)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	for i := range factures {
		retard := factures[i].EstEnRetard(now)
		if retard != factures[i].Retard {
			factures[i].Retard = retard
			if err := s.invoiceRepo.Update(&factures[i]); err != nil {
				return nil, err
			}
		}
	}
	return factures, nil
}

func (s *invoiceService) Get(session models.Session, id uint) (*models.Facture, error) {
	facture, err := s.invoiceRepo.GetByID(id, session.IDEntreprise)
	if err != nil {
		return nil, err
	}
	retard := facture.EstEnRetard(s.now().UTC())
	if retard != facture.Retard {
		facture.Retard = retard
		if err := s.invoiceRepo.Update(facture); err != nil {
			return nil, err
		}
	}
	return facture, nil
}

func (s *invoiceService) Pay(session models.Session, id uint) (*models.Facture, error) {
	var facture *models.Facture
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		facture, err = s.invoiceRepo.WithTx(tx).GetByID(id, session.IDEntreprise)
		if err != nil {
			return err
		}
		if facture.Payed {
			return apperr.Validation("facture %s is already paid", facture.Numero)
		}
		facture.Payed = true
		facture.Retard = false
		facture.DatePaiement = s.now().UTC()

		if err := s.invoiceRepo.WithTx(tx).Update(facture); err != nil {
			return err
		}
		if _, err := s.activities.Record(tx, session, models.ActionPaiementFacture, facture); err != nil {
			return err
		}
		idEntreprise := session.IDEntreprise
		return s.sync.Enqueue(tx, models.DataCommand, models.SyncUpdate, &idEntreprise, facture)
	})
	if err != nil {
		return nil, err
	}
	return facture, nil
}

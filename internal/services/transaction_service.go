package services

import (
	"time"

	"gescom/internal/apperr"
	"gescom/internal/models"
	"gescom/internal/repository"

	"gorm.io/gorm"
)

type TransactionInput struct {
	Type         models.TransactionType `json:"type"`
	Quantite     int                    `json:"quantite"`
	PrixUnitaire int                    `json:"prixUnitaire"`
	IDProduit    uint                   `json:"produitId"`
	Ref          string                 `json:"ref"`
}

// TransactionService writes the immutable stock ledger. Product quantity is
// mutated exclusively here, atomically with the ledger row, its audit record
// and its outbox entry.
type TransactionService interface {
	Add(session models.Session, input TransactionInput) (*models.Transaction, error)
	// AddInTx runs the same movement inside an enclosing transaction, for
	// flows that combine a movement with another mutation (order delivery).
	AddInTx(tx *gorm.DB, session models.Session, input TransactionInput) (*models.Transaction, error)
	GetByProduct(session models.Session, idProduit uint) ([]models.Transaction, error)
}

type transactionService struct {
	db              *gorm.DB
	transactionRepo repository.TransactionRepository
	productRepo     repository.ProductRepository
	activities      ActivityService
	sync            SyncService
}

func NewTransactionService(
	db *gorm.DB,
	transactionRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	activities ActivityService,
	syncService SyncService,
) TransactionService {
	return &transactionService{
		db:              db,
		transactionRepo: transactionRepo,
		productRepo:     productRepo,
		activities:      activities,
		sync:            syncService,
	}
}

func (s *transactionService) Add(session models.Session, input TransactionInput) (*models.Transaction, error) {
	var created *models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = s.AddInTx(tx, session, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *transactionService) AddInTx(tx *gorm.DB, session models.Session, input TransactionInput) (*models.Transaction, error) {
	if input.Quantite <= 0 {
		return nil, apperr.Validation("quantity must be positive")
	}
	if input.Type != models.Entree && input.Type != models.Sortie {
		return nil, apperr.Validation("unknown transaction type %q", input.Type)
	}

	produit, err := s.productRepo.WithTx(tx).GetByID(input.IDProduit, session.IDEntreprise)
	if err != nil {
		return nil, err
	}

	switch input.Type {
	case models.Entree:
		produit.Quantite += input.Quantite
	case models.Sortie:
		if produit.Quantite < input.Quantite {
			// rejected atomically with the write: the whole transaction
			// rolls back and the store is unchanged
			return nil, apperr.Integrity("stock of %s would go negative (%d - %d)",
				produit.Nom, produit.Quantite, input.Quantite)
		}
		produit.Quantite -= input.Quantite
	}

	transaction := &models.Transaction{
		Type:         input.Type,
		Quantite:     input.Quantite,
		PrixUnitaire: input.PrixUnitaire,
		Date:         time.Now().UTC(),
		IDProduit:    produit.ID,
		Ref:          input.Ref,
	}
	if err := s.transactionRepo.WithTx(tx).Create(transaction); err != nil {
		return nil, err
	}
	if err := s.productRepo.WithTx(tx).Update(produit); err != nil {
		return nil, err
	}

	if _, err := s.activities.Record(tx, session, models.ActionTransactionStock, transaction); err != nil {
		return nil, err
	}
	idEntreprise := session.IDEntreprise
	if err := s.sync.Enqueue(tx, models.DataTransaction, models.SyncCreate, &idEntreprise, transaction); err != nil {
		return nil, err
	}
	if err := s.sync.Enqueue(tx, models.DataProduct, models.SyncUpdate, &idEntreprise, produit); err != nil {
		return nil, err
	}
	return transaction, nil
}

func (s *transactionService) GetByProduct(session models.Session, idProduit uint) ([]models.Transaction, error) {
	if _, err := s.productRepo.GetByID(idProduit, session.IDEntreprise); err != nil {
		return nil, err
	}
	return s.transactionRepo.GetByProduct(idProduit)
}

package services

import (
	"fmt"
	"time"

	"gescom/internal/apperr"
	"gescom/internal/models"
	"gescom/internal/repository"
	"gescom/internal/utils"

	"gorm.io/gorm"
)

type OrderInput struct {
	IDProduit    uint      `json:"idProduit"`
	IDClient     uint      `json:"idClient"`
	Quantite     int       `json:"quantite"`
	DatePaiement time.Time `json:"datePaiement"`
}

type OrderService interface {
	List(session models.Session) ([]models.Commande, error)
	Get(session models.Session, id uint) (*models.Commande, error)
	Create(session models.Session, input OrderInput) (*models.Commande, error)
	// Validate marks an order delivered: a one-way transition that books
	// the SORTIE stock movement and issues the invoice. It never reverts
	// and validating twice is a no-op.
	Validate(session models.Session, id uint) (*models.Commande, error)
}

type orderService struct {
	db           *gorm.DB
	orderRepo    repository.OrderRepository
	invoiceRepo  repository.InvoiceRepository
	clientRepo   repository.ClientRepository
	productRepo  repository.ProductRepository
	transactions TransactionService
	activities   ActivityService
	sync         SyncService
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	transactions TransactionService,
	activities ActivityService,
	syncService SyncService,
) OrderService {
	return &orderService{
		db:           db,
		orderRepo:    orderRepo,
		invoiceRepo:  invoiceRepo,
		clientRepo:   clientRepo,
		productRepo:  productRepo,
		transactions: transactions,
		activities:   activities,
		sync:         syncService,
	}
}

func (s *orderService) List(session models.Session) ([]models.Commande, error) {
	return s.orderRepo.GetByEntreprise(session.IDEntreprise)
}

func (s *orderService) Get(session models.Session, id uint) (*models.Commande, error) {
	return s.orderRepo.GetByID(id, session.IDEntreprise)
}

func (s *orderService) Create(session models.Session, input OrderInput) (*models.Commande, error) {
	if input.Quantite <= 0 {
		return nil, apperr.Validation("order quantity must be positive")
	}
	if _, err := s.productRepo.GetByID(input.IDProduit, session.IDEntreprise); err != nil {
		return nil, err
	}
	if _, err := s.clientRepo.GetByID(input.IDClient, session.IDEntreprise); err != nil {
		return nil, err
	}

	commande := &models.Commande{
		IDProduit:    input.IDProduit,
		IDClient:     input.IDClient,
		Quantite:     input.Quantite,
		Valide:       false,
		Date:         time.Now().UTC(),
		DatePaiement: input.DatePaiement,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).Create(commande); err != nil {
			return err
		}
		if _, err := s.activities.Record(tx, session, models.ActionCreationCommande, commande); err != nil {
			return err
		}
		idEntreprise := session.IDEntreprise
		return s.sync.Enqueue(tx, models.DataCommand, models.SyncCreate, &idEntreprise, commande)
	})
	if err != nil {
		return nil, err
	}
	return commande, nil
}

func (s *orderService) Validate(session models.Session, id uint) (*models.Commande, error) {
	var commande *models.Commande
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		commande, err = s.orderRepo.WithTx(tx).GetByID(id, session.IDEntreprise)
		if err != nil {
			return err
		}
		if commande.Valide {
			return nil // already delivered, never reverts
		}

		produit, err := s.productRepo.WithTx(tx).GetByID(commande.IDProduit, session.IDEntreprise)
		if err != nil {
			return err
		}

		// delivering the order books the sale in the stock ledger; the
		// quantity guard lives there
		if _, err := s.transactions.AddInTx(tx, session, TransactionInput{
			Type:         models.Sortie,
			Quantite:     commande.Quantite,
			PrixUnitaire: produit.PrixVente,
			IDProduit:    produit.ID,
			Ref:          fmt.Sprintf("commande #%d", commande.ID),
		}); err != nil {
			return err
		}

		commande.Valide = true
		if err := s.orderRepo.WithTx(tx).Update(commande); err != nil {
			return err
		}

		facture := &models.Facture{
			Numero:       utils.NewFactureNumero(),
			IDCommande:   commande.ID,
			DatePaiement: commande.DatePaiement,
		}
		if err := s.invoiceRepo.WithTx(tx).Create(facture); err != nil {
			return err
		}

		if _, err := s.activities.Record(tx, session, models.ActionValidationCommande, commande); err != nil {
			return err
		}
		idEntreprise := session.IDEntreprise
		return s.sync.Enqueue(tx, models.DataCommand, models.SyncUpdate, &idEntreprise, commande)
	})
	if err != nil {
		return nil, err
	}
	return commande, nil
}

package services

import (
	"encoding/json"
	"time"

	"gescom/internal/apperr"
	"gescom/internal/models"
	"gescom/internal/repository"

	"gorm.io/gorm"
)

type ProductInput struct {
	Numero    string `json:"numero"`
	Nom       string `json:"nom"`
	PrixAchat int    `json:"prixAchat"`
	PrixVente int    `json:"prixVente"`
	Type      string `json:"type"`
	Quantite  int    `json:"quantite"`
}

type ProductService interface {
	List(session models.Session) ([]models.Produit, error)
	Get(session models.Session, id uint) (*models.Produit, error)
	Create(session models.Session, input ProductInput) (*models.Produit, error)
	// Update never touches quantity; stock corrections go through an
	// explicit ENTREE/SORTIE movement.
	Update(session models.Session, id uint, input ProductInput) (*models.Produit, error)
	Delete(session models.Session, id uint) error
}

type productService struct {
	db           *gorm.DB
	productRepo  repository.ProductRepository
	activityRepo repository.ActivityRepository
	activities   ActivityService
	sync         SyncService
	archiveTTL   time.Duration
}

func NewProductService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	activityRepo repository.ActivityRepository,
	activities ActivityService,
	syncService SyncService,
	archiveTTL time.Duration,
) ProductService {
	return &productService{
		db:           db,
		productRepo:  productRepo,
		activityRepo: activityRepo,
		activities:   activities,
		sync:         syncService,
		archiveTTL:   archiveTTL,
	}
}

func (s *productService) List(session models.Session) ([]models.Produit, error) {
	return s.productRepo.GetByEntreprise(session.IDEntreprise)
}

func (s *productService) Get(session models.Session, id uint) (*models.Produit, error) {
	return s.productRepo.GetByID(id, session.IDEntreprise)
}

func (s *productService) Create(session models.Session, input ProductInput) (*models.Produit, error) {
	if input.Nom == "" || input.Numero == "" {
		return nil, apperr.Validation("product name and number are required")
	}
	if input.Quantite < 0 || input.PrixAchat < 0 || input.PrixVente < 0 {
		return nil, apperr.Validation("quantities and prices cannot be negative")
	}

	produit := &models.Produit{
		Numero:       input.Numero,
		Nom:          input.Nom,
		PrixAchat:    input.PrixAchat,
		PrixVente:    input.PrixVente,
		Type:         input.Type,
		Quantite:     input.Quantite,
		IDEntreprise: session.IDEntreprise,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.WithTx(tx).Create(produit); err != nil {
			return err
		}
		if _, err := s.activities.Record(tx, session, models.ActionCreationProduit, produit); err != nil {
			return err
		}
		idEntreprise := session.IDEntreprise
		return s.sync.Enqueue(tx, models.DataProduct, models.SyncCreate, &idEntreprise, produit)
	})
	if err != nil {
		return nil, err
	}
	return produit, nil
}

func (s *productService) Update(session models.Session, id uint, input ProductInput) (*models.Produit, error) {
	if input.Nom == "" || input.Numero == "" {
		return nil, apperr.Validation("product name and number are required")
	}

	var produit *models.Produit
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		produit, err = s.productRepo.WithTx(tx).GetByID(id, session.IDEntreprise)
		if err != nil {
			return err
		}
		produit.Nom = input.Nom
		produit.Numero = input.Numero
		produit.PrixAchat = input.PrixAchat
		produit.PrixVente = input.PrixVente
		produit.Type = input.Type

		if err := s.productRepo.WithTx(tx).Update(produit); err != nil {
			return err
		}
		if _, err := s.activities.Record(tx, session, models.ActionModifProduit, produit); err != nil {
			return err
		}
		idEntreprise := session.IDEntreprise
		return s.sync.Enqueue(tx, models.DataProduct, models.SyncUpdate, &idEntreprise, produit)
	})
	if err != nil {
		return nil, err
	}
	return produit, nil
}

// Delete archives a serialized copy of the product before removal, linked to
// the audit entry recording the deletion.
func (s *productService) Delete(session models.Session, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		produit, err := s.productRepo.WithTx(tx).GetByID(id, session.IDEntreprise)
		if err != nil {
			return err
		}

		activite, err := s.activities.Record(tx, session, models.ActionSuppressionProduit, produit)
		if err != nil {
			return err
		}

		data, err := json.Marshal(produit)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		archive := &models.Archive{
			IDActivity: activite.ID,
			DataType:   models.DataProduct,
			Data:       string(data),
			Date:       now,
			Expiration: now.Add(s.archiveTTL),
		}
		if err := s.activityRepo.WithTx(tx).CreateArchive(archive); err != nil {
			return err
		}

		if err := s.productRepo.WithTx(tx).Delete(id, session.IDEntreprise); err != nil {
			return err
		}
		idEntreprise := session.IDEntreprise
		if err := s.sync.Enqueue(tx, models.DataProduct, models.SyncDelete, &idEntreprise, produit); err != nil {
			return err
		}
		return s.sync.Enqueue(tx, models.DataArchive, models.SyncCreate, &idEntreprise, archive)
	})
}

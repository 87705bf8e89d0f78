package services

import (
	"gescom/internal/apperr"
	"gescom/internal/models"
	"gescom/internal/repository"

	"gorm.io/gorm"
)

type ClientInput struct {
	Nom       string `json:"nom"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
}

type ClientService interface {
	List(session models.Session) ([]models.Client, error)
	Get(session models.Session, id uint) (*models.Client, error)
	Create(session models.Session, input ClientInput) (*models.Client, error)
	Update(session models.Session, id uint, input ClientInput) (*models.Client, error)
	Delete(session models.Session, id uint) error
}

type clientService struct {
	db         *gorm.DB
	clientRepo repository.ClientRepository
	sync       SyncService
}

func NewClientService(db *gorm.DB, clientRepo repository.ClientRepository, syncService SyncService) ClientService {
	return &clientService{db: db, clientRepo: clientRepo, sync: syncService}
}

func (s *clientService) List(session models.Session) ([]models.Client, error) {
	return s.clientRepo.GetByEntreprise(session.IDEntreprise)
}

func (s *clientService) Get(session models.Session, id uint) (*models.Client, error) {
	return s.clientRepo.GetByID(id, session.IDEntreprise)
}

func (s *clientService) Create(session models.Session, input ClientInput) (*models.Client, error) {
	if input.Nom == "" || input.Email == "" {
		return nil, apperr.Validation("client name and email are required")
	}
	client := &models.Client{
		Nom:          input.Nom,
		Email:        input.Email,
		Telephone:    input.Telephone,
		IDEntreprise: session.IDEntreprise,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.clientRepo.WithTx(tx).Create(client); err != nil {
			return err
		}
		idEntreprise := session.IDEntreprise
		return s.sync.Enqueue(tx, models.DataClient, models.SyncCreate, &idEntreprise, client)
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) Update(session models.Session, id uint, input ClientInput) (*models.Client, error) {
	if input.Nom == "" || input.Email == "" {
		return nil, apperr.Validation("client name and email are required")
	}
	var client *models.Client
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		client, err = s.clientRepo.WithTx(tx).GetByID(id, session.IDEntreprise)
		if err != nil {
			return err
		}
		client.Nom = input.Nom
		client.Email = input.Email
		client.Telephone = input.Telephone
		if err := s.clientRepo.WithTx(tx).Update(client); err != nil {
			return err
		}
		idEntreprise := session.IDEntreprise
		return s.sync.Enqueue(tx, models.DataClient, models.SyncUpdate, &idEntreprise, client)
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) Delete(session models.Session, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		client, err := s.clientRepo.WithTx(tx).GetByID(id, session.IDEntreprise)
		if err != nil {
			return err
		}
		if err := s.clientRepo.WithTx(tx).Delete(id, session.IDEntreprise); err != nil {
			return err
		}
		idEntreprise := session.IDEntreprise
		return s.sync.Enqueue(tx, models.DataClient, models.SyncDelete, &idEntreprise, client)
	})
}

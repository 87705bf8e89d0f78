package services

import (
	"gescom/internal/apperr"
	"gescom/internal/models"
	"gescom/internal/repository"

	"gorm.io/gorm"
)

type ProfessionInput struct {
	Poste   string `json:"poste"`
	Salaire int    `json:"salaire"`
}

// ProfessionService manages job positions. Every operation is role-gated:
// only admins touch professions.
type ProfessionService interface {
	List(session models.Session) ([]models.Profession, error)
	Create(session models.Session, input ProfessionInput) (*models.Profession, error)
	Update(session models.Session, id uint, input ProfessionInput) (*models.Profession, error)
	Delete(session models.Session, id uint) error
}

type professionService struct {
	db             *gorm.DB
	professionRepo repository.ProfessionRepository
	activities     ActivityService
	sync           SyncService
}

func NewProfessionService(
	db *gorm.DB,
	professionRepo repository.ProfessionRepository,
	activities ActivityService,
	syncService SyncService,
) ProfessionService {
	return &professionService{
		db:             db,
		professionRepo: professionRepo,
		activities:     activities,
		sync:           syncService,
	}
}

func (s *professionService) List(session models.Session) ([]models.Profession, error) {
	return s.professionRepo.GetByEntreprise(session.IDEntreprise)
}

func (s *professionService) Create(session models.Session, input ProfessionInput) (*models.Profession, error) {
	if !session.IsAdmin() {
		return nil, apperr.ErrForbidden
	}
	if input.Poste == "" {
		return nil, apperr.Validation("job title is required")
	}
	if input.Salaire < 0 {
		return nil, apperr.Validation("salary cannot be negative")
	}

	profession := &models.Profession{
		Poste:        input.Poste,
		Salaire:      input.Salaire,
		IDEntreprise: session.IDEntreprise,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.professionRepo.WithTx(tx).Create(profession); err != nil {
			return err
		}
		idEntreprise := session.IDEntreprise
		return s.sync.Enqueue(tx, models.DataProfession, models.SyncCreate, &idEntreprise, profession)
	})
	if err != nil {
		return nil, err
	}
	return profession, nil
}

func (s *professionService) Update(session models.Session, id uint, input ProfessionInput) (*models.Profession, error) {
	if !session.IsAdmin() {
		return nil, apperr.ErrForbidden
	}
	if input.Poste == "" {
		return nil, apperr.Validation("job title is required")
	}

	var profession *models.Profession
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		profession, err = s.professionRepo.WithTx(tx).GetByID(id, session.IDEntreprise)
		if err != nil {
			return err
		}
		profession.Poste = input.Poste
		profession.Salaire = input.Salaire
		if err := s.professionRepo.WithTx(tx).Update(profession); err != nil {
			return err
		}
		idEntreprise := session.IDEntreprise
		return s.sync.Enqueue(tx, models.DataProfession, models.SyncUpdate, &idEntreprise, profession)
	})
	if err != nil {
		return nil, err
	}
	return profession, nil
}

func (s *professionService) Delete(session models.Session, id uint) error {
	if !session.IsAdmin() {
		return apperr.ErrForbidden
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		profession, err := s.professionRepo.WithTx(tx).GetByID(id, session.IDEntreprise)
		if err != nil {
			return err
		}
		if err := s.professionRepo.WithTx(tx).Delete(id, session.IDEntreprise); err != nil {
			return err
		}
		idEntreprise := session.IDEntreprise
		return s.sync.Enqueue(tx, models.DataProfession, models.SyncDelete, &idEntreprise, profession)
	})
}

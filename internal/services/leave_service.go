package services

import (
	"time"

	"gescom/internal/apperr"
	"gescom/internal/models"
	"gescom/internal/repository"

	"gorm.io/gorm"
)

type LeaveInput struct {
	IDUser    uint      `json:"idUser"`
	DateDebut time.Time `json:"dateDebut"`
	DateFin   time.Time `json:"dateFin"`
}

type LeaveService interface {
	Add(session models.Session, input LeaveInput) (*models.Conge, error)
	Cancel(session models.Session, id uint) error
	ListForUser(session models.Session, idUser uint) ([]models.Conge, error)
	// IsOnLeave reports whether now is at or before the end date of some
	// leave record for the user.
	IsOnLeave(idUser uint, now time.Time) (bool, error)
}

type leaveService struct {
	db         *gorm.DB
	leaveRepo  repository.LeaveRepository
	userRepo   repository.UserRepository
	activities ActivityService
	sync       SyncService
}

func NewLeaveService(
	db *gorm.DB,
	leaveRepo repository.LeaveRepository,
	userRepo repository.UserRepository,
	activities ActivityService,
	syncService SyncService,
) LeaveService {
	return &leaveService{
		db:         db,
		leaveRepo:  leaveRepo,
		userRepo:   userRepo,
		activities: activities,
		sync:       syncService,
	}
}

func (s *leaveService) Add(session models.Session, input LeaveInput) (*models.Conge, error) {
	if !session.IsAdmin() {
		return nil, apperr.ErrForbidden
	}
	if !input.DateFin.After(input.DateDebut) {
		return nil, apperr.Validation("leave end date must be after its start date")
	}
	user, err := s.userRepo.GetByID(input.IDUser)
	if err != nil {
		return nil, err
	}
	if user.Profession == nil || user.Profession.IDEntreprise != session.IDEntreprise {
		return nil, apperr.NotFound("no user %d in this entreprise", input.IDUser)
	}

	conge := &models.Conge{
		IDUser:    input.IDUser,
		DateDebut: input.DateDebut,
		DateFin:   input.DateFin,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.leaveRepo.WithTx(tx).Create(conge); err != nil {
			return err
		}
		if _, err := s.activities.Record(tx, session, models.ActionValidationConge, conge); err != nil {
			return err
		}
		idEntreprise := session.IDEntreprise
		return s.sync.Enqueue(tx, models.DataUser, models.SyncUpdate, &idEntreprise, conge)
	})
	if err != nil {
		return nil, err
	}
	return conge, nil
}

func (s *leaveService) Cancel(session models.Session, id uint) error {
	if !session.IsAdmin() {
		return apperr.ErrForbidden
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		conge, err := s.leaveRepo.WithTx(tx).GetByID(id)
		if err != nil {
			return err
		}
		if conge.Utilisateur == nil || conge.Utilisateur.Profession == nil ||
			conge.Utilisateur.Profession.IDEntreprise != session.IDEntreprise {
			return apperr.NotFound("no leave %d in this entreprise", id)
		}
		if err := s.leaveRepo.WithTx(tx).Delete(id); err != nil {
			return err
		}
		if _, err := s.activities.Record(tx, session, models.ActionAnnulationConge, conge); err != nil {
			return err
		}
		idEntreprise := session.IDEntreprise
		return s.sync.Enqueue(tx, models.DataUser, models.SyncUpdate, &idEntreprise, conge)
	})
}

func (s *leaveService) ListForUser(session models.Session, idUser uint) ([]models.Conge, error) {
	user, err := s.userRepo.GetByID(idUser)
	if err != nil {
		return nil, err
	}
	if user.Profession == nil || user.Profession.IDEntreprise != session.IDEntreprise {
		return nil, apperr.NotFound("no user %d in this entreprise", idUser)
	}
	return s.leaveRepo.GetByUser(idUser)
}

func (s *leaveService) IsOnLeave(idUser uint, now time.Time) (bool, error) {
	return s.leaveRepo.HasActiveLeave(idUser, now)
}

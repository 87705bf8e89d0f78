package services

import (
	"encoding/json"
	"fmt"
	"time"

	"gescom/internal/models"
	"gescom/internal/repository"

	"gorm.io/gorm"
)

type ActivityService interface {
	// Record appends one audit row inside the caller's transaction so the
	// mutation and its audit record cannot diverge. The superAdmin flag is
	// frozen from the acting session's role at write time.
	Record(tx *gorm.DB, session models.Session, actionType string, data interface{}) (*models.Activite, error)
	// ListForUser returns entries most recent first, payloads materialized
	// lazily; unparseable payloads come back degraded, never dropped.
	ListForUser(idUser uint) ([]models.ActiviteDetail, error)
}

type activityService struct {
	activityRepo repository.ActivityRepository
}

func NewActivityService(activityRepo repository.ActivityRepository) ActivityService {
	return &activityService{activityRepo: activityRepo}
}

func (s *activityService) Record(tx *gorm.DB, session models.Session, actionType string, data interface{}) (*models.Activite, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal action data: %w", err)
	}
	now := time.Now().UTC()
	payload, err := json.Marshal(models.ActionPayload{
		Type: actionType,
		Data: raw,
		Date: now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal action payload: %w", err)
	}

	activite := &models.Activite{
		IDUser:     session.UserID,
		Action:     string(payload),
		Date:       now,
		SuperAdmin: session.Role == models.RoleSuperAdmin,
	}

	repo := s.activityRepo
	if tx != nil {
		repo = repo.WithTx(tx)
	}
	if err := repo.Create(activite); err != nil {
		return nil, err
	}
	return activite, nil
}

func (s *activityService) ListForUser(idUser uint) ([]models.ActiviteDetail, error) {
	activites, err := s.activityRepo.GetByUser(idUser)
	if err != nil {
		return nil, err
	}
	details := make([]models.ActiviteDetail, 0, len(activites))
	for i := range activites {
		details = append(details, activites[i].ParseAction())
	}
	return details, nil
}

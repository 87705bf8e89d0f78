package services

import (
	"errors"
	"testing"
	"time"

	"gescom/internal/apperr"
	"gescom/internal/models"
	"gescom/internal/repository"
)

func newLeaveService(deps *testDeps) LeaveService {
	return NewLeaveService(
		deps.db,
		repository.NewLeaveRepository(deps.db),
		repository.NewUserRepository(deps.db),
		NewActivityService(repository.NewActivityRepository(deps.db)),
		newQueueOnlySyncService(deps.db),
	)
}

func TestAddLeaveAndIsOnLeave(t *testing.T) {
	deps := newDeps(t)
	svc := newLeaveService(deps)

	now := time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)
	conge, err := svc.Add(deps.session, LeaveInput{
		IDUser:    deps.user.ID,
		DateDebut: now.AddDate(0, 0, -1),
		DateFin:   now.AddDate(0, 0, 5),
	})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if conge.ID == 0 {
		t.Fatal("expected persisted leave id")
	}

	onLeave, err := svc.IsOnLeave(deps.user.ID, now)
	if err != nil {
		t.Fatalf("IsOnLeave returned error: %v", err)
	}
	if !onLeave {
		t.Fatal("user inside the leave window must be on leave")
	}

	after, err := svc.IsOnLeave(deps.user.ID, now.AddDate(0, 0, 30))
	if err != nil {
		t.Fatalf("IsOnLeave returned error: %v", err)
	}
	if after {
		t.Fatal("user past the leave window must not be on leave")
	}
}

func TestAddLeaveRejectsInvertedDates(t *testing.T) {
	deps := newDeps(t)
	svc := newLeaveService(deps)

	now := time.Now()
	_, err := svc.Add(deps.session, LeaveInput{
		IDUser: deps.user.ID, DateDebut: now, DateFin: now.AddDate(0, 0, -2),
	})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
}

func TestCancelLeaveRequiresAdmin(t *testing.T) {
	deps := newDeps(t)
	svc := newLeaveService(deps)

	conge, err := svc.Add(deps.session, LeaveInput{
		IDUser:    deps.user.ID,
		DateDebut: time.Now(),
		DateFin:   time.Now().AddDate(0, 0, 3),
	})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	plain := deps.session
	plain.Role = models.RoleUser
	if err := svc.Cancel(plain, conge.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("error = %v, want ErrForbidden", err)
	}

	if err := svc.Cancel(deps.session, conge.ID); err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	conges, err := svc.ListForUser(deps.session, deps.user.ID)
	if err != nil {
		t.Fatalf("ListForUser returned error: %v", err)
	}
	if len(conges) != 0 {
		t.Fatalf("leaves = %d after cancel, want 0", len(conges))
	}
}

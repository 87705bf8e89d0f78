package services

import (
	"errors"
	"testing"

	"gescom/internal/apperr"
	"gescom/internal/models"
	"gescom/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func newUserService(deps *testDeps) UserService {
	return NewUserService(
		deps.db,
		repository.NewUserRepository(deps.db),
		repository.NewProfessionRepository(deps.db),
		repository.NewLeaveRepository(deps.db),
		NewActivityService(repository.NewActivityRepository(deps.db)),
		newQueueOnlySyncService(deps.db),
		bcrypt.MinCost,
	)
}

func TestRegisterRequiresAdmin(t *testing.T) {
	deps := newDeps(t)
	svc := newUserService(deps)

	plain := deps.session
	plain.Role = models.RoleUser
	_, err := svc.Register(plain, RegisterInput{
		Nom: "Quelqu'un", Email: "q@test.local", Password: "motdepasse1",
		Role: models.RoleUser, IDProfession: deps.user.IDProfession,
	})
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("error = %v, want ErrForbidden", err)
	}
}

func TestRegisterCreatesAccount(t *testing.T) {
	deps := newDeps(t)
	svc := newUserService(deps)

	user, err := svc.Register(deps.session, RegisterInput{
		Nom:          "Vendeur Test",
		Email:        "  Vendeur@Test.Local ",
		Password:     "motdepasse1",
		Role:         models.RoleUser,
		IDProfession: deps.user.IDProfession,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "vendeur@test.local" {
		t.Errorf("email = %q, want normalized lowercase", user.Email)
	}
	if user.MotDePasse == "motdepasse1" {
		t.Error("password stored in clear")
	}

	// audit and outbox rows commit with the account
	if n := countRows(t, deps.db, &models.Activite{}); n != 1 {
		t.Errorf("activity rows = %d, want 1", n)
	}
	if n := countRows(t, deps.db, &models.SyncEntry{}); n != 1 {
		t.Errorf("sync entries = %d, want 1", n)
	}
}

func TestRegisterRejectsForeignProfession(t *testing.T) {
	deps := newDeps(t)
	svc := newUserService(deps)

	other := models.Entreprise{Nom: "Autre", Email: "autre@test.local", Ref: "A-1", Activite: "Autre"}
	if err := deps.db.Create(&other).Error; err != nil {
		t.Fatalf("failed to seed entreprise: %v", err)
	}
	foreign := models.Profession{Poste: "Caissier", Salaire: 1, IDEntreprise: other.ID}
	if err := deps.db.Create(&foreign).Error; err != nil {
		t.Fatalf("failed to seed profession: %v", err)
	}

	_, err := svc.Register(deps.session, RegisterInput{
		Nom: "Intrus", Email: "intrus@test.local", Password: "motdepasse1",
		Role: models.RoleUser, IDProfession: foreign.ID,
	})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestListPersonnelJoinsProfessionAndLeaves(t *testing.T) {
	deps := newDeps(t)
	svc := newUserService(deps)

	personnel, err := svc.ListPersonnel(deps.session)
	if err != nil {
		t.Fatalf("ListPersonnel returned error: %v", err)
	}
	if len(personnel) != 1 {
		t.Fatalf("personnel = %d, want 1", len(personnel))
	}
	if personnel[0].Poste == "" || personnel[0].Salaire == 0 {
		t.Fatalf("personnel row %+v missing profession join", personnel[0])
	}
}

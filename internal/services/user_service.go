package services

import (
	"strings"

	"gescom/internal/apperr"
	"gescom/internal/models"
	"gescom/internal/repository"
	"gescom/internal/utils"

	"gorm.io/gorm"
)

type RegisterInput struct {
	Nom          string      `json:"nom"`
	Email        string      `json:"email"`
	Password     string      `json:"password"`
	Role         models.Role `json:"role"`
	IDProfession uint        `json:"idProfession"`
}

// Personnel is a staff listing row: the user joined with profession, salary
// and leave records.
type Personnel struct {
	ID      uint           `json:"id"`
	Nom     string         `json:"nom"`
	Email   string         `json:"email"`
	Role    models.Role    `json:"role"`
	Poste   string         `json:"poste"`
	Salaire int            `json:"salaire"`
	Conges  []models.Conge `json:"conges"`
}

type UserService interface {
	// Register creates a staff account. Only admin roles may do it.
	Register(session models.Session, input RegisterInput) (*models.Utilisateur, error)
	ListPersonnel(session models.Session) ([]Personnel, error)
	Get(session models.Session, id uint) (*models.Utilisateur, error)
}

type userService struct {
	db             *gorm.DB
	userRepo       repository.UserRepository
	professionRepo repository.ProfessionRepository
	leaveRepo      repository.LeaveRepository
	activities     ActivityService
	sync           SyncService
	bcryptCost     int
}

func NewUserService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	professionRepo repository.ProfessionRepository,
	leaveRepo repository.LeaveRepository,
	activities ActivityService,
	syncService SyncService,
	bcryptCost int,
) UserService {
	return &userService{
		db:             db,
		userRepo:       userRepo,
		professionRepo: professionRepo,
		leaveRepo:      leaveRepo,
		activities:     activities,
		sync:           syncService,
		bcryptCost:     bcryptCost,
	}
}

func (s *userService) Register(session models.Session, input RegisterInput) (*models.Utilisateur, error) {
	if !session.IsAdmin() {
		return nil, apperr.ErrForbidden
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Nom == "" || input.Email == "" {
		return nil, apperr.Validation("name and email are required")
	}
	if len(input.Password) < 8 {
		return nil, apperr.Validation("password must be at least 8 characters")
	}
	switch input.Role {
	case models.RoleSuperAdmin, models.RoleAdmin, models.RoleUser:
	default:
		return nil, apperr.Validation("unknown role %q", input.Role)
	}

	// the profession anchors the user to an entreprise; it must be ours
	if _, err := s.professionRepo.GetByID(input.IDProfession, session.IDEntreprise); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.Utilisateur{
		Nom:          input.Nom,
		Email:        input.Email,
		MotDePasse:   hash,
		Role:         input.Role,
		IDProfession: input.IDProfession,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).Create(user); err != nil {
			return err
		}
		if _, err := s.activities.Record(tx, session, models.ActionCreationUtilisateur, user); err != nil {
			return err
		}
		idEntreprise := session.IDEntreprise
		return s.sync.Enqueue(tx, models.DataUser, models.SyncCreate, &idEntreprise, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ListPersonnel(session models.Session) ([]Personnel, error) {
	if !session.IsAdmin() {
		return nil, apperr.ErrForbidden
	}
	users, err := s.userRepo.GetByEntreprise(session.IDEntreprise)
	if err != nil {
		return nil, err
	}
	personnel := make([]Personnel, 0, len(users))
	for i := range users {
		p := Personnel{
			ID:    users[i].ID,
			Nom:   users[i].Nom,
			Email: users[i].Email,
			Role:  users[i].Role,
		}
		if users[i].Profession != nil {
			p.Poste = users[i].Profession.Poste
			p.Salaire = users[i].Profession.Salaire
		}
		conges, err := s.leaveRepo.GetByUser(users[i].ID)
		if err != nil {
			return nil, err
		}
		p.Conges = conges
		personnel = append(personnel, p)
	}
	return personnel, nil
}

func (s *userService) Get(session models.Session, id uint) (*models.Utilisateur, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user.Profession == nil || user.Profession.IDEntreprise != session.IDEntreprise {
		return nil, apperr.NotFound("no user %d in this entreprise", id)
	}
	return user, nil
}

package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gescom/internal/apperr"
	"gescom/internal/cache"
	"gescom/internal/models"
	"gescom/internal/repository"
	"gescom/internal/utils"
	"gescom/pkg/remote"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// AuthService resolves an email/password pair into a verified identity and
// session token, preferring the remote authority and falling back to the
// local mirror only when the remote is unreachable.
type AuthService interface {
	Login(ctx context.Context, email, password, ip, userAgent string) (*models.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	// ValidateToken checks the blacklist before anything else: a
	// blacklisted token is rejected regardless of signature validity.
	ValidateToken(ctx context.Context, token string) (models.Session, error)
	RequestPasswordReset(email string) (*models.PasswordReset, error)
	ResetPassword(code, newPassword string) error
}

type authService struct {
	userRepo   repository.UserRepository
	tokenRepo  repository.TokenRepository
	remote     *remote.Client
	cache      *cache.Client
	tokens     *TokenSource
	secret     string
	tokenTTL   time.Duration
	bcryptCost int
	log        zerolog.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	remoteClient *remote.Client,
	cacheClient *cache.Client,
	tokens *TokenSource,
	secret string,
	tokenTTL time.Duration,
	bcryptCost int,
	log zerolog.Logger,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		remote:     remoteClient,
		cache:      cacheClient,
		tokens:     tokens,
		secret:     secret,
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
		log:        log,
	}
}

func (s *authService) Login(ctx context.Context, email, password, ip, userAgent string) (*models.LoginResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	// 1. remote attempt: any HTTP response is authoritative
	resp, err := s.remote.Login(ctx, email, password)
	if err == nil {
		s.tokens.Set(resp.Token)
		s.journal(resp.User.ID, ip, userAgent, resp.Token, true)
		return resp, nil
	}

	var httpErr *remote.HTTPError
	if errors.As(err, &httpErr) {
		// the remote was reachable and rejected the credentials; this is
		// an authentication failure, never a fallback trigger
		if httpErr.StatusCode == 404 {
			return nil, apperr.NotFound("unknown account %s", email)
		}
		return nil, apperr.ErrInvalidCredentials
	}
	if !errors.Is(err, apperr.ErrNetwork) {
		return nil, err
	}

	// 2. remote unreachable: local fallback
	s.log.Info().Str("email", email).Msg("remote unreachable, local login")

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.NotFound("no local account for %s", email)
		}
		return nil, err
	}
	if user.Profession == nil || user.Profession.Entreprise == nil {
		return nil, apperr.NotFound("account %s has no entreprise locally", email)
	}
	if !utils.VerifyPassword(user.MotDePasse, password) {
		return nil, apperr.ErrInvalidCredentials
	}

	session := models.Session{
		UserID:       user.ID,
		Email:        user.Email,
		Nom:          user.Nom,
		Role:         user.Role,
		IDEntreprise: user.Profession.IDEntreprise,
	}
	token, err := utils.NewSessionToken(s.secret, session, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	s.tokens.Set(token)
	s.journal(user.ID, ip, userAgent, token, true)

	// shaped identically to the remote success response
	return &models.LoginResponse{
		Token: token,
		User: models.LoginUser{
			ID:    user.ID,
			Nom:   user.Nom,
			Email: user.Email,
			Role:  user.Role,
			Profession: models.LoginProfession{
				Poste:        user.Profession.Poste,
				IDEntreprise: user.Profession.IDEntreprise,
				Entreprise:   *user.Profession.Entreprise,
			},
		},
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	expiry := s.tokenExpiry(token)

	if err := s.tokenRepo.Blacklist(token, expiry); err != nil {
		return err
	}
	if err := s.cache.BlacklistToken(ctx, token, time.Until(expiry)); err != nil {
		s.log.Warn().Err(err).Msg("blacklist cache write failed")
	}
	if err := s.tokenRepo.RecordLogout(token, time.Now().UTC()); err != nil {
		s.log.Warn().Err(err).Msg("logout journal update failed")
	}
	s.tokens.Clear()
	return nil
}

func (s *authService) ValidateToken(ctx context.Context, token string) (models.Session, error) {
	// blacklist always wins over signature validity
	if s.cache.IsTokenBlacklisted(ctx, token) {
		return models.Session{}, apperr.ErrInvalidCredentials
	}
	blacklisted, err := s.tokenRepo.IsBlacklisted(token)
	if err != nil {
		return models.Session{}, err
	}
	if blacklisted {
		return models.Session{}, apperr.ErrInvalidCredentials
	}
	return utils.ParseSessionToken(s.secret, token)
}

func (s *authService) RequestPasswordReset(email string) (*models.PasswordReset, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.userRepo.GetByEmail(email); err != nil {
		return nil, err
	}
	reset := &models.PasswordReset{
		Email:     email,
		Code:      utils.NewResetCode(),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.tokenRepo.CreateReset(reset); err != nil {
		return nil, err
	}
	return reset, nil
}

func (s *authService) ResetPassword(code, newPassword string) error {
	if len(newPassword) < 8 {
		return apperr.Validation("password must be at least 8 characters")
	}
	reset, err := s.tokenRepo.GetResetByCode(code)
	if err != nil {
		return err
	}
	if reset.Used || time.Now().UTC().After(reset.ExpiresAt) {
		return apperr.Validation("reset code expired or already used")
	}
	user, err := s.userRepo.GetByEmail(reset.Email)
	if err != nil {
		return err
	}
	hash, err := utils.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(user.ID, hash); err != nil {
		return err
	}
	return s.tokenRepo.MarkResetUsed(reset.ID)
}

func (s *authService) journal(userID uint, ip, userAgent, token string, success bool) {
	if userID == 0 {
		return
	}
	err := s.tokenRepo.RecordAuthentication(&models.Authentication{
		IDUser:    userID,
		IPAddress: ip,
		UserAgent: userAgent,
		LoginAt:   time.Now().UTC(),
		Token:     token,
		Success:   success,
	})
	if err != nil {
		s.log.Warn().Err(err).Uint("user", userID).Msg("login journal write failed")
	}
}

// tokenExpiry reads the exp claim without verifying the signature; a token
// being blacklisted must not depend on it still verifying.
func (s *authService) tokenExpiry(token string) time.Time {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err == nil {
		if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time
		}
	}
	return time.Now().UTC().Add(s.tokenTTL)
}

package utils

import (
	"time"

	"gescom/internal/apperr"
	"gescom/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// NewSessionToken signs an HS256 JWT embedding the session identity with a
// fixed TTL. Locally minted tokens carry the same claims as remote ones.
func NewSessionToken(secret string, session models.Session, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"userId":       session.UserID,
		"email":        session.Email,
		"nom":          session.Nom,
		"role":         string(session.Role),
		"idEntreprise": session.IDEntreprise,
		"exp":          now.Add(ttl).Unix(),
		"iat":          now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseSessionToken verifies signature and expiry and rebuilds the session.
// It does not consult the blacklist; that check belongs to the caller and
// always wins over signature validity.
func ParseSessionToken(secret, token string) (models.Session, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return models.Session{}, apperr.ErrInvalidCredentials
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return models.Session{}, apperr.ErrInvalidCredentials
	}
	return models.Session{
		UserID:       uint(numClaim(claims, "userId")),
		Email:        strClaim(claims, "email"),
		Nom:          strClaim(claims, "nom"),
		Role:         models.Role(strClaim(claims, "role")),
		IDEntreprise: uint(numClaim(claims, "idEntreprise")),
	}, nil
}

func numClaim(claims jwt.MapClaims, key string) float64 {
	if v, ok := claims[key].(float64); ok {
		return v
	}
	return 0
}

func strClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

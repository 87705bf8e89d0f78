package models

import "time"

// BlacklistedToken invalidates a session before its natural JWT expiry. A
// token present here is rejected regardless of signature validity.
type BlacklistedToken struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	Token   string    `json:"token" gorm:"unique;not null"`
	Expired time.Time `json:"expired" gorm:"not null"`
}

func (BlacklistedToken) TableName() string { return "blacklisted_tokens" }

// PasswordReset is a one-time recovery code with an expiry.
type PasswordReset struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"not null"`
	Code      string    `json:"code" gorm:"unique;not null"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null"`
	Used      bool      `json:"used" gorm:"default:false"`
	CreatedAt time.Time `json:"createdAt"`
}

func (PasswordReset) TableName() string { return "password_resets" }

// Authentication journals every local login and logout.
type Authentication struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	IDUser    uint       `json:"idUser" gorm:"column:id_user;not null"`
	IPAddress string     `json:"ipAddress"`
	UserAgent string     `json:"userAgent"`
	LoginAt   time.Time  `json:"loginAt" gorm:"not null"`
	LogoutAt  *time.Time `json:"logoutAt"`
	Token     string     `json:"token"`
	Success   bool       `json:"success" gorm:"default:true"`
}

func (Authentication) TableName() string { return "authentications" }

// Session is the verified identity threaded explicitly through every
// protected operation. There is no ambient current-user state.
type Session struct {
	UserID       uint   `json:"userId"`
	Email        string `json:"email"`
	Nom          string `json:"nom"`
	Role         Role   `json:"role"`
	IDEntreprise uint   `json:"idEntreprise"`
}

// IsAdmin reports whether the session may perform HR and profession
// management operations.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin || s.Role == RoleSuperAdmin
}

// LoginResponse is the identity shape returned by the remote authority. The
// local fallback builds the exact same shape so callers cannot distinguish
// origin.
type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

type LoginUser struct {
	ID         uint            `json:"id"`
	Nom        string          `json:"nom"`
	Email      string          `json:"email"`
	Role       Role            `json:"role"`
	Profession LoginProfession `json:"profession"`
}

type LoginProfession struct {
	Poste        string     `json:"poste"`
	IDEntreprise uint       `json:"idEntreprise"`
	Entreprise   Entreprise `json:"entreprise"`
}

package models

import (
	"time"

	"github.com/golang-jwt/jwt"
)

// User roles as stored in users.role and carried in JWT claims.
const (
	RoleHomeowner = "homeowner"
	RoleProvider  = "provider"
	RoleAdmin     = "admin"
)

// Account statuses.
const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

type User struct {
	ID                string     `json:"id"`
	Email             string     `json:"email"`
	FullName          string     `json:"full_name"`
	Phone             *string    `json:"phone,omitempty"`
	Role              string     `json:"role"`
	Status            string     `json:"status"`
	SuspensionEndDate *time.Time `json:"suspension_end_date,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

// Actor is the authenticated caller resolved by the JWT middleware.
type Actor struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

type Session struct {
	UserID       string    `json:"user_id"`
	Role         string    `json:"role"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

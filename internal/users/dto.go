package users

import (
	"time"

	"github.com/HUNTSTAR747/referred-space-server/pkg/db/models"
	"github.com/google/uuid"
)

// UserDTO exposes safe account data in API responses.
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateUserDTO holds creation-time data for a new account.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
}

// FromModel maps the persisted user into a DTO.
func FromModel(m *models.User) *UserDTO {
	if m == nil {
		return nil
	}
	return &UserDTO{
		ID:          m.ID,
		Email:       m.Email,
		IsActive:    m.IsActive,
		LastLoginAt: m.LastLoginAt,
		CreatedAt:   m.CreatedAt,
	}
}

// ToModel prepares the GORM model from creation DTO.
func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		IsActive:     true,
	}
}

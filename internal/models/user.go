package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type UserRole string

const (
	RoleClient   UserRole = "client"
	RoleSupplier UserRole = "supplier"
)

// Address is the structured Brazilian address used for profiles and
// delivery snapshots. ZipCode is the CEP.
type Address struct {
	Street       string   `json:"street" validate:"required"`
	Number       string   `json:"number"`
	Neighborhood string   `json:"neighborhood"`
	City         string   `json:"city" validate:"required"`
	State        string   `json:"state" validate:"required"`
	ZipCode      string   `json:"zip_code" validate:"required"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

func (a *Address) HasCoordinates() bool {
	return a != nil && a.Latitude != nil && a.Longitude != nil
}

type User struct {
	ID        uuid.UUID `json:"id"`
	Role      UserRole  `json:"role"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Phone     string    `json:"phone,omitempty"`
	CPF       string    `json:"cpf,omitempty"`
	CNPJ      string    `json:"cnpj,omitempty"`
	Address   *Address  `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	Name     string   `json:"name" validate:"required"`
	Role     UserRole `json:"role" validate:"required,oneof=client supplier"`
	Phone    string   `json:"phone,omitempty"`
	CPF      string   `json:"cpf,omitempty"`
	CNPJ     string   `json:"cnpj,omitempty"`
	Address  *Address `json:"address,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Success        bool     `json:"success"`
	Token          string   `json:"token,omitempty"`
	ExpiresIn      int      `json:"expires_in,omitempty"`
	Role           UserRole `json:"role,omitempty"`
	RemainingTries int      `json:"remaining_tries,omitempty"`
	RetryAfter     int      `json:"retry_after,omitempty"`
	Message        string   `json:"message,omitempty"`
}

type UpdateProfileRequest struct {
	Name    *string  `json:"name,omitempty" validate:"omitempty,min=2"`
	Phone   *string  `json:"phone,omitempty"`
	Address *Address `json:"address,omitempty"`
}

type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   UserRole  `json:"role"`
	jwt.RegisteredClaims
}

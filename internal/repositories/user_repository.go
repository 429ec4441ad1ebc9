package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Izioneves/Facilapp-1.2/internal/models"
	"github.com/Izioneves/Facilapp-1.2/internal/utils"
	"github.com/google/uuid"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	addressJSON, err := marshalAddress(user.Address)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO profiles (id, role, name, email, password, phone, cpf, cnpj, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		user.ID, user.Role, user.Name, user.Email, user.Password,
		user.Phone, user.CPF, user.CNPJ, addressJSON,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, role, name, email, password, phone, cpf, cnpj, address, created_at, updated_at
		FROM profiles
		WHERE email = $1
	`

	return r.scanUser(r.DB.QueryRowContext(dbCtx, query, email))
}

func (r *userRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, role, name, email, password, phone, cpf, cnpj, address, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`

	return r.scanUser(r.DB.QueryRowContext(dbCtx, query, id))
}

func (r *userRepository) UpdateUser(ctx context.Context, user *models.User) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	addressJSON, err := marshalAddress(user.Address)
	if err != nil {
		return err
	}

	query := `
		UPDATE profiles
		SET name = $1, phone = $2, address = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := r.DB.ExecContext(dbCtx, query, user.Name, user.Phone, addressJSON, time.Now(), user.ID)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *userRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}

	var addressJSON []byte

	err := row.Scan(&user.ID, &user.Role, &user.Name, &user.Email, &user.Password,
		&user.Phone, &user.CPF, &user.CNPJ, &addressJSON, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	if len(addressJSON) > 0 {
		if err := json.Unmarshal(addressJSON, &user.Address); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile address: %w", err)
		}
	}

	return user, nil
}

func marshalAddress(address *models.Address) ([]byte, error) {
	if address == nil {
		return nil, nil
	}

	data, err := json.Marshal(address)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal address: %w", err)
	}

	return data, nil
}

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Izioneves/Facilapp-1.2/internal/errors"
	"github.com/Izioneves/Facilapp-1.2/internal/models"
	repository "github.com/Izioneves/Facilapp-1.2/internal/repositories"
	"github.com/Izioneves/Facilapp-1.2/pkg/cep"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req *models.UpdateProfileRequest) (*models.User, error)
}

type userService struct {
	repo      repository.UserRepository
	storeRepo repository.StoreRepository
	rateLimit repository.RateLimitRepository
	cepClient cep.Client
	jwtKey    []byte
}

func NewUserService(repo repository.UserRepository, storeRepo repository.StoreRepository, rateLimit repository.RateLimitRepository, cepClient cep.Client, jwtKey []byte) UserService {
	return &userService{
		repo:      repo,
		storeRepo: storeRepo,
		rateLimit: rateLimit,
		cepClient: cepClient,
		jwtKey:    jwtKey,
	}
}

// Register creates the profile and, for suppliers, the supplier's store.
func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	existingUser, _ := s.repo.GetUserByEmail(ctx, req.Email)
	if existingUser != nil {
		return nil, errors.DuplicateEntryError("Email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("Failed to secure password").WithError(err)
	}

	user := &models.User{
		ID:       uuid.New(),
		Role:     req.Role,
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Phone:    req.Phone,
		CPF:      req.CPF,
		CNPJ:     req.CNPJ,
		Address:  req.Address,
	}

	s.geocodeAddress(ctx, user)

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, errors.DatabaseError("Failed to create user").WithError(err)
	}

	if user.Role == models.RoleSupplier {
		if err := s.createDefaultStore(ctx, user); err != nil {
			// The profile exists; the store can be created on first product.
			slog.Error("Failed to create default store",
				slog.String("supplierId", user.ID.String()), slog.String("error", err.Error()))
		}
	}

	return user, nil
}

// geocodeAddress fills missing profile coordinates from the CEP. Best
// effort: delivery checks re-resolve when coordinates are still absent.
func (s *userService) geocodeAddress(ctx context.Context, user *models.User) {
	addr := user.Address
	if addr == nil || addr.ZipCode == "" || addr.HasCoordinates() {
		return
	}

	result, err := s.cepClient.FetchAddress(ctx, addr.ZipCode)
	if err != nil {
		slog.Warn("Failed to geocode registration address",
			slog.String("cep", addr.ZipCode), slog.String("error", err.Error()))

		return
	}

	addr.Latitude = result.Lat
	addr.Longitude = result.Lon
}

func (s *userService) createDefaultStore(ctx context.Context, user *models.User) error {
	store := &models.Store{
		ID:         uuid.New(),
		SupplierID: user.ID,
		Name:       user.Name,
		Active:     true,
	}

	if user.Address != nil {
		store.Latitude = user.Address.Latitude
		store.Longitude = user.Address.Longitude
	}

	return s.storeRepo.CreateStore(ctx, store)
}

func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	allowed, remaining, retryAfter, err := s.rateLimit.CheckLoginRateLimit(ctx, req.Email)
	if err != nil {
		return nil, errors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return &models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: retryAfter,
		}, nil
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return &models.LoginResponse{
			Success:        false,
			Message:        "Invalid email or password",
			RemainingTries: remaining,
		}, nil
	}

	claims := &models.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &models.LoginResponse{
		Success:   true,
		Token:     tokenString,
		Role:      user.Role,
		ExpiresIn: int(time.Until(claims.ExpiresAt.Time).Seconds()),
	}, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("User not found").WithError(err)
	}

	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("User not found").WithError(err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}

	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	if req.Address != nil {
		user.Address = req.Address
		s.geocodeAddress(ctx, user)
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, errors.DatabaseError("Failed to update profile").WithError(err)
	}

	return user, nil
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/rapidxcel-logistics/internal/application/dto"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain/entity"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain/repository"
	"github.com/jhoicas/rapidxcel-logistics/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de identidad: registro, login, logout y perfil.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	collections repository.CollectionRepository
	revocations repository.RevocationRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	collections repository.CollectionRepository,
	revocations repository.RevocationRepository,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, collections: collections, revocations: revocations, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario con password bcrypt. ErrEmailAlreadyExists si el
// email ya existe, ErrInvalidRole si el rol no pertenece al conjunto cerrado.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) error {
	role := entity.ParseRole(in.Role)
	if !role.Known() {
		return domain.ErrInvalidRole
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}
	return uc.userRepo.Create(ctx, user)
}

// Login verifica email/password y emite el token de sesión.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Message:   "Logged in successfully",
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
	}, nil
}

// Authenticate valida el token y que no haya sido revocado por logout.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	revoked, err := uc.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}
	return claims, nil
}

// Logout revoca el token hasta su expiración natural.
func (uc *AuthUseCase) Logout(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil {
		return domain.ErrUnauthorized
	}
	until := time.Now().Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute)
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	return uc.revocations.Revoke(ctx, claims.ID, until)
}

// Profile devuelve el usuario con las colecciones propias de su rol.
func (uc *AuthUseCase) Profile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := uc.loadCollections(ctx, user); err != nil {
		return nil, fmt.Errorf("colecciones de %s: %w", user.Role, err)
	}
	return dto.NewProfileResponse(user), nil
}

func (uc *AuthUseCase) loadCollections(ctx context.Context, u *entity.User) error {
	var err error
	switch u.Role {
	case entity.RoleInventoryManager:
		if u.Stocks, err = uc.collections.ListStocks(ctx); err != nil {
			return err
		}
		if u.Suppliers, err = uc.collections.ListSuppliers(ctx); err != nil {
			return err
		}
		u.ReplenishmentOrders, err = uc.collections.ListReplenishmentOrders(ctx, u.ID)
	case entity.RoleSupplier:
		if u.Products, err = uc.collections.ListSupplierProducts(ctx, u.ID); err != nil {
			return err
		}
		u.SupplyOrders, err = uc.collections.ListSupplyOrders(ctx, u.ID)
	case entity.RoleCustomer:
		if u.Products, err = uc.collections.ListCatalogProducts(ctx); err != nil {
			return err
		}
		u.Notifications, err = uc.collections.ListNotifications(ctx, u.ID)
	case entity.RoleCourierService:
		if u.Deliveries, err = uc.collections.ListCourierOrders(ctx, u.ID); err != nil {
			return err
		}
		u.Notifications, err = uc.collections.ListNotifications(ctx, u.ID)
	default:
		return domain.ErrInvalidRole
	}
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}

package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/repository"
	"github.com/wibodev-id/enterprise-retail-pos-system/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig holds token generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

var knownRoles = map[string]bool{
	entity.RoleCashier:    true,
	entity.RoleSupervisor: true,
	entity.RoleDirector:   true,
	entity.RoleAdmin:      true,
	entity.RoleITAdmin:    true,
}

// UseCase covers registration and login for POS operators.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

func NewUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// RegisterInput is a new operator account.
type RegisterInput struct {
	Username string
	Name     string
	Password string
	Role     string
}

// Register hashes the password with bcrypt and persists the user. The role
// defaults to cashier; unknown roles are rejected.
func (uc *UseCase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	in.Username = strings.TrimSpace(strings.ToLower(in.Username))
	if in.Username == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleCashier
	}
	if !knownRoles[role] {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = in.Username
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// LoginResult is a successful authentication.
type LoginResult struct {
	Token string
	User  *entity.User
}

// Login verifies username/password and returns a signed JWT carrying the
// user's role.
func (uc *UseCase) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	user, err := uc.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthenticated
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}

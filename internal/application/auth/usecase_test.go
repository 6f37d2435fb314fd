package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/auth"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/infrastructure/memory"
	pkgjwt "github.com/wibodev-id/enterprise-retail-pos-system/pkg/jwt"
)

var jwtCfg = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "retail-pos-test"}

func newUseCase() *auth.UseCase {
	return auth.NewUseCase(memory.NewUserRepository(memory.NewStore()), jwtCfg)
}

func TestRegister_DefaultsAndNormalization(t *testing.T) {
	uc := newUseCase()

	user, err := uc.Register(context.Background(), auth.RegisterInput{
		Username: "  Carla ", Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "carla", user.Username, "usernames are lowercased")
	assert.Equal(t, entity.RoleCashier, user.Role, "role defaults to cashier")
	assert.Equal(t, "carla", user.Name, "name falls back to the username")
	assert.NotEqual(t, "correct-horse", user.PasswordHash)
}

func TestRegister_Validation(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	_, err := uc.Register(ctx, auth.RegisterInput{Username: "carla", Password: "short"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(ctx, auth.RegisterInput{Username: "", Password: "correct-horse"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(ctx, auth.RegisterInput{Username: "carla", Password: "correct-horse", Role: "superuser"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	_, err := uc.Register(ctx, auth.RegisterInput{Username: "carla", Password: "correct-horse"})
	require.NoError(t, err)

	// Case-insensitive: CARLA collides with carla.
	_, err = uc.Register(ctx, auth.RegisterInput{Username: "CARLA", Password: "battery-staple"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestLogin_TokenCarriesIdentityAndRole(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	registered, err := uc.Register(ctx, auth.RegisterInput{
		Username: "sonia", Password: "correct-horse", Role: entity.RoleSupervisor,
	})
	require.NoError(t, err)

	result, err := uc.Login(ctx, "Sonia", "correct-horse")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	userID, username, role, err := pkgjwt.Parse(jwtCfg.Secret, result.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
	assert.Equal(t, "sonia", username)
	assert.Equal(t, entity.RoleSupervisor, role)
}

func TestLogin_Failures(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	_, err := uc.Register(ctx, auth.RegisterInput{Username: "carla", Password: "correct-horse"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, "nobody", "correct-horse")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(ctx, "carla", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

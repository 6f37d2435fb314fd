package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/wibodev-id/enterprise-retail-pos-system/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "user-1", "carla", "cashier", "retail-pos", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, username, role, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "carla", username)
	assert.Equal(t, "cashier", role)
}

func TestParse_ExpiredToken(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "user-1", "carla", "cashier", "retail-pos", -1)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "user-1", "carla", "cashier", "retail-pos", 60)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("a-completely-different-secret", tok)
	assert.Error(t, err)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := pkgjwt.Generate("", "user-1", "carla", "cashier", "retail-pos", 60)
	assert.Error(t, err)
}

package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/GregCodi/WarehousePRO/pkg/jwt"
)

const secret = "jwt-test-secret"

func TestGenerateParse_DevuelveUsuarioYRol(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "worker", "warehouse-pro", 30)
	require.NoError(t, err)

	userID, role, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "worker", role)
}

func TestParse_Rechaza(t *testing.T) {
	valid, err := pkgjwt.Generate(secret, "u-1", "admin", "warehouse-pro", 30)
	require.NoError(t, err)
	expired, err := pkgjwt.Generate(secret, "u-1", "admin", "warehouse-pro", -1)
	require.NoError(t, err)

	cases := []struct {
		name, secret, token string
	}{
		{"expirado", secret, expired},
		{"otro secret", "otro-secret", valid},
		{"malformado", secret, "no.es.jwt"},
		{"secret vacío", "", valid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := pkgjwt.Parse(tc.secret, tc.token)
			assert.Error(t, err)
		})
	}
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "u-1", "admin", "warehouse-pro", 30)
	assert.Error(t, err)
}

package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/everest-site/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUserID = "00000000-0000-0000-0000-000000000001"
	testEmail  = "admin@everest.example"
)

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, testEmail, "supabase-test", 60)
	require.NoError(t, err)

	userID, email, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
	assert.Equal(t, testEmail, email)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, testEmail, "supabase-test", 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secreto", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, testEmail, "supabase-test", -5)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestParse_SinSubject(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "", testEmail, "supabase-test", 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", testUserID, testEmail, "x", 60)
	assert.Error(t, err)

	_, _, err = pkgjwt.Parse("", "token")
	assert.Error(t, err)
}

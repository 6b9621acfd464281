package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithHeader(authorization string) *gin.Context {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	if authorization != "" {
		c.Request.Header.Set("Authorization", authorization)
	}
	return c
}

func TestGenerateAndExtractToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("API_SECRET", "test-secret")
	t.Setenv("TOKEN_HOUR_LIFESPAN", "1")

	token, err := GenerateToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	c := contextWithHeader("Bearer " + token)
	uid, err := ExtractTokenID(c)
	require.NoError(t, err)
	assert.Equal(t, uint(42), uid)
}

func TestExtractTokenIDRejectsGarbage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("API_SECRET", "test-secret")

	c := contextWithHeader("Bearer not-a-token")
	_, err := ExtractTokenID(c)
	assert.Error(t, err)

	c = contextWithHeader("")
	_, err = ExtractTokenID(c)
	assert.Error(t, err)
}

func TestExtractTokenIDRejectsWrongSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("API_SECRET", "test-secret")

	token, err := GenerateToken(42)
	require.NoError(t, err)

	t.Setenv("API_SECRET", "another-secret")
	c := contextWithHeader("Bearer " + token)
	_, err = ExtractTokenID(c)
	assert.Error(t, err)
}

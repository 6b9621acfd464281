package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidation(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/register", "", gin.H{"email": "not-an-email", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/register", "", gin.H{"email": "a@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := setupRouter(t)

	creds := gin.H{"email": "a@example.com", "password": "secret123"}
	w := doJSON(t, r, http.MethodPost, "/api/v1/register", "", creds)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/register", "", creds)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/register", "", gin.H{"email": "a@example.com", "password": "secret123"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/login", "", gin.H{"email": "a@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWhoAmI(t *testing.T) {
	r := setupRouter(t)
	token := registerAndLogin(t, r, "a@example.com")

	w := doJSON(t, r, http.MethodGet, "/api/v1/whoami", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "a@example.com", resp.Email)
}

func TestWhoAmIWithoutToken(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/whoami", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeListsOwnedResources(t *testing.T) {
	r := setupRouter(t)
	token := registerAndLogin(t, r, "a@example.com")
	other := registerAndLogin(t, r, "b@example.com")

	projectID := createProject(t, r, token, "mine")
	createImage(t, r, token, projectID, "/data/mine.png")
	otherProject := createProject(t, r, other, "theirs")
	createImage(t, r, other, otherProject, "/data/theirs.png")

	w := doJSON(t, r, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Email    string `json:"email"`
			Projects []struct {
				Name string `json:"name"`
			} `json:"projects"`
			Images []struct {
				Path string `json:"path"`
			} `json:"images"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "a@example.com", resp.Data.Email)
	require.Len(t, resp.Data.Projects, 1)
	assert.Equal(t, "mine", resp.Data.Projects[0].Name)
	require.Len(t, resp.Data.Images, 1)
	assert.Equal(t, "/data/mine.png", resp.Data.Images[0].Path)
}

package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"annotate/media"
	"annotate/middlewares"
	"annotate/models"
)

// setupRouter Build a router over a fresh in-memory database with the same
// routes main registers.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("API_SECRET", "test-secret")
	t.Setenv("TOKEN_HOUR_LIFESPAN", "1")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))
	models.DB = db

	gateway := media.NewGateway(nil)

	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.POST("/register", Register)
	v1.POST("/login", Login)

	protected := v1.Group("")
	protected.Use(middlewares.JwtAuthMiddleware())
	protected.GET("/whoami", WhoAmI)
	protected.GET("/me", Me)
	protected.GET("/images", FindImages)
	protected.POST("/images", CreateImage)
	protected.GET("/images/:id", GetImage(gateway))
	protected.GET("/images/:id/details", FindImage)
	protected.DELETE("/images/:id", DeleteImage)
	protected.POST("/images/share", ShareImages)
	protected.DELETE("/images/share", UnshareImages)
	protected.POST("/projects", CreateProject)
	protected.GET("/projects/:id", FindProject)
	protected.POST("/groups", CreateGroup)
	protected.POST("/groups/:name/members", AddGroupMember)
	protected.DELETE("/groups/:name/members", RemoveGroupMember)
	protected.GET("/annotations", FindAnnotationsList)
	protected.POST("/annotations", CreateAnnotations)
	protected.GET("/annotations/:id", FindAnnotations)

	return r
}

// doJSON Perform a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// registerAndLogin Create a user and return a valid token for it.
func registerAndLogin(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()

	creds := gin.H{"email": email, "password": "secret123"}
	w := doJSON(t, r, http.MethodPost, "/api/v1/register", "", creds)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/login", "", creds)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// createProject Create a project and return its id.
func createProject(t *testing.T, r *gin.Engine, token, name string) uint {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/v1/projects", token, gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data models.Project `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data.ID
}

// createImage Create an image in a project and return its id.
func createImage(t *testing.T, r *gin.Engine, token string, projectID uint, path string) uint {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/v1/images", token, gin.H{"path": path, "project_id": projectID})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data models.Image `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data.ID
}

// createGroup Create a group and return its id.
func createGroup(t *testing.T, r *gin.Engine, token, name string) uint {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/v1/groups", token, gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data models.Group `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data.ID
}

package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ordena/ordena/app/models"
	"github.com/ordena/ordena/app/routes"
	"github.com/ordena/ordena/app/services"
	"github.com/ordena/ordena/pkg/database"
	"github.com/ordena/ordena/pkg/router"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupAPI wires the full route table over a fresh in-memory database.
func setupAPI(t *testing.T) http.Handler {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.OrderItem{}))
	database.DB = db

	r := router.New()
	routes.RegisterAPI(r, services.NewMemoryCartStore())
	return r.Handler()
}

func postJSON(t *testing.T, h http.Handler, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLoginEndpoint(t *testing.T) {
	h := setupAPI(t)

	_, err := services.NewUserService().Create(services.UserInput{
		Name: "Ana", Email: "ana@local", Password: "secret1234", Role: "admin",
	})
	require.NoError(t, err)

	rec := postJSON(t, h, "/api/login", `{"email":"ana@local","password":"secret1234"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.AccessToken)
	require.NotEmpty(t, body.Data.RefreshToken)
}

func TestLoginEndpointRejectsBadPassword(t *testing.T) {
	h := setupAPI(t)

	_, err := services.NewUserService().Create(services.UserInput{
		Name: "Ana", Email: "ana@local", Password: "secret1234",
	})
	require.NoError(t, err)

	rec := postJSON(t, h, "/api/login", `{"email":"ana@local","password":"nope-wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	h := setupAPI(t)

	rec := postJSON(t, h, "/api/checkout", `{}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postJSON(t, h, "/api/products", `{"name":"X","price":1}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshTokenRejectedAsBearer(t *testing.T) {
	h := setupAPI(t)

	_, err := services.NewUserService().Create(services.UserInput{
		Name: "Ana", Email: "ana@local", Password: "secret1234", Role: "customer",
	})
	require.NoError(t, err)

	tokens, err := services.NewAuthService().Login("ana@local", "secret1234")
	require.NoError(t, err)

	// A refresh token is only good for /api/refresh, not as an access token.
	rec := postJSON(t, h, "/api/checkout", `{}`,
		"Authorization", "Bearer "+tokens.RefreshToken)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStaffRoutesForbiddenForCustomers(t *testing.T) {
	h := setupAPI(t)

	_, err := services.NewUserService().Create(services.UserInput{
		Name: "Ana", Email: "ana@local", Password: "secret1234", Role: "customer",
	})
	require.NoError(t, err)

	tokens, err := services.NewAuthService().Login("ana@local", "secret1234")
	require.NoError(t, err)

	rec := postJSON(t, h, "/api/products", `{"name":"Espresso beans 1kg","price":18.5,"stock":3}`,
		"Authorization", "Bearer "+tokens.AccessToken)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

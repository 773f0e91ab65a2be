package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/avelinov/shop_api/internal/models"
	"github.com/avelinov/shop_api/internal/repo"
	"github.com/avelinov/shop_api/internal/service"
	"github.com/avelinov/shop_api/internal/transport"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB

	Catalog *CatalogHTTP
	Order   *OrderHTTP
	Auth    *AuthHTTP

	JWTSecret, RefreshSecret []byte
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.OrderItem{}, &models.RefreshToken{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	jwtSecret := []byte("test-jwt-secret")
	refreshSecret := []byte("test-refresh-secret")
	gormRepo := repo.New(db)

	return &testEnv{
		T:       t,
		E:       echo.New(),
		DB:      db,
		Catalog: &CatalogHTTP{Svc: &service.CatalogService{Repo: gormRepo}},
		Order:   &OrderHTTP{Svc: &service.OrderService{Repo: gormRepo}},
		Auth: &AuthHTTP{Svc: &service.AuthService{
			Repo:          gormRepo,
			JWTSecret:     jwtSecret,
			RefreshSecret: refreshSecret,
		}},
		JWTSecret:     jwtSecret,
		RefreshSecret: refreshSecret,
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) seedProduct(name, price string) models.Product {
	env.T.Helper()
	product := models.Product{
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString(price),
		Stock:       10,
	}
	require.NoError(env.T, env.DB.Create(&product).Error)
	return product
}

func (env *testEnv) seedUser(username string) models.User {
	env.T.Helper()
	user := models.User{Username: username, PasswordHash: "x", Role: "user"}
	require.NoError(env.T, env.DB.Create(&user).Error)
	return user
}

func (env *testEnv) seedOrder(user models.User, createdAt time.Time, items ...models.OrderItem) models.Order {
	env.T.Helper()
	order := models.Order{
		OrderID:   uuid.New(),
		UserID:    user.ID,
		CreatedAt: createdAt,
		Status:    models.OrderStatusPending,
		Items:     items,
	}
	require.NoError(env.T, env.DB.Create(&order).Error)
	return order
}

func (env *testEnv) login(username, password string) transport.TokenPairResponse {
	env.T.Helper()

	creds := map[string]string{"username": username, "password": password}

	recRegister, cRegister := env.doJSONRequest(http.MethodPost, "/api/register", creds)
	require.NoError(env.T, env.Auth.Register(cRegister))
	require.Equal(env.T, http.StatusCreated, recRegister.Code)

	recToken, cToken := env.doJSONRequest(http.MethodPost, "/api/token", creds)
	require.NoError(env.T, env.Auth.Token(cToken))
	require.Equal(env.T, http.StatusOK, recToken.Code)

	var pair transport.TokenPairResponse
	require.NoError(env.T, json.Unmarshal(recToken.Body.Bytes(), &pair))
	require.NotEmpty(env.T, pair.Access)
	require.NotEmpty(env.T, pair.Refresh)
	return pair
}

package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vaishnavicode/rentagora/internal/models"
	"github.com/vaishnavicode/rentagora/internal/mykafka"
	"github.com/vaishnavicode/rentagora/internal/repo"
	"github.com/vaishnavicode/rentagora/internal/service"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect to in-memory db")

	err = db.AutoMigrate(
		&models.UserRole{},
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductPrice{},
		&models.Status{},
		&models.InvoiceType{},
		&models.Payment{},
		&models.Order{},
		&models.CartItem{},
		&models.Delivery{},
		&models.ProductLike{},
		&models.Wishlist{},
		&models.Notification{},
		&models.UserAccessToken{},
	)
	require.NoError(t, err, "failed to migrate tables")

	for _, name := range []string{"vendor", "customer"} {
		require.NoError(t, db.Create(&models.UserRole{Name: name}).Error)
	}
	statuses := []string{
		"placed", "confirmed", "cancelled", "completed",
		"returned", "picked_up", "rescheduled",
	}
	for _, name := range statuses {
		require.NoError(t, db.Create(&models.Status{Name: name}).Error)
	}
	for _, name := range []string{"standard", "proforma"} {
		require.NoError(t, db.Create(&models.InvoiceType{Name: name}).Error)
	}
	require.NoError(t, db.Create(&models.Category{Name: "General"}).Error)

	return db
}

func newTestServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()

	db := initTestDB(t)
	r := repo.New(db)
	producer := mykafka.NewProducer(nil)

	authSvc := &service.AuthService{Repo: r, JWTSecret: []byte("test-jwt-secret"), Producer: producer}
	catalogSvc := &service.CatalogService{Repo: r, Producer: producer}
	cartSvc := &service.CartService{Repo: r}
	orderSvc := &service.OrderService{Repo: r, Producer: producer}
	require.NoError(t, orderSvc.LoadLookups(t.Context()))

	e := echo.New()
	Register(e, &Deps{
		AuthHandler:    &AuthHTTP{Svc: authSvc, Catalog: catalogSvc},
		ProductHandler: &ProductHTTP{Svc: catalogSvc},
		CartHandler:    &CartHTTP{Svc: cartSvc, Orders: orderSvc},
		OrderHandler:   &OrderHTTP{Svc: orderSvc},
		SearchHandler:  &SearchHTTP{},
		LookupHandler:  &LookupHTTP{Repo: r},
		AuthMW:         &AuthMiddleware{Auth: authSvc},
	})
	return e, db
}

type envelope struct {
	IsSuccess bool            `json:"isSuccess"`
	Data      json.RawMessage `json:"data"`
	Error     interface{}     `json:"error"`
}

func doJSON(t *testing.T, e *echo.Echo, method, path, token string, body interface{}) *httptest.ResponseRecorder {
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
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

// registerAndLogin creates the account over HTTP and returns a live token.
func registerAndLogin(t *testing.T, e *echo.Echo, email, role string) string {
	t.Helper()

	rec := doJSON(t, e, http.MethodPost, "/register", "", map[string]string{
		"name":     "Test User",
		"email":    email,
		"address":  "221B Baker Street",
		"password": "password",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, e, http.MethodPost, "/login", "", map[string]string{
		"email":    email,
		"password": "password",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	env := decodeEnvelope(t, rec)
	require.True(t, env.IsSuccess)

	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.AccessToken)
	return login.AccessToken
}

func TestRegisterLoginLogoutFlow(t *testing.T) {
	e, _ := newTestServer(t)

	token := registerAndLogin(t, e, "user@example.com", "customer")

	rec := doJSON(t, e, http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	env := decodeEnvelope(t, rec)
	require.True(t, env.IsSuccess)

	var profile struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	require.Equal(t, "user@example.com", profile.User.Email)

	rec = doJSON(t, e, http.MethodPost, "/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// token is revoked server side even though the signature is still valid
	rec = doJSON(t, e, http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	e, _ := newTestServer(t)

	payload := map[string]string{
		"name":     "Test User",
		"email":    "dup@example.com",
		"password": "password",
	}
	rec := doJSON(t, e, http.MethodPost, "/register", "", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/register", "", payload)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.False(t, decodeEnvelope(t, rec).IsSuccess)
}

func TestAuthRejections(t *testing.T) {
	e, _ := newTestServer(t)

	// no header
	rec := doJSON(t, e, http.MethodGet, "/profile", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// malformed header
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set(echo.HeaderAuthorization, "Token abcdef")
	raw := httptest.NewRecorder()
	e.ServeHTTP(raw, req)
	require.Equal(t, http.StatusUnauthorized, raw.Code)

	// garbage token
	rec = doJSON(t, e, http.MethodGet, "/profile", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoleGating(t *testing.T) {
	e, _ := newTestServer(t)

	vendorToken := registerAndLogin(t, e, "vendor@example.com", "vendor")
	customerToken := registerAndLogin(t, e, "customer@example.com", "customer")

	productBody := map[string]interface{}{"name": "Kayak"}

	rec := doJSON(t, e, http.MethodPost, "/products", customerToken, productBody)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/products", vendorToken, productBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, e, http.MethodGet, "/cart", vendorToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/cart", customerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestProductCartCheckoutFlow(t *testing.T) {
	e, _ := newTestServer(t)

	vendorToken := registerAndLogin(t, e, "vendor@example.com", "vendor")
	customerToken := registerAndLogin(t, e, "customer@example.com", "customer")

	// vendor lists a product with an hourly price
	rec := doJSON(t, e, http.MethodPost, "/products", vendorToken, map[string]interface{}{
		"name":        "Kayak",
		"description": "Two-seat kayak",
		"qty":         4,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var product models.Product
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &product))

	rec = doJSON(t, e, http.MethodPost, fmt.Sprintf("/products/%d/prices", product.ID), vendorToken, map[string]interface{}{
		"price":         10,
		"time_duration": "hour",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// customer carts it for three hours and checks out
	from := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	to := from.Add(3 * time.Hour)

	rec = doJSON(t, e, http.MethodPost, "/cart/add", customerToken, map[string]interface{}{
		"product_id":     product.ID,
		"quantity":       2,
		"timestamp_from": from,
		"timestamp_to":   to,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, e, http.MethodGet, "/cart", customerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var lines []struct {
		Price float64 `json:"price"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &lines))
	require.Len(t, lines, 1)
	require.InDelta(t, 60.0, lines[0].Price, 0.001)

	rec = doJSON(t, e, http.MethodPost, "/checkout", customerToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// the cart is now empty and the order shows up in the listing
	rec = doJSON(t, e, http.MethodGet, "/cart", customerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	lines = nil
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &lines))
	require.Empty(t, lines)

	rec = doJSON(t, e, http.MethodGet, "/orders", customerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var orders struct {
		Results []models.Order `json:"results"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &orders))
	require.Len(t, orders.Results, 1)
}

func TestSearch_Unavailable(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(t, e, http.MethodGet, "/search?q=kayak", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLookups(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(t, e, http.MethodGet, "/statuses", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var statuses []models.Status
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &statuses))
	require.Len(t, statuses, 7)

	rec = doJSON(t, e, http.MethodGet, "/categories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	e, _ := newTestServer(t)

	vendorToken := registerAndLogin(t, e, "vendor@example.com", "vendor")
	customerToken := registerAndLogin(t, e, "customer@example.com", "customer")

	rec := doJSON(t, e, http.MethodPost, "/products", vendorToken, map[string]interface{}{"name": "Tent"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var product models.Product
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &product))

	from := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	rec = doJSON(t, e, http.MethodPost, "/orders/create", customerToken, map[string]interface{}{
		"product_id":     product.ID,
		"timestamp_from": from,
		"timestamp_to":   to,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Order models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &created))
	orderID := created.Order.ID
	require.NotZero(t, orderID)

	// completing a freshly placed order is an illegal move
	rec = doJSON(t, e, http.MethodPost, fmt.Sprintf("/orders/%d/complete", orderID), customerToken, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, e, http.MethodPost, fmt.Sprintf("/orders/%d/confirm", orderID), customerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, e, http.MethodPost, fmt.Sprintf("/orders/%d/cancel", orderID), customerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// cancel again: success no-op
	rec = doJSON(t, e, http.MethodPost, fmt.Sprintf("/orders/%d/cancel", orderID), customerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// a foreign order id reads as missing
	rec = doJSON(t, e, http.MethodGet, "/orders/9999", customerToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

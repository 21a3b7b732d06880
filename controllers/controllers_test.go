package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Kariqs/kopi-api/controllers"
	"github.com/Kariqs/kopi-api/models"
	"github.com/Kariqs/kopi-api/repository"
	"github.com/Kariqs/kopi-api/routes"
	"github.com/Kariqs/kopi-api/services"
	"github.com/Kariqs/kopi-api/testutil"
	"github.com/Kariqs/kopi-api/utils"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "controller-secret"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type discardMailer struct{}

func (discardMailer) SendOTP(string, string, string) error { return nil }

type testServer struct {
	router  *gin.Engine
	db      *gorm.DB
	handler *controllers.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	handler := controllers.NewHandler(repository.NewStore(db), controllers.HandlerOptions{
		Auth: services.AuthConfig{
			JWTSecret:      testSecret,
			JWTTTL:         time.Hour,
			OTPTTL:         5 * time.Minute,
			OTPMaxAttempts: 3,
		},
		OTP:       services.NewRedisOTPStore(client),
		Mailer:    discardMailer{},
		ExposeOTP: true,
	})

	router := gin.New()
	routes.Register(router, handler, testSecret, nil)
	return &testServer{router: router, db: db, handler: handler}
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, target, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func TestHomeAndHealth(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
}

func TestCheckoutEndpoint(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateUser(t, s.db, "buyer@example.com", "Budi", "Jl. Kopi 1")
	product := testutil.CreateProduct(t, s.db, "Latte", 20000, 5)
	testutil.AddCartLine(t, s.db, user.ID, product.ID, 2, testutil.UintPtr(2), testutil.UintPtr(2))
	token := tokenFor(t, user)

	rec, env := s.do(t, http.MethodPost, "/transactions/checkout", token, map[string]any{
		"deliveryMethod":  "door_delivery",
		"paymentMethodId": 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.True(t, env.Success)

	var result services.CheckoutResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, int64(54000), result.Subtotal)
	assert.Equal(t, int64(10000), result.DeliveryFee)
	assert.Equal(t, int64(64000), result.Total)
	assert.Equal(t, "DANA", result.PaymentMethod)
	assert.Equal(t, models.StatusPending, result.Status)
	assert.Equal(t, 3, testutil.ProductStock(t, s.db, product.ID))

	rec, env = s.do(t, http.MethodPost, "/transactions/checkout", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, services.ErrEmptyCart.Error(), env.Message)
}

func TestCheckoutEndpointRejectsInsufficientStock(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateUser(t, s.db, "buyer@example.com", "Budi", "Jl. Kopi 1")
	product := testutil.CreateProduct(t, s.db, "Mocha", 25000, 1)
	testutil.AddCartLine(t, s.db, user.ID, product.ID, 3, nil, nil)

	rec, env := s.do(t, http.MethodPost, "/transactions/checkout", tokenFor(t, user), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Message, "insufficient stock for Mocha")
	assert.Equal(t, 1, testutil.ProductStock(t, s.db, product.ID))
	assert.Equal(t, int64(0), testutil.CountRows(t, s.db, &models.Order{}))
}

func TestCheckoutRequiresToken(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodPost, "/transactions/checkout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckoutOptions(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateUser(t, s.db, "buyer@example.com", "Budi", "Jl. Kopi 1")

	rec, env := s.do(t, http.MethodGet, "/transactions/options", tokenFor(t, user), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "Door Delivery")
	assert.Contains(t, string(env.Data), "Cash on Delivery")
	assert.Contains(t, string(env.Data), models.StatusPending)
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"email":    "New@Example.com",
		"password": "secret123",
		"fullName": "New User",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.True(t, env.Success)

	rec, _ = s.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"email":    "new@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/auth/login", "", map[string]any{"email": "new@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env = s.do(t, http.MethodPost, "/auth/login", "", map[string]any{"email": "new@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, rec.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Token)

	rec, env = s.do(t, http.MethodPost, "/auth/verify-token", login.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"role":"customer"`)

	rec, _ = s.do(t, http.MethodPost, "/auth/forgot-password", "", map[string]any{"email": "ghost@example.com"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = s.do(t, http.MethodPost, "/auth/forgot-password", "", map[string]any{"email": "new@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	var forgot struct {
		OTP string `json:"otp"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &forgot))
	require.Len(t, forgot.OTP, 6)

	rec, _ = s.do(t, http.MethodPost, "/auth/verify-otp", "", map[string]any{
		"email": "new@example.com", "otp": forgot.OTP, "newPassword": "another123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, _ = s.do(t, http.MethodPost, "/auth/login", "", map[string]any{"email": "new@example.com", "password": "another123"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCartEndpoints(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateUser(t, s.db, "cart@example.com", "Cart", "Addr")
	product := testutil.CreateProduct(t, s.db, "Americano", 18000, 4)
	token := tokenFor(t, user)

	add := map[string]any{"productId": product.ID, "quantity": 1, "sizeId": 1, "temperatureId": 1}
	rec, _ := s.do(t, http.MethodPost, "/cart", token, add)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, env := s.do(t, http.MethodPost, "/cart", token, add)
	require.Equal(t, http.StatusOK, rec.Code)
	var line models.CartItem
	require.NoError(t, json.Unmarshal(env.Data, &line))
	assert.Equal(t, 2, line.Quantity)

	rec, _ = s.do(t, http.MethodPost, "/cart", token, map[string]any{"productId": product.ID, "quantity": 3, "sizeId": 1, "temperatureId": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = s.do(t, http.MethodGet, "/cart?promo=NOPE", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var view services.CartView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	require.Len(t, view.Items, 1)
	assert.Equal(t, int64(36000), view.Subtotal)
	assert.NotEmpty(t, view.PromoError)

	rec, _ = s.do(t, http.MethodPatch, "/cart/"+itoa(line.ID), token, map[string]any{"quantity": 4})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodDelete, "/cart/"+itoa(line.ID), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodDelete, "/cart/"+itoa(line.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	s := newTestServer(t)
	customer := testutil.CreateUser(t, s.db, "c@example.com", "C", "Addr")
	admin := testutil.CreateAdmin(t, s.db, "admin@example.com")

	rec, _ := s.do(t, http.MethodGet, "/admin/orders", tokenFor(t, customer), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env := s.do(t, http.MethodGet, "/admin/orders", tokenFor(t, admin), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	rec, _ = s.do(t, http.MethodPatch, "/admin/products/999/stock", tokenFor(t, admin), map[string]any{"stock": 3})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminOrderStatusUpdate(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateUser(t, s.db, "buyer@example.com", "Budi", "Jl. Kopi 1")
	admin := testutil.CreateAdmin(t, s.db, "admin@example.com")
	product := testutil.CreateProduct(t, s.db, "Latte", 20000, 5)
	testutil.AddCartLine(t, s.db, user.ID, product.ID, 1, nil, nil)

	rec, env := s.do(t, http.MethodPost, "/transactions/checkout", tokenFor(t, user), nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var result services.CheckoutResult
	require.NoError(t, json.Unmarshal(env.Data, &result))

	target := "/admin/orders/" + itoa(result.OrderID) + "/status"
	rec, _ = s.do(t, http.MethodPatch, target, tokenFor(t, admin), map[string]any{"status": "teleported"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(t, http.MethodPatch, target, tokenFor(t, admin), map[string]any{"status": models.StatusOnProgress})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, env = s.do(t, http.MethodGet, "/orders/"+itoa(result.OrderID)+"/detail", tokenFor(t, user), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), models.StatusOnProgress)
}

func TestExportProducts(t *testing.T) {
	s := newTestServer(t)
	admin := testutil.CreateAdmin(t, s.db, "admin@example.com")
	testutil.CreateProduct(t, s.db, "Latte", 20000, 5)

	rec, _ := s.do(t, http.MethodGet, "/admin/products/export", tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.NotZero(t, rec.Body.Len())
}

func TestOrderFeedReceivesPlacedOrders(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateUser(t, s.db, "buyer@example.com", "Budi", "Jl. Kopi 1")
	admin := testutil.CreateAdmin(t, s.db, "admin@example.com")
	product := testutil.CreateProduct(t, s.db, "Latte", 20000, 5)
	testutil.AddCartLine(t, s.db, user.ID, product.ID, 1, nil, nil)

	server := httptest.NewServer(s.router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/admin/orders/feed?token=" + tokenFor(t, admin)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return s.handler.Feed.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	rec, _ := s.do(t, http.MethodPost, "/transactions/checkout", tokenFor(t, user), nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event services.OrderPlacedEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "order_placed", event.Type)
	assert.Equal(t, user.ID, event.UserID)
	assert.Equal(t, int64(20000), event.Total)
}

func TestOrderFeedRejectsCustomers(t *testing.T) {
	s := newTestServer(t)
	customer := testutil.CreateUser(t, s.db, "c@example.com", "C", "Addr")

	server := httptest.NewServer(s.router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/admin/orders/feed?token=" + tokenFor(t, customer)
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

type memoryStorage struct {
	keys []string
	body []byte
}

func (m *memoryStorage) Upload(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.keys = append(m.keys, key)
	m.body = data
	return "https://cdn.example/" + key, nil
}

func multipartProduct(t *testing.T, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("name", "Cold Brew"))
	require.NoError(t, w.WriteField("categoryId", "1"))
	require.NoError(t, w.WriteField("price", "30000"))
	require.NoError(t, w.WriteField("stock", "7"))
	if withImage {
		part, err := w.CreateFormFile("image", "cold-brew.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestCreateProductUploadsImage(t *testing.T) {
	s := newTestServer(t)
	admin := testutil.CreateAdmin(t, s.db, "admin@example.com")
	token := tokenFor(t, admin)

	body, contentType := multipartProduct(t, true)
	req := httptest.NewRequest(http.MethodPost, "/admin/products", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	storage := &memoryStorage{}
	s.handler.Storage = storage

	body, contentType = multipartProduct(t, true)
	req = httptest.NewRequest(http.MethodPost, "/admin/products", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	require.Len(t, storage.keys, 1)
	assert.True(t, strings.HasPrefix(storage.keys[0], "products/"))
	assert.Equal(t, "png-bytes", string(storage.body))
	assert.Contains(t, rec.Body.String(), "https://cdn.example/products/")

	body, contentType = multipartProduct(t, false)
	req = httptest.NewRequest(http.MethodPost, "/admin/products", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, storage.keys, 1)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

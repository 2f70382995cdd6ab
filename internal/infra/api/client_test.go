package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 5*time.Second, zap.NewNop())
}

func TestClient_GetCart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/cart", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":"it-1","product_id":"choco-1","name":"Dark 70%","quantity":5,"price":"12.50","image":"dark.png"}],"total":"62.50"}`))
	})

	cart, err := c.Get(context.Background(), "tok-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	it := cart.Items[0]
	assert.Equal(t, model.ID("it-1"), it.ItemID)
	assert.Equal(t, model.ID("choco-1"), it.ProductID)
	assert.Equal(t, int64(5), it.Quantity)
	assert.True(t, it.UnitPrice.Equal(decimal.RequireFromString("12.50")))
	assert.True(t, cart.Total.Equal(decimal.RequireFromString("62.5")))
}

func TestClient_GetCart_EmptyItemsIsNotNil(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total":0}`))
	})

	cart, err := c.Get(context.Background(), "tok")
	require.NoError(t, err)
	assert.NotNil(t, cart.Items)
	assert.Len(t, cart.Items, 0)
}

func TestClient_Add_SendsBodyAndIdempotencyKey(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/cart/add", r.URL.Path)
		assert.Equal(t, "key-1", r.Header.Get("X-Idempotency-Key"))
		assert.Empty(t, r.Header.Get("Idempotency-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body addCartRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "choco-1", body.ProductID)
		assert.Equal(t, int64(5), body.Quantity)

		w.WriteHeader(http.StatusNoContent)
	})

	err := c.Add(context.Background(), "tok", repo.AddCartItemInput{
		ProductID:      "choco-1",
		Quantity:       5,
		IdempotencyKey: "key-1",
	})
	assert.NoError(t, err)
}

func TestClient_Add_NoIdempotencyKeyHeaderWhenEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.Header["X-Idempotency-Key"]
		assert.False(t, ok)
		w.WriteHeader(http.StatusOK)
	})

	err := c.Add(context.Background(), "tok", repo.AddCartItemInput{ProductID: "p", Quantity: 1})
	assert.NoError(t, err)
}

func TestClient_Remove(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cart/remove", r.URL.Path)

		var body removeCartRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "it-9", body.ItemID)
		w.WriteHeader(http.StatusOK)
	})

	assert.NoError(t, c.Remove(context.Background(), "tok", "it-9"))
}

func TestClient_StatusErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
		is      error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":"unauthorized"}`, wantMsg: "unauthorized", is: repo.ErrUnauthorized},
		{name: "not found", status: http.StatusNotFound, body: `{"error":"not found"}`, wantMsg: "not found", is: repo.ErrNotFound},
		{name: "stock exceeded", status: http.StatusBadRequest, body: `{"error":"stock exceeded"}`, wantMsg: "stock exceeded"},
		{name: "no json body", status: http.StatusBadGateway, body: `<html>`, wantMsg: "Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			err := c.Add(context.Background(), "tok", repo.AddCartItemInput{ProductID: "p", Quantity: 1})
			require.Error(t, err)

			se, ok := repo.AsRemoteError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, se.Status)
			assert.Equal(t, tt.wantMsg, se.Message)

			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			} else {
				assert.NotErrorIs(t, err, repo.ErrUnauthorized)
			}
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := NewClient(srv.URL, time.Second, nil)
	srv.Close()

	_, err := c.Get(context.Background(), "tok")
	require.Error(t, err)
	_, ok := repo.AsRemoteError(err)
	assert.False(t, ok)
}

func TestClient_FindProduct(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/choco%201", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"id":"choco 1","name":"Milk","price":9.9,"stock":3,"is_active":true}`))
	})

	p, err := c.FindByID(context.Background(), "choco 1")
	require.NoError(t, err)
	assert.Equal(t, "Milk", p.Name)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("9.9")))
	assert.True(t, p.IsActive)
}

func TestClient_LoginAndVerifyOTP(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			var body loginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "a@example.com", body.Email)
			_, _ = w.Write([]byte(`{"user":{"id":1},"token":{"access_token":"tok-login","expires_in":900}}`))
		case "/auth/verify-otp":
			var body verifyOTPRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "123456", body.OTP)
			_, _ = w.Write([]byte(`{"token":{"access_token":""}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	tok, err := c.Login(context.Background(), "a@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "tok-login", tok)

	_, err = c.VerifyOTP(context.Background(), "+819000000000", "123456")
	assert.ErrorIs(t, err, errEmptyToken)
}

package client

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahil8848/Quickcart/internal/config"
	"github.com/shahil8848/Quickcart/internal/model"
)

const testWebhookSecret = "whsec_test"

func signPayload(secret string, ts int64, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func newVerifier(now time.Time) *stripeClientImpl {
	return &stripeClientImpl{
		webhookSecret: testWebhookSecret,
		now:           func() time.Time { return now },
	}
}

func TestVerifyWebhookSignature_Valid(t *testing.T) {
	now := time.Now()
	c := newVerifier(now)

	body := []byte(`{"id":"evt_1"}`)
	ts := now.Unix()
	header := fmt.Sprintf("t=%d,v1=%s", ts, signPayload(testWebhookSecret, ts, body))

	require.NoError(t, c.VerifyWebhookSignature(header, body))
}

func TestVerifyWebhookSignature_TamperedBody(t *testing.T) {
	now := time.Now()
	c := newVerifier(now)

	ts := now.Unix()
	header := fmt.Sprintf("t=%d,v1=%s", ts, signPayload(testWebhookSecret, ts, []byte("original")))

	err := c.VerifyWebhookSignature(header, []byte("tampered"))
	require.ErrorIs(t, err, ErrSignatureVerification)
}

func TestVerifyWebhookSignature_WrongSecret(t *testing.T) {
	now := time.Now()
	c := newVerifier(now)

	body := []byte(`{}`)
	ts := now.Unix()
	header := fmt.Sprintf("t=%d,v1=%s", ts, signPayload("whsec_other", ts, body))

	err := c.VerifyWebhookSignature(header, body)
	require.ErrorIs(t, err, ErrSignatureVerification)
}

func TestVerifyWebhookSignature_StaleTimestamp(t *testing.T) {
	now := time.Now()
	c := newVerifier(now)

	body := []byte(`{}`)
	ts := now.Add(-signatureTolerance - time.Minute).Unix()
	header := fmt.Sprintf("t=%d,v1=%s", ts, signPayload(testWebhookSecret, ts, body))

	err := c.VerifyWebhookSignature(header, body)
	require.ErrorIs(t, err, ErrSignatureVerification)
}

func TestVerifyWebhookSignature_MalformedHeader(t *testing.T) {
	c := newVerifier(time.Now())

	for _, header := range []string{"", "t=abc,v1=deadbeef", "v1=deadbeef", "t=123"} {
		err := c.VerifyWebhookSignature(header, []byte(`{}`))
		require.ErrorIs(t, err, ErrSignatureVerification, "header %q", header)
	}
}

func TestCreateCheckoutSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "payment", r.PostForm.Get("mode"))
		assert.Equal(t, "https://shop.test/order-placed", r.PostForm.Get("success_url"))
		assert.Equal(t, "https://shop.test/cart", r.PostForm.Get("cancel_url"))
		assert.Equal(t, "order-1", r.PostForm.Get("metadata[orderId]"))
		assert.Equal(t, "user-1", r.PostForm.Get("metadata[userId]"))

		assert.Equal(t, "Keyboard", r.PostForm.Get("line_items[0][price_data][product_data][name]"))
		assert.Equal(t, "mxn", r.PostForm.Get("line_items[0][price_data][currency]"))
		assert.Equal(t, "90", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
		assert.Equal(t, "2", r.PostForm.Get("line_items[0][quantity]"))
		assert.Equal(t, "Tax (3.6%)", r.PostForm.Get("line_items[1][price_data][product_data][name]"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"cs_1","url":"https://checkout.test/cs_1"}`)
	}))
	defer srv.Close()

	c := NewStripeClient(&config.Stripe{
		BaseApiURL: srv.URL,
		SecretKey:  "sk_test",
		Currency:   "mxn",
	})

	resp, err := c.CreateCheckoutSession(context.Background(),
		[]LineItem{
			{Name: "Keyboard", UnitAmount: 90, Quantity: 2},
			{Name: "Tax (3.6%)", UnitAmount: 6, Quantity: 1},
		},
		"https://shop.test/order-placed",
		"https://shop.test/cart",
		model.SessionMetadata{OrderID: "order-1", UserID: "user-1"},
	)
	require.NoError(t, err)
	assert.Equal(t, "cs_1", resp.SessionID)
	assert.Equal(t, "https://checkout.test/cs_1", resp.RedirectURL)
}

func TestCreateCheckoutSession_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"invalid key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewStripeClient(&config.Stripe{BaseApiURL: srv.URL, SecretKey: "bad"})

	_, err := c.CreateCheckoutSession(context.Background(), nil, "s", "c", model.SessionMetadata{})
	require.Error(t, err)
}

func TestGetSessionByPaymentIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.Equal(t, "pi_1", r.URL.Query().Get("payment_intent"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":[{"id":"cs_1","payment_intent":"pi_1","metadata":{"orderId":"order-1","userId":"user-1"}}]}`)
	}))
	defer srv.Close()

	c := NewStripeClient(&config.Stripe{BaseApiURL: srv.URL, SecretKey: "sk_test"})

	session, err := c.GetSessionByPaymentIntent(context.Background(), "pi_1")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "order-1", session.Metadata.OrderID)
	assert.Equal(t, "user-1", session.Metadata.UserID)
}

func TestGetSessionByPaymentIntent_NoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer srv.Close()

	c := NewStripeClient(&config.Stripe{BaseApiURL: srv.URL, SecretKey: "sk_test"})

	session, err := c.GetSessionByPaymentIntent(context.Background(), "pi_unknown")
	require.NoError(t, err)
	assert.Nil(t, session)
}

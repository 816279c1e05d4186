package client

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shahil8848/Quickcart/internal/config"
	"github.com/shahil8848/Quickcart/internal/model"
)

// ErrSignatureVerification is returned when a webhook payload fails
// signature verification. The request must be rejected without processing.
var ErrSignatureVerification = fmt.Errorf("webhook signature verification failed")

// signatureTolerance bounds how old a signed webhook timestamp may be.
const signatureTolerance = 5 * time.Minute

type LineItem struct {
	Name string
	// UnitAmount in minor currency units
	UnitAmount int64
	Quantity   int64
}

type CreateSessionResponse struct {
	SessionID   string
	RedirectURL string
}

type StripeClient interface {
	CreateCheckoutSession(ctx context.Context, items []LineItem, successURL, cancelURL string, metadata model.SessionMetadata) (*CreateSessionResponse, error)
	GetSessionByPaymentIntent(ctx context.Context, paymentIntentID string) (*model.CheckoutSession, error)
	VerifyWebhookSignature(signatureHeader string, body []byte) error
}

type stripeClientImpl struct {
	httpClient    *http.Client
	baseApiURL    string
	secretKey     string
	webhookSecret string
	currency      string
	now           func() time.Time
}

func NewStripeClient(stripeCfg *config.Stripe) StripeClient {
	return &stripeClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:    stripeCfg.BaseApiURL,
		secretKey:     stripeCfg.SecretKey,
		webhookSecret: stripeCfg.WebhookSecret,
		currency:      stripeCfg.Currency,
		now:           time.Now,
	}
}

func (c *stripeClientImpl) CreateCheckoutSession(ctx context.Context, items []LineItem, successURL, cancelURL string, metadata model.SessionMetadata) (*CreateSessionResponse, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)
	form.Set("metadata[orderId]", metadata.OrderID)
	form.Set("metadata[userId]", metadata.UserID)

	for i, item := range items {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[price_data][currency]", c.currency)
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.UnitAmount, 10))
		form.Set(prefix+"[quantity]", strconv.FormatInt(item.Quantity, 10))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/v1/checkout/sessions",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("stripe error %d: %s", resp.StatusCode, string(b))
	}

	var session model.CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode stripe response: %w", err)
	}

	return &CreateSessionResponse{
		SessionID:   session.ID,
		RedirectURL: session.URL,
	}, nil
}

// GetSessionByPaymentIntent resolves a payment intent back to the checkout
// session that created it. Returns (nil, nil) when no session matches.
func (c *stripeClientImpl) GetSessionByPaymentIntent(ctx context.Context, paymentIntentID string) (*model.CheckoutSession, error) {
	reqURL := fmt.Sprintf(
		"%s/v1/checkout/sessions?payment_intent=%s",
		c.baseApiURL,
		url.QueryEscape(paymentIntentID),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("stripe error %d: %s", resp.StatusCode, string(b))
	}

	var list model.CheckoutSessionList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode stripe response: %w", err)
	}
	if len(list.Data) == 0 {
		return nil, nil
	}

	return &list.Data[0], nil
}

// VerifyWebhookSignature checks the provider's signature header
// (t=<unix>,v1=<hex hmac-sha256 of "<t>.<body>">) against the webhook secret.
func (c *stripeClientImpl) VerifyWebhookSignature(signatureHeader string, body []byte) error {
	var timestamp string
	var signatures []string

	for _, part := range strings.Split(signatureHeader, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			timestamp = v
		case "v1":
			signatures = append(signatures, v)
		}
	}

	if timestamp == "" || len(signatures) == 0 {
		return ErrSignatureVerification
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrSignatureVerification
	}
	if c.now().Sub(time.Unix(ts, 0)) > signatureTolerance {
		return ErrSignatureVerification
	}

	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, sig := range signatures {
		if hmac.Equal([]byte(expected), []byte(sig)) {
			return nil
		}
	}

	return ErrSignatureVerification
}

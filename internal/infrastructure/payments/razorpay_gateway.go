// Package payments talks to the Razorpay orders API.
package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hardik-python-lr/our-gate-backend/domain"
	"go.uber.org/zap"
)

// Config holds gateway credentials and transport settings.
type Config struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	Timeout   time.Duration
	Retries   int
}

type orderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Notes    map[string]string `json:"notes"`
}

type apiError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// RazorpayGateway implements domain.PaymentGateway
type RazorpayGateway struct {
	http      *resty.Client
	keyID     string
	keySecret string
	log       *zap.Logger
}

func NewRazorpayGateway(cfg Config, log *zap.Logger) *RazorpayGateway {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(retryReads).
		SetBasicAuth(cfg.KeyID, cfg.KeySecret).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &RazorpayGateway{
		http:      client,
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		log:       log.Named("payments"),
	}
}

// retryReads retries order reads on transport errors and 5xx. Order creation
// is not idempotent and is sent once.
func retryReads(resp *resty.Response, err error) bool {
	if resp == nil || resp.Request == nil || resp.Request.Method != http.MethodGet {
		return false
	}
	return err != nil || resp.StatusCode() >= http.StatusInternalServerError
}

// KeyID is the public key handed to checkout clients.
func (g *RazorpayGateway) KeyID() string {
	return g.keyID
}

// CreateOrder opens an order for amountMinor (paise for INR).
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountMinor int64, currency string, notes map[string]string) (*domain.PaymentOrder, error) {
	var order domain.PaymentOrder
	var failure apiError
	resp, err := g.http.R().
		SetContext(ctx).
		SetBody(orderRequest{Amount: amountMinor, Currency: currency, Notes: notes}).
		SetResult(&order).
		SetError(&failure).
		Post("/v1/orders")
	if err != nil {
		g.log.Error("create order call failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayFailed, err)
	}
	if resp.IsError() {
		g.log.Error("create order rejected",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("code", failure.Error.Code),
			zap.String("description", failure.Error.Description),
		)
		return nil, fmt.Errorf("%w: status %d", domain.ErrGatewayFailed, resp.StatusCode())
	}

	g.log.Info("order created", zap.String("order_id", order.ID), zap.Int64("amount", order.Amount))
	return &order, nil
}

// FetchOrder reads an order back, including the notes set at creation.
func (g *RazorpayGateway) FetchOrder(ctx context.Context, orderID string) (*domain.PaymentOrder, error) {
	var order domain.PaymentOrder
	resp, err := g.http.R().
		SetContext(ctx).
		SetPathParam("id", orderID).
		SetResult(&order).
		Get("/v1/orders/{id}")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayFailed, err)
	}
	if resp.StatusCode() == http.StatusNotFound || resp.StatusCode() == http.StatusBadRequest {
		return nil, domain.ErrNotFound
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", domain.ErrGatewayFailed, resp.StatusCode())
	}
	return &order, nil
}

// VerifySignature checks the checkout signature, an HMAC-SHA256 of
// "order_id|payment_id" keyed with the secret.
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) error {
	return VerifySignature(g.keySecret, orderID, paymentID, signature)
}

// Sign computes the checkout signature for an order and payment.
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func VerifySignature(secret, orderID, paymentID, signature string) error {
	want := Sign(secret, orderID, paymentID)
	if !hmac.Equal([]byte(want), []byte(signature)) {
		return domain.ErrBadSignature
	}
	return nil
}

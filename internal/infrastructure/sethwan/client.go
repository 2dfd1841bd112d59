// Package sethwan is the outbound adapter to the Sethwan warehouse platform.
// Partner failures are reported in structured results, never as Go errors;
// callers decide how a failed partner call affects their own flow.
package sethwan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// Client talks to the Sethwan REST API over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

func NewClient(baseURL string, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  logger,
	}
}

func (c *Client) Validate(ctx context.Context, creds ports.SethwanCredentials) *ports.SethwanValidation {
	out := &ports.SethwanValidation{}
	var body struct {
		Account  *ports.SethwanAccount `json:"account"`
		Features []string              `json:"features"`
	}
	if err := c.do(ctx, http.MethodGet, "/account/validate", creds, nil, &body); err != nil {
		out.Error = err.Error()
		return out
	}
	out.Success = true
	out.Valid = true
	out.Account = body.Account
	out.Features = body.Features
	return out
}

func (c *Client) Warehouses(ctx context.Context, creds ports.SethwanCredentials) *ports.SethwanWarehouses {
	out := &ports.SethwanWarehouses{}
	var body struct {
		Data []ports.SethwanWarehouse `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/warehouses", creds, nil, &body); err != nil {
		out.Error = err.Error()
		return out
	}
	out.Success = true
	out.Warehouses = body.Data
	return out
}

func (c *Client) PushShipment(ctx context.Context, creds ports.SethwanCredentials, s *domain.Shipment) *ports.SethwanShipmentPush {
	out := &ports.SethwanShipmentPush{}
	var body struct {
		ID             string `json:"id"`
		TrackingNumber string `json:"tracking_number"`
	}
	if err := c.do(ctx, http.MethodPost, "/shipments", creds, toWireShipment(s), &body); err != nil {
		out.Error = err.Error()
		return out
	}
	out.Success = true
	out.SethwanID = body.ID
	out.SethwanTrackingNumber = body.TrackingNumber
	return out
}

func (c *Client) SyncCustomerWarehouse(ctx context.Context, creds ports.SethwanCredentials, u *domain.User) *ports.SethwanWarehouseSync {
	out := &ports.SethwanWarehouseSync{}
	var body struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/customer-warehouses", creds, toWireWarehouse(u), &body); err != nil {
		out.Error = err.Error()
		return out
	}
	out.Success = true
	out.WarehouseID = body.ID
	return out
}

func (c *Client) SubmitManifest(ctx context.Context, creds ports.SethwanCredentials, m *domain.Manifest, warehouseID string) *ports.SethwanManifestSubmit {
	out := &ports.SethwanManifestSubmit{}
	var body struct {
		Reference string `json:"reference"`
	}
	if err := c.do(ctx, http.MethodPost, "/manifests", creds, toWireManifest(m, warehouseID), &body); err != nil {
		out.Error = err.Error()
		return out
	}
	out.Success = true
	out.Reference = body.Reference
	return out
}

// do performs one authenticated request and decodes the response into out
// when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, creds ports.SethwanCredentials, payload, out any) error {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+creds.APIKey)
	req.Header.Set("X-Account-ID", creds.AccountID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sethwan request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("sethwan request failed")
		return fmt.Errorf("sethwan responded %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

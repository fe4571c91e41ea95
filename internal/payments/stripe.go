// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

// Package payments talks to Stripe Connect for checkout onboarding.
// Storefronts without a connected account still render; checkout is
// simply disabled for them.
package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Status describes a storefront's Stripe Connect state.
type Status struct {
	Connected      bool   `json:"connected"`
	AccountID      string `json:"accountId,omitempty"`
	ChargesEnabled bool   `json:"chargesEnabled"`
}

// Client is the Stripe surface the handlers depend on.
type Client interface {
	// AccountStatus reports the connect state for a stored account ID.
	// An empty accountID short-circuits to a disconnected status.
	AccountStatus(ctx context.Context, accountID string) (Status, error)

	// ConnectURL builds the onboarding link for a handle. returnTo is
	// where Stripe sends the owner back after onboarding.
	ConnectURL(handle, returnTo string) string
}

// HTTPClient implements Client against the Stripe REST API.
type HTTPClient struct {
	baseURL   string
	secretKey string
	publicURL string
	http      *http.Client
}

// NewHTTPClient creates a Stripe client. baseURL is normally
// https://api.stripe.com; tests point it at a local server.
func NewHTTPClient(baseURL, secretKey, publicURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		publicURL: strings.TrimRight(publicURL, "/"),
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

// AccountStatus implements Client.
func (c *HTTPClient) AccountStatus(ctx context.Context, accountID string) (Status, error) {
	if accountID == "" {
		return Status{}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v1/accounts/"+url.PathEscape(accountID), nil)
	if err != nil {
		return Status{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return Status{}, fmt.Errorf("fetching stripe account: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return Status{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return Status{}, fmt.Errorf("stripe account lookup: status %d", resp.StatusCode)
	}

	var body struct {
		ID             string `json:"id"`
		ChargesEnabled bool   `json:"charges_enabled"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Status{}, fmt.Errorf("decoding stripe account: %w", err)
	}

	return Status{Connected: true, AccountID: body.ID, ChargesEnabled: body.ChargesEnabled}, nil
}

// ConnectURL implements Client.
func (c *HTTPClient) ConnectURL(handle, returnTo string) string {
	q := url.Values{}
	q.Set("handle", handle)
	if returnTo != "" {
		q.Set("return_to", returnTo)
	}
	return c.publicURL + "/connect/stripe?" + q.Encode()
}

// Disabled is a Client for deployments without Stripe configured.
type Disabled struct{}

// AccountStatus implements Client.
func (Disabled) AccountStatus(context.Context, string) (Status, error) {
	return Status{}, nil
}

// ConnectURL implements Client.
func (Disabled) ConnectURL(string, string) string { return "" }

// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

package payments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAccountStatusConnected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_123" {
			t.Errorf("Authorization = %q", got)
		}
		if r.URL.Path != "/v1/accounts/acct_42" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"acct_42","charges_enabled":true}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "sk_test_123", "http://localhost:8080")
	st, err := c.AccountStatus(context.Background(), "acct_42")
	if err != nil {
		t.Fatalf("AccountStatus: %v", err)
	}
	if !st.Connected || !st.ChargesEnabled || st.AccountID != "acct_42" {
		t.Errorf("status = %+v", st)
	}
}

func TestAccountStatusEmptyID(t *testing.T) {
	c := NewHTTPClient("http://unused.invalid", "sk", "http://localhost:8080")
	st, err := c.AccountStatus(context.Background(), "")
	if err != nil {
		t.Fatalf("AccountStatus: %v", err)
	}
	if st.Connected {
		t.Error("empty account ID should report disconnected")
	}
}

func TestAccountStatusNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "sk", "http://localhost:8080")
	st, err := c.AccountStatus(context.Background(), "acct_gone")
	if err != nil {
		t.Fatalf("AccountStatus: %v", err)
	}
	if st.Connected {
		t.Error("missing account should report disconnected")
	}
}

func TestAccountStatusServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "sk", "http://localhost:8080")
	if _, err := c.AccountStatus(context.Background(), "acct_42"); err == nil {
		t.Error("5xx should surface as an error")
	}
}

func TestConnectURL(t *testing.T) {
	c := NewHTTPClient("https://api.stripe.com", "sk", "https://scanly.app/")
	u := c.ConnectURL("joes-barber-shop", "/editor?handle=joes-barber-shop")

	if !strings.HasPrefix(u, "https://scanly.app/connect/stripe?") {
		t.Errorf("url = %q", u)
	}
	if !strings.Contains(u, "handle=joes-barber-shop") {
		t.Errorf("url missing handle: %q", u)
	}
}

func TestDisabled(t *testing.T) {
	var c Client = Disabled{}
	st, err := c.AccountStatus(context.Background(), "acct_42")
	if err != nil || st.Connected {
		t.Errorf("disabled client = (%+v, %v)", st, err)
	}
	if c.ConnectURL("x", "y") != "" {
		t.Error("disabled client should return empty connect URL")
	}
}

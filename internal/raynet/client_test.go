package raynet

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"offer_summary_backend/platform/logger"
)

type testConfig struct {
	baseURL    string
	maxRetries int
}

func (c testConfig) GetRaynetBaseURL() string        { return c.baseURL }
func (c testConfig) GetRaynetInstance() string       { return "czstyle" }
func (c testConfig) GetRaynetUsername() string       { return "api@czstyle.cz" }
func (c testConfig) GetRaynetAPIKey() string         { return "secret" }
func (c testConfig) GetRaynetTimeout() time.Duration { return 2 * time.Second }
func (c testConfig) GetRaynetMaxConcurrency() int    { return 4 }
func (c testConfig) GetRaynetRPS() float64           { return 0 }
func (c testConfig) GetRaynetMaxRetries() int        { return c.maxRetries }

const offerJSON = `{
  "success": true,
  "data": {
    "id": 42,
    "code": "NAB-42",
    "validFrom": "2024-01-01",
    "description": "<p>Zimní&nbsp;pneu</p>",
    "owner": {"id": 5, "fullName": "David Hink ml."},
    "company": {"id": 9, "name": "STANSPED s.r.o."},
    "items": [
      {"id": 1, "count": 4, "price": null, "discount": "5", "taxRate": 21,
       "priceListItem": {"price": 2500, "product": {"id": 100, "code": "BAR-P5", "name": "Barum"}}},
      {"id": 2, "count": "2", "price": "1800,50", "discountPercent": 10, "discount": 3, "taxRate": 21,
       "priceListItem": {"price": 1900, "product": {"id": 100, "code": "BAR-P5", "name": "Barum"}}}
    ]
  }
}`

func TestGetOfferSendsCredentialsAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "api@czstyle.cz" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.Header.Get(headerInstance) != "czstyle" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		if r.URL.Path != "/offer/42/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(offerJSON))
	}))
	defer srv.Close()

	client := New(testConfig{baseURL: srv.URL}, logger.Discard())
	offer, err := client.GetOffer(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	record := offer.ToRecord()
	if record.Code != "NAB-42" || record.Description != "Zimní pneu" {
		t.Fatalf("unexpected record header %+v", record)
	}
	if record.Owner == nil || record.Owner.ID != 5 || record.Company.ID != 9 || record.Person != nil {
		t.Fatalf("unexpected references %+v %+v %+v", record.Owner, record.Company, record.Person)
	}
	if len(record.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(record.Items))
	}
	first := record.Items[0]
	if first.Price != "2500" || first.DiscountPercent != "5" || first.Count != "4" {
		t.Fatalf("expected price list price and discount fallback, got %+v", first)
	}
	second := record.Items[1]
	if second.Price != "1800,50" || second.DiscountPercent != "10" {
		t.Fatalf("expected item values to win, got %+v", second)
	}
	if first.Product.ID != 100 || second.Product.ID != 100 {
		t.Fatalf("expected both lines to reference product 100, got %d and %d", first.Product.ID, second.Product.ID)
	}
}

func TestGetProductNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := New(testConfig{baseURL: srv.URL, maxRetries: 3}, logger.Discard())
	_, err := client.GetProduct(context.Background(), 7)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetProductRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"success": true, "data": {"id": 7, "code": "MP93", "name": "Matador", "customFields": {"Naprava_fe9fa": "Vodicí", "Sirka_04504": 205}}}`))
	}))
	defer srv.Close()

	client := New(testConfig{baseURL: srv.URL, maxRetries: 3}, logger.Discard())
	product, err := client.GetProduct(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
	detail := product.ToDetail()
	if v, _ := detail.CustomFields.Get("Sirka_04504"); v != "205" {
		t.Fatalf("unexpected custom field %q", v)
	}
}

func TestGetPersonGivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := New(testConfig{baseURL: srv.URL, maxRetries: 1}, logger.Discard())
	if _, err := client.GetPerson(context.Background(), 5); err == nil {
		t.Fatal("expected error")
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls)
	}
}

func TestUnsuccessfulEnvelopeIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": false, "error": "instance not found"}`))
	}))
	defer srv.Close()

	client := New(testConfig{baseURL: srv.URL}, logger.Discard())
	if _, err := client.GetCompany(context.Background(), 9); err == nil {
		t.Fatal("expected error for unsuccessful envelope")
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"offer_summary_backend/internal/offers/transport"
)

const buildInput = `{
  "offer": {"id": 7, "code": "NAB-7", "validFrom": "2024-03-01", "items": [
    {"id": 1, "count": 2, "price": "1000", "discountPercent": "10", "product": {"id": 100}},
    {"id": 2, "count": 1, "price": "400", "product": {"id": 200}}
  ]},
  "products": {
    "100": {"name": "Barum Polaris 5", "customFields": {"Naprava_fe9fa": "Hnací"}},
    "200": {"name": "Matador MP93", "customFields": {"Naprava_fe9fa": "Vodicí"}}
  }
}`

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CORS_ORIGINS", "http://localhost:3000")
	t.Setenv("PRICE_ROUNDING", "cents")

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	err := app.Run(append([]string{"offerctl"}, args...))
	return out.String(), err
}

func TestBuildCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	if err := os.WriteFile(path, []byte(buildInput), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}

	out, err := runApp(t, "build", "--input", path, "--template", "withQuantity")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp transport.SummaryResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if resp.Status != transport.StatusReady || len(resp.Summary.ProductGroups) != 2 {
		t.Fatalf("unexpected output %+v", resp)
	}
	if resp.Overview.GrandTotal != "2200.00" {
		t.Fatalf("unexpected grand total %q", resp.Overview.GrandTotal)
	}
}

func TestBuildCommandRejectsUnknownGroupKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	if err := os.WriteFile(path, []byte(buildInput), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}

	if _, err := runApp(t, "build", "--input", path, "--group-by", "Barva"); err == nil {
		t.Fatal("expected error for unknown grouping key")
	}
}

func TestKeysCommand(t *testing.T) {
	out, err := runApp(t, "keys")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "KEY") || !strings.Contains(out, "Naprava_fe9fa") || !strings.Contains(out, "none") {
		t.Fatalf("unexpected keys output:\n%s", out)
	}
}

func TestReadInputFromStdin(t *testing.T) {
	in, err := readInput("-", strings.NewReader(buildInput))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Offer == nil || len(in.Products) != 2 {
		t.Fatalf("unexpected input %+v", in)
	}
	if _, err := readInput("-", strings.NewReader("{")); err == nil {
		t.Fatal("expected decode error")
	}
}

package offersummary

import (
	"encoding/json"
	"testing"
)

func TestResolve(t *testing.T) {
	if got := Resolve(NotProvided, "", "  ", " Zlín "); got != "Zlín" {
		t.Fatalf("expected first non-blank candidate, got %q", got)
	}
	if got := Resolve(NotProvided, "", " "); got != NotProvided {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestNumericDecodesNumbersStringsAndNull(t *testing.T) {
	var item struct {
		Count    Numeric `json:"count"`
		Price    Numeric `json:"price"`
		Discount Numeric `json:"discount"`
	}
	if err := json.Unmarshal([]byte(`{"count": 4, "price": "1 290,00", "discount": null}`), &item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Count != "4" || item.Price != "1 290,00" || item.Discount != "" {
		t.Fatalf("unexpected decode %+v", item)
	}

	out, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != `{"count":4,"price":"1 290,00","discount":null}` {
		t.Fatalf("unexpected encoding %s", out)
	}
}

func TestNumericRejectsObjects(t *testing.T) {
	var n Numeric
	if err := json.Unmarshal([]byte(`{"value": 1}`), &n); err == nil {
		t.Fatal("expected error for object input")
	}
}

func TestNumericDecimal(t *testing.T) {
	cases := []struct {
		in   Numeric
		want string
		ok   bool
	}{
		{"12.5", "12.5", true},
		{"12,5 Kč", "12.5", true},
		{"+5", "5", true},
		{"-3", "-3", true},
		{"1e3", "1000", true},
		{"2,5E-1", "0.25", true},
		{"1,234.50", "1234.5", true},
		{"12 ks", "12", true},
		{"Kč 10", "0", false},
		{"", "0", false},
	}
	for _, tc := range cases {
		got, ok := tc.in.Decimal()
		if ok != tc.ok || got.String() != tc.want {
			t.Fatalf("Decimal(%q) = %s, %v; want %s, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCustomFieldsDecodeScalarsAndNormalize(t *testing.T) {
	var fields CustomFields
	// The key arrives decomposed (c + combining caron) and must match the precomposed spelling.
	raw := `{"Vloc\u030cka_key": " ano ", "Sirka_04504": 205, "M_S_50472": true, "Hluk_key": null, "Provoz_2c25f": ["Zima", "Celoroční"]}`
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v, ok := fields.Get("Vločka_key"); !ok || v != "ano" {
		t.Fatalf("expected normalized trimmed value, got %q %v", v, ok)
	}
	if v, _ := fields.Get("Sirka_04504"); v != "205" {
		t.Fatalf("expected number as text, got %q", v)
	}
	if v, _ := fields.Get("M_S_50472"); v != "true" {
		t.Fatalf("expected bool as text, got %q", v)
	}
	if _, ok := fields.Get("Hluk_key"); ok {
		t.Fatal("expected null to be absent")
	}
	if v, _ := fields.Get("Provoz_2c25f"); v != "Zima, Celoroční" {
		t.Fatalf("expected joined list, got %q", v)
	}
}

func TestCustomFieldsBlankIsAbsent(t *testing.T) {
	fields := CustomFields{"Naprava_fe9fa": "   "}
	if _, ok := fields.Get("Naprava_fe9fa"); ok {
		t.Fatal("expected blank value to be absent")
	}
	var empty CustomFields
	if _, ok := empty.Get("Naprava_fe9fa"); ok {
		t.Fatal("expected nil map lookup to be absent")
	}
}

func TestComposeName(t *testing.T) {
	if got := ComposeName(NameParts{FirstName: "Jan", LastName: "Novák"}); got != "Jan Novák" {
		t.Fatalf("expected \"Jan Novák\", got %q", got)
	}
	if got := ComposeName(NameParts{}); got != "" {
		t.Fatalf("expected empty name, got %q", got)
	}
	full := NameParts{TitleBefore: "Ing.", FirstName: " Petra ", LastName: "Svobodová", TitleAfter: "Ph.D."}
	if got := ComposeName(full); got != "Ing. Petra Svobodová Ph.D." {
		t.Fatalf("unexpected full name %q", got)
	}
}

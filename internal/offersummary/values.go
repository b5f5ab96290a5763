package offersummary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// Resolve returns the first candidate that is not blank, trimmed, or fallback when all are blank.
func Resolve(fallback string, candidates ...string) string {
	for _, c := range candidates {
		if trimmed := strings.TrimSpace(c); trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

// Numeric is a raw numeric-or-string value as the CRM delivers it ("12.5", "12,5 Kč", 12.5).
// The original text is kept so it can be rendered unchanged.
type Numeric string

var (
	leadingNumberRegex = regexp.MustCompile(`^[+-]?(?:\d{1,3}(?:,\d{3})+\.\d+|\d+(?:[.,]\d+)?|[.,]\d+)(?:[eE][+-]?\d+)?`)
	jsonNumberRegex    = regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d+)?(?:[eE][+-]?\d+)?$`)
)

// Decimal parses the leading number of the value, sign and exponent included.
// A single comma is a decimal comma ("12,5" is 12.5); commas are read as thousands
// separators only when a decimal point follows them ("1,234.50" is 1234.50).
func (n Numeric) Decimal() (decimal.Decimal, bool) {
	match := leadingNumberRegex.FindString(strings.TrimSpace(string(n)))
	if match == "" {
		return decimal.Zero, false
	}
	match = strings.TrimPrefix(match, "+")
	if strings.Contains(match, ".") {
		match = strings.ReplaceAll(match, ",", "")
	} else {
		match = strings.Replace(match, ",", ".", 1)
	}
	d, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Valid reports whether the value parses as a number.
func (n Numeric) Valid() bool {
	_, ok := n.Decimal()
	return ok
}

// Text returns the trimmed raw value, or NotProvided when blank.
func (n Numeric) Text() string {
	return Resolve(NotProvided, string(n))
}

// OrDefault returns n, or def when n is blank.
func (n Numeric) OrDefault(def Numeric) Numeric {
	if strings.TrimSpace(string(n)) == "" {
		return def
	}
	return n
}

// MarshalJSON writes well-formed numbers as JSON numbers, other text as strings and blanks as null.
func (n Numeric) MarshalJSON() ([]byte, error) {
	raw := strings.TrimSpace(string(n))
	switch {
	case raw == "":
		return []byte("null"), nil
	case jsonNumberRegex.MatchString(raw):
		return []byte(raw), nil
	default:
		return json.Marshal(raw)
	}
}

// UnmarshalJSON accepts a JSON number, a string or null.
func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*n = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Numeric(s)
	case jsonNumberRegex.Match(data):
		*n = Numeric(data)
	default:
		return fmt.Errorf("numeric value must be a number, string or null, got %s", data)
	}
	return nil
}

// CustomFields holds product attributes by key. Values are kept as text; JSON numbers
// and booleans decode to their literal text and null decodes to an absent entry.
type CustomFields map[string]string

// Get returns the NFC-normalized, trimmed value of key. Blank values count as absent.
func (f CustomFields) Get(key string) (string, bool) {
	raw, ok := f[norm.NFC.String(key)]
	if !ok {
		return "", false
	}
	value := strings.TrimSpace(norm.NFC.String(raw))
	if value == "" {
		return "", false
	}
	return value, true
}

// Clone returns an independent copy; nil stays nil.
func (f CustomFields) Clone() CustomFields {
	if f == nil {
		return nil
	}
	out := make(CustomFields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// UnmarshalJSON decodes an object of scalar values.
func (f *CustomFields) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	out := make(CustomFields, len(raw))
	for key, value := range raw {
		text, ok := fieldText(value)
		if !ok {
			continue
		}
		out[norm.NFC.String(key)] = text
	}
	*f = out
	return nil
}

func fieldText(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if text, ok := fieldText(item); ok && strings.TrimSpace(text) != "" {
				parts = append(parts, text)
			}
		}
		return strings.Join(parts, ", "), len(parts) > 0
	default:
		return "", false
	}
}

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Quantity is the stock count exactly as it was entered.
// Input is accepted leniently; use ParseIntOrZero (or Item.Units) to read it as a number.
type Quantity string

// Price is the unit price exactly as it was entered. It may be blank.
type Price string

// Int returns the quantity parsed leniently
func (q Quantity) Int() int {
	return ParseIntOrZero(string(q))
}

// MarshalJSON writes canonical numbers as JSON numbers and anything else as a string
func (q Quantity) MarshalJSON() ([]byte, error) {
	return marshalLenient(string(q))
}

// UnmarshalJSON accepts a JSON number, a JSON string or null
func (q *Quantity) UnmarshalJSON(data []byte) error {
	s, err := unmarshalLenient(data)
	if err != nil {
		return fmt.Errorf("qty: %w", err)
	}
	*q = Quantity(s)
	return nil
}

// MarshalYAML writes canonical numbers as YAML numbers
func (q Quantity) MarshalYAML() (interface{}, error) {
	return yamlLenient(string(q)), nil
}

// Float returns the price parsed leniently, def when it is blank or not numeric
func (p Price) Float(def float64) float64 {
	return ParseNumberOrDefault(string(p), def)
}

// MarshalJSON writes canonical numbers as JSON numbers and anything else as a string
func (p Price) MarshalJSON() ([]byte, error) {
	return marshalLenient(string(p))
}

// UnmarshalJSON accepts a JSON number, a JSON string or null
func (p *Price) UnmarshalJSON(data []byte) error {
	s, err := unmarshalLenient(data)
	if err != nil {
		return fmt.Errorf("price: %w", err)
	}
	*p = Price(s)
	return nil
}

// MarshalYAML writes canonical numbers as YAML numbers
func (p Price) MarshalYAML() (interface{}, error) {
	return yamlLenient(string(p)), nil
}

// ParseIntOrZero reads the leading integer of s: optional leading whitespace,
// an optional sign, then digits. Anything after the digits is ignored.
// When no digit is found the result is 0; it never fails.
//
//	ParseIntOrZero("12")    // 12
//	ParseIntOrZero(" 7 pc") // 7
//	ParseIntOrZero("3.9")   // 3
//	ParseIntOrZero("abc")   // 0
func ParseIntOrZero(s string) int {
	s = strings.TrimLeft(s, " \t\r\n\v\f")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// out of range for int
		return 0
	}
	if neg {
		return -n
	}
	return n
}

// ParseNumberOrDefault parses s as a finite decimal number, returning def
// when s is blank, not a number, NaN or infinite
func ParseNumberOrDefault(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(f) {
		return def
	}
	return f
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// isCanonicalNumber reports whether s is a finite number that survives a
// number round trip unchanged. NaN and infinities have no JSON form.
func isCanonicalNumber(s string) bool {
	if s == "" {
		return false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(f) {
		return false
	}
	return strconv.FormatFloat(f, 'f', -1, 64) == s
}

func marshalLenient(s string) ([]byte, error) {
	if isCanonicalNumber(s) {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

func unmarshalLenient(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

func yamlLenient(s string) interface{} {
	if !isCanonicalNumber(s) {
		return s
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

package types

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestParseIntOrZero(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"12", 12},
		{"0", 0},
		{"", 0},
		{"abc", 0},
		{" 7", 7},
		{"7 units", 7},
		{"3.9", 3},
		{"-2", -2},
		{"+4", 4},
		{"-", 0},
		{"x12", 0},
		{"99999999999999999999999", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseIntOrZero(tt.input); got != tt.want {
				t.Errorf("ParseIntOrZero(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseNumberOrDefault(t *testing.T) {
	tests := []struct {
		input string
		def   float64
		want  float64
	}{
		{"1499", 0, 1499},
		{" 19.5 ", 0, 19.5},
		{"", -1, -1},
		{"free", 7, 7},
		{"NaN", 3, 3},
		{"+Inf", 0, 0},
		{"-Inf", 1, 1},
	}

	for _, tt := range tests {
		if got := ParseNumberOrDefault(tt.input, tt.def); got != tt.want {
			t.Errorf("ParseNumberOrDefault(%q, %v) = %v, want %v", tt.input, tt.def, got, tt.want)
		}
	}
}

func TestLenientJSON(t *testing.T) {
	t.Run("numbers stay numbers", func(t *testing.T) {
		item := Item{SKU: "A", Name: "a", Category: Fans, Qty: "12", Price: "1499"}
		data, err := json.Marshal(item)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		want := `{"sku":"A","name":"a","category":"Fans","qty":12,"price":1499,"loc":""}`
		if string(data) != want {
			t.Errorf("got %s, want %s", data, want)
		}
	})

	t.Run("non numeric text stays a string", func(t *testing.T) {
		item := Item{SKU: "A", Name: "a", Category: Fans, Qty: "abc", Price: ""}
		data, err := json.Marshal(item)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		want := `{"sku":"A","name":"a","category":"Fans","qty":"abc","price":"","loc":""}`
		if string(data) != want {
			t.Errorf("got %s, want %s", data, want)
		}
	})

	t.Run("non finite numbers are written as strings", func(t *testing.T) {
		item := Item{SKU: "A", Name: "a", Category: Fans, Qty: "NaN", Price: "+Inf"}
		data, err := json.Marshal(item)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		want := `{"sku":"A","name":"a","category":"Fans","qty":"NaN","price":"+Inf","loc":""}`
		if string(data) != want {
			t.Errorf("got %s, want %s", data, want)
		}

		var back Item
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if diff := cmp.Diff(item, back); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("decodes numbers strings and null", func(t *testing.T) {
		input := `[
			{"sku":"A","name":"a","category":"Fans","qty":12,"price":1499,"loc":"S1"},
			{"sku":"B","name":"b","category":"Bells","qty":"4","price":"","loc":""},
			{"sku":"C","name":"c","category":"Lights","qty":null,"price":null}
		]`
		var items []Item
		if err := json.Unmarshal([]byte(input), &items); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		want := []Item{
			{SKU: "A", Name: "a", Category: Fans, Qty: "12", Price: "1499", Loc: "S1"},
			{SKU: "B", Name: "b", Category: Bells, Qty: "4", Price: ""},
			{SKU: "C", Name: "c", Category: Lights},
		}
		if diff := cmp.Diff(want, items); diff != "" {
			t.Errorf("decoded items mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("rejects booleans", func(t *testing.T) {
		var q Quantity
		if err := json.Unmarshal([]byte("true"), &q); err == nil {
			t.Error("expected error decoding a boolean quantity")
		}
	})

	t.Run("round trip preserves values", func(t *testing.T) {
		items := []Item{
			{SKU: "A", Name: "a", Category: Fans, Qty: "012", Price: "12.50"},
			{SKU: "B", Name: "b", Category: Bells, Qty: "abc", Price: "1e3"},
			{SKU: "C", Name: "c", Category: Accessories, Qty: "-3", Price: "0.5"},
		}
		data, err := json.Marshal(items)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var back []Item
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if diff := cmp.Diff(items, back); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestLenientYAML(t *testing.T) {
	item := Item{SKU: "A", Name: "a", Category: Fans, Qty: "12", Price: "abc"}
	data, err := yaml.Marshal(item)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := "sku: A\nname: a\ncategory: Fans\nqty: 12\nprice: abc\nloc: \"\"\n"
	if string(data) != want {
		t.Errorf("got:\n%s\nwant:\n%s", data, want)
	}
}

func TestLenientYAMLNonFinite(t *testing.T) {
	item := Item{SKU: "A", Name: "a", Category: Fans, Qty: "-Inf", Price: "NaN"}
	data, err := yaml.Marshal(item)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields map[string]interface{}
	if err := yaml.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if fields["qty"] != "-Inf" || fields["price"] != "NaN" {
		t.Errorf("expected text values, got qty=%#v price=%#v", fields["qty"], fields["price"])
	}
}

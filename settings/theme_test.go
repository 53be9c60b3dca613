package settings

import (
	"errors"
	"testing"

	"github.com/arthur-debert/toran/inventory/storage"
	"github.com/arthur-debert/toran/types"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		stored *string
		want   Theme
	}{
		{name: "absent defaults to light", want: Light},
		{name: "dark", stored: strPtr("dark"), want: Dark},
		{name: "light", stored: strPtr("light"), want: Light},
		{name: "garbage defaults to light", stored: strPtr("solarized"), want: Light},
		{name: "case sensitive", stored: strPtr("DARK"), want: Light},
		{name: "empty", stored: strPtr(""), want: Light},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := storage.NewMemory()
			if tt.stored != nil {
				_ = kv.Set(types.ThemeKey, *tt.stored)
			}
			got, err := Load(kv)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Load() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSaveAndToggle(t *testing.T) {
	kv := storage.NewMemory()

	next, err := Toggle(kv)
	if err != nil || next != Dark {
		t.Fatalf("Toggle() = %s, %v; want dark", next, err)
	}
	if raw, _, _ := kv.Get(types.ThemeKey); raw != "dark" {
		t.Errorf("stored %q, want dark", raw)
	}

	next, _ = Toggle(kv)
	if next != Light {
		t.Errorf("second toggle = %s, want light", next)
	}

	if err := Save(kv, "blue"); !errors.Is(err, types.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestLoadError(t *testing.T) {
	kv := storage.NewMemory()
	_ = kv.Close()
	got, err := Load(kv)
	if err == nil {
		t.Fatal("expected error")
	}
	if got != DefaultTheme {
		t.Errorf("expected default on error, got %s", got)
	}
}

func TestParseTheme(t *testing.T) {
	if got, err := ParseTheme(" Dark "); err != nil || got != Dark {
		t.Errorf("ParseTheme() = %s, %v", got, err)
	}
	if _, err := ParseTheme("toggle"); err == nil {
		t.Error("expected error")
	}
}

func strPtr(s string) *string { return &s }

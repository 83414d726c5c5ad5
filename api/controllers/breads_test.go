package controllers

import (
	"testing"

	"github.com/bonappetit-bakery/bakery-backend/api/validators"
	"github.com/bonappetit-bakery/bakery-backend/internal/breads"
	"github.com/bonappetit-bakery/bakery-backend/pkg/config"
)

func TestMultipartMemoryUsesConfiguredLimit(t *testing.T) {
	got := multipartMemory(config.UploadConfig{MaxUploadMB: 8})
	if want := int64(8 << 20); got != want {
		t.Fatalf("expected %d bytes but got %d", want, got)
	}
}

func TestMultipartMemoryDefaultsWhenUnset(t *testing.T) {
	got := multipartMemory(config.UploadConfig{})
	if want := int64(defaultMaxUploadMB << 20); got != want {
		t.Fatalf("expected %d bytes but got %d", want, got)
	}
}

func TestCreateBreadInputAllowsFreeBread(t *testing.T) {
	input := breads.CreateInput{
		Name:        "Day-old baguette",
		UnitPrice:   0,
		BreadStatus: "10",
	}
	if err := validators.ValidateStruct(&input); err != nil {
		t.Fatalf("a zero unit price must validate, got %v", err)
	}
}

func TestCreateBreadInputRejectsNegativePrice(t *testing.T) {
	input := breads.CreateInput{
		Name:        "Baguette",
		UnitPrice:   -100,
		BreadStatus: "10",
	}
	if err := validators.ValidateStruct(&input); err == nil {
		t.Fatal("a negative unit price must be rejected")
	}
}

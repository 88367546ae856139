package currency

import (
	"strings"
	"testing"
)

func TestFormatRussian(t *testing.T) {
	f := ForLanguage("ru")
	got := f.Format(350)
	if !strings.HasSuffix(got, "₽") {
		t.Fatalf("russian locale keeps rubles, got %q", got)
	}
	if !strings.Contains(got, "350") {
		t.Fatalf("russian locale must not convert the amount, got %q", got)
	}
}

func TestFormatEnglishConverts(t *testing.T) {
	f := ForLanguage("en")
	got := f.Format(100)
	// 100 ₽ / 80 = 1.25 $
	if got != "1.25 $" {
		t.Fatalf("expected converted price, got %q", got)
	}
}

func TestFormatUnknownLanguageFallsBack(t *testing.T) {
	f := ForLanguage("??")
	got := f.Format(100)
	if !strings.HasSuffix(got, "₽") {
		t.Fatalf("unknown language must behave as base locale, got %q", got)
	}
}

func TestFormatEnglishRegional(t *testing.T) {
	// региональные варианты английского тоже конвертируют
	f := ForLanguage("en-GB")
	if got := f.Format(80); got != "1.00 $" {
		t.Fatalf("expected 1.00 $, got %q", got)
	}
}

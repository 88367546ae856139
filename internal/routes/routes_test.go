package routes

import (
	"errors"
	"testing"
)

func TestNewTable_DuplicateFirstSegment(t *testing.T) {
	_, err := NewTable([]Entry{
		{ScreenCatalog, "catalog"},
		{ScreenCart, "catalog/alt"},
	})
	if err == nil {
		t.Fatalf("expected error for duplicate first segment")
	}
	if !errors.Is(err, ErrDuplicateSegment) {
		t.Fatalf("expected ErrDuplicateSegment, got %v", err)
	}
}

func TestNewTable_EmptyTemplate(t *testing.T) {
	if _, err := NewTable([]Entry{{ScreenCatalog, ""}}); err == nil {
		t.Fatalf("expected error for empty template")
	}
}

func TestDefaultTable(t *testing.T) {
	tbl := Default() // не должен паниковать: сегменты уникальны

	if _, ok := tbl.ScreenFor("CatalogScreen"); !ok {
		t.Fatalf("CatalogScreen not routed")
	}
	if s, ok := tbl.ScreenFor("product"); !ok || s != ScreenProductDetails {
		t.Fatalf("product segment: got %v %v", s, ok)
	}
	if _, ok := tbl.ScreenFor("Nonexistent"); ok {
		t.Fatalf("unexpected match for unknown segment")
	}
}

func TestPathFor_FirstEntryWins(t *testing.T) {
	tbl := Default()
	// у экрана каталога несколько шаблонов; приоритет за порядком таблицы
	p, ok := tbl.PathFor(ScreenCatalog)
	if !ok || p != "catalog" {
		t.Fatalf("expected stable path first, got %q %v", p, ok)
	}
	if _, ok := tbl.PathFor(Screen("Bogus")); ok {
		t.Fatalf("unexpected path for unknown screen")
	}
}

func TestParamName(t *testing.T) {
	tbl := Default()
	if name := tbl.ParamName(ScreenProductDetails); name != "id" {
		t.Fatalf("product param: got %q", name)
	}
	if name := tbl.ParamName(ScreenOrderStatus); name != "id" {
		t.Fatalf("order param: got %q", name)
	}
	if name := tbl.ParamName(ScreenPayment); name != "amount" {
		t.Fatalf("payment param: got %q", name)
	}
	if name := tbl.ParamName(ScreenCatalog); name != "" {
		t.Fatalf("catalog should have no param, got %q", name)
	}
}

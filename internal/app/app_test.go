package app

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"inflight/internal/checkout"
	"inflight/internal/config"
	"inflight/internal/routes"
	"inflight/internal/stubapi"
)

func setup(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	store := stubapi.NewStore()
	stubapi.SeedDemo(store)
	srv := httptest.NewServer(stubapi.NewServer(store).Engine())
	t.Cleanup(srv.Close)

	cfg := config.Config{
		APIURL:      srv.URL,
		DataDir:     t.TempDir(),
		Language:    "ru",
		HTTPTimeout: 5 * time.Second,
	}
	var out bytes.Buffer
	a := New(cfg, zap.NewNop(), &out)
	t.Cleanup(a.Close)
	return a, &out
}

func TestGuestLoginReplacesRoot(t *testing.T) {
	a, _ := setup(t)
	if err := a.GuestLogin(""); err == nil {
		t.Fatalf("guest login requires a seat")
	}
	if err := a.GuestLogin("12A"); err != nil {
		t.Fatalf("guest login: %v", err)
	}
	if a.Session.Get().Seat != "12A" {
		t.Fatalf("seat not stored in session")
	}
	if a.Nav.Depth() != 1 || a.Nav.Current().Screen != routes.ScreenCatalog {
		t.Fatalf("expected catalog root, got %v", a.Nav.Current())
	}
}

func TestLoginRoutesAdminToPanel(t *testing.T) {
	a, _ := setup(t)
	s, err := a.Login(context.Background(), "admin@example.com", "admin", "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !s.IsAdmin() {
		t.Fatalf("expected admin session")
	}
	if a.Nav.Current().Screen != routes.ScreenAdminPanel {
		t.Fatalf("admin must land on the panel, got %v", a.Nav.Current())
	}
}

func TestAddToCartSnapshotsPrice(t *testing.T) {
	a, _ := setup(t)
	if err := a.AddToCart(context.Background(), "3", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	items := a.Cart.Items()
	if len(items) != 1 || items[0].Price != 350 || items[0].Quantity != 2 {
		t.Fatalf("price not snapshotted from catalog: %+v", items)
	}
	if err := a.AddToCart(context.Background(), "999", 1); err == nil {
		t.Fatalf("unknown product must error")
	}
}

func TestOpenURLRendersTarget(t *testing.T) {
	a, out := setup(t)
	if err := a.AddToCart(context.Background(), "4", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := a.OpenURL(context.Background(), "inflightapp://host/CartScreen"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if !strings.Contains(out.String(), "Кофе Американо") {
		t.Fatalf("cart screen not rendered: %q", out.String())
	}
}

func TestOpenURLUnknownIsNoop(t *testing.T) {
	a, _ := setup(t)
	before := a.Nav.Current()
	if err := a.OpenURL(context.Background(), "inflightapp://host/Nonexistent"); err != nil {
		t.Fatalf("unknown link must not error: %v", err)
	}
	if a.Nav.Current().Screen != before.Screen {
		t.Fatalf("unknown link must not navigate")
	}
}

func TestCheckoutEndToEnd(t *testing.T) {
	a, out := setup(t)
	ctx := context.Background()
	if err := a.GuestLogin("12A"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := a.AddToCart(ctx, "1", 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := a.Checkout.Begin(a.Session.Get().Seat); err != nil {
		t.Fatalf("begin: %v", err)
	}
	card := checkout.Card{Number: "4111111111111111", Expiry: "12/99", CVV: "123", Holder: "IVAN IVANOV"}
	orderID, err := a.Checkout.Submit(ctx, card)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if a.Cart.Len() != 0 {
		t.Fatalf("cart must be cleared after success")
	}
	cur := a.Nav.Current()
	if cur.Screen != routes.ScreenOrderStatus || cur.Params["id"] != orderID {
		t.Fatalf("expected order status screen with %q, got %v", orderID, cur)
	}

	if err := a.RenderCurrent(ctx); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out.String(), "PENDING") {
		t.Fatalf("new order must render as PENDING: %q", out.String())
	}
}

func TestRenderCatalog(t *testing.T) {
	a, out := setup(t)
	if err := a.RenderCurrent(context.Background()); err != nil {
		t.Fatalf("render: %v", err)
	}
	s := out.String()
	if !strings.Contains(s, "Паста Карбонара") {
		t.Fatalf("catalog not rendered: %q", s)
	}
	if !strings.Contains(s, "Горячие блюда") {
		t.Fatalf("category names not resolved: %q", s)
	}
}

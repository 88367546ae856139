package app

import (
	"context"
	"fmt"
	"strconv"

	"inflight/internal/api"
	"inflight/internal/nav"
	"inflight/internal/routes"
)

// RenderCurrent отображает верхний экран навигационного стека.
// Отрисовка — простой текст: визуальное оформление вне зоны
// ответственности этого слоя.
func (a *App) RenderCurrent(ctx context.Context) error {
	e := a.Nav.Current()
	switch e.Screen {
	case routes.ScreenCatalog:
		return a.renderCatalog(ctx)
	case routes.ScreenProductDetails:
		return a.renderProductDetails(ctx, e.Params)
	case routes.ScreenCart:
		return a.renderCart()
	case routes.ScreenOrderStatus, routes.ScreenOrderDetails:
		return a.renderOrder(ctx, e.Params)
	case routes.ScreenOrderHistory:
		return a.renderOrderHistory(ctx)
	case routes.ScreenAdminPanel:
		return a.renderAdminPanel(ctx)
	case routes.ScreenPayment:
		return a.renderPayment(e.Params)
	case routes.ScreenProfile:
		return a.renderProfile()
	case routes.ScreenLogin:
		fmt.Fprintln(a.out, "== Вход ==")
		return nil
	case routes.ScreenSupport:
		fmt.Fprintln(a.out, "== Поддержка ==")
		fmt.Fprintln(a.out, "Обратитесь к бортпроводнику или напишите в чат поддержки.")
		return nil
	default:
		return fmt.Errorf("no renderer for screen %q", e.Screen)
	}
}

func (a *App) renderCatalog(ctx context.Context) error {
	products, err := a.API.Catalog(ctx, api.CatalogFilter{})
	if err != nil {
		return err
	}
	categories, err := a.API.Categories(ctx)
	if err != nil {
		return err
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	f := a.Formatter()
	fmt.Fprintln(a.out, "== Каталог ==")
	for _, p := range products {
		mark := " "
		if !p.InStock {
			mark = "×"
		}
		category := names[p.CategoryID]
		if category == "" {
			category = p.CategoryID
		}
		fmt.Fprintf(a.out, "%s [%s] %s — %s (%s)\n", mark, p.ID, p.Name, f.Format(p.Price), category)
	}
	return nil
}

func (a *App) renderProductDetails(ctx context.Context, params nav.Params) error {
	id := params["id"]
	products, err := a.API.Catalog(ctx, api.CatalogFilter{})
	if err != nil {
		return err
	}
	f := a.Formatter()
	for _, p := range products {
		if p.ID != id {
			continue
		}
		fmt.Fprintf(a.out, "== %s ==\n", p.Name)
		if p.Description != "" {
			fmt.Fprintln(a.out, p.Description)
		}
		fmt.Fprintf(a.out, "Цена: %s\n", f.Format(p.Price))
		if !p.InStock {
			fmt.Fprintln(a.out, "Нет в наличии")
		}
		return nil
	}
	return fmt.Errorf("product %q not found", id)
}

func (a *App) renderCart() error {
	items := a.Cart.Items()
	f := a.Formatter()
	fmt.Fprintln(a.out, "== Корзина ==")
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Корзина пуста")
		return nil
	}
	for _, it := range items {
		fmt.Fprintf(a.out, "[%s] %s × %d — %s\n", it.ProductID, it.Name, it.Quantity, f.Format(it.Price*float64(it.Quantity)))
	}
	fmt.Fprintf(a.out, "Итого: %s\n", f.Format(a.Cart.Total()))
	return nil
}

func (a *App) renderOrder(ctx context.Context, params nav.Params) error {
	id := params["id"]
	o, err := a.API.Order(ctx, id)
	if err != nil {
		return err
	}
	f := a.Formatter()
	fmt.Fprintf(a.out, "== Заказ %s ==\n", o.ID)
	fmt.Fprintf(a.out, "Статус: %s\n", o.Status)
	if o.SeatNumber != "" {
		fmt.Fprintf(a.out, "Место: %s\n", o.SeatNumber)
	}
	for _, it := range o.Items {
		fmt.Fprintf(a.out, "  %s × %d\n", it.Name, it.Quantity)
	}
	if o.TotalAmount > 0 {
		fmt.Fprintf(a.out, "Сумма: %s\n", f.Format(o.TotalAmount))
	}
	return nil
}

func (a *App) renderOrderHistory(ctx context.Context) error {
	seat := a.Session.Get().Seat
	orders, err := a.API.Orders(ctx, seat, "")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "== История заказов ==")
	for _, o := range orders {
		fmt.Fprintf(a.out, "[%s] %s — позиций: %d\n", o.ID, o.Status, len(o.Items))
	}
	return nil
}

func (a *App) renderAdminPanel(ctx context.Context) error {
	orders, err := a.API.Orders(ctx, "", "")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "== Панель администратора ==")
	for _, o := range orders {
		fmt.Fprintf(a.out, "[%s] место %s — %s\n", o.ID, o.SeatNumber, o.Status)
	}
	return nil
}

func (a *App) renderPayment(params nav.Params) error {
	// сумма по ссылке необязательна; по умолчанию показывается корзина
	amount := a.Cart.Total()
	if v, ok := params["amount"]; ok {
		if x, err := strconv.ParseFloat(v, 64); err == nil {
			amount = x
		}
	}
	fmt.Fprintln(a.out, "== Оплата ==")
	fmt.Fprintf(a.out, "К оплате: %s\n", a.Formatter().Format(amount))
	return nil
}

func (a *App) renderProfile() error {
	s := a.Session.Get()
	fmt.Fprintln(a.out, "== Профиль ==")
	if s.Seat != "" {
		fmt.Fprintf(a.out, "Место: %s\n", s.Seat)
	}
	role := "пассажир"
	if s.IsAdmin() {
		role = "администратор"
	}
	fmt.Fprintf(a.out, "Роль: %s\n", role)
	fmt.Fprintf(a.out, "Язык: %s, тема: %s\n", a.Language.Get(), a.Theme.Get())
	return nil
}

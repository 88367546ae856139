// Package app собирает клиент целиком: конфигурация, журнал, хранилища,
// REST-клиент, корзина, навигация, глубокие ссылки и оформление заказа.
package app

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"inflight/internal/api"
	"inflight/internal/cart"
	"inflight/internal/checkout"
	"inflight/internal/config"
	"inflight/internal/currency"
	"inflight/internal/deeplink"
	"inflight/internal/domain"
	"inflight/internal/nav"
	"inflight/internal/observe"
	"inflight/internal/prefs"
	"inflight/internal/routes"
	"inflight/internal/theme"
)

// App корневой объект приложения. Все прежние глобальные синглтоны
// (корзина, тема, язык, сессия) живут здесь и передаются вниз явно.
type App struct {
	cfg config.Config
	log *zap.Logger
	out io.Writer

	API      *api.Client
	Cart     *cart.Cart
	Nav      *nav.Stack
	Links    *deeplink.Resolver
	Routes   *routes.Table
	Checkout *checkout.Flow

	Session  *observe.Value[domain.Session]
	Theme    *observe.Value[theme.Variant]
	Language *observe.Value[string]

	prefsStore *prefs.Store
}

// New восстанавливает настройки и корзину и монтирует корневой стек
func New(cfg config.Config, log *zap.Logger, out io.Writer) *App {
	store := prefs.NewStore(cfg.PrefsPath())
	p := store.Load()
	if cfg.Language != "" {
		p.Language = cfg.Language
	}

	a := &App{
		cfg:        cfg,
		log:        log,
		out:        out,
		Routes:     routes.Default(),
		Cart:       cart.New(cart.NewFileStore(cfg.CartPath()), log),
		Nav:        nav.New(routes.ScreenCatalog),
		Session:    observe.NewValue(domain.Session{Seat: p.Seat}),
		Theme:      observe.NewValue(variantOf(p.DarkMode)),
		Language:   observe.NewValue(p.Language),
		prefsStore: store,
	}
	a.API = api.NewClient(cfg.APIURL, cfg.HTTPTimeout, log)
	a.Links = deeplink.New(a.Routes, a.Nav, log)
	a.Checkout = checkout.NewFlow(a.Cart, a.API, a.Nav, log)
	return a
}

func variantOf(dark bool) theme.Variant {
	if dark {
		return theme.Dark
	}
	return theme.Light
}

// Close сбрасывает отложенные записи и сохраняет настройки
func (a *App) Close() {
	a.Cart.Close()
	p := prefs.Prefs{
		Language: a.Language.Get(),
		DarkMode: a.Theme.Get() == theme.Dark,
		Seat:     a.Session.Get().Seat,
	}
	if err := a.prefsStore.Save(p); err != nil {
		a.log.Warn("prefs save failed", zap.Error(err))
	}
}

// Login входит по email и паролю. Админ попадает на панель, пассажир —
// в каталог; в обоих случаях дно стека подменяется, чтобы «назад» не
// вёл на экран входа.
func (a *App) Login(ctx context.Context, email, password, seat string) (domain.Session, error) {
	s, err := a.API.Login(ctx, email, password)
	if err != nil {
		return domain.Session{}, err
	}
	if s.Seat == "" {
		s.Seat = seat
	}
	a.Session.Set(s)
	if s.IsAdmin() {
		a.API.SetAdminCredentials(email, password)
		a.Nav.ReplaceRoot(routes.ScreenAdminPanel)
	} else {
		a.Nav.ReplaceRoot(routes.ScreenCatalog)
	}
	return s, nil
}

// GuestLogin гостевой вход: только номер места, без учётной записи
func (a *App) GuestLogin(seat string) error {
	if seat == "" {
		return checkout.ErrSeatRequired
	}
	a.Session.Set(domain.Session{Seat: seat, Role: domain.RolePassenger})
	a.Nav.ReplaceRoot(routes.ScreenCatalog)
	return nil
}

// Logout сбрасывает сессию и очищает стек до экрана входа
func (a *App) Logout() {
	a.Session.Set(domain.Session{})
	a.Nav.ResetTo(routes.ScreenLogin)
}

// AddToCart кладёт товар в корзину, фиксируя цену из каталога на момент
// добавления.
func (a *App) AddToCart(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	products, err := a.API.Catalog(ctx, api.CatalogFilter{})
	if err != nil {
		return err
	}
	for _, p := range products {
		if p.ID == productID {
			a.Cart.Add(domain.OrderItem{
				ProductID: p.ID,
				Name:      p.Name,
				Price:     p.Price,
				Quantity:  quantity,
				Image:     p.Image,
			})
			return nil
		}
	}
	return fmt.Errorf("product %q not found in catalog", productID)
}

// OpenURL обрабатывает глубокую ссылку и отображает текущий экран.
// Нераспознанная ссылка не меняет стек и не считается ошибкой.
func (a *App) OpenURL(ctx context.Context, url string) error {
	a.Links.HandleURL(url)
	return a.RenderCurrent(ctx)
}

// SetThemeName переключает тему по сохранённому имени варианта
func (a *App) SetThemeName(name string) {
	a.Theme.Set(theme.ParseVariant(name))
}

// Formatter форматтер цен для активного языка
func (a *App) Formatter() *currency.Formatter {
	return currency.ForLanguage(a.Language.Get())
}

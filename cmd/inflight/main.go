package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"inflight/internal/app"
	"inflight/internal/checkout"
	"inflight/internal/config"
	"inflight/internal/nav"
	"inflight/internal/routes"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := buildLogger(cfg.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	a := app.New(cfg, logger, os.Stdout)
	defer a.Close()

	cliApp := &cli.App{
		Name:  "inflight",
		Usage: "клиент бортового сервиса покупок",
		Commands: []*cli.Command{
			catalogCmd(a),
			productCmd(a),
			cartCmd(a),
			loginCmd(a),
			logoutCmd(a),
			checkoutCmd(a),
			orderCmd(a),
			ordersCmd(a),
			adminCmd(a),
			openCmd(a),
			prefsCmd(a),
		},
	}
	return cliApp.Run(args)
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func catalogCmd(a *app.App) *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "показать каталог товаров",
		Action: func(c *cli.Context) error {
			a.Nav.Navigate(routes.ScreenCatalog, nil)
			return a.RenderCurrent(c.Context)
		},
	}
}

func productCmd(a *app.App) *cli.Command {
	return &cli.Command{
		Name:      "product",
		Usage:     "карточка товара",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return cli.Exit("usage: inflight product <id>", 2)
			}
			a.Nav.Navigate(routes.ScreenProductDetails, nav.Params{"id": c.Args().First()})
			return a.RenderCurrent(c.Context)
		},
	}
}

func cartCmd(a *app.App) *cli.Command {
	return &cli.Command{
		Name:  "cart",
		Usage: "корзина",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "показать корзину",
				Action: func(c *cli.Context) error {
					a.Nav.Navigate(routes.ScreenCart, nil)
					return a.RenderCurrent(c.Context)
				},
			},
			{
				Name:      "add",
				Usage:     "добавить товар",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "qty", Value: 1, Usage: "количество"},
				},
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 1 {
						return cli.Exit("usage: inflight cart add <id> [--qty N]", 2)
					}
					return a.AddToCart(c.Context, c.Args().First(), c.Int("qty"))
				},
			},
			{
				Name:      "remove",
				Usage:     "убрать товар",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 1 {
						return cli.Exit("usage: inflight cart remove <id>", 2)
					}
					a.Cart.Remove(c.Args().First())
					return nil
				},
			},
			{
				Name:      "qty",
				Usage:     "изменить количество",
				ArgsUsage: "<id> <n>",
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 2 {
						return cli.Exit("usage: inflight cart qty <id> <n>", 2)
					}
					n, err := parsePositiveInt(c.Args().Get(1))
					if err != nil {
						return err
					}
					a.Cart.SetQuantity(c.Args().First(), n)
					return nil
				},
			},
			{
				Name:  "clear",
				Usage: "очистить корзину",
				Action: func(c *cli.Context) error {
					a.Cart.Clear()
					return nil
				},
			},
		},
	}
}

func loginCmd(a *app.App) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "вход в систему",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email"},
			&cli.StringFlag{Name: "password"},
			&cli.StringFlag{Name: "seat", Usage: "номер места"},
			&cli.BoolFlag{Name: "guest", Usage: "гостевой вход по номеру места"},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("guest") {
				if err := a.GuestLogin(c.String("seat")); err != nil {
					return err
				}
				fmt.Printf("Добро пожаловать, место %s\n", c.String("seat"))
				return nil
			}
			s, err := a.Login(c.Context, c.String("email"), c.String("password"), c.String("seat"))
			if err != nil {
				return err
			}
			if s.IsAdmin() {
				fmt.Println("Вход выполнен: администратор")
			} else {
				fmt.Printf("Вход выполнен, место %s\n", s.Seat)
			}
			return nil
		},
	}
}

func logoutCmd(a *app.App) *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "выход",
		Action: func(c *cli.Context) error {
			a.Logout()
			return nil
		},
	}
}

func checkoutCmd(a *app.App) *cli.Command {
	return &cli.Command{
		Name:  "checkout",
		Usage: "оформить заказ",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "seat", Usage: "номер места (по умолчанию из профиля)"},
			&cli.StringFlag{Name: "card", Usage: "номер карты", Required: true},
			&cli.StringFlag{Name: "expiry", Usage: "срок действия MM/YY", Required: true},
			&cli.StringFlag{Name: "cvv", Required: true},
			&cli.StringFlag{Name: "holder", Usage: "имя держателя карты", Required: true},
		},
		Action: func(c *cli.Context) error {
			seat := c.String("seat")
			if seat == "" {
				seat = a.Session.Get().Seat
			}
			if err := a.Checkout.Begin(seat); err != nil {
				return err
			}
			card := checkout.Card{
				Number: c.String("card"),
				Expiry: c.String("expiry"),
				CVV:    c.String("cvv"),
				Holder: c.String("holder"),
			}
			orderID, err := a.Checkout.Submit(c.Context, card)
			if err != nil {
				return err
			}
			fmt.Printf("Заказ принят: %s (карта %s)\n", orderID, card.MaskedNumber())
			return a.RenderCurrent(c.Context)
		},
	}
}

func orderCmd(a *app.App) *cli.Command {
	return &cli.Command{
		Name:      "order",
		Usage:     "статус заказа",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return cli.Exit("usage: inflight order <id>", 2)
			}
			a.Nav.Navigate(routes.ScreenOrderStatus, nav.Params{"id": c.Args().First()})
			return a.RenderCurrent(c.Context)
		},
	}
}

func ordersCmd(a *app.App) *cli.Command {
	return &cli.Command{
		Name:  "orders",
		Usage: "история заказов текущего места",
		Action: func(c *cli.Context) error {
			a.Nav.Navigate(routes.ScreenOrderHistory, nil)
			return a.RenderCurrent(c.Context)
		},
	}
}

func adminCmd(a *app.App) *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "административный контур",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
		},
		Subcommands: []*cli.Command{
			{
				Name:  "orders",
				Usage: "все заказы",
				Action: func(c *cli.Context) error {
					a.API.SetAdminCredentials(c.String("email"), c.String("password"))
					a.Nav.Navigate(routes.ScreenAdminPanel, nil)
					return a.RenderCurrent(c.Context)
				},
			},
			{
				Name:      "set-status",
				Usage:     "сменить статус заказа",
				ArgsUsage: "<id> <new|forming|done|cancelled>",
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 2 {
						return cli.Exit("usage: inflight admin set-status <id> <status>", 2)
					}
					a.API.SetAdminCredentials(c.String("email"), c.String("password"))
					st, err := a.API.SetOrderStatus(c.Context, c.Args().Get(0), c.Args().Get(1))
					if err != nil {
						return err
					}
					fmt.Printf("Статус заказа %s: %s\n", c.Args().Get(0), st)
					return nil
				},
			},
		},
	}
}

func openCmd(a *app.App) *cli.Command {
	return &cli.Command{
		Name:      "open",
		Usage:     "открыть глубокую ссылку",
		ArgsUsage: "<url>",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return cli.Exit("usage: inflight open <url>", 2)
			}
			return a.OpenURL(c.Context, c.Args().First())
		},
	}
}

func prefsCmd(a *app.App) *cli.Command {
	return &cli.Command{
		Name:  "prefs",
		Usage: "язык и тема",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "lang", Usage: "ru | en"},
			&cli.StringFlag{Name: "theme", Usage: "dark | light"},
		},
		Action: func(c *cli.Context) error {
			if v := c.String("lang"); v != "" {
				a.Language.Set(v)
			}
			if v := c.String("theme"); v != "" {
				a.SetThemeName(v)
			}
			a.Nav.Navigate(routes.ScreenProfile, nil)
			return a.RenderCurrent(c.Context)
		},
	}
}

func parsePositiveInt(s string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return n, nil
}

// Package deeplink разбирает входящие URL вида scheme://host/segment[/param]
// и переводит их в навигационные переходы через таблицу маршрутов.
package deeplink

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"inflight/internal/nav"
	"inflight/internal/routes"
)

// Navigator то, что умеет выполнить переход. Реализуется nav.Stack.
type Navigator interface {
	Navigate(screen routes.Screen, params nav.Params)
}

// Target результат разбора ссылки
type Target struct {
	Screen routes.Screen
	Params nav.Params
}

// Resolver обрабатывает ссылки из двух источников: начальный URL на
// холодном старте и поток событий входящих ссылок. Оба пути сходятся в
// HandleURL; если они сработают почти одновременно, на стеке побеждает
// последний — это принятое поведение, а не дефект.
type Resolver struct {
	table *routes.Table
	nav   Navigator
	log   *zap.Logger
}

func New(table *routes.Table, n Navigator, log *zap.Logger) *Resolver {
	return &Resolver{table: table, nav: n, log: log}
}

// Resolve разбирает URL без побочных эффектов. false — ссылка не ведёт
// ни на один экран (пустой путь, неизвестный сегмент, кривой URL);
// это не ошибка, вызывающему ничего не нужно показывать.
func (r *Resolver) Resolve(url string) (Target, bool) {
	_, rest, ok := strings.Cut(url, "//")
	if !ok {
		return Target{}, false
	}
	parts := strings.Split(rest, "/")
	// parts[0] — host, дальше сегменты пути
	segs := make([]string, 0, len(parts)-1)
	for _, s := range parts[1:] {
		if s != "" {
			segs = append(segs, s)
		}
	}
	if len(segs) == 0 {
		return Target{}, false
	}

	screen, ok := r.table.ScreenFor(segs[0])
	if !ok {
		return Target{}, false
	}

	params := nav.Params{}
	if name := r.table.ParamName(screen); name != "" && len(segs) > 1 {
		params[name] = segs[1]
	}
	return Target{Screen: screen, Params: params}, true
}

// HandleURL разбирает ссылку и выполняет переход. Любая некорректная
// ссылка молча игнорируется: пользователь не совершал видимого действия.
func (r *Resolver) HandleURL(url string) {
	t, ok := r.Resolve(url)
	if !ok {
		r.log.Debug("deeplink ignored", zap.String("url", url))
		return
	}
	r.log.Debug("deeplink resolved",
		zap.String("url", url),
		zap.String("screen", string(t.Screen)))
	r.nav.Navigate(t.Screen, t.Params)
}

// HandleInitialURL обрабатывает ссылку, открывшую приложение ("" — нет)
func (r *Resolver) HandleInitialURL(url string) {
	if url == "" {
		return
	}
	r.HandleURL(url)
}

// Listen обрабатывает входящие ссылки, пока жив процесс или канал
func (r *Resolver) Listen(ctx context.Context, urls <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-urls:
			if !ok {
				return
			}
			r.HandleURL(u)
		}
	}
}

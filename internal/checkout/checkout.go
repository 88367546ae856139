// Package checkout оркестрирует оформление заказа: валидация, сбор
// оплаты, запрос создания заказа и переход на экран статуса.
package checkout

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"inflight/internal/api"
	"inflight/internal/domain"
	"inflight/internal/nav"
	"inflight/internal/routes"
)

// State состояние машины оформления заказа
type State int

const (
	StateIdle State = iota
	StateAwaitingPayment
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateAwaitingPayment:
		return "AwaitingPayment"
	case StateSubmitting:
		return "Submitting"
	case StateSucceeded:
		return "Succeeded"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrSeatRequired = errors.New("seat number required")
	ErrInvalidState = errors.New("invalid checkout state")
)

// OrderCreator источник серверных заказов (реализуется api.Client)
type OrderCreator interface {
	CreateOrder(ctx context.Context, draft api.OrderDraft) (string, error)
}

// CartState корзина с точки зрения оформления заказа
type CartState interface {
	Items() []domain.OrderItem
	Len() int
	Clear()
}

// Navigator переход после успешного оформления
type Navigator interface {
	Navigate(screen routes.Screen, params nav.Params)
}

// Flow машина состояний одного оформления. Вся работа идёт в одной
// логической задаче UI; сетевой вызов приостанавливает её до ответа.
type Flow struct {
	cart CartState
	api  OrderCreator
	nav  Navigator
	log  *zap.Logger
	now  func() time.Time

	state   State
	seat    string
	gen     int // растёт при Cancel: поздний ответ отменённой отправки игнорируется
	lastErr error
}

func NewFlow(cart CartState, creator OrderCreator, n Navigator, log *zap.Logger) *Flow {
	return &Flow{cart: cart, api: creator, nav: n, log: log, now: time.Now}
}

// State текущее состояние машины
func (f *Flow) State() State { return f.state }

// LastError последняя ошибка отправки (для показа пользователю)
func (f *Flow) LastError() error { return f.lastErr }

// Begin переводит Idle -> AwaitingPayment. Пустая корзина или пустой
// номер места оставляют машину в Idle; сетевой вызов не выполняется.
func (f *Flow) Begin(seat string) error {
	if f.state != StateIdle {
		return ErrInvalidState
	}
	if f.cart.Len() == 0 {
		return ErrEmptyCart
	}
	if seat == "" {
		return ErrSeatRequired
	}
	f.seat = seat
	f.state = StateAwaitingPayment
	return nil
}

// Cancel закрывает форму оплаты: AwaitingPayment -> Idle, без побочных
// эффектов. Отправка, которая ещё в полёте, при завершении игнорируется.
func (f *Flow) Cancel() {
	if f.state != StateAwaitingPayment && f.state != StateSubmitting {
		return
	}
	f.gen++
	f.state = StateIdle
	f.seat = ""
	f.lastErr = nil
}

// Submit завершает форму оплаты и отправляет заказ. Успех очищает
// корзину и ведёт на экран статуса заказа; любая сетевая ошибка
// возвращает машину в AwaitingPayment с нетронутой корзиной — повтор
// только по действию пользователя.
func (f *Flow) Submit(ctx context.Context, card Card) (string, error) {
	if f.state != StateAwaitingPayment {
		return "", ErrInvalidState
	}
	if err := card.Validate(f.now()); err != nil {
		return "", err
	}

	items := f.cart.Items()
	draft := api.OrderDraft{
		Seat:          f.seat,
		PaymentMethod: "card",
	}
	for _, it := range items {
		// цена не отправляется: сервер пересчитывает её сам
		draft.Items = append(draft.Items, api.OrderLine{
			ItemID:   it.ProductID,
			Quantity: it.Quantity,
		})
	}

	f.state = StateSubmitting
	gen := f.gen
	orderID, err := f.api.CreateOrder(ctx, draft)
	if gen != f.gen {
		// экран оформления уже закрыт, поздний ответ никого не интересует
		return "", ErrInvalidState
	}
	if err != nil {
		f.log.Error("order submission failed", zap.Error(err))
		f.lastErr = err
		f.state = StateAwaitingPayment
		return "", err
	}

	f.state = StateSucceeded
	f.lastErr = nil
	f.cart.Clear()
	f.nav.Navigate(routes.ScreenOrderStatus, nav.Params{"id": orderID})
	return orderID, nil
}

package domain

import "time"

// Product представляет товар бортового каталога. Снимок данных сервера:
// клиент его не изменяет.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	CategoryID  string  `json:"category_id,omitempty"`
	Image       string  `json:"image,omitempty"`
	InStock     bool    `json:"in_stock"`
}

// Category категория каталога. Деревья категорий сервера разворачиваются
// в плоский список до использования.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

// OrderItem позиция корзины или заказа. Цена фиксируется в момент
// добавления и больше не обновляется.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
}

// OrderStatus статус заказа
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusPreparing  OrderStatus = "PREPARING"
	OrderStatusDelivering OrderStatus = "DELIVERING"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// ParseOrderStatus переводит серверное значение статуса в клиентское.
// Неизвестные строки пропускаются как есть, чтобы дрейф схемы сервера
// не ронял клиент.
func ParseOrderStatus(s string) OrderStatus {
	switch s {
	case "new":
		return OrderStatusPending
	case "forming":
		return OrderStatusPreparing
	case "delivering":
		return OrderStatusDelivering
	case "done":
		return OrderStatusCompleted
	case "cancelled":
		return OrderStatusCancelled
	default:
		return OrderStatus(s)
	}
}

// Order заказ, созданный сервером. Клиент никогда не фабрикует
// постоянный Order локально.
type Order struct {
	ID            string      `json:"id"`
	Items         []OrderItem `json:"items"`
	TotalAmount   float64     `json:"total_amount"`
	Status        OrderStatus `json:"status"`
	SeatNumber    string      `json:"seat_number"`
	CreatedAt     time.Time   `json:"created_at,omitzero"`
	UpdatedAt     time.Time   `json:"updated_at,omitzero"`
	PaymentMethod string      `json:"payment_method,omitempty"`
}

// Role роль пользователя из ответа сервера авторизации
type Role string

const (
	RolePassenger Role = "passenger"
	RoleAdmin     Role = "admin"
)

// Session результат входа: место пассажира и роль, выданная сервером.
// Клиент не определяет роль самостоятельно.
type Session struct {
	Seat string `json:"seat"`
	Role Role   `json:"role"`
}

// IsAdmin сообщает, открыт ли административный контур
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

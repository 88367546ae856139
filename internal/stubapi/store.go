package stubapi

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ErrNotFound возвращается, когда сущность не найдена
var ErrNotFound = errors.New("not found")

// Item товар каталога в том виде, в каком его отдаёт сервер
type Item struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	CategoryID  int64   `json:"category_id"`
	Image       string  `json:"image,omitempty"`
	Available   bool    `json:"available"`
}

// CategoryNode узел дерева категорий
type CategoryNode struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Children    []CategoryNode `json:"children,omitempty"`
}

// User учётная запись для /auth/login
type User struct {
	Email    string
	Password string
	Seat     string
	IsAdmin  bool
}

// OrderLine строка серверного заказа
type OrderLine struct {
	ItemID   int64   `json:"item_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Order серверный заказ. Статусы серверные: new, forming, done, cancelled.
type Order struct {
	ID             int64       `json:"id"`
	Seat           string      `json:"seat"`
	Status         string      `json:"status"`
	Total          float64     `json:"total"`
	Items          []OrderLine `json:"items"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
	PaymentMethod  string      `json:"payment_method,omitempty"`
	IdempotencyKey string      `json:"-"`
}

var orderStatuses = map[string]bool{
	"new": true, "forming": true, "done": true, "cancelled": true,
}

// ItemFilter параметры фильтрации каталога
type ItemFilter struct {
	Query     string
	Category  *int64
	MinPrice  *float64
	MaxPrice  *float64
	Available *bool
}

// Store объединённое in-memory хранилище стаба и простой генератор ID
type Store struct {
	mu          sync.RWMutex
	nextOrderID int64
	itemsByID   map[int64]Item
	itemOrder   []int64
	categories  []CategoryNode
	users       []User
	ordersByID  map[int64]Order
	byIdemKey   map[string]int64
}

func NewStore() *Store {
	return &Store{
		nextOrderID: 1,
		itemsByID:   make(map[int64]Item),
		ordersByID:  make(map[int64]Order),
		byIdemKey:   make(map[string]int64),
	}
}

// Seed наполняет хранилище стартовыми данными
func (s *Store) Seed(items []Item, categories []CategoryNode, users []User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range items {
		s.itemsByID[it.ID] = it
		s.itemOrder = append(s.itemOrder, it.ID)
	}
	s.categories = categories
	s.users = users
}

func (s *Store) Items(f ItemFilter) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, 0, len(s.itemOrder))
	for _, id := range s.itemOrder {
		it := s.itemsByID[id]
		if f.Query != "" && !containsIgnoreCase(it.Name, f.Query) && !containsIgnoreCase(it.Description, f.Query) {
			continue
		}
		if f.Category != nil && it.CategoryID != *f.Category {
			continue
		}
		if f.MinPrice != nil && it.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && it.Price > *f.MaxPrice {
			continue
		}
		if f.Available != nil && it.Available != *f.Available {
			continue
		}
		out = append(out, it)
	}
	return out
}

func (s *Store) Item(id int64) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.itemsByID[id]
	if !ok {
		return Item{}, ErrNotFound
	}
	return it, nil
}

func (s *Store) Categories() []CategoryNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories
}

// Authenticate проверяет пару email/пароль
func (s *Store) Authenticate(email, password string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email && u.Password == password {
			return u, true
		}
	}
	return User{}, false
}

// CreateOrder создаёт заказ; повтор с тем же ключом идемпотентности
// возвращает уже созданный заказ.
func (s *Store) CreateOrder(seat string, lines []OrderLine, paymentMethod, idemKey string) (Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idemKey != "" {
		if id, ok := s.byIdemKey[idemKey]; ok {
			return s.ordersByID[id], false
		}
	}
	now := time.Now().UTC()
	o := Order{
		ID:             s.nextOrderID,
		Seat:           seat,
		Status:         "new",
		Items:          lines,
		CreatedAt:      now,
		UpdatedAt:      now,
		PaymentMethod:  paymentMethod,
		IdempotencyKey: idemKey,
	}
	for _, l := range lines {
		o.Total += l.Price * float64(l.Quantity)
	}
	s.nextOrderID++
	s.ordersByID[o.ID] = o
	if idemKey != "" {
		s.byIdemKey[idemKey] = o.ID
	}
	return o, true
}

func (s *Store) Order(id int64) (Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.ordersByID[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return o, nil
}

func (s *Store) Orders(seat, status string) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Order, 0, len(s.ordersByID))
	for id := int64(1); id < s.nextOrderID; id++ {
		o, ok := s.ordersByID[id]
		if !ok {
			continue
		}
		if seat != "" && o.Seat != seat {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, o)
	}
	return out
}

// SetOrderStatus меняет статус заказа; неизвестный статус игнорируется
func (s *Store) SetOrderStatus(id int64, status string) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.ordersByID[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	if orderStatuses[status] {
		o.Status = status
		o.UpdatedAt = time.Now().UTC()
		s.ordersByID[id] = o
	}
	return o, nil
}

func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func parsePrice(v string) *float64 {
	if v == "" {
		return nil
	}
	x, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &x
}

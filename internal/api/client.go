// Package api — тонкий REST-клиент сервиса бортовых покупок.
// Контракт: JSON поверх HTTP, базовый URL из конфигурации.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"inflight/internal/domain"
)

// APIError ответ сервера с кодом вне 2xx
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("api: status %d", e.StatusCode)
}

// Client клиент удалённого API. Таймауты — на уровне http.Client.
type Client struct {
	base string
	http *http.Client
	log  *zap.Logger

	// учётные данные для административных вызовов (basic auth)
	adminEmail    string
	adminPassword string
}

func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		base: baseURL,
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

// SetAdminCredentials включает basic auth для административного контура
func (c *Client) SetAdminCredentials(email, password string) {
	c.adminEmail = email
	c.adminPassword = password
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Seat    string `json:"seat"`
	IsAdmin bool   `json:"is_admin"`
}

// Login выполняет вход. Роль берётся из ответа сервера; клиент не
// принимает решений об административности сам.
func (c *Client) Login(ctx context.Context, email, password string) (domain.Session, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &resp, nil)
	if err != nil {
		return domain.Session{}, err
	}
	role := domain.RolePassenger
	if resp.IsAdmin {
		role = domain.RoleAdmin
	}
	return domain.Session{Seat: resp.Seat, Role: role}, nil
}

// CatalogFilter параметры фильтрации каталога
type CatalogFilter struct {
	Query     string
	Category  string
	MinPrice  *float64
	MaxPrice  *float64
	Available *bool
}

type wireProduct struct {
	ID          json.Number `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	CategoryID  json.Number `json:"category_id"`
	Category    string      `json:"category"`
	Image       string      `json:"image"`
	Available   bool        `json:"available"`
}

// Catalog запрашивает список товаров
func (c *Client) Catalog(ctx context.Context, f CatalogFilter) ([]domain.Product, error) {
	q := url.Values{}
	if f.Query != "" {
		q.Set("q", f.Query)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.MinPrice != nil {
		q.Set("price_min", strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		q.Set("price_max", strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	if f.Available != nil {
		if *f.Available {
			q.Set("available", "1")
		} else {
			q.Set("available", "0")
		}
	}
	var wire []wireProduct
	if err := c.do(ctx, http.MethodGet, "/catalog", q, nil, &wire, nil); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(wire))
	for _, w := range wire {
		category := w.CategoryID.String()
		if category == "" {
			category = w.Category
		}
		out = append(out, domain.Product{
			ID:          w.ID.String(),
			Name:        w.Name,
			Description: w.Description,
			Price:       w.Price,
			CategoryID:  category,
			Image:       w.Image,
			InStock:     w.Available,
		})
	}
	return out, nil
}

type wireCategory struct {
	ID          json.Number    `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Image       string         `json:"image"`
	Children    []wireCategory `json:"children"`
}

// Categories возвращает дерево категорий, развёрнутое в плоский список:
// родитель раньше детей, порядок обхода сохраняется.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var tree []wireCategory
	if err := c.do(ctx, http.MethodGet, "/catalog/categories", nil, nil, &tree, nil); err != nil {
		return nil, err
	}
	return flattenCategories(tree, nil), nil
}

func flattenCategories(nodes []wireCategory, acc []domain.Category) []domain.Category {
	for _, n := range nodes {
		acc = append(acc, domain.Category{
			ID:          n.ID.String(),
			Name:        n.Name,
			Description: n.Description,
			Image:       n.Image,
		})
		acc = flattenCategories(n.Children, acc)
	}
	return acc
}

// OrderLine строка исходящего заказа: только товар и количество,
// цену сервер считает сам.
type OrderLine struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// OrderDraft исходящий заказ
type OrderDraft struct {
	Seat          string      `json:"seat"`
	Items         []OrderLine `json:"items"`
	PaymentMethod string      `json:"payment_method,omitempty"`
}

type createOrderResponse struct {
	OrderID json.Number `json:"order_id"`
}

// на проводе item_id числовой; нечисловые идентификаторы уходят как есть
type wireOrderLine struct {
	ItemID   any `json:"item_id"`
	Quantity int `json:"quantity"`
}

type wireOrderDraft struct {
	Seat          string          `json:"seat"`
	Items         []wireOrderLine `json:"items"`
	PaymentMethod string          `json:"payment_method,omitempty"`
}

// CreateOrder отправляет заказ. Заголовок Idempotency-Key защищает от
// дублей при повторе после сетевого сбоя.
func (c *Client) CreateOrder(ctx context.Context, draft OrderDraft) (string, error) {
	wire := wireOrderDraft{Seat: draft.Seat, PaymentMethod: draft.PaymentMethod}
	for _, l := range draft.Items {
		var id any = l.ItemID
		if n, err := strconv.ParseInt(l.ItemID, 10, 64); err == nil {
			id = n
		}
		wire.Items = append(wire.Items, wireOrderLine{ItemID: id, Quantity: l.Quantity})
	}
	headers := map[string]string{"Idempotency-Key": uuid.NewString()}
	var resp createOrderResponse
	if err := c.do(ctx, http.MethodPost, "/orders", nil, wire, &resp, headers); err != nil {
		return "", err
	}
	return resp.OrderID.String(), nil
}

type wireOrder struct {
	ID            json.Number `json:"id"`
	Seat          string      `json:"seat"`
	Status        string      `json:"status"`
	Total         float64     `json:"total"`
	CreatedAt     string      `json:"created_at"`
	UpdatedAt     string      `json:"updated_at"`
	PaymentMethod string      `json:"payment_method"`
	Items         []struct {
		ItemID   json.Number `json:"item_id"`
		Name     string      `json:"name"`
		Price    float64     `json:"price"`
		Quantity int         `json:"quantity"`
	} `json:"items"`
}

func (w wireOrder) toDomain() domain.Order {
	o := domain.Order{
		ID:            w.ID.String(),
		SeatNumber:    w.Seat,
		Status:        domain.ParseOrderStatus(w.Status),
		TotalAmount:   w.Total,
		PaymentMethod: w.PaymentMethod,
	}
	if t, err := time.Parse(time.RFC3339, w.CreatedAt); err == nil {
		o.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, w.UpdatedAt); err == nil {
		o.UpdatedAt = t
	}
	for _, it := range w.Items {
		o.Items = append(o.Items, domain.OrderItem{
			ProductID: it.ItemID.String(),
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}
	return o
}

// Order возвращает заказ по идентификатору
func (c *Client) Order(ctx context.Context, id string) (domain.Order, error) {
	var w wireOrder
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, nil, &w, nil); err != nil {
		return domain.Order{}, err
	}
	return w.toDomain(), nil
}

// Orders возвращает заказы по месту и, опционально, статусу
func (c *Client) Orders(ctx context.Context, seat, status string) ([]domain.Order, error) {
	q := url.Values{}
	if seat != "" {
		q.Set("seat", seat)
	}
	if status != "" {
		q.Set("status", status)
	}
	var wire []wireOrder
	if err := c.do(ctx, http.MethodGet, "/orders", q, nil, &wire, nil); err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toDomain())
	}
	return out, nil
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// SetOrderStatus административное обновление статуса (basic auth)
func (c *Client) SetOrderStatus(ctx context.Context, id, status string) (domain.OrderStatus, error) {
	var resp struct {
		Status string `json:"status"`
	}
	err := c.do(ctx, http.MethodPatch, "/orders/"+url.PathEscape(id), nil, setStatusRequest{Status: status}, &resp, nil)
	if err != nil {
		return "", err
	}
	return domain.ParseOrderStatus(resp.Status), nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, headers map[string]string) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if c.adminEmail != "" {
		req.SetBasicAuth(c.adminEmail, c.adminPassword)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		c.log.Debug("api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return &APIError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(data))}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Package stubapi — локальный in-memory стаб сервиса бортовых покупок.
// Реализует опубликованный контракт API для разработки и интеграционных
// тестов клиента; это фикстура, а не серверный дизайн.
package stubapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Server стаб API поверх gin
type Server struct {
	engine *gin.Engine
	store  *Store
}

func NewServer(store *Store) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	s := &Server{engine: r, store: store}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	s.engine.GET("/catalog", s.catalog)
	s.engine.GET("/catalog/categories", s.categories)
	s.engine.POST("/auth/login", s.login)

	orders := s.engine.Group("/orders")
	orders.POST("", s.createOrder)
	orders.GET("", s.listOrders)
	orders.GET(":id", s.getOrder)
	orders.PATCH(":id", s.requireAdmin, s.setOrderStatus)
}

func (s *Server) catalog(c *gin.Context) {
	f := ItemFilter{
		Query:    c.Query("q"),
		MinPrice: parsePrice(c.Query("price_min")),
		MaxPrice: parsePrice(c.Query("price_max")),
	}
	if v := c.Query("category"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.Category = &id
		}
	}
	switch c.Query("available") {
	case "1":
		t := true
		f.Available = &t
	case "0":
		t := false
		f.Available = &t
	}
	c.JSON(http.StatusOK, s.store.Items(f))
}

func (s *Server) categories(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Categories())
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	u, ok := s.store.Authenticate(req.Email, req.Password)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"seat": u.Seat, "is_admin": u.IsAdmin})
}

type createOrderReq struct {
	Seat  string `json:"seat"`
	Items []struct {
		ItemID   int64 `json:"item_id"`
		Quantity int   `json:"quantity"`
	} `json:"items"`
	PaymentMethod string `json:"payment_method"`
}

func (s *Server) createOrder(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Seat == "" || len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	lines := make([]OrderLine, 0, len(req.Items))
	for _, it := range req.Items {
		item, err := s.store.Item(it.ItemID)
		if err != nil {
			continue // неизвестные товары пропускаются, как в оригинале
		}
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		// цена берётся из каталога, присланным ценам сервер не доверяет
		lines = append(lines, OrderLine{ItemID: item.ID, Name: item.Name, Price: item.Price, Quantity: qty})
	}
	o, created := s.store.CreateOrder(req.Seat, lines, req.PaymentMethod, c.GetHeader("Idempotency-Key"))
	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{"order_id": o.ID})
}

func (s *Server) getOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	o, err := s.store.Order(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, o)
}

func (s *Server) listOrders(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Orders(c.Query("seat"), c.Query("status")))
}

type setStatusReq struct {
	Status string `json:"status"`
}

func (s *Server) setOrderStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req setStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	o, err := s.store.SetOrderStatus(id, req.Status)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": o.Status})
}

func (s *Server) requireAdmin(c *gin.Context) {
	email, password, ok := c.Request.BasicAuth()
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	u, ok := s.store.Authenticate(email, password)
	if !ok || !u.IsAdmin {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Next()
}

// SeedDemo данные для локального запуска и тестов
func SeedDemo(store *Store) {
	store.Seed(
		[]Item{
			{ID: 1, Name: "Куриное филе с овощами", Price: 750, CategoryID: 1, Available: true},
			{ID: 2, Name: "Паста Карбонара", Price: 680, CategoryID: 1, Available: true},
			{ID: 3, Name: "Свежевыжатый апельсиновый сок", Price: 350, CategoryID: 2, Available: true},
			{ID: 4, Name: "Кофе Американо", Price: 280, CategoryID: 2, Available: true},
			{ID: 5, Name: "Тирамису", Price: 420, CategoryID: 3, Available: false},
		},
		[]CategoryNode{
			{ID: 1, Name: "Горячие блюда"},
			{ID: 2, Name: "Напитки", Children: []CategoryNode{
				{ID: 4, Name: "Горячие напитки"},
				{ID: 5, Name: "Холодные напитки"},
			}},
			{ID: 3, Name: "Десерты"},
		},
		[]User{
			{Email: "user@example.com", Password: "password", Seat: "12A"},
			{Email: "admin@example.com", Password: "admin", IsAdmin: true},
		},
	)
}

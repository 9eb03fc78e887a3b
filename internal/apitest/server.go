// Package apitest provides an in-process fake of the sales backend for
// tests: the external route surface served by a gin engine over httptest,
// with canned fixtures and failure hooks.
package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"salespoint/internal/model"
)

// mustDecimal parses wire decimal strings from request payloads; fixtures
// are trusted input, so unparsable values become zero.
func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Server is the fake backend. Fields are fixtures; mutate them before the
// client call under test. Every authenticated route checks the bearer token.
type Server struct {
	*httptest.Server

	mu sync.Mutex

	// Token is the bearer token the server accepts. Login returns it.
	Token string
	// User is the profile returned by /login and /profile.
	User model.Profile

	Products []model.Product
	Statuses model.StatusSet
	Settings []model.Setting

	Customers []model.Customer
	Cities    []model.City
	Brands    []model.Brand

	Invoices map[string]*model.Invoice
	Stocks   map[string]*model.StockDocument

	// ForceStatus, when non-zero, makes every authenticated route answer
	// with that status code and an empty body.
	ForceStatus int
	// ValidationFields, when set, makes document submissions answer 422
	// with this field map.
	ValidationFields map[string][]string

	// DeletedItems records line-item ids deleted via the items endpoints.
	DeletedItems []string
	// requests logs "METHOD /path" for every request received.
	requests []string

	nextID int
}

// New starts the fake backend with a default token and empty fixtures.
func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		Token:    "test-token",
		User:     model.Profile{ID: "u1", Name: "Test User", Email: "user@example.com"},
		Statuses: model.StatusSet{"1": "Active", "2": "Inactive", "3": "Posted"},
		Invoices: map[string]*model.Invoice{},
		Stocks:   map[string]*model.StockDocument{},
	}

	r := gin.New()
	r.Use(s.record)

	r.POST("/login", s.login)

	auth := r.Group("", s.requireAuth)
	auth.GET("/active/products", s.activeProducts)
	auth.GET("/status", s.statusList)
	auth.GET("/settings", s.settingsList)
	auth.GET("/profile", s.profileGet)
	auth.PUT("/profile", s.profileUpdate)

	auth.GET("/products", s.listProducts)
	auth.POST("/products", s.createProduct)
	auth.PUT("/products/:id", s.updateProduct)
	auth.DELETE("/products/:id", s.ok)

	auth.GET("/customers", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": s.Customers}) })
	auth.POST("/customers", s.createCustomer)
	auth.PUT("/customers/:id", s.updateCustomer)
	auth.DELETE("/customers/:id", s.ok)

	auth.GET("/cities", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"records": s.Cities}) })
	auth.POST("/cities", s.createCity)
	auth.PUT("/cities/:id", s.updateCity)
	auth.DELETE("/cities/:id", s.ok)

	auth.GET("/brands", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": s.Brands}) })
	auth.POST("/brands", s.createBrand)
	auth.PUT("/brands/:id", s.updateBrand)
	auth.DELETE("/brands/:id", s.ok)

	auth.GET("/invoices", s.listInvoices)
	auth.GET("/invoices/:id", s.getInvoice)
	auth.POST("/invoices", s.submitInvoice)
	auth.PUT("/invoices/:id", s.submitInvoice)
	auth.DELETE("/invoices/items/:itemID", s.deleteInvoiceItem)

	auth.GET("/stocks", s.listStocks)
	auth.GET("/stocks/:id", s.getStock)
	auth.POST("/stocks", s.submitStock)
	auth.PUT("/stocks/:id", s.submitStock)
	auth.DELETE("/stocks/items/:itemID", s.deleteStockItem)

	s.Server = httptest.NewServer(r)
	return s
}

// Requests returns the "METHOD /path" log.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// RequestCount returns how many requests have been received.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *Server) record(c *gin.Context) {
	s.mu.Lock()
	s.requests = append(s.requests, c.Request.Method+" "+c.Request.URL.Path)
	s.mu.Unlock()
	c.Next()
}

func (s *Server) requireAuth(c *gin.Context) {
	if s.ForceStatus != 0 {
		c.AbortWithStatusJSON(s.ForceStatus, gin.H{"message": "forced failure"})
		return
	}
	header := c.GetHeader("Authorization")
	if header != "Bearer "+s.Token {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return
	}
	c.Next()
}

func (s *Server) ok(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (s *Server) id(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func (s *Server) login(c *gin.Context) {
	var creds model.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad payload"})
		return
	}
	if creds.Email != s.User.Email {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": model.LoginResult{Token: s.Token, User: s.User}})
}

func (s *Server) activeProducts(c *gin.Context) {
	// Served bare, unlike the wrapped list endpoints, so both envelope
	// shapes stay covered.
	c.JSON(http.StatusOK, s.Products)
}

func (s *Server) statusList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.Statuses})
}

func (s *Server) settingsList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.Settings})
}

func (s *Server) profileGet(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.User})
}

func (s *Server) profileUpdate(c *gin.Context) {
	var req model.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad payload"})
		return
	}
	s.User.Name = req.Name
	s.User.Email = req.Email
	s.User.Phone = req.Phone
	c.JSON(http.StatusOK, gin.H{"data": s.User})
}

func (s *Server) listProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.Products})
}

func (s *Server) createProduct(c *gin.Context) {
	var req model.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad payload"})
		return
	}
	p := model.Product{ID: s.id("p"), Name: req.Name, SKU: req.SKU, UnitID: req.UnitID, BrandID: req.BrandID}
	s.Products = append(s.Products, p)
	c.JSON(http.StatusCreated, gin.H{"data": p})
}

func (s *Server) updateProduct(c *gin.Context) {
	var req model.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad payload"})
		return
	}
	for i := range s.Products {
		if s.Products[i].ID == c.Param("id") {
			s.Products[i].Name = req.Name
			s.Products[i].SKU = req.SKU
			c.JSON(http.StatusOK, gin.H{"data": s.Products[i]})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
}

func (s *Server) createCustomer(c *gin.Context) {
	var req model.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad payload"})
		return
	}
	cust := model.Customer{ID: s.id("c"), Name: req.Name, Email: req.Email, Phone: req.Phone, Address: req.Address, CityID: req.CityID}
	s.Customers = append(s.Customers, cust)
	c.JSON(http.StatusCreated, gin.H{"data": cust})
}

func (s *Server) updateCustomer(c *gin.Context) {
	var req model.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad payload"})
		return
	}
	for i := range s.Customers {
		if s.Customers[i].ID == c.Param("id") {
			s.Customers[i].Name = req.Name
			c.JSON(http.StatusOK, gin.H{"data": s.Customers[i]})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "customer not found"})
}

func (s *Server) createCity(c *gin.Context) {
	var req model.CityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad payload"})
		return
	}
	city := model.City{ID: s.id("city"), Name: req.Name}
	s.Cities = append(s.Cities, city)
	c.JSON(http.StatusCreated, gin.H{"data": city})
}

func (s *Server) updateCity(c *gin.Context) {
	var req model.CityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad payload"})
		return
	}
	for i := range s.Cities {
		if s.Cities[i].ID == c.Param("id") {
			s.Cities[i].Name = req.Name
			c.JSON(http.StatusOK, gin.H{"data": s.Cities[i]})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "city not found"})
}

func (s *Server) createBrand(c *gin.Context) {
	var req model.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad payload"})
		return
	}
	b := model.Brand{ID: s.id("b"), Name: req.Name}
	s.Brands = append(s.Brands, b)
	c.JSON(http.StatusCreated, gin.H{"data": b})
}

func (s *Server) updateBrand(c *gin.Context) {
	var req model.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad payload"})
		return
	}
	for i := range s.Brands {
		if s.Brands[i].ID == c.Param("id") {
			s.Brands[i].Name = req.Name
			c.JSON(http.StatusOK, gin.H{"data": s.Brands[i]})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "brand not found"})
}

func (s *Server) listInvoices(c *gin.Context) {
	out := make([]model.Invoice, 0, len(s.Invoices))
	for _, inv := range s.Invoices {
		out = append(out, *inv)
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (s *Server) getInvoice(c *gin.Context) {
	inv, ok := s.Invoices[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "invoice not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": inv})
}

func (s *Server) submitInvoice(c *gin.Context) {
	if s.ValidationFields != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The given data was invalid.", "errors": s.ValidationFields})
		return
	}
	var req model.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad payload"})
		return
	}

	id := c.Param("id")
	number := ""
	if id == "" {
		id = s.id("inv")
		number = "INV-" + strings.ToUpper(id)
	} else if existing, ok := s.Invoices[id]; ok {
		number = existing.InvoiceNumber
	}

	inv := &model.Invoice{
		ID:            id,
		InvoiceNumber: number,
		InvoiceDate:   req.InvoiceDate,
		Status:        req.Status,
		Description:   req.Description,
		CustomerID:    req.CustomerID,
	}
	for _, item := range req.Items {
		itemID := item.ID
		if itemID == "" {
			itemID = s.id("item")
		}
		inv.Details = append(inv.Details, model.InvoiceItem{
			ID:            itemID,
			ProductID:     item.ProductID,
			Quantity:      mustDecimal(item.Quantity),
			UnitID:        item.UnitID,
			DiscountType:  item.DiscountType,
			DiscountValue: mustDecimal(item.DiscountValue),
			Price:         mustDecimal(item.Price),
			TotalAmount:   mustDecimal(item.TotalAmount),
		})
	}
	s.Invoices[id] = inv
	c.JSON(http.StatusOK, gin.H{"data": inv})
}

func (s *Server) deleteInvoiceItem(c *gin.Context) {
	itemID := c.Param("itemID")
	for _, inv := range s.Invoices {
		for i, item := range inv.Details {
			if item.ID == itemID {
				inv.Details = append(inv.Details[:i], inv.Details[i+1:]...)
				s.mu.Lock()
				s.DeletedItems = append(s.DeletedItems, itemID)
				s.mu.Unlock()
				c.JSON(http.StatusOK, gin.H{"message": "deleted"})
				return
			}
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "item not found"})
}

func (s *Server) listStocks(c *gin.Context) {
	out := make([]model.StockDocument, 0, len(s.Stocks))
	for _, doc := range s.Stocks {
		out = append(out, *doc)
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (s *Server) getStock(c *gin.Context) {
	doc, ok := s.Stocks[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "stock document not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": doc})
}

func (s *Server) submitStock(c *gin.Context) {
	if s.ValidationFields != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The given data was invalid.", "errors": s.ValidationFields})
		return
	}
	var req model.StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad payload"})
		return
	}

	id := c.Param("id")
	if id == "" {
		id = s.id("stk")
	}

	doc := &model.StockDocument{
		ID:             id,
		DocumentNumber: req.DocumentNumber,
		DocumentDate:   req.DocumentDate,
		Status:         req.Status,
		Description:    req.Description,
	}
	for _, item := range req.Items {
		itemID := item.ID
		if itemID == "" {
			itemID = s.id("item")
		}
		doc.Details = append(doc.Details, model.StockItem{
			ID:          itemID,
			ProductID:   item.ProductID,
			Quantity:    mustDecimal(item.Quantity),
			UnitID:      item.UnitID,
			Price:       mustDecimal(item.Price),
			TotalAmount: mustDecimal(item.TotalAmount),
		})
	}
	s.Stocks[id] = doc
	c.JSON(http.StatusOK, gin.H{"data": doc})
}

func (s *Server) deleteStockItem(c *gin.Context) {
	itemID := c.Param("itemID")
	for _, doc := range s.Stocks {
		for i, item := range doc.Details {
			if item.ID == itemID {
				doc.Details = append(doc.Details[:i], doc.Details[i+1:]...)
				s.mu.Lock()
				s.DeletedItems = append(s.DeletedItems, itemID)
				s.mu.Unlock()
				c.JSON(http.StatusOK, gin.H{"message": "deleted"})
				return
			}
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "item not found"})
}

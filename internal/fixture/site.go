// Package fixture serves a miniature retail site with the same markup
// patterns as the production target: searchable listing cards, a cookie
// banner, a cart that renders real rows and promotional decoys through the
// same container shape, and a grand total placed after the subtotal row. The
// e2e suite runs the full shopping flow against it without touching the
// network.
package fixture

import (
	"encoding/json"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	// ListPrice is the crossed-out shelf price of a discounted product; zero
	// means the product sells at Price.
	ListPrice float64 `json:"list_price,omitempty"`
	Unit      string  `json:"unit"`
	Code      string  `json:"code"`
}

func (p Product) listPrice() float64 {
	if p.ListPrice > 0 {
		return p.ListPrice
	}
	return p.Price
}

func defaultCatalog() []Product {
	return []Product{
		{ID: "p1", Name: "Lapte Zuzu 1L", Price: 6.49, ListPrice: 6.99, Unit: "L", Code: "24001"},
		{ID: "p2", Name: "Pâine Albă", Price: 3.20, Unit: "buc", Code: "24002"},
		{ID: "p3", Name: "Iaurt Grecesc 10%", Price: 4.80, Unit: "Kg", Code: "24003"},
		{ID: "p4", Name: "Lapte de capră 500ml", Price: 8.90, Unit: "L", Code: "24004"},
	}
}

// Server holds the catalog and one shared cart. A scenario owns its page
// session exclusively, so one cart per server is enough; the mutex guards
// against the handler goroutines themselves.
type Server struct {
	mu      sync.Mutex
	cart    map[string]int
	catalog []Product
	router  chi.Router
}

func NewServer() *Server {
	s := &Server{
		cart:    make(map[string]int),
		catalog: defaultCatalog(),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST"},
	}))

	r.Get("/", s.handleHome)
	r.Get("/search", s.handleSearch)
	r.Post("/cart/add", s.handleCartAdd)
	r.Get("/checkout", s.handleCheckout)
	r.Get("/api/cart", s.handleCartJSON)

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Reset empties the cart between scenarios.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = make(map[string]int)
}

func (s *Server) addToCart(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.catalog {
		if p.ID == id {
			s.cart[id]++
			return true
		}
	}
	return false
}

type cartLine struct {
	Product   Product
	Quantity  int
	BaniTotal int
}

func (s *Server) cartLines() []cartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]cartLine, 0, len(s.cart))
	for _, p := range s.catalog {
		qty, ok := s.cart[p.ID]
		if !ok {
			continue
		}
		lines = append(lines, cartLine{
			Product:   p,
			Quantity:  qty,
			BaniTotal: int(math.Round(p.Price * 100 * float64(qty))),
		})
	}
	return lines
}

// foldDiacritics lets "paine" find "Pâine Albă".
func foldDiacritics(s string) string {
	replacer := strings.NewReplacer(
		"ă", "a", "â", "a", "î", "i", "ș", "s", "ț", "t",
		"Ă", "a", "Â", "a", "Î", "i", "Ș", "s", "Ț", "t",
	)
	return replacer.Replace(strings.ToLower(s))
}

func (s *Server) search(query string) []Product {
	if strings.TrimSpace(query) == "" {
		return s.catalog
	}

	needle := foldDiacritics(query)
	var matches []Product
	for _, p := range s.catalog {
		if strings.Contains(foldDiacritics(p.Name), needle) {
			matches = append(matches, p)
		}
	}
	return matches
}

func formatLei(amount float64) string {
	return strings.Replace(fmt.Sprintf("%.2f lei", amount), ".", ",", 1)
}

func (s *Server) badge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for range s.cart {
		n++
	}
	return n
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, homeTemplate, map[string]any{
		"Badge": s.badge(),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	type card struct {
		Product
		PriceText string
	}

	results := s.search(query)
	cards := make([]card, 0, len(results))
	for _, p := range results {
		cards = append(cards, card{Product: p, PriceText: formatLei(p.Price)})
	}

	s.render(w, searchTemplate, map[string]any{
		"Query": query,
		"Cards": cards,
		"Badge": s.badge(),
	})
}

func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	if !s.addToCart(r.PostFormValue("id")) {
		http.Error(w, "unknown product", http.StatusNotFound)
		return
	}

	back := r.PostFormValue("back")
	if back == "" {
		back = "/"
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	lines := s.cartLines()

	type row struct {
		Name          string
		Quantity      int
		UnitPriceText string
		Unit          string
		BaniTotal     int
		Code          string
	}

	// The subtotal sums shelf prices; discounted products pull the grand
	// total below it, so the summary renders three distinct rows the way the
	// production cart does.
	var rows []row
	var total, subtotal float64
	for _, line := range lines {
		rows = append(rows, row{
			Name:          line.Product.Name,
			Quantity:      line.Quantity,
			UnitPriceText: strings.Replace(fmt.Sprintf("%.2f", line.Product.Price), ".", ",", 1),
			Unit:          line.Product.Unit,
			BaniTotal:     line.BaniTotal,
			Code:          line.Product.Code,
		})
		total += float64(line.BaniTotal) / 100
		subtotal += line.Product.listPrice() * float64(line.Quantity)
	}

	s.render(w, checkoutTemplate, map[string]any{
		"Rows":         rows,
		"Count":        len(rows),
		"SubtotalText": formatLei(subtotal),
		"DiscountText": formatLei(subtotal - total),
		"TotalText":    formatLei(total),
		"Badge":        s.badge(),
	})
}

func (s *Server) handleCartJSON(w http.ResponseWriter, r *http.Request) {
	type jsonLine struct {
		Product  Product `json:"product"`
		Quantity int     `json:"quantity"`
	}

	lines := s.cartLines()
	out := make([]jsonLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, jsonLine{Product: line.Product, Quantity: line.Quantity})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (s *Server) render(w http.ResponseWriter, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

package service

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	"farmapos/internal/model"

	"github.com/rs/zerolog/log"
)

// barcodePattern: 8 to 100 consecutive digits means the query came from
// a scanner, not from someone typing a name.
var barcodePattern = regexp.MustCompile(`^\d{8,100}$`)

// IsBarcode reports whether the query is barcode-shaped.
func IsBarcode(query string) bool {
	return barcodePattern.MatchString(strings.TrimSpace(query))
}

// productLister is the slice of the GraphQL client the catalog needs.
type productLister interface {
	Products(ctx context.Context) ([]model.Product, error)
}

// Catalog holds the full product list (fetched eagerly, not paginated)
// and filters it in memory for autocomplete and scan detection.
type Catalog struct {
	api productLister

	mu       sync.RWMutex
	products []model.Product
}

func NewCatalog(api productLister) *Catalog {
	return &Catalog{api: api}
}

// Refresh fetches the full product list from the backend.
func (c *Catalog) Refresh(ctx context.Context) error {
	products, err := c.api.Products(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.products = products
	c.mu.Unlock()
	return nil
}

// Products returns the last fetched list.
func (c *Catalog) Products() []model.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Search returns the products whose name or code contains the query,
// case-insensitive. An empty query yields an empty result set and has
// no side effects.
func (c *Catalog) Search(query string) []model.Product {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	needle := strings.ToLower(query)

	c.mu.RLock()
	defer c.mu.RUnlock()
	var matches []model.Product
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Code), needle) {
			matches = append(matches, p)
		}
	}
	return matches
}

// ─── Scanner ─────────────────────────────────────────────────────────────────

// ScanState is the auto-add state machine: idle → pending-auto-add →
// committed. A shared last-added-code guard suppresses the duplicate
// race between the debounce timer and a manual Enter keypress.
type ScanState int

const (
	ScanIdle ScanState = iota
	ScanPending
	ScanCommitted
)

func (s ScanState) String() string {
	switch s {
	case ScanIdle:
		return "idle"
	case ScanPending:
		return "pending-auto-add"
	case ScanCommitted:
		return "committed"
	default:
		return "unknown"
	}
}

// Scanner watches search results for barcode-shaped queries and fires
// the add callback once per scanned code, after a debounce delay,
// unless a manual confirmation commits the same code first.
type Scanner struct {
	delay time.Duration
	add   func(p model.Product, quantity int)

	mu            sync.Mutex
	state         ScanState
	timer         *time.Timer
	pending       model.Product
	pendingCode   string
	pendingQty    int
	lastAddedCode string
}

// NewScanner builds a scanner. add is invoked with the matched product
// and the quantity to add (1 unless the operator had typed one).
func NewScanner(delay time.Duration, add func(p model.Product, quantity int)) *Scanner {
	if delay <= 0 {
		delay = 300 * time.Millisecond
	}
	return &Scanner{delay: delay, add: add}
}

// State returns the current scan state.
func (s *Scanner) State() ScanState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Observe feeds a search result into the state machine. The auto-add
// arms only when the query is barcode-shaped, exactly one product
// matched, and its code equals the query exactly. Multiple substring
// matches never trigger auto-add, regardless of digit pattern.
func (s *Scanner) Observe(query string, matches []model.Product, quantity int) {
	code := strings.TrimSpace(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !barcodePattern.MatchString(code) || len(matches) != 1 || matches[0].Code != code {
		s.disarmLocked()
		return
	}
	// Same code as the immediately preceding scan: suppress.
	if s.lastAddedCode == code {
		return
	}
	if quantity <= 0 {
		quantity = 1
	}

	// Re-arm: cancel any pending timer before scheduling a new one.
	if s.timer != nil {
		s.timer.Stop()
	}
	s.state = ScanPending
	s.pending = matches[0]
	s.pendingCode = code
	s.pendingQty = quantity
	s.timer = time.AfterFunc(s.delay, func() { s.fire(code) })
}

// Confirm is the manual Enter path: it commits the pending product
// immediately, cancelling the debounce timer so the two paths cannot
// both fire.
func (s *Scanner) Confirm() {
	s.mu.Lock()
	if s.state != ScanPending {
		s.mu.Unlock()
		return
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	p, qty, ok := s.commitLocked()
	s.mu.Unlock()
	if ok {
		s.add(p, qty)
	}
}

// Reset clears the duplicate guard; called when the operator clears the
// search box or adds a product by hand, so the same code can be scanned
// again in a new episode.
func (s *Scanner) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disarmLocked()
	s.lastAddedCode = ""
}

// fire runs on the timer goroutine after the debounce delay.
func (s *Scanner) fire(code string) {
	s.mu.Lock()
	if s.state != ScanPending || s.pendingCode != code {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	p, qty, ok := s.commitLocked()
	s.mu.Unlock()
	if ok {
		s.add(p, qty)
	}
}

// commitLocked applies the duplicate guard and reports whether the add
// callback should run. The callback itself is invoked outside the lock.
func (s *Scanner) commitLocked() (model.Product, int, bool) {
	if s.lastAddedCode == s.pendingCode {
		s.state = ScanIdle
		return model.Product{}, 0, false
	}
	s.lastAddedCode = s.pendingCode
	s.state = ScanCommitted
	log.Debug().Str("code", s.pendingCode).Int("quantity", s.pendingQty).Msg("auto-add por escaneo")
	return s.pending, s.pendingQty, true
}

// disarmLocked cancels a pending auto-add. Must be called under lock.
func (s *Scanner) disarmLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.state == ScanPending {
		s.state = ScanIdle
	}
}

package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/safar/go-json-shop/internal/config"
	"github.com/safar/go-json-shop/internal/models"
)

// Session is the server-held per-visitor state. Only the opaque ID ever
// reaches the browser. A session belongs to exactly one visitor, so its
// fields need no locking of their own.
type Session struct {
	ID       string
	User     *models.Identity
	Cart     map[string]*models.CartLine
	Wishlist map[string]bool
	lastSeen time.Time
}

// ToggleWishlist flips membership for a product id and reports whether
// the id is now present. Two toggles always restore the original set.
func (s *Session) ToggleWishlist(productID string) bool {
	if s.Wishlist[productID] {
		delete(s.Wishlist, productID)
		return false
	}
	s.Wishlist[productID] = true
	return true
}

// CartCount sums quantities across all cart lines.
func (s *Session) CartCount() int {
	count := 0
	for _, line := range s.Cart {
		count += line.Quantity
	}
	return count
}

// Manager owns every live session, keyed by the opaque cookie value.
// Sessions expire after a fixed inactivity window and are purged lazily.
type Manager struct {
	cookieName string
	ttl        time.Duration
	mu         sync.Mutex
	sessions   map[string]*Session
	now        func() time.Time
}

func NewManager(cfg *config.SessionConfig) *Manager {
	return &Manager{
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL,
		sessions:   make(map[string]*Session),
		now:        time.Now,
	}
}

// Get returns the visitor's session, creating one (and setting the
// cookie) when the request carries no valid session id. Touching a
// session renews its inactivity window.
func (m *Manager) Get(w http.ResponseWriter, r *http.Request) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.purgeExpired()

	if cookie, err := r.Cookie(m.cookieName); err == nil {
		if sess, ok := m.sessions[cookie.Value]; ok {
			sess.lastSeen = m.now()
			return sess
		}
	}

	sess := &Session{
		ID:       uuid.NewString(),
		Cart:     make(map[string]*models.CartLine),
		Wishlist: make(map[string]bool),
		lastSeen: m.now(),
	}
	m.sessions[sess.ID] = sess

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return sess
}

// Destroy discards the whole session: identity, cart and wishlist.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cookie, err := r.Cookie(m.cookieName); err == nil {
		delete(m.sessions, cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func (m *Manager) purgeExpired() {
	cutoff := m.now().Add(-m.ttl)
	for id, sess := range m.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}

package web

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/safar/go-json-shop/internal/database"
	"github.com/safar/go-json-shop/internal/session"
)

type Handler struct {
	db       *database.DB
	sessions *session.Manager
	render   *Renderer
}

func Router(db *database.DB, sessions *session.Manager, render *Renderer, publicDir string) http.Handler {
	h := &Handler{
		db:       db,
		sessions: sessions,
		render:   render,
	}

	r := mux.NewRouter()
	r.PathPrefix("/public/").Handler(http.StripPrefix("/public/", http.FileServer(http.Dir(publicDir))))

	r.HandleFunc("/", h.homeHandler).Methods(http.MethodGet)
	r.HandleFunc("/product/{id}", h.productHandler).Methods(http.MethodGet)
	r.HandleFunc("/review/add", h.requireLogin(h.reviewAddHandler)).Methods(http.MethodPost)
	r.HandleFunc("/cart/add", h.cartAddHandler).Methods(http.MethodPost)
	r.HandleFunc("/cart", h.cartHandler).Methods(http.MethodGet)
	r.HandleFunc("/cart/update", h.cartUpdateHandler).Methods(http.MethodPost)
	r.HandleFunc("/checkout", h.requireLogin(h.checkoutHandler)).Methods(http.MethodPost)
	r.HandleFunc("/wishlist/toggle", h.wishlistToggleHandler).Methods(http.MethodPost)
	r.HandleFunc("/wishlist", h.wishlistHandler).Methods(http.MethodGet)
	r.HandleFunc("/signup", h.signupFormHandler).Methods(http.MethodGet)
	r.HandleFunc("/signup", h.signupHandler).Methods(http.MethodPost)
	r.HandleFunc("/login", h.loginFormHandler).Methods(http.MethodGet)
	r.HandleFunc("/login", h.loginHandler).Methods(http.MethodPost)
	r.HandleFunc("/logout", h.logoutHandler).Methods(http.MethodGet)
	r.HandleFunc("/admin", h.requireAdmin(h.adminHandler)).Methods(http.MethodGet)
	r.HandleFunc("/admin/add-product", h.requireAdmin(h.adminAddProductHandler)).Methods(http.MethodPost)

	return logMiddleware(r)
}

// requireLogin redirects anonymous visitors to the login page. When it
// passes, the request carried a valid session cookie, so the wrapped
// handler's own session lookup resolves to the same session.
func (h *Handler) requireLogin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := h.sessions.Get(w, r)
		if sess.User == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

func (h *Handler) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := h.sessions.Get(w, r)
		if sess.User == nil || !sess.User.IsAdmin {
			h.renderError(w, sess, http.StatusForbidden, "Forbidden: Admin only")
			return
		}
		next(w, r)
	}
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL.String(),
			"remoteAddr": r.RemoteAddr,
		}).Info("got a new request")
		next.ServeHTTP(w, r)
	})
}

package web

import (
	"errors"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/safar/go-json-shop/internal/database"
	"github.com/safar/go-json-shop/internal/models"
	"github.com/safar/go-json-shop/internal/session"
	"github.com/safar/go-json-shop/internal/store"
)

// baseData is rendered on every page: identity and the cart/wishlist
// badges in the navigation bar.
type baseData struct {
	User          *models.Identity
	CartCount     int
	WishlistCount int
}

func (h *Handler) base(sess *session.Session) baseData {
	return baseData{
		User:          sess.User,
		CartCount:     sess.CartCount(),
		WishlistCount: len(sess.Wishlist),
	}
}

type errorData struct {
	baseData
	Status  int
	Message string
}

func (h *Handler) renderError(w http.ResponseWriter, sess *session.Session, status int, message string) {
	h.render.RenderStatus(w, status, "error.html", errorData{
		baseData: h.base(sess),
		Status:   status,
		Message:  message,
	})
}

// fail translates an error kind into the matching status page. Anything
// without a mapped kind is a server fault for this request only.
func (h *Handler) fail(w http.ResponseWriter, sess *session.Session, err error) {
	switch {
	case errors.Is(err, database.ErrProductNotFound),
		errors.Is(err, database.ErrOrderNotFound),
		errors.Is(err, database.ErrUserNotFound):
		h.renderError(w, sess, http.StatusNotFound, err.Error())
	case errors.Is(err, database.ErrUnauthorized),
		errors.Is(err, database.ErrInvalidCredentials):
		h.renderError(w, sess, http.StatusUnauthorized, err.Error())
	case errors.Is(err, database.ErrForbidden):
		h.renderError(w, sess, http.StatusForbidden, err.Error())
	case errors.Is(err, database.ErrEmailTaken),
		errors.Is(err, database.ErrInsufficientStock):
		h.renderError(w, sess, http.StatusConflict, err.Error())
	case errors.Is(err, database.ErrInvalidInput):
		h.renderError(w, sess, http.StatusBadRequest, err.Error())
	default:
		log.WithError(err).Error("request failed")
		h.renderError(w, sess, http.StatusInternalServerError, "Something went wrong")
	}
}

type homeData struct {
	baseData
	Products []models.Product
	Query    string
}

func (h *Handler) homeHandler(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)

	query := r.URL.Query().Get("q")
	products, err := store.SearchProducts(r.Context(), h.db, query)
	if err != nil {
		h.fail(w, sess, err)
		return
	}

	h.render.Render(w, "index.html", homeData{
		baseData: h.base(sess),
		Products: products,
		Query:    query,
	})
}

type productData struct {
	baseData
	Product   *models.Product
	Colors    []string
	Reviews   []models.Review
	AvgRating float64
	Sort      string
	Error     string
}

func (h *Handler) productHandler(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)

	product, err := store.FindProduct(r.Context(), h.db, mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, sess, err)
		return
	}

	sortKey := r.URL.Query().Get("sort")
	if sortKey == "" {
		sortKey = store.ReviewSortNewest
	}

	errMessage := ""
	if r.URL.Query().Get("err") == "stock" {
		errMessage = "Not enough stock for the selected color."
	}

	h.render.Render(w, "product.html", productData{
		baseData:  h.base(sess),
		Product:   product,
		Colors:    sortedColors(product),
		Reviews:   store.SortedReviews(product, sortKey),
		AvgRating: store.AverageRating(product),
		Sort:      sortKey,
		Error:     errMessage,
	})
}

func (h *Handler) reviewAddHandler(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)

	productID := r.PostFormValue("productId")
	rating, err := strconv.Atoi(r.PostFormValue("rating"))
	if err != nil {
		h.renderError(w, sess, http.StatusBadRequest, "Rating must be a number")
		return
	}

	author := sess.User.Name
	if author == "" {
		author = sess.User.Email
	}

	if _, err := store.AddReview(r.Context(), h.db, productID, author, rating, r.PostFormValue("comment")); err != nil {
		h.fail(w, sess, err)
		return
	}

	http.Redirect(w, r, "/product/"+url.PathEscape(productID), http.StatusSeeOther)
}

func (h *Handler) cartAddHandler(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)

	productID := r.PostFormValue("id")
	color := r.PostFormValue("color")
	qty, _ := strconv.Atoi(r.PostFormValue("qty"))

	_, err := store.AddToCart(r.Context(), h.db, sess, productID, color, qty)
	if errors.Is(err, database.ErrInsufficientStock) {
		http.Redirect(w, r, "/product/"+url.PathEscape(productID)+"?err=stock", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.fail(w, sess, err)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

type cartData struct {
	baseData
	Lines []*models.CartLine
	Total string
	Error string
}

func (h *Handler) cartHandler(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)

	errMessage := ""
	if r.URL.Query().Get("err") == "stock" {
		errMessage = "Not enough stock to complete your order."
	}

	h.render.Render(w, "cart.html", cartData{
		baseData: h.base(sess),
		Lines:    store.SortedCartLines(sess),
		Total:    models.FormatMinor(store.CartTotal(sess)),
		Error:    errMessage,
	})
}

func (h *Handler) cartUpdateHandler(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)

	if err := r.ParseForm(); err != nil {
		h.renderError(w, sess, http.StatusBadRequest, "Invalid form")
		return
	}

	updates := make(map[string]string, len(r.PostForm))
	for key, values := range r.PostForm {
		if len(values) > 0 {
			updates[key] = values[0]
		}
	}
	store.UpdateCart(sess, updates)

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

type checkoutData struct {
	baseData
	Order *models.Order
}

func (h *Handler) checkoutHandler(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)

	order, err := store.Checkout(r.Context(), h.db, sess)
	if errors.Is(err, database.ErrInsufficientStock) {
		http.Redirect(w, r, "/cart?err=stock", http.StatusSeeOther)
		return
	}
	if errors.Is(err, database.ErrInvalidInput) {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.fail(w, sess, err)
		return
	}

	h.render.Render(w, "checkout.html", checkoutData{
		baseData: h.base(sess),
		Order:    order,
	})
}

func (h *Handler) wishlistToggleHandler(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	sess.ToggleWishlist(r.PostFormValue("productId"))

	back := r.Referer()
	if back == "" {
		back = "/"
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

type wishlistData struct {
	baseData
	Products []models.Product
}

func (h *Handler) wishlistHandler(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)

	products, err := store.WishlistProducts(r.Context(), h.db, sess)
	if err != nil {
		h.fail(w, sess, err)
		return
	}

	h.render.Render(w, "wishlist.html", wishlistData{
		baseData: h.base(sess),
		Products: products,
	})
}

func sortedColors(p *models.Product) []string {
	colors := make([]string, 0, len(p.Images))
	for color := range p.Images {
		colors = append(colors, color)
	}
	sort.Strings(colors)
	return colors
}

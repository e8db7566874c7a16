package web

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/safar/go-json-shop/internal/models"
	"github.com/safar/go-json-shop/internal/store"
)

type adminData struct {
	baseData
	Orders  []models.Order
	Message string
}

func (h *Handler) adminHandler(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)

	orders, err := store.ListOrders(r.Context(), h.db)
	if err != nil {
		h.fail(w, sess, err)
		return
	}

	h.render.Render(w, "admin.html", adminData{
		baseData: h.base(sess),
		Orders:   orders,
		Message:  r.URL.Query().Get("msg"),
	})
}

func (h *Handler) adminAddProductHandler(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)

	price, err := strconv.ParseInt(r.PostFormValue("price"), 10, 64)
	if err != nil {
		h.renderError(w, sess, http.StatusBadRequest, "Price must be a whole number of minor units")
		return
	}

	product, err := store.AddProduct(r.Context(), h.db,
		r.PostFormValue("title"),
		price,
		r.PostFormValue("desc"),
		r.PostFormValue("images"))
	if err != nil {
		h.fail(w, sess, err)
		return
	}

	http.Redirect(w, r, "/admin?msg="+url.QueryEscape("Product created: "+product.Title), http.StatusSeeOther)
}

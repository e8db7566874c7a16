package web

import (
	"errors"
	"net/http"

	"github.com/safar/go-json-shop/internal/database"
	"github.com/safar/go-json-shop/internal/models"
	"github.com/safar/go-json-shop/internal/store"
)

type authFormData struct {
	baseData
	Error string
}

func (h *Handler) signupFormHandler(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	h.render.Render(w, "signup.html", authFormData{baseData: h.base(sess)})
}

func (h *Handler) signupHandler(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)

	user, err := store.Signup(r.Context(), h.db,
		r.PostFormValue("name"),
		r.PostFormValue("email"),
		r.PostFormValue("password"))
	if errors.Is(err, database.ErrEmailTaken) {
		h.render.RenderStatus(w, http.StatusConflict, "signup.html", authFormData{
			baseData: h.base(sess),
			Error:    "Email already registered",
		})
		return
	}
	if errors.Is(err, database.ErrInvalidInput) {
		h.render.RenderStatus(w, http.StatusBadRequest, "signup.html", authFormData{
			baseData: h.base(sess),
			Error:    "Email and password are required",
		})
		return
	}
	if err != nil {
		h.fail(w, sess, err)
		return
	}

	sess.User = &models.Identity{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) loginFormHandler(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	h.render.Render(w, "login.html", authFormData{baseData: h.base(sess)})
}

func (h *Handler) loginHandler(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)

	identity, err := store.Login(r.Context(), h.db,
		r.PostFormValue("email"),
		r.PostFormValue("password"))
	if errors.Is(err, database.ErrInvalidCredentials) {
		h.render.RenderStatus(w, http.StatusUnauthorized, "login.html", authFormData{
			baseData: h.base(sess),
			Error:    "Invalid credentials",
		})
		return
	}
	if err != nil {
		h.fail(w, sess, err)
		return
	}

	sess.User = identity

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) logoutHandler(w http.ResponseWriter, r *http.Request) {
	h.sessions.Destroy(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

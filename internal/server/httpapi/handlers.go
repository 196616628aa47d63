package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/nutriscan/internal/server/models"
	"github.com/dmitrijs2005/nutriscan/internal/server/services"
	"github.com/go-chi/chi/v5"
)

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	// Picture is base64 in JSON.
	Picture []byte `json:"picture,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createProductRequest struct {
	CatalogID string `json:"catalog_id"`
	models.ProductAttributes
}

type messageResponse struct {
	Message string `json:"message"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		BadRequest(w, "malformed request body")
		return false
	}
	return true
}

func (h *handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decode(w, r, &req) {
		return
	}

	profile, err := h.accounts.Register(r.Context(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Avatar:   req.Picture,
	})
	if err != nil {
		h.fail(w, r, "signup", err)
		return
	}
	Created(w, profile)
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}

	profile, err := h.accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, "login", err)
		return
	}
	OK(w, profile)
}

func (h *handler) listProducts(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.List(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		h.fail(w, r, "list products", err)
		return
	}
	OK(w, items)
}

func (h *handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if !decode(w, r, &req) {
		return
	}

	p, err := h.catalog.Create(r.Context(), chi.URLParam(r, "userID"), req.CatalogID, req.ProductAttributes)
	if err != nil {
		h.fail(w, r, "create product", err)
		return
	}
	Created(w, p)
}

func (h *handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Delete(r.Context(), chi.URLParam(r, "catalogID")); err != nil {
		h.fail(w, r, "delete product", err)
		return
	}
	OK(w, messageResponse{Message: "product deleted"})
}

func (h *handler) healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.health.Ping(r.Context()); err != nil {
		h.logger.Error(r.Context(), "health check failed", "error", err)
		Error(w, ErrServiceUnavailable)
		return
	}
	OK(w, statusResponse{Status: "OK"})
}

// fail logs server-side failures and writes the mapped error response.
func (h *handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	apiErr := AsAPIError(err)
	if apiErr.StatusCode >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), op+" failed", "error", err)
	}
	Error(w, apiErr)
}

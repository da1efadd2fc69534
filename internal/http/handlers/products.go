package handlers

import (
	"net/http"
	"strconv"

	"github.com/hongminglow/userhub-be/internal/http/respond"
	"github.com/hongminglow/userhub-be/internal/models"
)

// ProductHandler serves the read-only product catalog. The catalog is
// injected at construction rather than living in a package-level list.
type ProductHandler struct {
	catalog []models.Product
}

// NewProductHandler constructs the handler over a fixed catalog.
func NewProductHandler(catalog []models.Product) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// Register attaches product routes to the mux.
func (h *ProductHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /products", h.handleList)
	mux.HandleFunc("GET /products/{id}", h.handleGet)
}

func (h *ProductHandler) handleList(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.catalog)
}

func (h *ProductHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "validation_error", "product id must be an integer")
		return
	}
	for _, product := range h.catalog {
		if product.ID == id {
			respond.JSON(w, http.StatusOK, product)
			return
		}
	}
	respond.Error(w, http.StatusNotFound, "not_found", "product not found")
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/salesapi/pkg/errhttp"
	"github.com/ghuser/salesapi/pkg/httpx"
	appsvcs "github.com/ghuser/salesapi/services/sales/application/services"
)

// GetSaleHandler handles GET /sales/{id} requests.
type GetSaleHandler struct {
	svc *appsvcs.Services
}

// NewGetSaleHandler returns a GetSaleHandler backed by the given services.
func NewGetSaleHandler(svc *appsvcs.Services) *GetSaleHandler {
	return &GetSaleHandler{svc: svc}
}

// Execute retrieves a sale with its items. Totals reflect the last persisted
// state; nothing is repriced on read.
//
//	@Summary		Get sale
//	@Description	Returns the sale with all items and the last persisted totals
//	@Tags			sales
//	@Produce		json
//	@Param			id	path		string	true	"Sale ID"
//	@Success		200	{object}	SaleResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/sales/{id} [get]
func (h *GetSaleHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid sale id")
		return
	}

	sale, err := h.svc.Sale.Get(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toSaleResponse(sale))
}

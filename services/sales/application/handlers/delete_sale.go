package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/salesapi/pkg/errhttp"
	"github.com/ghuser/salesapi/pkg/httpx"
	appsvcs "github.com/ghuser/salesapi/services/sales/application/services"
)

// DeleteSaleResponse is returned on successful deletion.
type DeleteSaleResponse struct {
	Success bool `json:"success"`
} // @name DeleteSaleResponse

// DeleteSaleHandler handles DELETE /sales/{id} requests.
type DeleteSaleHandler struct {
	svc *appsvcs.Services
}

// NewDeleteSaleHandler returns a DeleteSaleHandler backed by the given services.
func NewDeleteSaleHandler(svc *appsvcs.Services) *DeleteSaleHandler {
	return &DeleteSaleHandler{svc: svc}
}

// Execute deletes a sale and all its items. No event is emitted for deletion.
//
//	@Summary		Delete sale
//	@Description	Removes the sale and cascade-deletes its items
//	@Tags			sales
//	@Produce		json
//	@Param			id	path		string	true	"Sale ID"
//	@Success		200	{object}	DeleteSaleResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/sales/{id} [delete]
func (h *DeleteSaleHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid sale id")
		return
	}

	if err := h.svc.Sale.Delete(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, DeleteSaleResponse{Success: true})
}

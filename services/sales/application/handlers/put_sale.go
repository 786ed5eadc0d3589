package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/salesapi/pkg/errhttp"
	"github.com/ghuser/salesapi/pkg/httpx"
	pkgvalidator "github.com/ghuser/salesapi/pkg/validator"
	appsvcs "github.com/ghuser/salesapi/services/sales/application/services"
)

// UpdateSaleItemRequest is one line item in a sale update payload. Unlike
// creation, items can arrive pre-flagged as cancelled.
type UpdateSaleItemRequest struct {
	ProductID   string          `json:"product_id" validate:"required"`
	ProductName string          `json:"product_name" validate:"required,max=100"`
	Quantity    int             `json:"quantity" validate:"required,gt=0,lte=20"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"required"`
	IsCancelled bool            `json:"is_cancelled"`
} // @name UpdateSaleItemRequest

// UpdateSaleRequest is the request body for PUT /sales/{id}. It is a full
// replacement: the item list overwrites whatever the sale had before.
type UpdateSaleRequest struct {
	SaleNumber   string                  `json:"sale_number" validate:"required,min=3,max=20"`
	SaleDate     time.Time               `json:"sale_date" validate:"required"`
	CustomerID   string                  `json:"customer_id" validate:"required"`
	CustomerName string                  `json:"customer_name" validate:"required,max=100"`
	BranchID     string                  `json:"branch_id" validate:"required"`
	BranchName   string                  `json:"branch_name" validate:"required,max=100"`
	IsCancelled  bool                    `json:"is_cancelled"`
	Items        []UpdateSaleItemRequest `json:"items" validate:"required,min=1,dive"`
} // @name UpdateSaleRequest

// PutSaleHandler handles PUT /sales/{id} requests.
type PutSaleHandler struct {
	svc *appsvcs.Services
}

// NewPutSaleHandler returns a PutSaleHandler backed by the given services.
func NewPutSaleHandler(svc *appsvcs.Services) *PutSaleHandler {
	return &PutSaleHandler{svc: svc}
}

// Execute replaces a sale with the given payload.
//
//	@Summary		Update sale
//	@Description	Replaces the sale and its entire item list, reprices everything, and emits the matching events
//	@Tags			sales
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Sale ID"
//	@Param			request	body		UpdateSaleRequest	true	"Full replacement payload"
//	@Success		200		{object}	SaleResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/sales/{id} [put]
func (h *PutSaleHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid sale id")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateSaleRequest](w, r)
	if !ok {
		return
	}

	in := appsvcs.UpdateSaleInput{
		SaleNumber:   req.SaleNumber,
		SaleDate:     req.SaleDate,
		CustomerID:   req.CustomerID,
		CustomerName: req.CustomerName,
		BranchID:     req.BranchID,
		BranchName:   req.BranchName,
		IsCancelled:  req.IsCancelled,
	}
	for _, item := range req.Items {
		in.Items = append(in.Items, appsvcs.ItemInput{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			IsCancelled: item.IsCancelled,
		})
	}

	sale, err := h.svc.Sale.Update(r.Context(), id, in)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toSaleResponse(sale))
}

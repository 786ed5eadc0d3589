package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/salesapi/pkg/errhttp"
	"github.com/ghuser/salesapi/pkg/httpx"
	pkgvalidator "github.com/ghuser/salesapi/pkg/validator"
	appsvcs "github.com/ghuser/salesapi/services/sales/application/services"
	"github.com/ghuser/salesapi/services/sales/domain/models"
)

// SaleItemRequest is one line item in a sale creation payload.
type SaleItemRequest struct {
	ProductID   string          `json:"product_id" validate:"required" example:"prod-42"`
	ProductName string          `json:"product_name" validate:"required,max=100" example:"Pilsner 350ml"`
	Quantity    int             `json:"quantity" validate:"required,gt=0,lte=20" example:"5"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"required" example:"100"`
} // @name SaleItemRequest

// CreateSaleRequest is the request body for POST /sales.
type CreateSaleRequest struct {
	SaleNumber   string            `json:"sale_number" validate:"required,min=3,max=20" example:"SALE-2025-001"`
	SaleDate     time.Time         `json:"sale_date" validate:"required" example:"2025-02-28T09:00:00Z"`
	CustomerID   string            `json:"customer_id" validate:"required" example:"cust-7"`
	CustomerName string            `json:"customer_name" validate:"required,max=100" example:"Acme Corp"`
	BranchID     string            `json:"branch_id" validate:"required" example:"branch-3"`
	BranchName   string            `json:"branch_name" validate:"required,max=100" example:"Downtown"`
	Items        []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
} // @name CreateSaleRequest

// SaleItemResponse is one line item in a sale response, pricing included.
type SaleItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
	IsCancelled bool            `json:"is_cancelled"`
} // @name SaleItemResponse

// SaleResponse is the full sale representation returned by the API.
type SaleResponse struct {
	ID           uuid.UUID          `json:"id"`
	SaleNumber   string             `json:"sale_number"`
	SaleDate     time.Time          `json:"sale_date"`
	CustomerID   string             `json:"customer_id"`
	CustomerName string             `json:"customer_name"`
	BranchID     string             `json:"branch_id"`
	BranchName   string             `json:"branch_name"`
	Items        []SaleItemResponse `json:"items"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	IsCancelled  bool               `json:"is_cancelled"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    *time.Time         `json:"updated_at,omitempty"`
} // @name SaleResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"sale not found"`
} // @name ErrorResponse

// PostSaleHandler handles POST /sales requests.
type PostSaleHandler struct {
	svc *appsvcs.Services
}

// NewPostSaleHandler returns a PostSaleHandler backed by the given services.
func NewPostSaleHandler(svc *appsvcs.Services) *PostSaleHandler {
	return &PostSaleHandler{svc: svc}
}

// Execute creates a new sale.
//
//	@Summary		Create sale
//	@Description	Records a sales transaction, applying quantity-tier discounts to each item
//	@Tags			sales
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateSaleRequest	true	"Sale creation request"
//	@Success		201		{object}	SaleResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/sales [post]
func (h *PostSaleHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateSaleRequest](w, r)
	if !ok {
		return
	}

	in := appsvcs.CreateSaleInput{
		SaleNumber:   req.SaleNumber,
		SaleDate:     req.SaleDate,
		CustomerID:   req.CustomerID,
		CustomerName: req.CustomerName,
		BranchID:     req.BranchID,
		BranchName:   req.BranchName,
	}
	for _, item := range req.Items {
		in.Items = append(in.Items, appsvcs.ItemInput{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	sale, err := h.svc.Sale.Create(r.Context(), in)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toSaleResponse(sale))
}

// toSaleResponse maps the aggregate to its API representation.
func toSaleResponse(sale *models.Sale) SaleResponse {
	resp := SaleResponse{
		ID:           sale.ID,
		SaleNumber:   sale.SaleNumber,
		SaleDate:     sale.SaleDate,
		CustomerID:   sale.CustomerID,
		CustomerName: sale.CustomerName,
		BranchID:     sale.BranchID,
		BranchName:   sale.BranchName,
		Items:        make([]SaleItemResponse, 0, len(sale.Items)),
		TotalAmount:  sale.TotalAmount,
		IsCancelled:  sale.IsCancelled,
		CreatedAt:    sale.CreatedAt,
		UpdatedAt:    sale.UpdatedAt,
	}
	for _, item := range sale.Items {
		resp.Items = append(resp.Items, SaleItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			Total:       item.Total,
			IsCancelled: item.IsCancelled,
		})
	}
	return resp
}

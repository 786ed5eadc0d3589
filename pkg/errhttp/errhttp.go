// Package errhttp maps domain errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/salesapi/pkg/httpx"
	salesdomain "github.com/ghuser/salesapi/services/sales/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Aggregated validation errors become a 400 with a field list; sentinel errors
// are matched with errors.Is() so wrapped errors map correctly. Everything
// else defaults to 500 Internal Server Error.
func WriteError(w http.ResponseWriter, err error) {
	var verrs salesdomain.ValidationErrors
	if errors.As(err, &verrs) {
		httpx.JSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": verrs,
		})
		return
	}

	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, salesdomain.ErrSaleNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, salesdomain.ErrSaleNumberTaken):
		return http.StatusConflict // 409
	case errors.Is(err, salesdomain.ErrQuantityExceeded):
		return http.StatusUnprocessableEntity // 422
	default:
		return http.StatusInternalServerError // 500
	}
}

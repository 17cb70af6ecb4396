// internal/controller/customer_controller.go
package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	appErrors "github.com/unclebandit/customers-dashboard/internal/errors"
	"github.com/unclebandit/customers-dashboard/internal/model"
	"github.com/unclebandit/customers-dashboard/internal/service"
)

// CustomerService is what the JSON API needs from the service layer.
type CustomerService interface {
	FetchCustomers(ctx context.Context) ([]model.Customer, error)
	GetCustomer(ctx context.Context, id int) (*model.Customer, error)
	QueueImport(batch model.CustomerImport) (int, error)
}

type CustomerController struct {
	CustomerService CustomerService
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (c *CustomerController) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := c.CustomerService.FetchCustomers(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("list customers")
		writeError(w, http.StatusInternalServerError, "failed to fetch customers")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"customers": customers,
	})
}

func (c *CustomerController) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	customer, err := c.CustomerService.GetCustomer(r.Context(), id)
	if err != nil {
		var notFound *appErrors.ErrCustomerNotFound
		if errors.As(err, &notFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		zerolog.Ctx(r.Context()).Error().Err(err).Int("customer_id", id).Msg("get customer")
		writeError(w, http.StatusInternalServerError, "failed to fetch customer")
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

func (c *CustomerController) ImportCustomers(w http.ResponseWriter, r *http.Request) {
	var body model.CustomerImport
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	queued, err := c.CustomerService.QueueImport(body)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusUnprocessableEntity, verr.Error())
			return
		}
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("queue customer import")
		writeError(w, http.StatusServiceUnavailable, "failed to queue import")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]int{"queued": queued})
}

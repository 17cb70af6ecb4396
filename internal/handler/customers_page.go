// internal/handler/customers_page.go
package handler

import (
	"bytes"
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/unclebandit/customers-dashboard/internal/model"
	"github.com/unclebandit/customers-dashboard/internal/page"
	"github.com/unclebandit/customers-dashboard/internal/view"
)

// CustomerFetcher is the data-layer call behind the page.
type CustomerFetcher interface {
	FetchCustomers(ctx context.Context) ([]model.Customer, error)
}

// CustomersPageHandler serves the customers dashboard page.
//
// When the ResponseWriter can flush, the shell and the table skeleton go out
// immediately and the table is streamed in once the fetch settles. Otherwise
// the handler waits for the fetch and writes the finished document.
type CustomersPageHandler struct {
	Service CustomerFetcher
	Views   *view.Views
	// NewID generates boundary ids. Defaults to page.NewBoundaryID.
	NewID func() string
}

func NewCustomersPageHandler(svc CustomerFetcher, views *view.Views) *CustomersPageHandler {
	return &CustomersPageHandler{Service: svc, Views: views, NewID: page.NewBoundaryID}
}

func (h *CustomersPageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	newID := h.NewID
	if newID == nil {
		newID = page.NewBoundaryID
	}

	boundary := page.Defer(ctx, newID(), h.Service.FetchCustomers)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	if flusher, ok := w.(http.Flusher); ok {
		h.stream(w, flusher, r, boundary)
		return
	}
	h.block(w, r, boundary)
}

func (h *CustomersPageHandler) stream(w http.ResponseWriter, flusher http.Flusher, r *http.Request, boundary *page.Boundary[[]model.Customer]) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	w.WriteHeader(http.StatusOK)
	if err := h.Views.Head(w, view.CustomersMetadata); err != nil {
		logger.Error().Err(err).Msg("render page head")
		return
	}
	if err := h.Views.Pending(w, boundary.ID); err != nil {
		logger.Error().Err(err).Msg("render pending boundary")
		return
	}
	flusher.Flush()

	customers, err := boundary.Wait(ctx)
	if ctx.Err() != nil {
		logger.Debug().Str("boundary", boundary.ID).Msg("client went away before customers resolved")
		return
	}
	if err != nil {
		logger.Error().Err(err).Str("boundary", boundary.ID).Msg("customers fetch failed")
	}

	if err := h.Views.Resolve(w, boundary.ID, boundary.State(), customers); err != nil {
		logger.Error().Err(err).Msg("render resolved boundary")
		return
	}
	if err := h.Views.Tail(w); err != nil {
		logger.Error().Err(err).Msg("render page tail")
		return
	}
	flusher.Flush()
}

func (h *CustomersPageHandler) block(w http.ResponseWriter, r *http.Request, boundary *page.Boundary[[]model.Customer]) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	customers, err := boundary.Wait(ctx)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("customers fetch failed")
		h.writeErrorPage(w, logger)
		return
	}

	var buf bytes.Buffer
	if err := h.renderDocument(&buf, boundary.ID, customers); err != nil {
		logger.Error().Err(err).Msg("render customers page")
		h.writeErrorPage(w, logger)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *CustomersPageHandler) renderDocument(buf *bytes.Buffer, id string, customers []model.Customer) error {
	if err := h.Views.Head(buf, view.CustomersMetadata); err != nil {
		return err
	}
	if err := h.Views.Ready(buf, id, customers); err != nil {
		return err
	}
	return h.Views.Tail(buf)
}

func (h *CustomersPageHandler) writeErrorPage(w http.ResponseWriter, logger *zerolog.Logger) {
	var buf bytes.Buffer
	if err := h.Views.ErrorPage(&buf, view.CustomersMetadata); err != nil {
		logger.Error().Err(err).Msg("render error page")
		http.Error(w, "failed to load customers", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = buf.WriteTo(w)
}

package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/customers-dashboard/internal/config"
	"github.com/unclebandit/customers-dashboard/internal/controller"
	"github.com/unclebandit/customers-dashboard/internal/db"
	"github.com/unclebandit/customers-dashboard/internal/handler"
	"github.com/unclebandit/customers-dashboard/internal/model"
	"github.com/unclebandit/customers-dashboard/internal/repository"
	"github.com/unclebandit/customers-dashboard/internal/service"
	"github.com/unclebandit/customers-dashboard/internal/view"
)

type downPinger struct{}

func (downPinger) PingContext(context.Context) error { return errors.New("down") }

func newTestRouter(t *testing.T) (http.Handler, *repository.CustomerRepository) {
	t.Helper()
	ctx := context.Background()
	conn, err := db.Open(ctx, config.DatabaseConfig{Driver: db.SQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.Migrate(ctx, conn, db.SQLite))

	repo := &repository.CustomerRepository{DB: conn, Driver: db.SQLite}
	svc := &service.CustomerService{CustomerRepo: repo}

	return NewRouter(Deps{
		Logger:             zerolog.Nop(),
		DB:                 conn,
		CustomersPage:      handler.NewCustomersPageHandler(svc, view.MustNew()),
		CustomerController: &controller.CustomerController{CustomerService: svc},
	}), repo
}

func TestRootRedirectsToCustomers(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard/customers", w.Header().Get("Location"))
}

func TestCustomersPageEndToEnd(t *testing.T) {
	r, repo := newTestRouter(t)
	ctx := context.Background()
	for _, c := range []model.Customer{
		{FirstName: "Bob", LastName: "Jones", Email: "bob@example.com"},
		{FirstName: "Alice", LastName: "Adams", Email: "alice@example.com"},
	} {
		c := c
		require.NoError(t, repo.Upsert(ctx, &c))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/customers", nil))

	body := w.Body.String()
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, w.Flushed)
	assert.Contains(t, body, "<title>Customers</title>")
	assert.Contains(t, body, `data-component="search"`)
	adams := bytes.Index([]byte(body), []byte("Alice Adams"))
	jones := bytes.Index([]byte(body), []byte("Bob Jones"))
	require.True(t, adams > 0 && jones > 0)
	assert.Less(t, adams, jones)
	assert.Contains(t, body, "2 customers")
}

func TestAPIListCustomers(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/customers", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"customers":[]}`, w.Body.String())
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())

	down := NewRouter(Deps{
		Logger:             zerolog.Nop(),
		DB:                 downPinger{},
		CustomersPage:      http.NotFoundHandler(),
		CustomerController: &controller.CustomerController{},
	})
	w = httptest.NewRecorder()
	down.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/unclebandit/customers-dashboard/internal/db"
	appErrors "github.com/unclebandit/customers-dashboard/internal/errors"
	"github.com/unclebandit/customers-dashboard/internal/model"
)

// CustomerRepositoryInterface defines methods used by service
type CustomerRepositoryInterface interface {
	GetByID(ctx context.Context, id int) (*model.Customer, error)
	ListAll(ctx context.Context) ([]model.Customer, error)
	Upsert(ctx context.Context, c *model.Customer) error
}

// CustomerRepository is the concrete implementation
type CustomerRepository struct {
	DB     *sql.DB
	Driver string
}

const customerColumns = `id, first_name, last_name, email, phone, location, preferred_product`

func scanCustomer(s interface{ Scan(...any) error }, c *model.Customer) error {
	return s.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Location, &c.PreferredProduct)
}

// GetByID fetches a customer by ID
func (r *CustomerRepository) GetByID(ctx context.Context, id int) (*model.Customer, error) {
	query := db.Rebind(r.Driver, `SELECT `+customerColumns+` FROM customers WHERE id = ?`)

	var c model.Customer
	if err := scanCustomer(r.DB.QueryRowContext(ctx, query, id), &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewCustomerNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

// ListAll fetches every customer ordered by name. Always returns a non-nil slice.
func (r *CustomerRepository) ListAll(ctx context.Context) ([]model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY last_name, first_name, id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []model.Customer{}
	for rows.Next() {
		var c model.Customer
		if err := scanCustomer(rows, &c); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// Upsert inserts c, or overwrites the row with the same id when c.ID is set.
// On insert c.ID is filled from the database.
func (r *CustomerRepository) Upsert(ctx context.Context, c *model.Customer) error {
	if c.ID == 0 {
		query := db.Rebind(r.Driver, `
			INSERT INTO customers (first_name, last_name, email, phone, location, preferred_product)
			VALUES (?, ?, ?, ?, ?, ?)
			RETURNING id
		`)
		return r.DB.QueryRowContext(ctx, query,
			c.FirstName, c.LastName, c.Email, c.Phone, c.Location, c.PreferredProduct,
		).Scan(&c.ID)
	}

	query := db.Rebind(r.Driver, `
		INSERT INTO customers (id, first_name, last_name, email, phone, location, preferred_product)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			email = excluded.email,
			phone = excluded.phone,
			location = excluded.location,
			preferred_product = excluded.preferred_product
	`)
	_, err := r.DB.ExecContext(ctx, query,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Location, c.PreferredProduct,
	)
	return err
}

var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)

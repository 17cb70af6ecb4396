// internal/errors/errors.go
package appErrors

import "fmt"

// ErrCustomerNotFound is returned when a customer id has no row
type ErrCustomerNotFound struct {
	CustomerID int
}

func (e *ErrCustomerNotFound) Error() string {
	return fmt.Sprintf("customer with ID %d not found", e.CustomerID)
}

// Helper constructor
func NewCustomerNotFound(id int) error {
	return &ErrCustomerNotFound{CustomerID: id}
}

// ErrCustomersUnavailable wraps any failure of the customer data layer.
type ErrCustomersUnavailable struct {
	Err error
}

func (e *ErrCustomersUnavailable) Error() string {
	return fmt.Sprintf("customers unavailable: %v", e.Err)
}

func (e *ErrCustomersUnavailable) Unwrap() error {
	return e.Err
}

func NewCustomersUnavailable(err error) error {
	return &ErrCustomersUnavailable{Err: err}
}

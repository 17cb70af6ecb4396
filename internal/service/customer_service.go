// internal/service/customer_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	appErrors "github.com/unclebandit/customers-dashboard/internal/errors"
	"github.com/unclebandit/customers-dashboard/internal/model"
	"github.com/unclebandit/customers-dashboard/internal/queue"
	"github.com/unclebandit/customers-dashboard/internal/repository"
)

type CustomerService struct {
	CustomerRepo repository.CustomerRepositoryInterface
	Queue        queue.Queue
	// FetchTimeout bounds FetchCustomers. Zero means no bound beyond ctx.
	FetchTimeout time.Duration
}

// FetchCustomers returns the whole customer collection in repository order.
// Any failure, including the timeout, comes back as *appErrors.ErrCustomersUnavailable.
func (s *CustomerService) FetchCustomers(ctx context.Context) ([]model.Customer, error) {
	if s.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.FetchTimeout)
		defer cancel()
	}

	customers, err := s.CustomerRepo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.NewCustomersUnavailable(err)
	}
	if customers == nil {
		customers = []model.Customer{}
	}
	return customers, nil
}

// GetCustomer fetches a single customer by id.
func (s *CustomerService) GetCustomer(ctx context.Context, id int) (*model.Customer, error) {
	c, err := s.CustomerRepo.GetByID(ctx, id)
	if err != nil {
		var notFound *appErrors.ErrCustomerNotFound
		if errors.As(err, &notFound) {
			return nil, err
		}
		return nil, appErrors.NewCustomersUnavailable(err)
	}
	return c, nil
}

// ValidationError reports which record of an import is unusable.
type ValidationError struct {
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("customer %d: %s", e.Index, e.Reason)
}

// QueueImport validates the batch and publishes it as a single job.
func (s *CustomerService) QueueImport(batch model.CustomerImport) (int, error) {
	for i, c := range batch.Customers {
		if strings.TrimSpace(c.FirstName) == "" {
			return 0, &ValidationError{Index: i, Reason: "first_name is required"}
		}
		if !strings.Contains(c.Email, "@") {
			return 0, &ValidationError{Index: i, Reason: "email is required"}
		}
		if c.ID < 0 {
			return 0, &ValidationError{Index: i, Reason: "id must not be negative"}
		}
	}
	if len(batch.Customers) == 0 {
		return 0, nil
	}

	payload, err := json.Marshal(batch)
	if err != nil {
		return 0, err
	}
	if err := s.Queue.Publish(queue.CustomerImportsTopic, payload); err != nil {
		return 0, fmt.Errorf("enqueue customer import: %w", err)
	}
	return len(batch.Customers), nil
}

// internal/model/customer.go
package model

import "strings"

type Customer struct {
	ID               int    `db:"id" json:"id"`
	FirstName        string `db:"first_name" json:"first_name"`
	LastName         string `db:"last_name" json:"last_name"`
	Email            string `db:"email" json:"email"`
	Phone            string `db:"phone" json:"phone"`
	Location         string `db:"location" json:"location"`
	PreferredProduct string `db:"preferred_product" json:"preferred_product"`
}

// FullName joins first and last name, skipping whichever is empty.
func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// CustomerImport is the payload published on the customer_imports topic.
type CustomerImport struct {
	Customers []Customer `json:"customers"`
}

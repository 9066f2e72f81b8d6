package domain

import (
	"strings"

	"github.com/avalder/go-bookstore-api/internal/shared/validator"
)

const (
	MinNameLen  = 2
	MaxNameLen  = 100
	MinEmailLen = 5
	MaxEmailLen = 255
)

// Customer is the loyalty-tracked buyer record. IsGold drives the 20%
// purchase discount.
type Customer struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	IsGold    bool
}

// NewCustomer trims and validates a customer record. Email is optional.
func NewCustomer(id, firstName, lastName, email, phone string, isGold bool) (*Customer, error) {
	customer := &Customer{
		ID:        id,
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Email:     strings.TrimSpace(email),
		Phone:     strings.TrimSpace(phone),
		IsGold:    isGold,
	}
	if err := customer.Validate().Err(); err != nil {
		return nil, err
	}
	return customer, nil
}

// Validate checks the customer invariants and returns the accumulated result.
func (c *Customer) Validate() *validator.Validator {
	v := validator.New()
	v.Check(len(c.FirstName) >= MinNameLen && len(c.FirstName) <= MaxNameLen &&
		validator.Matches(c.FirstName, validator.NameRX),
		"firstName", "Invalid first name.")
	v.Check(len(c.LastName) >= MinNameLen && len(c.LastName) <= MaxNameLen &&
		validator.Matches(c.LastName, validator.NameRX),
		"lastName", "Invalid last name.")
	if c.Email != "" {
		v.Check(len(c.Email) >= MinEmailLen && len(c.Email) <= MaxEmailLen &&
			validator.Matches(c.Email, validator.EmailRX),
			"email", "Invalid email address.")
	}
	v.Check(validator.Matches(c.Phone, validator.PhoneRX),
		"phone", "Invalid phone number.")
	return v
}

package mapper

import (
	"github.com/avalder/go-bookstore-api/internal/domains/customers/domain"
	"github.com/avalder/go-bookstore-api/internal/domains/customers/ports"
)

// Customer is the transport-layer customer shape.
type Customer struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone"`
	IsGold    bool   `json:"isGold"`
}

// CreateCustomerRequest carries the payload for customer creation.
type CreateCustomerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	IsGold    bool   `json:"isGold"`
}

// UpdateCustomerRequest carries a partial update; absent fields keep their
// stored values.
type UpdateCustomerRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	IsGold    *bool   `json:"isGold"`
}

// ToDomainCustomer builds an unvalidated domain customer from a create payload.
func ToDomainCustomer(req CreateCustomerRequest) *domain.Customer {
	return &domain.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		IsGold:    req.IsGold,
	}
}

// ToCustomerUpdate converts the partial payload into the service update shape.
func ToCustomerUpdate(req UpdateCustomerRequest) ports.CustomerUpdate {
	return ports.CustomerUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		IsGold:    req.IsGold,
	}
}

// FromDomainCustomer converts a domain customer to the transport representation.
func FromDomainCustomer(customer *domain.Customer) Customer {
	if customer == nil {
		return Customer{}
	}
	return Customer{
		ID:        customer.ID,
		FirstName: customer.FirstName,
		LastName:  customer.LastName,
		Email:     customer.Email,
		Phone:     customer.Phone,
		IsGold:    customer.IsGold,
	}
}

// FromDomainCustomers converts a list of domain customers.
func FromDomainCustomers(customers []*domain.Customer) []Customer {
	result := make([]Customer, 0, len(customers))
	for _, customer := range customers {
		result = append(result, FromDomainCustomer(customer))
	}
	return result
}

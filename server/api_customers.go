package bookstoreserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	customerhttpmapper "github.com/avalder/go-bookstore-api/internal/domains/customers/adapters/http/mapper"
	customersports "github.com/avalder/go-bookstore-api/internal/domains/customers/ports"
)

// CustomersAPI wires HTTP transport with the customers bounded context service.
type CustomersAPI struct {
	service customersports.Service
}

// NewCustomersAPI creates a CustomersAPI backed by the provided service.
func NewCustomersAPI(service customersports.Service) CustomersAPI {
	return CustomersAPI{service: service}
}

// Get /api/customers
func (api *CustomersAPI) ListCustomers(c *gin.Context) {
	customers, err := api.service.ListCustomers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customerhttpmapper.FromDomainCustomers(customers))
}

// Get /api/customers/:id
func (api *CustomersAPI) GetCustomer(c *gin.Context) {
	customer, err := api.service.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customerhttpmapper.FromDomainCustomer(customer))
}

// Post /api/customers
func (api *CustomersAPI) CreateCustomer(c *gin.Context) {
	var payload customerhttpmapper.CreateCustomerRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	saved, err := api.service.CreateCustomer(c.Request.Context(), customerhttpmapper.ToDomainCustomer(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customerhttpmapper.FromDomainCustomer(saved))
}

// Put /api/customers/:id
func (api *CustomersAPI) UpdateCustomer(c *gin.Context) {
	var payload customerhttpmapper.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	updated, err := api.service.UpdateCustomer(c.Request.Context(), c.Param("id"), customerhttpmapper.ToCustomerUpdate(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customerhttpmapper.FromDomainCustomer(updated))
}

// Delete /api/customers/:id
func (api *CustomersAPI) DeleteCustomer(c *gin.Context) {
	removed, err := api.service.DeleteCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customerhttpmapper.FromDomainCustomer(removed))
}

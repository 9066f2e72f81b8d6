package bookstoreserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userports "github.com/avalder/go-bookstore-api/internal/domains/users/ports"
)

// Route binds an HTTP method and path pattern to a handler plus its access
// requirements.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	Secured     bool
	AdminOnly   bool
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the per-context handler sets the router mounts.
type ApiHandleFunctions struct {
	BooksAPI     BooksAPI
	CustomersAPI CustomersAPI
	PurchasesAPI PurchasesAPI
	UsersAPI     UsersAPI
	AuthAPI      AuthAPI
}

// NewRouter returns a gin engine with all API routes registered. The
// verifier backs the auth middleware on secured routes.
func NewRouter(handlers ApiHandleFunctions, verifier userports.TokenVerifier) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handlers, verifier)
}

// NewRouterWithGinEngine mounts the API routes on an existing engine, so
// callers can attach their own middleware first.
func NewRouterWithGinEngine(router *gin.Engine, handlers ApiHandleFunctions, verifier userports.TokenVerifier) *gin.Engine {
	requireAuth := RequireAuth(verifier)
	requireAdmin := RequireAdmin()
	for _, route := range getRoutes(handlers) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = defaultHandler
		}
		chain := make([]gin.HandlerFunc, 0, 3)
		if route.Secured {
			chain = append(chain, requireAuth)
		}
		if route.AdminOnly {
			chain = append(chain, requireAdmin)
		}
		chain = append(chain, route.HandlerFunc)
		router.Handle(route.Method, route.Pattern, chain...)
	}
	return router
}

func defaultHandler(c *gin.Context) {
	c.String(http.StatusNotImplemented, "Not implemented.")
}

func getRoutes(handlers ApiHandleFunctions) []Route {
	return []Route{
		{
			Name:        "ListBooks",
			Method:      http.MethodGet,
			Pattern:     "/api/books",
			HandlerFunc: handlers.BooksAPI.ListBooks,
		},
		{
			Name:        "GetBook",
			Method:      http.MethodGet,
			Pattern:     "/api/books/:id",
			HandlerFunc: handlers.BooksAPI.GetBook,
		},
		{
			Name:        "CreateBook",
			Method:      http.MethodPost,
			Pattern:     "/api/books",
			Secured:     true,
			HandlerFunc: handlers.BooksAPI.CreateBook,
		},
		{
			Name:        "UpdateBook",
			Method:      http.MethodPut,
			Pattern:     "/api/books/:id",
			Secured:     true,
			HandlerFunc: handlers.BooksAPI.UpdateBook,
		},
		{
			Name:        "DeleteBook",
			Method:      http.MethodDelete,
			Pattern:     "/api/books/:id",
			Secured:     true,
			AdminOnly:   true,
			HandlerFunc: handlers.BooksAPI.DeleteBook,
		},
		{
			Name:        "ListCustomers",
			Method:      http.MethodGet,
			Pattern:     "/api/customers",
			HandlerFunc: handlers.CustomersAPI.ListCustomers,
		},
		{
			Name:        "GetCustomer",
			Method:      http.MethodGet,
			Pattern:     "/api/customers/:id",
			HandlerFunc: handlers.CustomersAPI.GetCustomer,
		},
		{
			Name:        "CreateCustomer",
			Method:      http.MethodPost,
			Pattern:     "/api/customers",
			Secured:     true,
			HandlerFunc: handlers.CustomersAPI.CreateCustomer,
		},
		{
			Name:        "UpdateCustomer",
			Method:      http.MethodPut,
			Pattern:     "/api/customers/:id",
			Secured:     true,
			HandlerFunc: handlers.CustomersAPI.UpdateCustomer,
		},
		{
			Name:        "DeleteCustomer",
			Method:      http.MethodDelete,
			Pattern:     "/api/customers/:id",
			Secured:     true,
			AdminOnly:   true,
			HandlerFunc: handlers.CustomersAPI.DeleteCustomer,
		},
		{
			Name:        "ListPurchases",
			Method:      http.MethodGet,
			Pattern:     "/api/purchases",
			HandlerFunc: handlers.PurchasesAPI.ListPurchases,
		},
		{
			Name:        "CreatePurchase",
			Method:      http.MethodPost,
			Pattern:     "/api/purchases",
			HandlerFunc: handlers.PurchasesAPI.CreatePurchase,
		},
		{
			Name:        "RegisterUser",
			Method:      http.MethodPost,
			Pattern:     "/api/users",
			Secured:     true,
			HandlerFunc: handlers.UsersAPI.Register,
		},
		{
			Name:        "CurrentUser",
			Method:      http.MethodGet,
			Pattern:     "/api/users/me",
			Secured:     true,
			HandlerFunc: handlers.UsersAPI.Me,
		},
		{
			Name:        "Login",
			Method:      http.MethodPost,
			Pattern:     "/api/auth",
			HandlerFunc: handlers.AuthAPI.Login,
		},
	}
}

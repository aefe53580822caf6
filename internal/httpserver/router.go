package httpserver

import (
	"context"
	"log"

	"credit-ledger/internal/domain"
	creditsvc "credit-ledger/internal/service/credit"
	customersvc "credit-ledger/internal/service/customer"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CustomerService is the directory surface the handlers call.
type CustomerService interface {
	Register(ctx context.Context, in customersvc.RegisterInput) (*domain.Customer, error)
	FindByID(ctx context.Context, id int64) (*domain.Customer, error)
	Update(ctx context.Context, id int64, in customersvc.UpdateInput) (*domain.Customer, error)
	Delete(ctx context.Context, id int64) error
}

// CreditService is the ledger surface the handlers call.
type CreditService interface {
	Create(ctx context.Context, in creditsvc.CreateInput) (*domain.Credit, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Credit, error)
	FindByCodeForCustomer(ctx context.Context, creditCode string, customerID int64) (*domain.Credit, error)
}

// Deps carries the services the router wires to routes.
type Deps struct {
	CustomerSvc CustomerService
	CreditSvc   CreditService
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	setupValidator()
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")

	customers := api.Group("/customers")
	customers.POST("", registerCustomerHandler(deps.CustomerSvc))
	customers.GET("/:id", getCustomerHandler(deps.CustomerSvc))
	customers.PUT("/:id", updateCustomerHandler(deps.CustomerSvc))
	customers.DELETE("/:id", deleteCustomerHandler(deps.CustomerSvc))

	credits := api.Group("/credits")
	credits.POST("", createCreditHandler(deps.CreditSvc))
	credits.GET("", listCreditsHandler(deps.CreditSvc))
	credits.GET("/:creditCode", getCreditHandler(deps.CreditSvc))

	return router
}

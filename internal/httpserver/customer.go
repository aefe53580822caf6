package httpserver

import (
	"net/http"
	"strconv"

	"credit-ledger/internal/domain"
	customersvc "credit-ledger/internal/service/customer"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type customerRequest struct {
	FirstName string          `json:"firstName" binding:"required"`
	LastName  string          `json:"lastName" binding:"required"`
	CPF       string          `json:"cpf" binding:"required,len=11,numeric"`
	Email     string          `json:"email" binding:"required,email"`
	Password  string          `json:"password" binding:"required"`
	Income    decimal.Decimal `json:"income" binding:"-"`
	ZipCode   string          `json:"zipCode" binding:"required"`
	Street    string          `json:"street" binding:"required"`
}

type customerUpdateRequest struct {
	FirstName string          `json:"firstName" binding:"required"`
	LastName  string          `json:"lastName" binding:"required"`
	Income    decimal.Decimal `json:"income" binding:"-"`
	ZipCode   string          `json:"zipCode" binding:"required"`
	Street    string          `json:"street" binding:"required"`
}

// customerView is the representation returned to clients. The password hash
// never leaves the server.
type customerView struct {
	ID        int64           `json:"id"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	CPF       string          `json:"cpf"`
	Email     string          `json:"email"`
	Income    decimal.Decimal `json:"income"`
	ZipCode   string          `json:"zipCode"`
	Street    string          `json:"street"`
}

func toCustomerView(c domain.Customer) customerView {
	return customerView{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		CPF:       c.CPF,
		Email:     c.Email,
		Income:    c.Income,
		ZipCode:   c.Address.ZipCode,
		Street:    c.Address.Street,
	}
}

func registerCustomerHandler(svc CustomerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req customerRequest
		var details []string
		if err := c.ShouldBindJSON(&req); err != nil {
			details = validationDetails(err)
		}
		if !req.Income.IsPositive() {
			details = append(details, "income: must be greater than 0")
		}
		if len(details) > 0 {
			writeValidationError(c, details)
			return
		}

		created, err := svc.Register(c.Request.Context(), customersvc.RegisterInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			CPF:       req.CPF,
			Email:     req.Email,
			Password:  req.Password,
			Income:    req.Income,
			ZipCode:   req.ZipCode,
			Street:    req.Street,
		})
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusCreated, toCustomerView(*created))
	}
}

func getCustomerHandler(svc CustomerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		found, err := svc.FindByID(c.Request.Context(), id)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCustomerView(*found))
	}
}

func updateCustomerHandler(svc CustomerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		var req customerUpdateRequest
		var details []string
		if err := c.ShouldBindJSON(&req); err != nil {
			details = validationDetails(err)
		}
		if !req.Income.IsPositive() {
			details = append(details, "income: must be greater than 0")
		}
		if len(details) > 0 {
			writeValidationError(c, details)
			return
		}

		updated, err := svc.Update(c.Request.Context(), id, customersvc.UpdateInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Income:    req.Income,
			ZipCode:   req.ZipCode,
			Street:    req.Street,
		})
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCustomerView(*updated))
	}
}

func deleteCustomerHandler(svc CustomerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			writeDomainError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeValidationError(c, []string{"id: must be a number"})
		return 0, false
	}
	return id, true
}

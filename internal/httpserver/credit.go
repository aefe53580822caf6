package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"credit-ledger/internal/domain"
	creditsvc "credit-ledger/internal/service/credit"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// firstInstallmentWindowMonths caps how far in the future the first
// installment may fall.
const firstInstallmentWindowMonths = 3

type creditRequest struct {
	CreditValue          decimal.Decimal `json:"creditValue" binding:"-"`
	DayFirstInstallment  string          `json:"dayFirstInstallment" binding:"required,datetime=2006-01-02"`
	NumberOfInstallments int             `json:"numberOfInstallments" binding:"required,min=1,max=48"`
	CustomerID           int64           `json:"customerId" binding:"required"`
}

// creditView is the full representation returned on creation and single
// lookups. Owner fields are flattened in, the way clients expect them.
type creditView struct {
	ID                   int64           `json:"id"`
	CreditCode           string          `json:"creditCode"`
	CreditValue          decimal.Decimal `json:"creditValue"`
	NumberOfInstallments int             `json:"numberOfInstallments"`
	InstallmentValue     decimal.Decimal `json:"installmentValue"`
	Status               domain.Status   `json:"status"`
	EmailCustomer        string          `json:"emailCustomer"`
	IncomeCustomer       decimal.Decimal `json:"incomeCustomer"`
}

// creditSummaryView is the trimmed representation used in listings.
type creditSummaryView struct {
	ID                   int64           `json:"id"`
	CreditCode           string          `json:"creditCode"`
	CreditValue          decimal.Decimal `json:"creditValue"`
	NumberOfInstallments int             `json:"numberOfInstallments"`
}

func toCreditView(cr domain.Credit) creditView {
	v := creditView{
		ID:                   cr.ID,
		CreditCode:           cr.CreditCode,
		CreditValue:          cr.CreditValue,
		NumberOfInstallments: cr.NumberOfInstallments,
		InstallmentValue:     cr.InstallmentValue(),
		Status:               cr.Status,
	}
	if cr.Customer != nil {
		v.EmailCustomer = cr.Customer.Email
		v.IncomeCustomer = cr.Customer.Income
	}
	return v
}

func toCreditSummaryView(cr domain.Credit) creditSummaryView {
	return creditSummaryView{
		ID:                   cr.ID,
		CreditCode:           cr.CreditCode,
		CreditValue:          cr.CreditValue,
		NumberOfInstallments: cr.NumberOfInstallments,
	}
}

func createCreditHandler(svc CreditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req creditRequest
		var details []string
		if err := c.ShouldBindJSON(&req); err != nil {
			details = validationDetails(err)
		}
		if !req.CreditValue.IsPositive() {
			details = append(details, "creditValue: must be greater than 0")
		}
		var firstDay time.Time
		if req.DayFirstInstallment != "" {
			if day, err := time.Parse(dateLayout, req.DayFirstInstallment); err == nil {
				firstDay = day
				latest := time.Now().AddDate(0, firstInstallmentWindowMonths, 0)
				if day.After(latest) {
					details = append(details, "dayFirstInstallment: must be within 3 months from today")
				}
			}
		}
		if len(details) > 0 {
			writeValidationError(c, details)
			return
		}

		created, err := svc.Create(c.Request.Context(), creditsvc.CreateInput{
			CustomerID:           req.CustomerID,
			CreditValue:          req.CreditValue,
			DayFirstInstallment:  firstDay,
			NumberOfInstallments: req.NumberOfInstallments,
		})
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusCreated, toCreditView(*created))
	}
}

func listCreditsHandler(svc CreditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := customerIDQuery(c)
		if !ok {
			return
		}
		credits, err := svc.ListByCustomer(c.Request.Context(), customerID)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		views := make([]creditSummaryView, 0, len(credits))
		for _, cr := range credits {
			views = append(views, toCreditSummaryView(cr))
		}
		c.JSON(http.StatusOK, views)
	}
}

func getCreditHandler(svc CreditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := customerIDQuery(c)
		if !ok {
			return
		}
		found, err := svc.FindByCodeForCustomer(c.Request.Context(), c.Param("creditCode"), customerID)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCreditView(*found))
	}
}

func customerIDQuery(c *gin.Context) (int64, bool) {
	raw := c.Query("customerId")
	if raw == "" {
		writeValidationError(c, []string{"customerId: must not be empty"})
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeValidationError(c, []string{"customerId: must be a number"})
		return 0, false
	}
	return id, true
}

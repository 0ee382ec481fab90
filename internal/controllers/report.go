package controllers

import (
	"net/http"

	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/types"
	"github.com/gin-gonic/gin"
)

// ReportQuery selects the window of a report.
//
// from and to override range. If only one of them is set, the window is
// open on the other side.
type ReportQuery struct {
	Range string `form:"range" enums:"month,quarter,3months" default:"month"` // Named window relative to the current date
	From  string `form:"from"`                                                // First day of the window, YYYY-MM-DD
	To    string `form:"to"`                                                  // Last day of the window, YYYY-MM-DD
}

type SpendingQuery struct {
	ReportQuery
	Pagination
}

// Alert is a notification about the finances of a user.
type Alert struct {
	Message string `json:"message" example:"You spent more than your Groceries budget"`
}

func (co Controller) RegisterReportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/spending-by-category", httputil.OptionsGet)
	r.GET("/spending-by-category", co.GetSpendingByCategory)

	r.OPTIONS("/income-vs-expense", httputil.OptionsGet)
	r.GET("/income-vs-expense", co.GetIncomeVsExpense)

	r.OPTIONS("/alerts", httputil.OptionsGet)
	r.GET("/alerts", co.GetAlerts)
}

// window resolves the report window of the request.
func (co Controller) window(q ReportQuery) (types.Window, error) {
	return types.ResolveWindow(q.Range, q.From, q.To, co.now())
}

// GetSpendingByCategory returns the spending per expense category
//
//	@Summary		Spending by category
//	@Description	Returns the outflow totals per expense category in the window, largest first.
//	@Description	Categories without spending are listed with a total of 0.
//	@Tags			Reports
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200		{array}		models.CategorySpending
//	@Failure		400		{object}	httpError
//	@Failure		401		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			range	query		string	false	"Window relative to today"	Enums(month, quarter, 3months)	default(month)
//	@Param			from	query		string	false	"First day of the window, YYYY-MM-DD"
//	@Param			to		query		string	false	"Last day of the window, YYYY-MM-DD"
//	@Param			limit	query		int		false	"Maximum number of categories to return. Defaults to 50, capped at 200"
//	@Param			offset	query		int		false	"Number of categories to skip"
//	@Router			/reports/spending-by-category [get]
func (co Controller) GetSpendingByCategory(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		abort(c, err)
		return
	}

	var query SpendingQuery
	if err := httputil.BindQuery(c, &query); err != nil {
		abort(c, err)
		return
	}

	w, err := co.window(query.ReportQuery)
	if err != nil {
		abort(c, err)
		return
	}

	spending, err := models.SpendingByCategory(co.DB, p.ID, w, query.limit(), query.Offset)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, spending)
}

// GetIncomeVsExpense returns income and expense per month
//
//	@Summary		Income vs. expense
//	@Description	Returns income, expense and their difference for every month in the window
//	@Description	that has transactions, oldest first.
//	@Tags			Reports
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200		{array}		models.IncomeExpense
//	@Failure		400		{object}	httpError
//	@Failure		401		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			range	query		string	false	"Window relative to today"	Enums(month, quarter, 3months)	default(month)
//	@Param			from	query		string	false	"First day of the window, YYYY-MM-DD"
//	@Param			to		query		string	false	"Last day of the window, YYYY-MM-DD"
//	@Router			/reports/income-vs-expense [get]
func (co Controller) GetIncomeVsExpense(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		abort(c, err)
		return
	}

	var query ReportQuery
	if err := httputil.BindQuery(c, &query); err != nil {
		abort(c, err)
		return
	}

	w, err := co.window(query)
	if err != nil {
		abort(c, err)
		return
	}

	periods, err := models.IncomeVsExpense(co.DB, p.ID, w)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, periods)
}

// GetAlerts returns the alerts for the user
//
//	@Summary		Alerts
//	@Description	Returns alerts about the finances of the user. Currently always empty.
//	@Tags			Reports
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		Alert
//	@Failure		401	{object}	httpError
//	@Router			/reports/alerts [get]
func (co Controller) GetAlerts(c *gin.Context) {
	c.JSON(http.StatusOK, []Alert{})
}

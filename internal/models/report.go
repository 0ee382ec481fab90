package models

import (
	"errors"

	"github.com/Rhymond/go-money"
	"github.com/expense-tracker/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// ReportCurrency is the currency reports are expressed in.
const ReportCurrency = DefaultCurrency

// SummaryPeriods is the number of periods a transaction summary returns.
const SummaryPeriods = 12

var ErrSummaryRangeInvalid = errors.New("invalid range, use 'week', 'month' or 'year'")

// CategorySpending is the total spent in one expense category.
type CategorySpending struct {
	CategoryName string          `json:"categoryName" example:"Groceries"`
	Total        decimal.Decimal `json:"total" example:"350.25"`
	Currency     string          `json:"currency" example:"USD"`
}

// IncomeExpense compares income and expenses for one calendar month.
type IncomeExpense struct {
	Period  string          `json:"period" example:"2025-01"`
	Income  decimal.Decimal `json:"income" example:"1000"`
	Expense decimal.Decimal `json:"expense" example:"400"`
	Net     decimal.Decimal `json:"net" example:"600"`
}

// PeriodSummary is the income and expense total for a week, month or year.
type PeriodSummary struct {
	Period  string          `json:"period" example:"2025-06"`
	Income  decimal.Decimal `json:"income" example:"3200"`
	Expense decimal.Decimal `json:"expense" example:"1875.4"`
}

// RoundToCurrency rounds the amount to the minor unit of the currency.
// Unknown currencies are returned unchanged.
func RoundToCurrency(amount decimal.Decimal, code string) decimal.Decimal {
	c := money.GetCurrency(code)
	if c == nil {
		return amount
	}

	return amount.Round(int32(c.Fraction))
}

// SpentForBudgets returns the sum of outflows in the category and month of
// every budget, keyed by budget ID. Budgets without outflows map to zero.
func SpentForBudgets(db *gorm.DB, userID uuid.UUID, budgets []Budget) (map[uuid.UUID]decimal.Decimal, error) {
	spent := make(map[uuid.UUID]decimal.Decimal, len(budgets))
	if len(budgets) == 0 {
		return spent, nil
	}

	categories := make(map[uuid.UUID]bool)
	from, to := budgets[0].Month, budgets[0].Month
	for _, b := range budgets {
		categories[b.CategoryID] = true
		if b.Month.Before(from) {
			from = b.Month
		}
		if b.Month.After(to) {
			to = b.Month
		}
	}

	var rows []struct {
		CategoryID      uuid.UUID
		TransactionDate types.Date
		Total           decimal.Decimal
	}

	err := db.Model(&Transaction{}).
		Select("category_id, transaction_date, SUM(ABS(amount)) AS total").
		Where("user_id = ? AND direction = ?", userID, DirectionOutflow).
		Where("category_id IN ?", maps.Keys(categories)).
		Where("transaction_date >= ? AND transaction_date <= ?", from.FirstDay(), to.LastDay()).
		Group("category_id, transaction_date").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	type period struct {
		category uuid.UUID
		month    types.Month
	}

	totals := make(map[period]decimal.Decimal)
	for _, r := range rows {
		key := period{r.CategoryID, r.TransactionDate.Month()}
		totals[key] = totals[key].Add(r.Total)
	}

	for _, b := range budgets {
		spent[b.ID] = RoundToCurrency(totals[period{b.CategoryID, b.Month}], ReportCurrency)
	}

	return spent, nil
}

// SpendingByCategory sums the absolute outflow amounts per expense category
// visible to the user within the window. Categories without outflows are
// included with a total of zero.
func SpendingByCategory(db *gorm.DB, userID uuid.UUID, w types.Window, limit, offset int) ([]CategorySpending, error) {
	join := "LEFT JOIN transactions ON transactions.category_id = categories.id AND transactions.user_id = ? AND transactions.direction = ?"
	args := []any{userID, DirectionOutflow}

	if !w.From.IsZero() {
		join += " AND transactions.transaction_date >= ?"
		args = append(args, w.From)
	}

	if !w.To.IsZero() {
		join += " AND transactions.transaction_date <= ?"
		args = append(args, w.To)
	}

	var rows []CategorySpending
	err := db.Model(&Category{}).
		Select("categories.name AS category_name, COALESCE(SUM(ABS(transactions.amount)), 0) AS total").
		Joins(join, args...).
		Scopes(VisibleCategories(userID)).
		Where("categories.type = ?", CategoryTypeExpense).
		Group("categories.name").
		Order("total DESC, categories.name ASC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]CategorySpending, 0, len(rows))
	for _, r := range rows {
		r.Total = RoundToCurrency(r.Total, ReportCurrency)
		r.Currency = ReportCurrency
		result = append(result, r)
	}

	return result, nil
}

// IncomeVsExpense returns income, expense and net per calendar month
// within the window, oldest first. Months without transactions are omitted.
func IncomeVsExpense(db *gorm.DB, userID uuid.UUID, w types.Window) ([]IncomeExpense, error) {
	totals, err := periodTotals(db, userID, w, monthPeriod)
	if err != nil {
		return nil, err
	}

	periods := maps.Keys(totals)
	slices.Sort(periods)

	result := make([]IncomeExpense, 0, len(periods))
	for _, p := range periods {
		t := totals[p]
		result = append(result, IncomeExpense{
			Period:  p,
			Income:  t.Income,
			Expense: t.Expense,
			Net:     t.Income.Sub(t.Expense),
		})
	}

	return result, nil
}

// TransactionSummary returns income and expense for the most recent
// weeks, months or years that have transactions, newest first.
func TransactionSummary(db *gorm.DB, userID uuid.UUID, r string) ([]PeriodSummary, error) {
	var label func(types.Date) string
	switch r {
	case "week":
		label = weekPeriod
	case "month":
		label = monthPeriod
	case "year":
		label = yearPeriod
	default:
		return nil, ErrSummaryRangeInvalid
	}

	totals, err := periodTotals(db, userID, types.Window{}, label)
	if err != nil {
		return nil, err
	}

	periods := maps.Keys(totals)
	slices.Sort(periods)
	slices.Reverse(periods)

	if len(periods) > SummaryPeriods {
		periods = periods[:SummaryPeriods]
	}

	result := make([]PeriodSummary, 0, len(periods))
	for _, p := range periods {
		result = append(result, PeriodSummary{
			Period:  p,
			Income:  totals[p].Income,
			Expense: totals[p].Expense,
		})
	}

	return result, nil
}

type flow struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// periodTotals sums absolute inflows and outflows per period label.
//
// Grouping by day in SQL and by period in Go keeps the query the same
// for SQLite and PostgreSQL.
func periodTotals(db *gorm.DB, userID uuid.UUID, w types.Window, label func(types.Date) string) (map[string]flow, error) {
	q := db.Model(&Transaction{}).
		Select("transaction_date, direction, SUM(ABS(amount)) AS total").
		Where("user_id = ?", userID)

	if !w.From.IsZero() {
		q = q.Where("transaction_date >= ?", w.From)
	}

	if !w.To.IsZero() {
		q = q.Where("transaction_date <= ?", w.To)
	}

	var rows []struct {
		TransactionDate types.Date
		Direction       string
		Total           decimal.Decimal
	}

	err := q.Group("transaction_date, direction").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[string]flow)
	for _, r := range rows {
		p := label(r.TransactionDate)
		t := totals[p]
		switch r.Direction {
		case DirectionInflow:
			t.Income = t.Income.Add(r.Total)
		case DirectionOutflow:
			t.Expense = t.Expense.Add(r.Total)
		}
		totals[p] = t
	}

	for p, t := range totals {
		totals[p] = flow{
			Income:  RoundToCurrency(t.Income, ReportCurrency),
			Expense: RoundToCurrency(t.Expense, ReportCurrency),
		}
	}

	return totals, nil
}

func monthPeriod(d types.Date) string {
	return d.Month().String()
}

func yearPeriod(d types.Date) string {
	return d.Time().Format("2006")
}

// weekPeriod labels a date with the Monday of its ISO week.
func weekPeriod(d types.Date) string {
	offset := (int(d.Time().Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset).String()
}

// seed fills the configured database with demo data for a single user.
package main

import (
	"errors"
	"flag"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/expense-tracker/backend/internal/auth"
	"github.com/expense-tracker/backend/internal/config"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/types"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	email        = flag.String("email", "demo@example.com", "email of the demo user")
	password     = flag.String("password", "demo-password", "password of the demo user")
	months       = flag.Int("months", 3, "number of months to generate transactions for")
	transactions = flag.Int("transactions", 40, "transactions per month")
	seed         = flag.Int64("seed", 0, "seed for the fake data generator, 0 for random")
)

func main() {
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	db, err := models.Open(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to database")
	}

	gofakeit.Seed(*seed)

	user, err := demoUser(db, *email, *password)
	if err != nil {
		log.Fatal().Err(err).Msg("creating demo user")
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return generate(tx, user, time.Now().UTC())
	})
	if err != nil {
		log.Fatal().Err(err).Msg("generating data")
	}

	log.Info().Str("email", user.Email).Str("id", user.ID.String()).Msg("demo data created")
}

// demoUser returns the user with the email, creating it if necessary.
func demoUser(db *gorm.DB, email, password string) (models.User, error) {
	var user models.User
	err := db.First(&user, "email = ?", models.NormalizeEmail(email)).Error
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, models.ErrResourceNotFound) {
		return user, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return user, err
	}

	user = models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         gofakeit.Name(),
	}
	return user, db.Create(&user).Error
}

func generate(tx *gorm.DB, user models.User, now time.Time) error {
	accounts := []models.Account{
		{UserID: user.ID, Institution: gofakeit.Company(), AccountName: "Checking", Type: "checking"},
		{UserID: user.ID, Institution: gofakeit.Company(), AccountName: "Credit Card", Type: "credit"},
	}
	for i := range accounts {
		accounts[i].Last4 = gofakeit.Numerify("####")
		accounts[i].Balance = price(100, 5000)
	}
	if err := tx.Create(&accounts).Error; err != nil {
		return err
	}

	var categories []models.Category
	err := tx.Scopes(models.VisibleCategories(user.ID)).Order("name ASC").Find(&categories).Error
	if err != nil {
		return err
	}

	var income, expense []models.Category
	for _, c := range categories {
		if c.Type == models.CategoryTypeIncome {
			income = append(income, c)
		} else {
			expense = append(expense, c)
		}
	}

	current := types.MonthOf(now)
	for m := range *months {
		month := current.AddDate(0, -m)

		// Salary on the first of the month
		if len(income) > 0 {
			if err := tx.Create(&models.Transaction{
				UserID:          user.ID,
				AccountID:       &accounts[0].ID,
				CategoryID:      &income[len(income)-1].ID,
				Amount:          price(2500, 4500),
				Direction:       models.DirectionInflow,
				Description:     "Salary " + gofakeit.Company(),
				TransactionDate: month.FirstDay(),
			}).Error; err != nil {
				return err
			}
		}

		for range *transactions {
			category := expense[gofakeit.Number(0, len(expense)-1)]
			day := gofakeit.Number(1, month.LastDay().Time().Day())
			account := accounts[gofakeit.Number(0, len(accounts)-1)]

			if err := tx.Create(&models.Transaction{
				UserID:          user.ID,
				AccountID:       &account.ID,
				CategoryID:      &category.ID,
				Amount:          price(3, 250),
				Direction:       models.DirectionOutflow,
				Description:     gofakeit.Sentence(4),
				TransactionDate: month.FirstDay().AddDate(0, 0, day-1),
			}).Error; err != nil {
				return err
			}
		}

		for _, c := range expense[:min(4, len(expense))] {
			budget := models.Budget{UserID: user.ID, CategoryID: c.ID, Month: month}
			err := tx.Where(&budget).
				Attrs(models.Budget{LimitAmount: price(200, 800).Round(0)}).
				FirstOrCreate(&budget).Error
			if err != nil {
				return err
			}
		}
	}

	target := types.DateOf(now.AddDate(1, 0, 0))
	goals := []models.Goal{
		{Name: "Emergency fund", TargetAmount: decimal.NewFromInt(10000), CurrentAmount: price(500, 4000), TargetDate: &target},
		{Name: gofakeit.City() + " trip", TargetAmount: decimal.NewFromInt(3000), CurrentAmount: price(0, 1000)},
	}
	for i := range goals {
		goals[i].UserID = user.ID
	}

	return tx.Create(&goals).Error
}

func price(low, high float64) decimal.Decimal {
	return decimal.NewFromFloat(gofakeit.Price(low, high)).Round(2)
}

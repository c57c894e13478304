package trip_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"moneyflow/internal/repositories"
	"moneyflow/internal/services"
)

var Module = fx.Provide(
	provideTripRepo,
	provideExpenseRepo,
	provideTripService,
	provideBudgetService)

func provideTripRepo(db *gorm.DB) repositories.TripRepository {
	return repositories.NewTripRepository(db)
}

func provideExpenseRepo(db *gorm.DB) repositories.ExpenseRepository {
	return repositories.NewExpenseRepository(db)
}

func provideTripService(tripRepo repositories.TripRepository, expenseRepo repositories.ExpenseRepository) services.TripServiceInterface {
	return services.NewTripService(tripRepo, expenseRepo)
}

func provideBudgetService(tripRepo repositories.TripRepository, expenseRepo repositories.ExpenseRepository) services.BudgetServiceInterface {
	return services.NewBudgetService(tripRepo, expenseRepo)
}

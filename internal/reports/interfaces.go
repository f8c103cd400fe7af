package reports

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/types"
)

// Repository stores report snapshots. List returns the newest snapshots
// first and is capped at 200 rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, report *models.Report) error
	FindByID(ctx context.Context, id int64) (*models.Report, error)
	List(ctx context.Context, filter ListFilter) ([]models.Report, error)
}

// DailyAmount is one calendar day's summed amount.
type DailyAmount struct {
	Day    types.Date      `gorm:"column:day"`
	Amount decimal.Decimal `gorm:"column:amount"`
}

// DiagnosisCases counts mortalities that share a diagnosis. Diagnosis is nil
// when the record carried none.
type DiagnosisCases struct {
	Diagnosis *string `gorm:"column:diagnosis"`
	Cases     int64   `gorm:"column:cases"`
}

// FeedTypeUsage is the total weight fed of one feed type.
type FeedTypeUsage struct {
	FeedType string          `gorm:"column:feed_type"`
	Kg       decimal.Decimal `gorm:"column:kg"`
}

// StatsSource runs the aggregate queries the report generators are built
// from. Date windows are inclusive on both ends.
type StatsSource interface {
	SalesTotal(ctx context.Context, from, to *types.Date) (decimal.Decimal, error)
	ExpenseTotal(ctx context.Context, from, to *types.Date) (decimal.Decimal, error)
	DailyRevenue(ctx context.Context, from, to *types.Date) ([]DailyAmount, error)
	DailyExpenses(ctx context.Context, from, to *types.Date) ([]DailyAmount, error)
	MortalityByDiagnosis(ctx context.Context, from, to *types.Date) ([]DiagnosisCases, error)
	FeedUsageByType(ctx context.Context, from, to *types.Date) ([]FeedTypeUsage, error)
	SupplyLevels(ctx context.Context) ([]models.Supply, error)
}

// Service generates farm reports and manages their snapshot history.
type Service interface {
	Generate(ctx context.Context, actorID int64, req GenerateReportRequest) (*ReportDTO, error)
	Get(ctx context.Context, id int64) (*ReportDTO, error)
	List(ctx context.Context, filter ListFilter) ([]ReportDTO, error)
}

package reports

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/types"
)

type statsSource struct {
	db *gorm.DB
}

// NewStatsSource returns a gorm-backed stats source for the report
// generators.
func NewStatsSource(db *gorm.DB) StatsSource {
	return &statsSource{db: db}
}

// dateWindow filters a date column to the inclusive [from, to] range.
func dateWindow(q *gorm.DB, column string, from, to *types.Date) *gorm.DB {
	if from != nil {
		q = q.Where(column+" >= ?", from.Time)
	}
	if to != nil {
		q = q.Where(column+" <= ?", to.Time)
	}
	return q
}

// timestampWindow filters a timestamp column to the same inclusive date
// range, covering the whole final day.
func timestampWindow(q *gorm.DB, column string, from, to *types.Date) *gorm.DB {
	if from != nil {
		q = q.Where(column+" >= ?", from.Time)
	}
	if to != nil {
		q = q.Where(column+" < ?", to.AddDays(1).Time)
	}
	return q
}

func (s *statsSource) SalesTotal(ctx context.Context, from, to *types.Date) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal `gorm:"column:total"`
	}
	q := dateWindow(s.db.WithContext(ctx).Model(&models.Sale{}), "payment_date", from, to)
	err := q.Select("COALESCE(SUM(total_amount), 0) AS total").Scan(&row).Error
	return row.Total, err
}

func (s *statsSource) ExpenseTotal(ctx context.Context, from, to *types.Date) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal `gorm:"column:total"`
	}
	q := dateWindow(s.db.WithContext(ctx).Model(&models.Expense{}), "date_spent", from, to)
	err := q.Select("COALESCE(SUM(amount), 0) AS total").Scan(&row).Error
	return row.Total, err
}

func (s *statsSource) DailyRevenue(ctx context.Context, from, to *types.Date) ([]DailyAmount, error) {
	var rows []DailyAmount
	q := dateWindow(s.db.WithContext(ctx).Model(&models.Sale{}), "payment_date", from, to)
	err := q.Select("payment_date AS day, COALESCE(SUM(total_amount), 0) AS amount").
		Group("payment_date").
		Order("payment_date").
		Scan(&rows).Error
	return rows, err
}

func (s *statsSource) DailyExpenses(ctx context.Context, from, to *types.Date) ([]DailyAmount, error) {
	var rows []DailyAmount
	q := dateWindow(s.db.WithContext(ctx).Model(&models.Expense{}), "date_spent", from, to)
	err := q.Select("date_spent AS day, COALESCE(SUM(amount), 0) AS amount").
		Group("date_spent").
		Order("date_spent").
		Scan(&rows).Error
	return rows, err
}

func (s *statsSource) MortalityByDiagnosis(ctx context.Context, from, to *types.Date) ([]DiagnosisCases, error) {
	var rows []DiagnosisCases
	q := s.db.WithContext(ctx).Model(&models.PigHealthRecord{}).
		Where("mortality = ?", true)
	q = timestampWindow(q, "recorded_at", from, to)
	err := q.Select("diagnosis, COUNT(*) AS cases").
		Group("diagnosis").
		Order("cases DESC").
		Scan(&rows).Error
	return rows, err
}

func (s *statsSource) FeedUsageByType(ctx context.Context, from, to *types.Date) ([]FeedTypeUsage, error) {
	var rows []FeedTypeUsage
	q := timestampWindow(s.db.WithContext(ctx).Model(&models.FeedingLog{}), "feeding_time", from, to)
	err := q.Select("feed_type, COALESCE(SUM(quantity_kg), 0) AS kg").
		Group("feed_type").
		Order("feed_type").
		Scan(&rows).Error
	return rows, err
}

func (s *statsSource) SupplyLevels(ctx context.Context) ([]models.Supply, error) {
	var rows []models.Supply
	err := s.db.WithContext(ctx).Order("item_name").Find(&rows).Error
	return rows, err
}

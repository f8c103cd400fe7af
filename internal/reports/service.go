package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	pkgerrors "github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/errors"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/types"
)

// Low-stock cutoff applied when the request does not carry one.
var defaultLowStockThreshold = decimal.NewFromInt(10)

type reportWindow struct {
	From *types.Date `json:"from"`
	To   *types.Date `json:"to"`
}

type monthTotals struct {
	Month    string          `json:"month"`
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

type salesReport struct {
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
	ByMonth  []monthTotals   `json:"by_month"`
	Window   reportWindow    `json:"window"`
}

type causeCount struct {
	Diagnosis string `json:"diagnosis"`
	Cases     int64  `json:"cases"`
}

type mortalityReport struct {
	TotalMortalities int64        `json:"total_mortalities"`
	ByCause          []causeCount `json:"by_cause"`
	Window           reportWindow `json:"window"`
}

type feedTypeTotal struct {
	FeedType string          `json:"feed_type"`
	Kg       decimal.Decimal `json:"kg"`
}

type feedReport struct {
	TotalKg    decimal.Decimal `json:"total_kg"`
	ByFeedType []feedTypeTotal `json:"by_feed_type"`
	Window     reportWindow    `json:"window"`
}

type inventoryItem struct {
	ItemName  string          `json:"item_name"`
	Category  *string         `json:"category"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type inventoryReport struct {
	Items     []inventoryItem `json:"items"`
	LowStock  []inventoryItem `json:"low_stock"`
	Threshold decimal.Decimal `json:"threshold"`
}

type service struct {
	repo  Repository
	stats StatsSource
	now   func() time.Time
}

// NewService wires the report service.
func NewService(repo Repository, stats StatsSource) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("report repository required")
	}
	if stats == nil {
		return nil, fmt.Errorf("stats source required")
	}
	return &service{repo: repo, stats: stats, now: time.Now}, nil
}

// Generate builds the requested report document. With Snapshot unset or
// true the document is stored and the row returned; otherwise the document
// is returned with id 0 and nothing is written.
func (s *service) Generate(ctx context.Context, actorID int64, req GenerateReportRequest) (*ReportDTO, error) {
	if !req.ReportType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid report type").
			WithDetails(map[string]any{"field": "report_type"})
	}
	filters := req.Filters
	if filters == nil {
		filters = &ReportFilters{}
	}

	var (
		doc any
		err error
	)
	switch req.ReportType {
	case enums.ReportTypeSales:
		doc, err = s.generateSales(ctx, filters)
	case enums.ReportTypeMortality:
		doc, err = s.generateMortality(ctx, filters)
	case enums.ReportTypeFeedConsumption:
		doc, err = s.generateFeed(ctx, filters)
	case enums.ReportTypeInventory:
		doc, err = s.generateInventory(ctx, filters)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid report type").
			WithDetails(map[string]any{"field": "report_type"})
	}
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode report")
	}

	if req.Snapshot != nil && !*req.Snapshot {
		return &ReportDTO{
			ReportType:  req.ReportType,
			GeneratedBy: &actorID,
			GeneratedAt: s.now().UTC(),
			Data:        types.JSONText(payload),
		}, nil
	}

	report := &models.Report{
		ReportType:  req.ReportType,
		GeneratedBy: &actorID,
		Data:        string(payload),
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store report")
	}
	return FromModel(report), nil
}

func (s *service) Get(ctx context.Context, id int64) (*ReportDTO, error) {
	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Report not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load report")
	}
	return FromModel(report), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]ReportDTO, error) {
	if filter.ReportType != nil && !filter.ReportType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid report type").
			WithDetails(map[string]any{"field": "report_type"})
	}
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reports")
	}
	return FromModels(rows), nil
}

func (s *service) generateSales(ctx context.Context, f *ReportFilters) (any, error) {
	revenue, err := s.stats.SalesTotal(ctx, f.DateFrom, f.DateTo)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum sales")
	}
	expenses, err := s.stats.ExpenseTotal(ctx, f.DateFrom, f.DateTo)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum expenses")
	}
	revenueDays, err := s.stats.DailyRevenue(ctx, f.DateFrom, f.DateTo)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load revenue breakdown")
	}
	expenseDays, err := s.stats.DailyExpenses(ctx, f.DateFrom, f.DateTo)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load expense breakdown")
	}

	months := map[string]*monthTotals{}
	monthOf := func(day types.Date) *monthTotals {
		key := day.Format("2006-01")
		m, ok := months[key]
		if !ok {
			m = &monthTotals{Month: key}
			months[key] = m
		}
		return m
	}
	for _, d := range revenueDays {
		m := monthOf(d.Day)
		m.Revenue = m.Revenue.Add(d.Amount)
	}
	for _, d := range expenseDays {
		m := monthOf(d.Day)
		m.Expenses = m.Expenses.Add(d.Amount)
	}

	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	byMonth := make([]monthTotals, 0, len(keys))
	for _, k := range keys {
		m := months[k]
		m.Profit = m.Revenue.Sub(m.Expenses)
		byMonth = append(byMonth, *m)
	}

	return salesReport{
		Revenue:  revenue,
		Expenses: expenses,
		Profit:   revenue.Sub(expenses),
		ByMonth:  byMonth,
		Window:   reportWindow{From: f.DateFrom, To: f.DateTo},
	}, nil
}

func (s *service) generateMortality(ctx context.Context, f *ReportFilters) (any, error) {
	causes, err := s.stats.MortalityByDiagnosis(ctx, f.DateFrom, f.DateTo)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count mortalities")
	}

	var total int64
	byCause := make([]causeCount, 0, len(causes))
	for _, c := range causes {
		total += c.Cases
		name := "Unknown"
		if c.Diagnosis != nil && *c.Diagnosis != "" {
			name = *c.Diagnosis
		}
		byCause = append(byCause, causeCount{Diagnosis: name, Cases: c.Cases})
	}

	return mortalityReport{
		TotalMortalities: total,
		ByCause:          byCause,
		Window:           reportWindow{From: f.DateFrom, To: f.DateTo},
	}, nil
}

func (s *service) generateFeed(ctx context.Context, f *ReportFilters) (any, error) {
	usage, err := s.stats.FeedUsageByType(ctx, f.DateFrom, f.DateTo)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum feed usage")
	}

	total := decimal.Zero
	byType := make([]feedTypeTotal, 0, len(usage))
	for _, u := range usage {
		total = total.Add(u.Kg)
		byType = append(byType, feedTypeTotal{FeedType: u.FeedType, Kg: u.Kg})
	}

	return feedReport{
		TotalKg:    total,
		ByFeedType: byType,
		Window:     reportWindow{From: f.DateFrom, To: f.DateTo},
	}, nil
}

func (s *service) generateInventory(ctx context.Context, f *ReportFilters) (any, error) {
	threshold := defaultLowStockThreshold
	if f.LowStockThreshold != nil {
		threshold = *f.LowStockThreshold
	}

	supplies, err := s.stats.SupplyLevels(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load supply levels")
	}

	items := make([]inventoryItem, 0, len(supplies))
	low := make([]inventoryItem, 0)
	for _, supply := range supplies {
		item := inventoryItem{
			ItemName:  supply.ItemName,
			Category:  supply.Category,
			Quantity:  supply.Quantity,
			Unit:      supply.Unit,
			UpdatedAt: supply.UpdatedAt,
		}
		items = append(items, item)
		if supply.Quantity.LessThanOrEqual(threshold) {
			low = append(low, item)
		}
	}

	return inventoryReport{Items: items, LowStock: low, Threshold: threshold}, nil
}

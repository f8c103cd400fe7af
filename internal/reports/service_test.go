package reports

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	pkgerrors "github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/errors"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/types"
)

type stubRepo struct {
	byID   map[int64]*models.Report
	nextID int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{byID: map[int64]*models.Report{}}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(_ context.Context, report *models.Report) error {
	s.nextID++
	report.ID = s.nextID
	report.GeneratedAt = time.Now().UTC()
	s.byID[report.ID] = report
	return nil
}

func (s *stubRepo) FindByID(_ context.Context, id int64) (*models.Report, error) {
	report, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return report, nil
}

func (s *stubRepo) List(_ context.Context, filter ListFilter) ([]models.Report, error) {
	out := make([]models.Report, 0, len(s.byID))
	for _, report := range s.byID {
		if filter.ReportType != nil && report.ReportType != *filter.ReportType {
			continue
		}
		out = append(out, *report)
	}
	return out, nil
}

type stubStats struct {
	salesTotal    decimal.Decimal
	expenseTotal  decimal.Decimal
	dailyRevenue  []DailyAmount
	dailyExpenses []DailyAmount
	causes        []DiagnosisCases
	feed          []FeedTypeUsage
	supplies      []models.Supply
}

func (s *stubStats) SalesTotal(context.Context, *types.Date, *types.Date) (decimal.Decimal, error) {
	return s.salesTotal, nil
}

func (s *stubStats) ExpenseTotal(context.Context, *types.Date, *types.Date) (decimal.Decimal, error) {
	return s.expenseTotal, nil
}

func (s *stubStats) DailyRevenue(context.Context, *types.Date, *types.Date) ([]DailyAmount, error) {
	return s.dailyRevenue, nil
}

func (s *stubStats) DailyExpenses(context.Context, *types.Date, *types.Date) ([]DailyAmount, error) {
	return s.dailyExpenses, nil
}

func (s *stubStats) MortalityByDiagnosis(context.Context, *types.Date, *types.Date) ([]DiagnosisCases, error) {
	return s.causes, nil
}

func (s *stubStats) FeedUsageByType(context.Context, *types.Date, *types.Date) ([]FeedTypeUsage, error) {
	return s.feed, nil
}

func (s *stubStats) SupplyLevels(context.Context) ([]models.Supply, error) {
	return s.supplies, nil
}

func buildService(t *testing.T, repo Repository, stats StatsSource) Service {
	t.Helper()
	svc, err := NewService(repo, stats)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func mustDate(t *testing.T, value string) types.Date {
	t.Helper()
	d, err := types.ParseDate(value)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", value, err)
	}
	return d
}

func TestServiceGenerateSalesSnapshot(t *testing.T) {
	repo := newStubRepo()
	stats := &stubStats{
		salesTotal:   decimal.NewFromInt(5000),
		expenseTotal: decimal.NewFromInt(1200),
		dailyRevenue: []DailyAmount{
			{Day: mustDate(t, "2025-06-15"), Amount: decimal.NewFromInt(2000)},
			{Day: mustDate(t, "2025-07-01"), Amount: decimal.NewFromInt(3000)},
		},
		dailyExpenses: []DailyAmount{
			{Day: mustDate(t, "2025-07-03"), Amount: decimal.NewFromInt(1200)},
		},
	}
	svc := buildService(t, repo, stats)

	from := mustDate(t, "2025-06-01")
	to := mustDate(t, "2025-07-31")
	dto, err := svc.Generate(context.Background(), 4, GenerateReportRequest{
		ReportType: enums.ReportTypeSales,
		Filters:    &ReportFilters{DateFrom: &from, DateTo: &to},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if dto.ID != 1 {
		t.Fatalf("expected stored snapshot id 1, got %d", dto.ID)
	}
	if dto.GeneratedBy == nil || *dto.GeneratedBy != 4 {
		t.Fatalf("expected generated_by 4, got %v", dto.GeneratedBy)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected one stored report, got %d", len(repo.byID))
	}

	var doc salesReport
	if err := json.Unmarshal(dto.Data, &doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if !doc.Revenue.Equal(decimal.NewFromInt(5000)) || !doc.Profit.Equal(decimal.NewFromInt(3800)) {
		t.Fatalf("unexpected totals: revenue=%s profit=%s", doc.Revenue, doc.Profit)
	}
	if len(doc.ByMonth) != 2 {
		t.Fatalf("expected 2 month rows, got %d", len(doc.ByMonth))
	}
	if doc.ByMonth[0].Month != "2025-06" || !doc.ByMonth[0].Profit.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("unexpected first month: %+v", doc.ByMonth[0])
	}
	if doc.ByMonth[1].Month != "2025-07" || !doc.ByMonth[1].Profit.Equal(decimal.NewFromInt(1800)) {
		t.Fatalf("unexpected second month: %+v", doc.ByMonth[1])
	}
	if doc.Window.From == nil || doc.Window.From.String() != "2025-06-01" {
		t.Fatalf("unexpected window: %+v", doc.Window)
	}
}

func TestServiceGenerateEphemeralSkipsStore(t *testing.T) {
	repo := newStubRepo()
	svc := buildService(t, repo, &stubStats{})

	snapshot := false
	dto, err := svc.Generate(context.Background(), 4, GenerateReportRequest{
		ReportType: enums.ReportTypeSales,
		Snapshot:   &snapshot,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if dto.ID != 0 {
		t.Fatalf("expected ephemeral id 0, got %d", dto.ID)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("expected nothing stored, got %d rows", len(repo.byID))
	}
	if dto.GeneratedAt.IsZero() || len(dto.Data) == 0 {
		t.Fatalf("expected populated document, got %+v", dto)
	}
}

func TestServiceGenerateMortalityBucketsUnknown(t *testing.T) {
	pneumonia := "Pneumonia"
	stats := &stubStats{causes: []DiagnosisCases{
		{Diagnosis: &pneumonia, Cases: 3},
		{Diagnosis: nil, Cases: 2},
	}}
	svc := buildService(t, newStubRepo(), stats)

	dto, err := svc.Generate(context.Background(), 4, GenerateReportRequest{ReportType: enums.ReportTypeMortality})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var doc mortalityReport
	if err := json.Unmarshal(dto.Data, &doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if doc.TotalMortalities != 5 {
		t.Fatalf("expected 5 mortalities, got %d", doc.TotalMortalities)
	}
	if len(doc.ByCause) != 2 || doc.ByCause[0].Diagnosis != "Pneumonia" || doc.ByCause[1].Diagnosis != "Unknown" {
		t.Fatalf("unexpected causes: %+v", doc.ByCause)
	}
}

func TestServiceGenerateFeedTotals(t *testing.T) {
	stats := &stubStats{feed: []FeedTypeUsage{
		{FeedType: "grower", Kg: decimal.RequireFromString("120.5")},
		{FeedType: "starter", Kg: decimal.NewFromInt(30)},
	}}
	svc := buildService(t, newStubRepo(), stats)

	dto, err := svc.Generate(context.Background(), 4, GenerateReportRequest{ReportType: enums.ReportTypeFeedConsumption})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var doc feedReport
	if err := json.Unmarshal(dto.Data, &doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if !doc.TotalKg.Equal(decimal.RequireFromString("150.5")) {
		t.Fatalf("expected 150.5 kg, got %s", doc.TotalKg)
	}
	if len(doc.ByFeedType) != 2 {
		t.Fatalf("expected 2 feed rows, got %d", len(doc.ByFeedType))
	}
}

func TestServiceGenerateInventoryFlagsLowStock(t *testing.T) {
	feed := "feed"
	medicine := "medicine"
	stats := &stubStats{supplies: []models.Supply{
		{ID: 1, ItemName: "Dewormer", Category: &medicine, Quantity: decimal.NewFromInt(3), Unit: "bottle"},
		{ID: 2, ItemName: "Starter feed", Category: &feed, Quantity: decimal.NewFromInt(50), Unit: "kg"},
		{ID: 3, ItemName: "Vaccine", Category: &medicine, Quantity: decimal.NewFromInt(10), Unit: "vial"},
	}}
	svc := buildService(t, newStubRepo(), stats)

	dto, err := svc.Generate(context.Background(), 4, GenerateReportRequest{ReportType: enums.ReportTypeInventory})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	var doc inventoryReport
	if err := json.Unmarshal(dto.Data, &doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if len(doc.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(doc.Items))
	}
	// Default threshold 10 keeps quantities of 10 and below.
	if len(doc.LowStock) != 2 || doc.LowStock[0].ItemName != "Dewormer" || doc.LowStock[1].ItemName != "Vaccine" {
		t.Fatalf("unexpected low stock: %+v", doc.LowStock)
	}

	threshold := decimal.NewFromInt(5)
	dto, err = svc.Generate(context.Background(), 4, GenerateReportRequest{
		ReportType: enums.ReportTypeInventory,
		Filters:    &ReportFilters{LowStockThreshold: &threshold},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := json.Unmarshal(dto.Data, &doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if len(doc.LowStock) != 1 || doc.LowStock[0].ItemName != "Dewormer" {
		t.Fatalf("unexpected low stock at threshold 5: %+v", doc.LowStock)
	}
}

func TestServiceGenerateRejectsUnknownType(t *testing.T) {
	svc := buildService(t, newStubRepo(), &stubStats{})

	_, err := svc.Generate(context.Background(), 4, GenerateReportRequest{ReportType: enums.ReportType("weather")})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if typed.Message() != "Invalid report type" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestServiceGetMissingReport(t *testing.T) {
	svc := buildService(t, newStubRepo(), &stubStats{})

	_, err := svc.Get(context.Background(), 99)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

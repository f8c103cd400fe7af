package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/api/controllers"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/api/middleware"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/audit"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/auth"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/bookings"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/expenses"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/feedback"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/feedinglogs"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/healthrecords"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/inquiries"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/listings"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/litters"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/otp"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/pigs"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/receipts"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/reports"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/sales"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/sows"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/supplies"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/authz"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/config"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/logger"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/metrics"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
	authService auth.Service,
	otpService otp.Service,
	pigService pigs.Service,
	litterService litters.Service,
	feedingLogService feedinglogs.Service,
	sowService sows.Service,
	supplyService supplies.Service,
	expenseService expenses.Service,
	healthRecordService healthrecords.Service,
	listingService listings.Service,
	bookingService bookings.Service,
	receiptService receipts.Service,
	saleService sales.Service,
	feedbackService feedback.Service,
	inquiryService inquiries.Service,
	reportService reports.Service,
	auditService audit.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)
	otpPolicy := middleware.NewAuthRateLimitPolicy(
		"otp",
		cfg.AuthRateLimit.OTPWindow,
		cfg.AuthRateLimit.OTPIPLimit,
		cfg.AuthRateLimit.OTPEmailLimit,
	)

	r.Get("/health", controllers.Health(cfg, logg, dbP, redisClient))
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	// Storefront. No credentials, no internal ids.
	r.Route("/api/public", func(r chi.Router) {
		r.Get("/available-pigs", controllers.BrowseAvailablePigs(listingService, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.With(middleware.AuthRateLimit(otpPolicy, redisClient, logg)).Post("/otp/start", controllers.OTPStart(otpService, logg))
		r.With(middleware.AuthRateLimit(otpPolicy, redisClient, logg)).Post("/otp/verify", controllers.OTPVerify(otpService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register-client", controllers.RegisterClient(authService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register-admin", controllers.RegisterAdmin(authService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Get("/me", controllers.AuthMe(authService, logg))
			r.Put("/me", controllers.AuthUpdateMe(authService, logg))

			manage := middleware.RequireAccess(authz.ResourceAdminUsers, authz.ActionManage, logg)
			r.With(manage).Put("/users/{userID}", controllers.AdminUpdateUser(authService, logg))
			r.Route("/admin/users", func(r chi.Router) {
				r.Use(manage)
				r.Get("/", controllers.ListUsers(authService, logg))
				r.Post("/", controllers.AdminCreateStaff(authService, logg))
			})
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.With(middleware.RequireAccess(authz.ResourceAdminUsers, authz.ActionManage, logg)).
			Get("/admin/users/count", controllers.CountUsers(authService, logg))

		r.Route("/pigs", func(r chi.Router) {
			read := middleware.RequireAccess(authz.ResourcePigs, authz.ActionRead, logg)
			write := middleware.RequireAccess(authz.ResourcePigs, authz.ActionWrite, logg)
			r.With(read).Get("/", controllers.ListPigs(pigService, logg))
			r.With(read).Get("/{pigID}", controllers.GetPig(pigService, logg))
			r.With(read).Get("/{pigID}/meta", controllers.AuditMeta(auditService, enums.AuditEntityPig, "pigID", logg))
			r.With(write).Post("/", controllers.CreatePig(pigService, logg))
			r.With(write).Put("/{pigID}", controllers.UpdatePig(pigService, logg))
			r.With(write).Delete("/{pigID}", controllers.DeletePig(pigService, logg))
		})

		r.Route("/litters", func(r chi.Router) {
			read := middleware.RequireAccess(authz.ResourceLitters, authz.ActionRead, logg)
			write := middleware.RequireAccess(authz.ResourceLitters, authz.ActionWrite, logg)
			del := middleware.RequireAccess(authz.ResourceLitters, authz.ActionDelete, logg)
			r.With(read).Get("/", controllers.ListLitters(litterService, logg))
			r.With(read).Get("/{litterID}", controllers.GetLitter(litterService, logg))
			r.With(read).Get("/{litterID}/meta", controllers.AuditMeta(auditService, enums.AuditEntityLitter, "litterID", logg))
			r.With(read).Get("/{litterID}/feeding-logs", controllers.ListLitterFeedingLogs(feedingLogService, logg))
			r.With(write).Post("/", controllers.CreateLitter(litterService, logg))
			r.With(write).Put("/{litterID}", controllers.UpdateLitter(litterService, logg))
			r.With(del).Delete("/{litterID}", controllers.DeleteLitter(litterService, logg))
		})

		r.Route("/feeding-logs", func(r chi.Router) {
			read := middleware.RequireAccess(authz.ResourceFeedingLogs, authz.ActionRead, logg)
			write := middleware.RequireAccess(authz.ResourceFeedingLogs, authz.ActionWrite, logg)
			r.With(read).Get("/", controllers.ListFeedingLogs(feedingLogService, logg))
			r.With(read).Get("/{logID}", controllers.GetFeedingLog(feedingLogService, logg))
			r.With(read).Get("/{logID}/meta", controllers.AuditMeta(auditService, enums.AuditEntityFeedLog, "logID", logg))
			r.With(write).Post("/", controllers.CreateFeedingLog(feedingLogService, logg))
			r.With(write).Put("/{logID}", controllers.UpdateFeedingLog(feedingLogService, logg))
			r.With(write).Delete("/{logID}", controllers.DeleteFeedingLog(feedingLogService, logg))
		})

		r.Route("/sows", func(r chi.Router) {
			read := middleware.RequireAccess(authz.ResourceSows, authz.ActionRead, logg)
			write := middleware.RequireAccess(authz.ResourceSows, authz.ActionWrite, logg)
			r.With(read).Get("/", controllers.ListSows(sowService, logg))
			r.With(read).Get("/{sowID}", controllers.GetSow(sowService, logg))
			r.With(read).Get("/{sowID}/meta", controllers.AuditMeta(auditService, enums.AuditEntitySow, "sowID", logg))
			r.With(write).Post("/", controllers.CreateSow(sowService, logg))
			r.With(write).Put("/{sowID}", controllers.UpdateSow(sowService, logg))
			r.With(write).Delete("/{sowID}", controllers.DeleteSow(sowService, logg))
		})

		r.Route("/supplies", func(r chi.Router) {
			read := middleware.RequireAccess(authz.ResourceSupplies, authz.ActionRead, logg)
			write := middleware.RequireAccess(authz.ResourceSupplies, authz.ActionWrite, logg)
			r.With(read).Get("/", controllers.ListSupplies(supplyService, logg))
			r.With(read).Get("/{supplyID}", controllers.GetSupply(supplyService, logg))
			r.With(read).Get("/{supplyID}/meta", controllers.AuditMeta(auditService, enums.AuditEntitySupply, "supplyID", logg))
			r.With(write).Post("/", controllers.CreateSupply(supplyService, logg))
			r.With(write).Put("/{supplyID}", controllers.UpdateSupply(supplyService, logg))
			r.With(write).Patch("/{supplyID}/adjust-qty", controllers.AdjustSupplyQuantity(supplyService, logg))
			r.With(write).Delete("/{supplyID}", controllers.DeleteSupply(supplyService, logg))
		})

		r.Route("/expenses", func(r chi.Router) {
			read := middleware.RequireAccess(authz.ResourceExpenses, authz.ActionRead, logg)
			write := middleware.RequireAccess(authz.ResourceExpenses, authz.ActionWrite, logg)
			r.With(read).Get("/", controllers.ListExpenses(expenseService, logg))
			r.With(read).Get("/{expenseID}", controllers.GetExpense(expenseService, logg))
			r.With(read).Get("/{expenseID}/meta", controllers.AuditMeta(auditService, enums.AuditEntityExpense, "expenseID", logg))
			r.With(write).Post("/", controllers.CreateExpense(expenseService, logg))
			r.With(write).Put("/{expenseID}", controllers.UpdateExpense(expenseService, logg))
			r.With(write).Delete("/{expenseID}", controllers.DeleteExpense(expenseService, logg))
		})

		r.Route("/pig-health", func(r chi.Router) {
			read := middleware.RequireAccess(authz.ResourceHealthRecords, authz.ActionRead, logg)
			write := middleware.RequireAccess(authz.ResourceHealthRecords, authz.ActionWrite, logg)
			r.With(read).Get("/", controllers.ListHealthRecords(healthRecordService, logg))
			r.With(read).Get("/{recordID}", controllers.GetHealthRecord(healthRecordService, logg))
			r.With(read).Get("/{recordID}/meta", controllers.AuditMeta(auditService, enums.AuditEntityHealth, "recordID", logg))
			r.With(write).Post("/", controllers.CreateHealthRecord(healthRecordService, logg))
			r.With(write).Put("/{recordID}", controllers.UpdateHealthRecord(healthRecordService, logg))
			r.With(write).Delete("/{recordID}", controllers.DeleteHealthRecord(healthRecordService, logg))
		})

		r.Route("/available-pigs", func(r chi.Router) {
			read := middleware.RequireAccess(authz.ResourceListings, authz.ActionRead, logg)
			write := middleware.RequireAccess(authz.ResourceListings, authz.ActionWrite, logg)
			r.With(read).Get("/", controllers.ListListings(listingService, logg))
			r.With(read).Get("/{listingID}", controllers.GetListing(listingService, logg))
			r.With(write).Post("/", controllers.CreateListing(listingService, logg))
			r.With(write).Put("/{listingID}", controllers.UpdateListing(listingService, logg))
			r.With(write).Delete("/{listingID}", controllers.DeleteListing(listingService, logg))
		})

		// Bookings mix client and staff traffic; services scope by role.
		r.Route("/bookings", func(r chi.Router) {
			create := middleware.RequireAccess(authz.ResourceBookings, authz.ActionCreate, logg)
			decide := middleware.RequireAccess(authz.ResourceBookings, authz.ActionDecide, logg)
			r.With(create).Post("/", controllers.CreateBooking(bookingService, logg))
			r.Get("/", controllers.ListBookings(bookingService, logg))
			r.Get("/{bookingID}", controllers.GetBooking(bookingService, logg))
			r.Put("/{bookingID}", controllers.UpdateBooking(bookingService, logg))
			r.With(decide).Patch("/{bookingID}/decision", controllers.DecideBooking(bookingService, logg))
		})

		r.Route("/receipts", func(r chi.Router) {
			r.Get("/", controllers.ListReceipts(receiptService, logg))
			r.Get("/{receiptID}", controllers.GetReceipt(receiptService, logg))
		})

		r.Route("/sales", func(r chi.Router) {
			read := middleware.RequireAccess(authz.ResourceSales, authz.ActionRead, logg)
			write := middleware.RequireAccess(authz.ResourceSales, authz.ActionWrite, logg)
			r.With(read).Get("/", controllers.ListSales(saleService, logg))
			r.With(read).Get("/{saleID}", controllers.GetSale(saleService, logg))
			r.With(read).Get("/{saleID}/meta", controllers.AuditMeta(auditService, enums.AuditEntitySale, "saleID", logg))
			r.With(write).Post("/", controllers.CreateSale(saleService, logg))
			r.With(write).Put("/{saleID}", controllers.UpdateSale(saleService, logg))
			r.With(write).Delete("/{saleID}", controllers.DeleteSale(saleService, logg))
		})

		r.Route("/feedback", func(r chi.Router) {
			create := middleware.RequireAccess(authz.ResourceFeedback, authz.ActionCreate, logg)
			listAll := middleware.RequireAccess(authz.ResourceFeedback, authz.ActionListAll, logg)
			del := middleware.RequireAccess(authz.ResourceFeedback, authz.ActionDelete, logg)
			r.With(create).Post("/", controllers.CreateFeedback(feedbackService, logg))
			r.With(listAll).Get("/", controllers.ListFeedback(feedbackService, logg))
			r.Get("/mine", controllers.ListMyFeedback(feedbackService, logg))
			r.Get("/{feedbackID}", controllers.GetFeedback(feedbackService, logg))
			r.With(del).Delete("/{feedbackID}", controllers.DeleteFeedback(feedbackService, logg))
		})

		r.Route("/inquiries", func(r chi.Router) {
			create := middleware.RequireAccess(authz.ResourceInquiries, authz.ActionCreate, logg)
			respond := middleware.RequireAccess(authz.ResourceInquiries, authz.ActionRespond, logg)
			r.With(create).Post("/", controllers.CreateInquiry(inquiryService, logg))
			r.Get("/", controllers.ListInquiries(inquiryService, logg))
			r.Get("/{inquiryID}", controllers.GetInquiry(inquiryService, logg))
			r.With(respond).Patch("/{inquiryID}/respond", controllers.RespondInquiry(inquiryService, logg))
		})

		r.Route("/reports", func(r chi.Router) {
			read := middleware.RequireAccess(authz.ResourceReports, authz.ActionRead, logg)
			write := middleware.RequireAccess(authz.ResourceReports, authz.ActionWrite, logg)
			r.With(read).Get("/", controllers.ListReports(reportService, logg))
			r.With(read).Get("/{reportID}", controllers.GetReport(reportService, logg))
			r.With(write).Post("/generate", controllers.GenerateReport(reportService, logg))
		})
	})

	return r
}

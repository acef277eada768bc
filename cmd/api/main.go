package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "cupo-backend/internal/adapter/http"
	"cupo-backend/internal/adapter/middleware"
	"cupo-backend/internal/adapter/repository/mysql"
	"cupo-backend/internal/config"
	"cupo-backend/internal/infrastructure/cache"
	"cupo-backend/internal/infrastructure/db"
	creditUC "cupo-backend/internal/usecase/credit"
	loanUC "cupo-backend/internal/usecase/loan"
	paymentUC "cupo-backend/internal/usecase/payment"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	loanRepo := mysql.NewLoanRepository(gdb)
	instRepo := mysql.NewInstallmentRepository(gdb)
	payRepo := mysql.NewPaymentRepository(gdb)
	profileRepo := mysql.NewCreditProfileRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	elig := creditUC.NewEligibilityAdapter(profileRepo)
	loans := loanUC.NewUsecase(loanRepo, instRepo, elig, tx)
	payments := paymentUC.NewUsecase(loanRepo, instRepo, payRepo, tx)
	credits := creditUC.NewUsecase(profileRepo, tx)

	h := httpadp.NewHandler()
	lh := httpadp.NewLoanHandler(loans)
	ph := httpadp.NewPaymentHandler(payments)
	ch := httpadp.NewCreditHandler(credits)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	e.GET("/health", h.Health)

	// borrower
	e.POST("/loans/apply", lh.Apply)
	e.GET("/loans/active", lh.GetActive)
	e.GET("/loans/:loan_id", lh.Get)
	e.POST("/loans/:loan_id/disbursement-account", lh.UpsertDisbursementAccount)
	e.POST("/loans/:loan_id/payments", ph.Submit)

	// back office
	e.PATCH("/admin/loans/:loan_id/approve", lh.Approve)
	e.PATCH("/admin/loans/:loan_id/reject", lh.Reject)
	e.PATCH("/admin/loans/:loan_id/disburse", lh.Disburse)
	e.PATCH("/admin/loans/:loan_id/verify-disbursement-account", lh.VerifyDisbursementAccount)
	e.PATCH("/admin/payments/:payment_id/review", ph.Review)
	e.GET("/admin/credit/profiles/:user_id", ch.Get)
	e.PATCH("/admin/credit/profiles/:user_id", ch.Update)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"peerlend-backend/internal/adapter/events"
	httpadp "peerlend-backend/internal/adapter/http"
	appmw "peerlend-backend/internal/adapter/middleware"
	"peerlend-backend/internal/adapter/repository/mysql"
	transferadp "peerlend-backend/internal/adapter/transfer"
	"peerlend-backend/internal/config"
	"peerlend-backend/internal/domain/params"
	"peerlend-backend/internal/infrastructure/cache"
	"peerlend-backend/internal/infrastructure/db"
	"peerlend-backend/internal/infrastructure/metrics"
	adminuc "peerlend-backend/internal/usecase/admin"
	loanuc "peerlend-backend/internal/usecase/loan"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := mysql.Migrate(gdb); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	defaults := params.Params{
		PlatformFeeBps: cfg.DefaultPlatformFeeBps,
		GracePeriod:    cfg.DefaultGracePeriod,
	}
	paramsStore, err := mysql.NewParamsStore(gdb, defaults)
	if err != nil {
		log.Fatal(err)
	}
	loanRepo := mysql.NewLoanRepository(gdb)
	// Ledger movements enroll in the unit-of-work transaction, so a failed
	// transfer rolls the whole lifecycle call back.
	uow := mysql.NewGormUoW(gdb, defaults, transferadp.TxAdapter)

	if err := transferadp.NewLedger(gdb).Migrate(); err != nil {
		log.Fatal(err)
	}

	emitter := events.NewRedisEmitter(rdb)

	loanUC := loanuc.NewUsecase(loanRepo, uow, emitter, nil, cfg.TreasuryID)
	adminUC := adminuc.NewUsecase(paramsStore, func(caller string) bool {
		return caller == cfg.AdminID
	})

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	h := httpadp.NewHandler()
	loanH := httpadp.NewLoanHandler(loanUC)
	adminH := httpadp.NewAdminHandler(adminUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover(), appmw.ObserveOps(m))

	idemp := appmw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	e.POST("/loans", loanH.RequestLoan, idemp)
	e.GET("/loans/:loan_id", loanH.GetLoan)
	e.POST("/loans/:loan_id/fund", loanH.FundLoan, idemp)
	e.POST("/loans/:loan_id/repay", loanH.RepayLoan, idemp)
	e.POST("/loans/:loan_id/liquidate", loanH.LiquidateLoan, idemp)

	e.PUT("/admin/platform-fee", adminH.SetPlatformFee)
	e.PUT("/admin/grace-period", adminH.SetGracePeriod)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

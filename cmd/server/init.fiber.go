package main

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"

	basehdl "github.com/nadiag01/apre/internal/api/base/handler"
	basesvc "github.com/nadiag01/apre/internal/api/base/service"
	"github.com/nadiag01/apre/internal/api/middleware"
	reporthdl "github.com/nadiag01/apre/internal/api/report/handler"
	reportrouter "github.com/nadiag01/apre/internal/api/report/router"
	reportsvc "github.com/nadiag01/apre/internal/api/report/service"
	apirouter "github.com/nadiag01/apre/internal/api/router"
	userhdl "github.com/nadiag01/apre/internal/api/user/handler"
	usermodels "github.com/nadiag01/apre/internal/api/user/models"
	userrouter "github.com/nadiag01/apre/internal/api/user/router"
	usersvc "github.com/nadiag01/apre/internal/api/user/service"
	"github.com/nadiag01/apre/internal/common"
	"github.com/nadiag01/apre/internal/database"
	"github.com/nadiag01/apre/internal/global"
	"github.com/nadiag01/apre/internal/logger"
	"github.com/nadiag01/apre/internal/metrics"
)

// InitFiberApp khởi tạo ứng dụng Fiber với các middleware cần thiết
func InitFiberApp() *fiber.App {
	cfg := global.MongoDB_ServerConfig

	app := fiber.New(fiber.Config{
		AppName:       "APRE API",
		ServerHeader:  "APRE API",
		StrictRouting: true,
		CaseSensitive: true,
		UnescapePath:  true,

		BodyLimit:       1 * 1024 * 1024,
		Concurrency:     256 * 1024,
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,

		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,

		ErrorHandler: errorHandler,
	})

	// 1. Request ID, dùng header client gửi lên nếu có
	app.Use(requestid.New(requestid.Config{
		Header:    logger.HeaderRequestID,
		Generator: uuid.NewString,
	}))

	// 2. Gắn request id vào context và log thời gian xử lý
	app.Use(middleware.RequestContextMiddleware())

	// 3. CORS, đặt trước các middleware khác để xử lý preflight
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", logger.HeaderRequestID, "X-Requested-With"},
		AllowCredentials: cfg.CORS_AllowCredentials,
		ExposeHeaders:    []string{"Content-Length", logger.HeaderRequestID},
		MaxAge:           24 * 60 * 60,
	}))

	// 4. Security headers
	app.Use(func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		if cfg.EnableTLS {
			c.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		return c.Next()
	})

	// 5. Rate limit theo IP
	log := logger.GetAppLogger()
	if cfg.RateLimit_Enabled && cfg.RateLimit_Max > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit_Max,
			Expiration: time.Duration(cfg.RateLimit_Window) * time.Second,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c fiber.Ctx) error {
				return middleware.JSONResponse(c, fiber.StatusTooManyRequests, fiber.Map{
					"code":    common.ErrCodeBusinessOperation.Code,
					"message": "Quá nhiều yêu cầu, vui lòng thử lại sau",
					"status":  "error",
				})
			},
			Next: func(c fiber.Ctx) bool {
				return isSystemPath(c.Path()) || c.Method() == fiber.MethodOptions
			},
		}))
		log.Infof("Rate limiting enabled: %d requests per %d seconds", cfg.RateLimit_Max, cfg.RateLimit_Window)
	} else {
		log.Info("Rate limiting disabled")
	}

	// 6. Recover, trả body lỗi thống nhất
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.WithRequest(c).WithField("panic", e).Error("Panic recovered")
		},
	}))

	setupRoutes(app)
	return app
}

// errorHandler xử lý lỗi chưa được handler trả về (route không tồn tại, body quá lớn...)
func errorHandler(c fiber.Ctx, err error) error {
	// HTTPS gọi vào server HTTP: fasthttp báo lỗi method với byte đầu của TLS handshake
	errMsg := err.Error()
	if strings.Contains(errMsg, "unsupported http request method") &&
		(strings.Contains(errMsg, "\\x16\\x03\\x01") || strings.Contains(errMsg, "\x16\x03\x01")) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    common.ErrCodeValidationInput.Code,
			"message": "Server chỉ hỗ trợ HTTP. Vui lòng sử dụng http:// thay vì https://",
			"status":  "error",
		})
	}

	status, body := middleware.ErrorBody(err)
	if status >= fiber.StatusInternalServerError {
		logger.WithRequest(c).WithError(err).WithField("code", body["code"]).Error("Request error")
	}
	return middleware.JSONResponse(c, status, body)
}

func isSystemPath(path string) bool {
	return path == "/health" || path == "/metrics"
}

// setupRoutes đăng ký route hệ thống và các route API v1
func setupRoutes(app *fiber.App) {
	cfg := global.MongoDB_ServerConfig
	client := global.MongoDB_Session

	system := basehdl.NewSystemHandler(func(ctx context.Context) error {
		return database.Ping(ctx, client)
	})
	app.Get("/health", system.HandleHealth)

	reg := metrics.NewRegistry()
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler(reg)))

	loc, err := cfg.ReportLocation()
	if err != nil {
		logger.GetAppLogger().Fatalf("Invalid report timezone: %v", err)
	}

	db := client.Database(cfg.MongoDB_DBName)
	dispatcher, err := reportsvc.NewDispatcher(reportsvc.DispatcherConfig{
		Store: reportsvc.NewMongoStore(db),
		Collections: reportsvc.Collections{
			Sales:            global.MongoDB_ColNames.Sales,
			AgentPerformance: global.MongoDB_ColNames.AgentPerformance,
		},
		Timeout:      cfg.QueryTimeout(),
		Location:     loc,
		Selectors:    cfg.SalesDataSelectors(),
		SortDistinct: cfg.Report_SortDistinct,
		Validator:    global.Validate,
		Metrics:      metrics.NewReportMetrics(reg),
	})
	if err != nil {
		logger.GetAppLogger().Fatalf("Failed to initialize report dispatcher: %v", err)
	}

	users := usersvc.NewUserService(
		basesvc.NewBaseServiceMongo[usermodels.User](mustCollection(global.MongoDB_ColNames.Users)),
		cfg.User_BcryptCost,
	)

	prefix := apirouter.NewRoutePrefix()
	v1 := app.Group(prefix.V1)
	v1.Get("/system/health", system.HandleHealth)
	reportrouter.Register(v1, reporthdl.NewReportHandler(dispatcher))
	userrouter.Register(v1, userhdl.NewUserHandler(users, global.Validate))
}

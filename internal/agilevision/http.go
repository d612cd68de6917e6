// Содержит реализацию HTTP-сервера Agile Vision на базе фреймворка echo.
// Регистрирует маршруты регистрации и входа, CRUD спринтов, операции над
// задачами спринта и отправку личных сообщений.
//
// Основные возможности:
//   - Глобальные middleware: CORS, ограничение тела запроса, gzip, метрики.
//   - Загрузка спринта по идентификатору в контекст запроса.
//   - Единый обработчик необработанных ошибок.
//   - Плавная остановка сервера и почтовых воркеров по сигналу.
package agilevision

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agile-vision/agilevision/internal/agilevision/config"
	"github.com/agile-vision/agilevision/internal/agilevision/dao"
	"github.com/agile-vision/agilevision/internal/agilevision/notifications"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type Services struct {
	db           *gorm.DB
	emailService notifications.Mailer
}

var cfg *config.Config
var appVersion string

// ServerHeader middleware adds a `Server` header to the response.
func ServerHeader(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderServer, "AgileVision")
		return next(c)
	}
}

// newRouter собирает echo-приложение с маршрутами и общими middleware.
// Метрики не подключаются, чтобы приложение можно было собирать в тестах.
func newRouter(db *gorm.DB, c *config.Config, mailer notifications.Mailer) *echo.Echo {
	cfg = c

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
		}

		// Ignore 404
		if code == http.StatusNotFound {
			c.NoContent(http.StatusNotFound)
			return
		}
		slog.Error("Unhandled error in endpoint", "url", c.Request().URL, "err", err)
		EErrorMsgStatus(c, nil, code)
	}

	// Global middlewares
	e.Use(ServerHeader)
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowCredentials: true,
	}))
	e.Use(middleware.BodyLimit("1M"))
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level:     9,
		MinLength: 2048,
	}))
	e.Pre(middleware.AddTrailingSlash())

	e.Validator = NewRequestValidator()

	s := &Services{
		db:           db,
		emailService: mailer,
	}

	apiGroup := e.Group("/api/")

	apiGroup.POST("auth/register/", s.register)
	apiGroup.POST("auth/login/", s.login)

	apiGroup.GET("sprints/", s.getSprintList)
	apiGroup.POST("sprints/", s.createSprint)

	sprintGroup := apiGroup.Group("sprints/:sprintId", s.SprintMiddleware)
	sprintGroup.PUT("/", s.updateSprint)
	sprintGroup.DELETE("/", s.deleteSprint)
	sprintGroup.POST("/tasks/", s.addTask)
	sprintGroup.PUT("/tasks/:taskId/", s.updateTask)
	sprintGroup.DELETE("/tasks/:taskId/", s.deleteTask)

	apiGroup.POST("messages/send/", s.sendMessage)

	// Test endpoint
	apiGroup.GET("test/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "API is working!",
		})
	})

	// Version endpoint
	apiGroup.GET("version/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"version": appVersion,
		})
	})

	// Health endpoint
	apiGroup.GET("_health/", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	return e
}

func Server(db *gorm.DB, c *config.Config, version string) {
	appVersion = version

	es := notifications.NewEmailService(c)

	e := newRouter(db, c, es)
	e.Use(echoprometheus.NewMiddleware("agilevision"))

	// Prometheus metrics
	go func() {
		bootTimeGauge := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "agilevision",
			Name:      "boot_time",
			Help:      "Server startup time",
		})
		bootTimeGauge.Set(float64(time.Now().UnixMilli()))

		if err := prometheus.Register(bootTimeGauge); err != nil {
			slog.Error("Register boot time gauge", "err", err)
			os.Exit(1)
		}

		metrics := echo.New()
		metrics.HideBanner = true
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(":2112"); err != nil && err != http.ErrServerClosed {
			slog.Error("Metrics server fail", "err", err)
		}
	}()

	sendPasswordDefaultAdmin(db, c, es)

	// Create a channel to handle termination signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(fmt.Sprintf(":%d", c.Port)); err != nil && err != http.ErrServerClosed {
			slog.Error("Server fail", "err", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully, press Ctrl+C again to force")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown", "err", err)
	}

	es.Stop()
}

// Создание пользователя по умолчанию при первом запуске и отправка ему
// сгенерированного пароля на почту.
func sendPasswordDefaultAdmin(tx *gorm.DB, c *config.Config, es *notifications.EmailService) {
	if c.DefaultUserEmail == "" {
		return
	}

	var count int64
	if err := tx.Model(&dao.User{}).Count(&count).Error; err != nil {
		slog.Error("Count users", "err", err)
		return
	}
	if count > 0 {
		return
	}

	pass, err := dao.AddDefaultUser(tx, c.DefaultUserEmail)
	if err != nil {
		slog.Error("Create default user", "err", err)
		return
	}

	user, err := dao.GetUserByEmail(tx, c.DefaultUserEmail)
	if err != nil {
		return
	}

	if err := es.NewUserPasswordNotify(*user, pass); err != nil {
		slog.Error("Send default user password", "err", err)
	}
}

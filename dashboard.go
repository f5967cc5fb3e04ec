package mqstub

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
)

func newDashboardServer(b *Broker) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1 << 10, // 1 KB
		LogLevel:  log.ERROR,
	}))
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "SAMEORIGIN",
		ContentSecurityPolicy: "default-src 'self' 'unsafe-inline'",
	}))

	initDashboardRoutes(e, b)

	return e
}

func startDashboardServer(b *Broker) {
	b.mutex.Lock()
	server := b.dashboard
	b.mutex.Unlock()
	if server == nil {
		return
	}

	b.Logger.Info("dashboard listening", zap.String("address", b.config.Dashboard.Listen))
	if err := server.Start(b.config.Dashboard.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		b.Logger.Error("dashboard web server error", zap.Error(err))
	}
}

func stopDashboardServer(server *echo.Echo) {
	if server != nil {
		_ = server.Shutdown(context.Background())
	}
}

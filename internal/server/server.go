package server

import (
	"net/http"
	"time"

	"repairshop/internal/config"
	"repairshop/internal/handler"
	"repairshop/internal/validator"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Handlers はルート登録に必要なハンドラ一式
type Handlers struct {
	Auth       *handler.AuthHandler
	Part       *handler.PartHandler
	Accessory  *handler.AccessoryHandler
	Sale       *handler.SaleHandler
	Repair     *handler.RepairHandler
	Bill       *handler.BillHandler
	Customer   *handler.CustomerHandler
	StorageBox *handler.StorageBoxHandler
	Setting    *handler.SettingHandler
}

// New はecho本体を組み立てる。起動はしない（テストで使い回すため）。
func New(cfg config.Config, log *zap.Logger, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()

	e.Use(echomw.Recover())
	e.Use(requestLog(log))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	h.Auth.RegisterRoutes(e)
	h.Part.RegisterRoutes(e, cfg)
	h.Accessory.RegisterRoutes(e, cfg)
	h.Sale.RegisterRoutes(e, cfg)
	h.Repair.RegisterRoutes(e, cfg)
	h.Bill.RegisterRoutes(e, cfg)
	h.Customer.RegisterRoutes(e, cfg)
	h.StorageBox.RegisterRoutes(e, cfg)
	h.Setting.RegisterRoutes(e, cfg)

	return e
}

func Start(e *echo.Echo, cfg config.Config) error {
	addr := cfg.Port
	if addr != "" && addr[0] != ':' {
		addr = ":" + addr
	}
	return e.Start(addr)
}

// アクセスログ（zap）
func requestLog(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			log.Info("request",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
			)
			return nil
		}
	}
}

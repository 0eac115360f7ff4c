package handler

import (
	"net/http"

	"repairshop/internal/config"
	"repairshop/internal/middleware"
	"repairshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /settings 既定税率などのキーバリュー設定。書き込みは管理者のみ。
type SettingHandler struct {
	uc *usecase.SettingUsecase
}

func NewSettingHandler(uc *usecase.SettingUsecase) *SettingHandler {
	return &SettingHandler{uc: uc}
}

func (h *SettingHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/settings")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("/:key", h.get)

	admin := g.Group("")
	admin.Use(middleware.AdminRoleGuard())
	admin.PUT("/:key", h.put)
}

func (h *SettingHandler) get(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context(), c.Param("key"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type SettingPutRequest struct {
	Value string `json:"value" validate:"required"`
}

func (h *SettingHandler) put(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req SettingPutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.Put(c.Request().Context(), userID, c.Param("key"), req.Value); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

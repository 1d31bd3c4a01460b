package handler

import (
	"net/http"

	"shop/internal/config"
	"shop/internal/middleware"
	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// 管理者用の商品CRUD
type AdminItemHandler struct {
	uc *usecase.CatalogUsecase
}

// DI
func NewAdminItemHandler(uc *usecase.CatalogUsecase) *AdminItemHandler {
	return &AdminItemHandler{uc: uc}
}

type AdminItemRequest struct {
	Title       string          `json:"title"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Discount    int             `json:"discount"`
	Slug        string          `json:"slug"`
}

type AdminItemCreateResponse struct {
	ID string `json:"id"`
}

func (h *AdminItemHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/items")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.POST("", h.create)
	g.PUT("/:id", h.update)
}

func (h *AdminItemHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req AdminItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	id, err := h.uc.AdminCreateItem(c.Request().Context(), userID, toSaveItemInput(req))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, AdminItemCreateResponse{ID: id})
}

func (h *AdminItemHandler) update(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req AdminItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.AdminUpdateItem(c.Request().Context(), userID, c.Param("id"), toSaveItemInput(req)); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func toSaveItemInput(req AdminItemRequest) usecase.AdminSaveItemInput {
	return usecase.AdminSaveItemInput{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		Discount:    req.Discount,
		Slug:        req.Slug,
	}
}

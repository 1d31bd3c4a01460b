package handler

import (
	"net/http"
	"strconv"

	"shop/internal/middleware"
	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func getUserIDFromContext(c echo.Context) (string, bool) {
	raw := c.Get(middleware.CtxUserIDKey)
	userID, ok := raw.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// /items の公開API
type ItemHandler struct {
	uc *usecase.CatalogUsecase
}

// DI
func NewItemHandler(uc *usecase.CatalogUsecase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// 公開商品のルートを登録
func (h *ItemHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/items", h.list)
	e.GET("/items/:slug", h.detail)
}

func (h *ItemHandler) list(c echo.Context) error {
	// page（default 1）
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	out, err := h.uc.ListItems(c.Request().Context(), usecase.ListItemsInput{
		Category: c.QueryParam("category"),
		Sort:     c.QueryParam("sort"),
		Page:     page,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ItemHandler) detail(c echo.Context) error {
	item, err := h.uc.GetItemBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, item)
}

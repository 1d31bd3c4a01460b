package handler

import (
	"net/http"

	"shop/internal/config"
	"shop/internal/middleware"
	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ReviewHandler struct {
	uc *usecase.ReviewUsecase
}

// DI
func NewReviewHandler(uc *usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

type SubmitReviewRequest struct {
	Message string `json:"message"`
	Rating  *int   `json:"rating"`
}

// 一覧は公開、投稿はログイン必須
func (h *ReviewHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/items/:slug/reviews", h.list)
	e.POST("/items/:slug/reviews", h.submit, middleware.AuthJWT(cfg))
}

func (h *ReviewHandler) submit(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req SubmitReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.SubmitReview(c.Request().Context(), userID, c.Param("slug"), usecase.SubmitReviewInput{
		Message: req.Message,
		Rating:  req.Rating,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *ReviewHandler) list(c echo.Context) error {
	out, err := h.uc.ListReviews(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

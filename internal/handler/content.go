package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"paylock/internal/dto"
	"paylock/internal/service"
)

type ContentHandler struct {
	contentService service.ContentService
}

func NewContentHandler(contentService service.ContentService) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
	}
}

func (h *ContentHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateContentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	content, err := h.contentService.Create(ctx, service.ContentParams{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		MediaBase64: req.MediaBase64,
		MimeType:    req.MimeType,
		CreatorID:   req.CreatorID,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, content)
}

func (h *ContentHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	content, err := h.contentService.Get(ctx, c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, content)
}

func (h *ContentHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.contentService.List(ctx)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ContentHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.contentService.Delete(ctx, c.Param("id")); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

package handler

import (
	"net/http"

	"vaultguard/api/middleware"
	"vaultguard/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type DocumentHandler struct {
	Service *service.DocumentService
	Log     *logrus.Logger
	Dev     bool
}

func NewDocumentHandler(svc *service.DocumentService, log *logrus.Logger) *DocumentHandler {
	return &DocumentHandler{Service: svc, Log: log}
}

func (h *DocumentHandler) Upload(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized", nil)
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, http.StatusBadRequest, "No file uploaded", nil)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return writeServiceError(c, h.Log, h.Dev, err)
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	doc, err := h.Service.Upload(c.Request().Context(), userID, service.UploadInput{
		Name:        fileHeader.Filename,
		ContentType: contentType,
		Size:        fileHeader.Size,
		Body:        file,
		UserAgent:   c.Request().UserAgent(),
		IPAddress:   stringPtr(c.RealIP()),
	})
	if err != nil {
		return writeServiceError(c, h.Log, h.Dev, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message":  "Document uploaded successfully",
		"document": doc,
	})
}

func (h *DocumentHandler) List(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized", nil)
	}
	docs, err := h.Service.List(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, h.Log, h.Dev, err)
	}
	return c.JSON(http.StatusOK, docs)
}

func (h *DocumentHandler) Search(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized", nil)
	}
	docs, err := h.Service.Search(c.Request().Context(), userID, c.QueryParam("query"))
	if err != nil {
		return writeServiceError(c, h.Log, h.Dev, err)
	}
	return c.JSON(http.StatusOK, docs)
}

// Download redirects to a presigned object-store URL instead of proxying the
// blob through the API.
func (h *DocumentHandler) Download(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized", nil)
	}
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid document id", nil)
	}
	url, err := h.Service.DownloadURL(c.Request().Context(), userID, docID, h.requestMeta(c))
	if err != nil {
		return writeServiceError(c, h.Log, h.Dev, err)
	}
	return c.Redirect(http.StatusFound, url)
}

func (h *DocumentHandler) Rename(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized", nil)
	}
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid document id", nil)
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body", nil)
	}
	doc, err := h.Service.Rename(c.Request().Context(), userID, docID, req.Name, h.requestMeta(c))
	if err != nil {
		return writeServiceError(c, h.Log, h.Dev, err)
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *DocumentHandler) Delete(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized", nil)
	}
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid document id", nil)
	}
	if err := h.Service.Delete(c.Request().Context(), userID, docID, h.requestMeta(c)); err != nil {
		return writeServiceError(c, h.Log, h.Dev, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Document deleted successfully"})
}

func (h *DocumentHandler) requestMeta(c echo.Context) service.RequestMeta {
	return service.RequestMeta{
		UserAgent: c.Request().UserAgent(),
		IPAddress: stringPtr(c.RealIP()),
	}
}

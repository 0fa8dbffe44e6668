package handlers

import (
	"context"
	"log"
	"net/http"

	"tentamenbank-api/middleware"
	"tentamenbank-api/models"
	"tentamenbank-api/services"

	"github.com/gin-gonic/gin"
)

// PresignService issues download links for archive objects
type PresignService interface {
	ObjectExists(ctx context.Context, objectPath string) (bool, error)
	GetPresignedURL(ctx context.Context, objectPath string) (*models.PresignedURLResponse, error)
}

type TentamenbankHandler struct {
	catalog *services.TentamenbankService
	files   PresignService
}

func NewTentamenbankHandler(catalog *services.TentamenbankService, files PresignService) *TentamenbankHandler {
	return &TentamenbankHandler{
		catalog: catalog,
		files:   files,
	}
}

// GetOverview returns every subject plus the viewer's enrolled subset
func (h *TentamenbankHandler) GetOverview(c *gin.Context) {
	log.Println("TentamenbankHandler - GetOverview")

	overview, err := h.catalog.Overview(c.Request.Context(), middleware.StudentID(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "failed to list exams",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": overview,
	})
}

// GetSubjectExams returns the exams of one subject, newest first
func (h *TentamenbankHandler) GetSubjectExams(c *gin.Context) {
	study := c.Param("study")
	subject := c.Param("subject")

	if study == "" || subject == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "study and subject parameters are required",
		})
		return
	}

	exams, err := h.catalog.SubjectExams(c.Request.Context(), study, subject)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "failed to list exams",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    exams,
		"study":   study,
		"subject": subject,
	})
}

// GetDownloadURL returns a presigned URL for an exam file
func (h *TentamenbankHandler) GetDownloadURL(c *gin.Context) {
	key := c.Query("key")
	if err := h.catalog.ValidateKey(key); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid key",
			Message: err.Error(),
		})
		return
	}

	exists, err := h.files.ObjectExists(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to check file existence",
			Message: err.Error(),
		})
		return
	}

	if !exists {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: "file not found",
		})
		return
	}

	urlResponse, err := h.files.GetPresignedURL(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to generate download url",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, urlResponse)
}

// InvalidateCache drops cached listings and enrolments
func (h *TentamenbankHandler) InvalidateCache(c *gin.Context) {
	h.catalog.InvalidateCache()
	c.JSON(http.StatusOK, gin.H{
		"message": "cache invalidated successfully",
	})
}

package handlers

import (
	"bytes"
	"fmt"
	"log"
	"net/http"

	"tentamenbank-api/models"
	"tentamenbank-api/services"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// MappingHandler serves the admin course mapping tool
type MappingHandler struct {
	catalog     *services.TentamenbankService
	spreadsheet *services.SpreadsheetService
}

func NewMappingHandler(catalog *services.TentamenbankService, spreadsheet *services.SpreadsheetService) *MappingHandler {
	return &MappingHandler{
		catalog:     catalog,
		spreadsheet: spreadsheet,
	}
}

// SaveMappingRequest carries every row of the admin table keyed by folder name.
// Rows left out are dropped from the stored document.
type SaveMappingRequest struct {
	Rows map[string]models.MappingEntry `json:"rows" binding:"required"`
}

// GetMapping lists candidate folders with their stored overrides
func (h *MappingHandler) GetMapping(c *gin.Context) {
	log.Println("MappingHandler - GetMapping")

	rows, err := h.catalog.MappingRows(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "failed to list exam folders",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": rows,
	})
}

// SaveMapping overwrites the stored mapping with the submitted rows
func (h *MappingHandler) SaveMapping(c *gin.Context) {
	log.Println("MappingHandler - SaveMapping")

	var req SaveMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	h.save(c, req.Rows)
}

// ExportMapping downloads the admin table as a spreadsheet
func (h *MappingHandler) ExportMapping(c *gin.Context) {
	rows, err := h.catalog.MappingRows(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "failed to list exam folders",
			Message: err.Error(),
		})
		return
	}

	var buf bytes.Buffer
	if err := h.spreadsheet.ExportMapping(&buf, rows); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to build spreadsheet",
			Message: err.Error(),
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="course_mapping.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ImportMapping replaces the mapping with the rows of an uploaded spreadsheet
func (h *MappingHandler) ImportMapping(c *gin.Context) {
	log.Println("MappingHandler - ImportMapping")

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "file is required",
			Message: err.Error(),
		})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to open upload",
			Message: err.Error(),
		})
		return
	}
	defer file.Close()

	rows, err := h.spreadsheet.ImportMapping(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid spreadsheet",
			Message: err.Error(),
		})
		return
	}

	h.save(c, rows)
}

func (h *MappingHandler) save(c *gin.Context, rows map[string]models.MappingEntry) {
	mapping, err := h.catalog.SaveMapping(c.Request.Context(), rows)
	if err != nil {
		log.Printf("Course mapping save failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to save course configuration",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("course configuration saved: %d entries", len(mapping)),
		"saved":   len(mapping),
		"data":    mapping,
	})
}

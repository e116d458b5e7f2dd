package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/yourusername/fitbot-api/internal/domain/entity"
	"github.com/yourusername/fitbot-api/internal/handler/dto"
	"github.com/yourusername/fitbot-api/internal/service"
)

// HistoryProvider отдает журнал результатов пользователя
type HistoryProvider interface {
	ListHistory(userID uuid.UUID, limit int) (*entity.User, []entity.FitnessHistory, error)
}

// HistoryHandler обрабатывает запросы истории результатов
type HistoryHandler struct {
	history HistoryProvider
	logger  *zap.Logger
}

// NewHistoryHandler создает новый обработчик истории
func NewHistoryHandler(history HistoryProvider, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{history: history, logger: logger.Named("history_handler")}
}

var exportHeaders = []string{"Дата", "Уровень подготовки", "Баллы подготовки", "Риск", "Баллы риска", "Прохождение"}

// List возвращает историю пользователя
// GET /api/users/:id/fitness-history?limit=N
func (h *HistoryHandler) List(c *gin.Context) {
	userID := c.MustGet("userID").(uuid.UUID)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	user, entries, err := h.history.ListHistory(userID, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewFitnessHistoryResponse(user, entries))
}

// Export выгружает историю в CSV или Excel
// GET /api/users/:id/fitness-history/export?format=csv|xlsx
func (h *HistoryHandler) Export(c *gin.Context) {
	userID := c.MustGet("userID").(uuid.UUID)
	format := c.DefaultQuery("format", "csv")

	_, entries, err := h.history.ListHistory(userID, service.MaxHistoryLimit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	filename := fmt.Sprintf("fitness_history_%s_%s", userID, time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, entries, filename)
	default:
		h.exportCSV(c, entries, filename)
	}
}

func exportRow(e entity.FitnessHistory) []string {
	return []string{
		e.CreatedAt.UTC().Format(time.RFC3339),
		strconv.Itoa(e.FitnessLevel),
		strconv.Itoa(e.FitnessLevelScore),
		e.RiskFactor,
		strconv.Itoa(e.RiskFactorScore),
		e.QuestionnaireRunID.String(),
	}
}

// exportCSV экспортирует историю в CSV
func (h *HistoryHandler) exportCSV(c *gin.Context, entries []entity.FitnessHistory, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for _, e := range entries {
		writer.Write(exportRow(e))
	}
}

// exportXLSX экспортирует историю в Excel с использованием StreamWriter
func (h *HistoryHandler) exportXLSX(c *gin.Context, entries []entity.FitnessHistory, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "История"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		h.logger.Error("failed to create stream writer", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, v := range exportHeaders {
		headers[i] = v
	}
	if err := sw.SetRow("A1", headers); err != nil {
		h.logger.Warn("failed to write header row", zap.Error(err))
	}

	for i, e := range entries {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{
			e.CreatedAt.UTC().Format(time.RFC3339),
			e.FitnessLevel,
			e.FitnessLevelScore,
			e.RiskFactor,
			e.RiskFactorScore,
			e.QuestionnaireRunID.String(),
		}
		if err := sw.SetRow(cell, row); err != nil {
			h.logger.Warn("failed to write row", zap.Int("row", i+2), zap.Error(err))
		}
	}

	if err := sw.Flush(); err != nil {
		h.logger.Error("failed to flush stream writer", zap.Error(err))
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	if err := f.Write(c.Writer); err != nil {
		h.logger.Error("failed to write xlsx response", zap.Error(err))
	}
}

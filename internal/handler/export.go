package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"budget-tracker/internal/models"
	"budget-tracker/internal/util"
	"budget-tracker/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// Display symbols for the four approval flags in exported reports.
const (
	flagApproved = "✅"
	flagPending  = "❌"
)

// exportHeaders is the fixed column order of every export.
var exportHeaders = []string{"月", "日", "用途", "支付數", "餘額", "承辦人", "憑證簽收", "憑證核銷", "主管審批", "會計審批"}

// ExportHandler 负责报表导出接口
type ExportHandler struct {
	Engine *workflow.Engine
}

func NewExportHandler(engine *workflow.Engine) *ExportHandler {
	return &ExportHandler{Engine: engine}
}

func flagSymbol(set bool) string {
	if set {
		return flagApproved
	}
	return flagPending
}

func exportRow(r *models.BudgetRecord) []string {
	return []string{
		fmt.Sprintf("%d", r.Month),
		fmt.Sprintf("%d", r.Day),
		r.Purpose,
		util.FormatAmount(r.Amount),
		util.FormatAmount(r.Balance),
		r.Submitter,
		flagSymbol(r.ReceiptReceived),
		flagSymbol(r.ReceiptVerified),
		flagSymbol(r.ManagerApproved),
		flagSymbol(r.AccountantApproved),
	}
}

// ExportXLSX serializes the full unfiltered record set, one row per
// record, regardless of the caller's role.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	records, err := h.Engine.ListAll()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢失敗")
		return
	}

	f := excelize.NewFile()
	sheetName := "預算記錄"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "建立工作表失敗")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx := range records {
		row := exportRow(&records[idx])
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, idx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	f.SetColWidth(sheetName, "C", "C", 30)
	f.SetColWidth(sheetName, "F", "F", 20)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"budget_records_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "導出失敗")
	}
}

// ExportCSV is the CSV variant of the same report.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	records, err := h.Engine.ListAll()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢失敗")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"budget_records_%s.csv\"",
		time.Now().Format("20060102")))

	// UTF-8 BOM（让 Excel 正确识别中文）
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for idx := range records {
		writer.Write(exportRow(&records[idx]))
	}
}

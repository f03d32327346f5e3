package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"wisewallet/backend/middleware"
	"wisewallet/backend/models"
)

const exportSheet = "Expenses"

// ExportExpenses handles GET /expenses/export.xlsx
func (h *ExpenseHandler) ExportExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.List(r.Context(), middleware.GetUserIDFromContext(r))
	if err != nil {
		h.err.respond(w, r, err)
		return
	}

	f, err := buildWorkbook(expenses)
	if err != nil {
		h.err.respond(w, r, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(w); err != nil {
		middleware.WriteError(w, http.StatusInternalServerError, "Export failed", err, h.err.showDetail)
	}
}

// buildWorkbook lays the expenses out one per row, newest first, with a
// total row underneath.
func buildWorkbook(expenses []models.Expense) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, err
	}

	headers := []string{"Date", "Description", "Category", "Amount"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, h)
	}

	for idx, e := range expenses {
		row := idx + 2
		f.SetCellValue(exportSheet, fmt.Sprintf("A%d", row), e.Date.Format(time.DateOnly))
		f.SetCellValue(exportSheet, fmt.Sprintf("B%d", row), e.Description)
		f.SetCellValue(exportSheet, fmt.Sprintf("C%d", row), e.Category)
		f.SetCellValue(exportSheet, fmt.Sprintf("D%d", row), e.Amount)
	}

	if len(expenses) > 0 {
		totalRow := len(expenses) + 2
		f.SetCellValue(exportSheet, fmt.Sprintf("C%d", totalRow), "Total")
		f.SetCellFormula(exportSheet, fmt.Sprintf("D%d", totalRow), fmt.Sprintf("SUM(D2:D%d)", totalRow-1))
	}

	style, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err == nil {
		f.SetColStyle(exportSheet, "D", style)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		f.SetCellStyle(exportSheet, "A1", "D1", bold)
	}

	f.SetColWidth(exportSheet, "A", "A", 12)
	f.SetColWidth(exportSheet, "B", "B", 30)
	f.SetColWidth(exportSheet, "C", "C", 15)
	f.SetColWidth(exportSheet, "D", "D", 12)
	return f, nil
}

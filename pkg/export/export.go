// Package export writes swap reports to disk: server-rendered blobs
// downloaded through the API, plus local csv/xlsx renderings of the
// currently loaded swap list.
package export

import (
	"encoding/csv"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/harbourview/swapctl/pkg/core/model"
)

// SaveServerReport writes a server-rendered report blob to dir, picking the
// extension from the response content type. Returns the written path.
func SaveServerReport(dir string, blob []byte, contentType string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	ext := extensionFor(contentType)
	name := fmt.Sprintf("swap_report_%s_%s%s",
		time.Now().Format("2006-01-02"),
		uuid.New().String()[:8],
		ext)
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, blob, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}
	return path, nil
}

func extensionFor(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ".bin"
	}
	switch mediaType {
	case "text/csv":
		return ".csv"
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return ".xlsx"
	case "application/pdf":
		return ".pdf"
	default:
		return ".bin"
	}
}

var reportHeader = []string{
	"ID", "Type", "Status", "Urgency",
	"Requesting Staff", "Counterpart",
	"Original Shift", "Target Shift",
	"Role Match", "Reason", "Created",
}

// WriteCSV renders the swap list as a csv file at path. weekStart anchors
// the grid's day indices to concrete dates.
func WriteCSV(path string, swaps []model.SwapRequest, weekStart time.Time) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(reportHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for i := range swaps {
		if err := w.Write(reportRow(&swaps[i], weekStart)); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// WriteXLSX renders the swap list as an xlsx workbook at path.
func WriteXLSX(path string, swaps []model.SwapRequest, weekStart time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Swap Requests"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for col, title := range reportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	f.SetColWidth(sheet, "A", "A", 14)
	f.SetColWidth(sheet, "E", "H", 20)

	for rowIdx := range swaps {
		row := reportRow(&swaps[rowIdx], weekStart)
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save xlsx file: %w", err)
	}
	return nil
}

func reportRow(sw *model.SwapRequest, weekStart time.Time) []string {
	counterpart := ""
	if sw.TargetStaff != nil {
		counterpart = sw.TargetStaff.FullName
	} else if sw.AssignedStaff != nil {
		counterpart = sw.AssignedStaff.FullName
	}

	targetShift := ""
	if sw.TargetDay != nil && sw.TargetShift != nil {
		targetShift = fmt.Sprintf("%s shift %d", DayLabel(weekStart, *sw.TargetDay), *sw.TargetShift)
	}

	roleMatch := "ok"
	if sw.RoleMismatch() {
		roleMatch = fmt.Sprintf("mismatch (%s vs %s)", sw.AssignedStaffRoleName, sw.OriginalShiftRoleName)
		if sw.RoleMatchOverride {
			roleMatch += " overridden"
		}
	}

	created := ""
	if !sw.CreatedAt.IsZero() {
		created = sw.CreatedAt.Format(time.RFC3339)
	}

	return []string{
		sw.ID,
		string(sw.SwapType),
		string(sw.Status),
		string(sw.Urgency),
		sw.RequestingStaff.FullName,
		counterpart,
		fmt.Sprintf("%s shift %d", DayLabel(weekStart, sw.OriginalDay), sw.OriginalShift),
		targetShift,
		roleMatch,
		sw.Reason,
		created,
	}
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harbourview/swapctl/pkg/clients/swapapi"
	"github.com/harbourview/swapctl/pkg/core/model"
	"github.com/harbourview/swapctl/pkg/export"
)

func exportReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exportReport",
		Short: "Export a swap report (server-rendered, or locally from the loaded list)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireFacilityStore()
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			local, _ := cmd.Flags().GetBool("local")
			statuses, _ := cmd.Flags().GetStringSlice("status")

			app.logger.Info("exportReport command",
				zap.String("format", format),
				zap.Bool("local", local))

			if !local {
				return exportFromServer(s.FacilityID(), format, statuses)
			}
			return exportLocally(format)
		},
	}

	cmd.Flags().String("format", "csv", "Report format (csv, xlsx, pdf; pdf is server-only)")
	cmd.Flags().Bool("local", false, "Render locally from the fetched list instead of asking the backend")
	cmd.Flags().StringSlice("status", nil, "Restrict the server report to these statuses")
	return cmd
}

func exportFromServer(facilityID, format string, statuses []string) error {
	exportCfg := &swapapi.ExportConfig{
		FacilityID: facilityID,
		Format:     format,
	}
	for _, raw := range statuses {
		status := model.SwapStatus(raw)
		if !status.IsValid() {
			return fmt.Errorf("unknown status: %s", raw)
		}
		exportCfg.Statuses = append(exportCfg.Statuses, status)
	}

	blob, contentType, err := app.client.ExportSwapReport(app.ctx, exportCfg)
	if err != nil {
		return err
	}

	path, err := export.SaveServerReport(app.cfg.ExportDir, blob, contentType)
	if err != nil {
		return err
	}

	fmt.Printf("\n✓ Report saved to %s\n\n", path)
	return nil
}

func exportLocally(format string) error {
	s := app.facilityStore
	s.Load(app.ctx, nil)
	if s.LastError() != "" {
		return fmt.Errorf("failed to load swaps: %s", s.LastError())
	}

	weekStart, err := export.CurrentWeekStart(app.cfg.WeekRule, time.Now())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(app.cfg.ExportDir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	name := fmt.Sprintf("swap_report_%s.%s", time.Now().Format("2006-01-02"), format)
	path := filepath.Join(app.cfg.ExportDir, name)

	switch format {
	case "csv":
		err = export.WriteCSV(path, s.Swaps(), weekStart)
	case "xlsx":
		err = export.WriteXLSX(path, s.Swaps(), weekStart)
	default:
		return fmt.Errorf("local export supports csv and xlsx, not %s", format)
	}
	if err != nil {
		return err
	}

	fmt.Printf("\n✓ Report with %d swaps saved to %s\n\n", len(s.Swaps()), path)
	return nil
}

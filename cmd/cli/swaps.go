package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harbourview/swapctl/pkg/clients/swapapi"
	"github.com/harbourview/swapctl/pkg/core/model"
	"github.com/harbourview/swapctl/pkg/core/store"
	"github.com/harbourview/swapctl/pkg/export"
)

func listSwapsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listSwaps",
		Short: "List swap requests for the configured facility",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireFacilityStore()
			if err != nil {
				return err
			}

			filters, err := filtersFromFlags(cmd)
			if err != nil {
				return err
			}

			app.logger.Info("listSwaps command", zap.String("facility_id", s.FacilityID()))
			s.Load(app.ctx, filters)
			if s.LastError() != "" {
				return fmt.Errorf("failed to load swaps: %s", s.LastError())
			}

			app.workflowCache.RefreshActive(app.ctx, s.Swaps())
			printSwapList(s)
			return nil
		},
	}

	addFilterFlags(cmd)
	return cmd
}

func mySwapsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mySwaps",
		Short: "List your own swap requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := filtersFromFlags(cmd)
			if err != nil {
				return err
			}

			app.logger.Info("mySwaps command")
			app.myStore.Load(app.ctx, filters)
			if app.myStore.LastError() != "" {
				return fmt.Errorf("failed to load swaps: %s", app.myStore.LastError())
			}

			printSwapList(app.myStore)
			return nil
		},
	}

	addFilterFlags(cmd)
	return cmd
}

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the facility swap summary with a local analytics breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireFacilityStore()
			if err != nil {
				return err
			}

			app.logger.Info("summary command", zap.String("facility_id", s.FacilityID()))
			s.Load(app.ctx, nil)
			if s.LastError() != "" {
				return fmt.Errorf("failed to load summary: %s", s.LastError())
			}

			summary := s.Summary()
			if summary == nil {
				return fmt.Errorf("no summary returned for facility %s", s.FacilityID())
			}

			fmt.Printf("\nSwap summary for facility %s:\n\n", s.FacilityID())
			fmt.Printf("  Pending swaps:                 %d\n", summary.PendingSwaps)
			fmt.Printf("  Urgent swaps:                  %d\n", summary.UrgentSwaps)
			fmt.Printf("  Manager approval needed:       %d\n", summary.ManagerApprovalNeeded)
			fmt.Printf("  Potential assignments:         %d\n", summary.PotentialAssignments)
			fmt.Printf("  Staff responses needed:        %d\n", summary.StaffResponsesNeeded)
			fmt.Printf("  Manager final approval needed: %d\n", summary.ManagerFinalApprovalNeeded)
			fmt.Printf("  Role compatible assignments:   %d\n", summary.RoleCompatibleAssignments)
			fmt.Printf("  Role override assignments:     %d\n", summary.RoleOverrideAssignments)
			fmt.Printf("  Pending over 24h:              %d\n", summary.PendingOver24h)

			// Display-only recomputation from the loaded list
			local := s.LocalSummary()
			fmt.Printf("\nLoaded list: %d total, %d active, %d urgent, %d role mismatches\n",
				local.Total, local.Active, local.Urgent, local.Mismatches)

			return nil
		},
	}
}

func workflowStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "workflowStatus <swap_id>",
		Short: "Show the workflow projection and available actions for a swap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			swapID := args[0]
			app.logger.Info("workflowStatus command", zap.String("swap_id", swapID))

			status, err := app.client.GetSwapWorkflowStatus(app.ctx, swapID)
			if err != nil {
				return err
			}
			actions, err := app.client.GetAvailableSwapActions(app.ctx, swapID)
			if err != nil {
				return err
			}

			fmt.Printf("\nWorkflow status for %s:\n\n", swapID)
			fmt.Printf("  Current status:   %s\n", status.CurrentStatus)
			fmt.Printf("  Next action:      %s (by %s)\n", status.NextActionRequired, status.NextActionBy)
			fmt.Printf("  Can execute:      %t\n", status.CanExecute)
			if len(status.BlockingReasons) > 0 {
				fmt.Printf("  Blocking reasons:\n")
				for _, reason := range status.BlockingReasons {
					fmt.Printf("    - %s\n", reason)
				}
			}
			if status.EstimatedCompletion != nil {
				fmt.Printf("  Estimated completion: %s\n", status.EstimatedCompletion.Format(time.RFC3339))
			}

			if len(actions) > 0 {
				fmt.Printf("\nAvailable actions:\n")
				for _, action := range actions {
					marker := ""
					if action.Destructive {
						marker = " (destructive)"
					}
					fmt.Printf("  - %s [%s]%s\n", action.Label, action.ActorRole, marker)
				}
			}
			fmt.Println()

			return nil
		},
	}
}

func checkRoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkRole <zone_id> <staff_id> <day> <shift>",
		Short: "Pre-check role compatibility for a staff member on a shift",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireFacilityStore()
			if err != nil {
				return err
			}

			day, err := parseGridIndex(args[2], "day", 6)
			if err != nil {
				return err
			}
			shift, err := parseGridIndex(args[3], "shift", app.cfg.ShiftsPerDay-1)
			if err != nil {
				return err
			}

			result, err := app.roleChecker.Check(app.ctx, &swapapi.RoleCompatibilityQuery{
				FacilityID:          s.FacilityID(),
				ZoneID:              args[0],
				StaffID:             args[1],
				OriginalShiftDay:    day,
				OriginalShiftNumber: shift,
			})
			if err != nil {
				return err
			}

			if result.Compatible {
				fmt.Printf("\n✓ Compatible: %s covers the %s shift\n\n", result.StaffRoleName, result.RequiredRoleName)
				return nil
			}

			fmt.Printf("\n⚠️  Not compatible: staff role %s, shift requires %s\n", result.StaffRoleName, result.RequiredRoleName)
			if result.RequiresOverride {
				fmt.Println("   Approving this swap will require a manager role override with a justification.")
			}
			if result.IncompatibleNote != "" {
				fmt.Printf("   %s\n", result.IncompatibleNote)
			}
			fmt.Println()

			return nil
		},
	}
}

// addFilterFlags attaches the shared list-filter flags.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("status", "", "Filter by status (pending, executed, ...)")
	cmd.Flags().String("urgency", "", "Filter by urgency (low, normal, high, emergency)")
	cmd.Flags().String("type", "", "Filter by swap type (auto, specific)")
	cmd.Flags().Int("limit", 0, "Maximum number of swaps to fetch")
}

func filtersFromFlags(cmd *cobra.Command) (*swapapi.SwapFilters, error) {
	status, _ := cmd.Flags().GetString("status")
	urgency, _ := cmd.Flags().GetString("urgency")
	swapType, _ := cmd.Flags().GetString("type")
	limit, _ := cmd.Flags().GetInt("limit")

	filters := &swapapi.SwapFilters{
		Status:   model.SwapStatus(status),
		Urgency:  model.SwapUrgency(urgency),
		SwapType: model.SwapType(swapType),
		Limit:    limit,
	}

	if filters.Status != "" && !filters.Status.IsValid() {
		return nil, fmt.Errorf("unknown status: %s", status)
	}
	if filters.Urgency != "" && !filters.Urgency.IsValid() {
		return nil, fmt.Errorf("unknown urgency: %s", urgency)
	}
	if filters.SwapType != "" && !filters.SwapType.IsValid() {
		return nil, fmt.Errorf("unknown swap type: %s", swapType)
	}

	if filters.Status == "" && filters.Urgency == "" && filters.SwapType == "" && filters.Limit == 0 {
		return nil, nil
	}
	return filters, nil
}

func parseGridIndex(raw, name string, max int) (int, error) {
	var value int
	if _, err := fmt.Sscanf(raw, "%d", &value); err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", name, err)
	}
	if value < 0 || value > max {
		return 0, fmt.Errorf("%s must be between 0 and %d", name, max)
	}
	return value, nil
}

func printSwapList(s *store.Store) {
	swaps := s.Swaps()
	if len(swaps) == 0 {
		fmt.Println("\nNo swap requests found.")
		return
	}

	weekStart, err := export.CurrentWeekStart(app.cfg.WeekRule, time.Now())
	if err != nil {
		app.logger.Warn("Failed to resolve week start", zap.Error(err))
		weekStart = time.Now()
	}

	fmt.Printf("\nFound %d swap requests:\n\n", len(swaps))
	for i := range swaps {
		sw := &swaps[i]

		counterpart := "(searching)"
		if sw.TargetStaff != nil {
			counterpart = sw.TargetStaff.FullName
		} else if sw.AssignedStaff != nil {
			counterpart = sw.AssignedStaff.FullName
		}

		fmt.Printf("- %s [%s/%s] %s: %s, %s shift %d, covering: %s\n",
			sw.ID,
			sw.SwapType,
			sw.Urgency,
			sw.Status,
			sw.RequestingStaff.FullName,
			export.DayLabel(weekStart, sw.OriginalDay),
			sw.OriginalShift,
			counterpart,
		)

		if sw.RoleMismatch() {
			note := fmt.Sprintf("    ⚠️  role mismatch: %s vs %s", sw.AssignedStaffRoleName, sw.OriginalShiftRoleName)
			if sw.RoleMatchOverride {
				note += " (override recorded)"
			}
			fmt.Println(note)
		}

		if entry, ok := app.workflowCache.Get(sw.ID); ok {
			fmt.Printf("    next: %s (by %s)\n", entry.Status.NextActionRequired, entry.Status.NextActionBy)
		}
	}
	fmt.Println()
}

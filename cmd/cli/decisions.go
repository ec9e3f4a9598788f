package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harbourview/swapctl/pkg/clients/swapapi"
	"github.com/harbourview/swapctl/pkg/core/model"
)

func createSwapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "createSwap <day> <shift>",
		Short: "Create a swap request for one of your shifts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseGridIndex(args[0], "day", 6)
			if err != nil {
				return err
			}
			shift, err := parseGridIndex(args[1], "shift", app.cfg.ShiftsPerDay-1)
			if err != nil {
				return err
			}

			targetStaff, _ := cmd.Flags().GetString("target-staff")
			urgency, _ := cmd.Flags().GetString("urgency")
			reason, _ := cmd.Flags().GetString("reason")
			notify, _ := cmd.Flags().GetBool("notify")

			swapType := model.SwapTypeAuto
			if targetStaff != "" {
				swapType = model.SwapTypeSpecific
			}

			facilityID := resolveFacility()
			if facilityID == "" {
				return fmt.Errorf("a facility is required to create a swap - pass --facility")
			}

			req := &swapapi.CreateSwapRequest{
				SwapType:      swapType,
				Urgency:       model.SwapUrgency(urgency),
				FacilityID:    facilityID,
				OriginalDay:   day,
				OriginalShift: shift,
				TargetStaffID: targetStaff,
				Reason:        reason,
			}
			if notify {
				req.Notifications = &swapapi.NotificationOptions{
					NotifyStaff:   true,
					NotifyManager: true,
				}
			}

			app.logger.Info("createSwap command",
				zap.String("swap_type", string(swapType)),
				zap.Int("day", day),
				zap.Int("shift", shift))

			if err := app.myStore.CreateSwapRequest(app.ctx, req); err != nil {
				return err
			}

			printSwapList(app.myStore)
			return nil
		},
	}

	cmd.Flags().String("target-staff", "", "Staff ID to swap with (omit for an automatic search)")
	cmd.Flags().String("urgency", string(model.UrgencyNormal), "Urgency (low, normal, high, emergency)")
	cmd.Flags().String("reason", "", "Reason for the swap")
	cmd.Flags().Bool("notify", true, "Let the backend notify affected staff and managers")
	return cmd
}

func approveSwapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approveSwap <swap_id>",
		Short: "Submit the first-stage manager decision for a swap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireFacilityStore()
			if err != nil {
				return err
			}

			decline, _ := cmd.Flags().GetBool("decline")
			notes, _ := cmd.Flags().GetString("notes")

			app.logger.Info("approveSwap command",
				zap.String("swap_id", args[0]),
				zap.Bool("approved", !decline))

			return s.ApproveSwap(app.ctx, args[0], !decline, notes)
		},
	}

	cmd.Flags().Bool("decline", false, "Decline instead of approving")
	cmd.Flags().String("notes", "", "Decision notes")
	return cmd
}

func finalApproveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finalApprove <swap_id>",
		Short: "Submit the final execution decision for a swap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireFacilityStore()
			if err != nil {
				return err
			}

			decline, _ := cmd.Flags().GetBool("decline")
			notes, _ := cmd.Flags().GetString("notes")
			overrideRole, _ := cmd.Flags().GetBool("override-role")
			overrideReason, _ := cmd.Flags().GetString("override-reason")

			// Reject before any round trip; the backend would fail it anyway.
			if overrideRole && strings.TrimSpace(overrideReason) == "" {
				return fmt.Errorf("--override-role requires --override-reason")
			}

			app.logger.Info("finalApprove command",
				zap.String("swap_id", args[0]),
				zap.Bool("approved", !decline),
				zap.Bool("override_role", overrideRole))

			return s.ManagerFinalApproval(app.ctx, args[0], !decline, notes, overrideRole, overrideReason)
		},
	}

	cmd.Flags().Bool("decline", false, "Decline instead of approving")
	cmd.Flags().String("notes", "", "Decision notes")
	cmd.Flags().Bool("override-role", false, "Execute despite a role mismatch")
	cmd.Flags().String("override-reason", "", "Justification for the role override (required with --override-role)")
	return cmd
}

func respondAssignmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "respondAssignment <swap_id>",
		Short: "Respond to a potential auto-swap assignment offered to you",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decline, _ := cmd.Flags().GetBool("decline")
			notes, _ := cmd.Flags().GetString("notes")

			app.logger.Info("respondAssignment command",
				zap.String("swap_id", args[0]),
				zap.Bool("accepted", !decline))

			return app.myStore.RespondToPotentialAssignment(app.ctx, args[0], !decline, notes)
		},
	}

	cmd.Flags().Bool("decline", false, "Decline the assignment")
	cmd.Flags().String("notes", "", "Response notes")
	return cmd
}

func respondSwapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "respondSwap <swap_id>",
		Short: "Respond to a swap request that names you directly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decline, _ := cmd.Flags().GetBool("decline")
			notes, _ := cmd.Flags().GetString("notes")

			app.logger.Info("respondSwap command",
				zap.String("swap_id", args[0]),
				zap.Bool("accepted", !decline))

			return app.myStore.RespondToSwap(app.ctx, args[0], !decline, notes)
		},
	}

	cmd.Flags().Bool("decline", false, "Decline the swap")
	cmd.Flags().String("notes", "", "Response notes")
	return cmd
}

func retryAssignmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retryAssignment <swap_id>",
		Short: "Re-run the automatic assignment search for a swap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireFacilityStore()
			if err != nil {
				return err
			}

			avoid, _ := cmd.Flags().GetStringSlice("avoid-staff")

			app.logger.Info("retryAssignment command",
				zap.String("swap_id", args[0]),
				zap.Strings("avoid_staff", avoid))

			return s.RetryAutoAssignment(app.ctx, args[0], avoid)
		},
	}

	cmd.Flags().StringSlice("avoid-staff", nil, "Staff IDs the new search must skip")
	return cmd
}

func cancelSwapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancelSwap <swap_id>",
		Short: "Cancel one of your swap requests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reason, _ := cmd.Flags().GetString("reason")

			app.logger.Info("cancelSwap command", zap.String("swap_id", args[0]))

			return app.myStore.CancelSwapRequest(app.ctx, args[0], reason)
		},
	}

	cmd.Flags().String("reason", "", "Cancellation reason")
	return cmd
}

func updateSwapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "updateSwap <swap_id>",
		Short: "Update urgency or reason on one of your pending swaps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			urgency, _ := cmd.Flags().GetString("urgency")
			reason, _ := cmd.Flags().GetString("reason")

			if urgency == "" && reason == "" {
				return fmt.Errorf("nothing to update - pass --urgency or --reason")
			}

			app.logger.Info("updateSwap command", zap.String("swap_id", args[0]))

			return app.myStore.UpdateSwapRequest(app.ctx, args[0], &swapapi.UpdateSwapRequest{
				Urgency: model.SwapUrgency(urgency),
				Reason:  reason,
			})
		},
	}

	cmd.Flags().String("urgency", "", "New urgency (low, normal, high, emergency)")
	cmd.Flags().String("reason", "", "New reason")
	return cmd
}

func bulkApproveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bulkApprove <swap_id>...",
		Short: "Approve or decline several swaps in one batched decision",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireFacilityStore()
			if err != nil {
				return err
			}

			decline, _ := cmd.Flags().GetBool("decline")
			notes, _ := cmd.Flags().GetString("notes")
			ignoreMismatches, _ := cmd.Flags().GetBool("ignore-role-mismatches")
			overrideReason, _ := cmd.Flags().GetString("override-reason")

			if ignoreMismatches && strings.TrimSpace(overrideReason) == "" {
				return fmt.Errorf("--ignore-role-mismatches requires --override-reason")
			}

			app.logger.Info("bulkApprove command",
				zap.Int("count", len(args)),
				zap.Bool("approved", !decline))

			result, err := s.BulkApprove(app.ctx, args, !decline, notes, ignoreMismatches, overrideReason)
			if err != nil {
				return err
			}

			if len(result.FailedSwapIDs) > 0 {
				fmt.Printf("\nSwaps blocked by role verification:\n")
				for _, id := range result.FailedSwapIDs {
					fmt.Printf("  ✗ %s\n", id)
				}
				fmt.Println("Re-run with --ignore-role-mismatches and --override-reason to force them.")
			}

			return nil
		},
	}

	cmd.Flags().Bool("decline", false, "Decline instead of approving")
	cmd.Flags().String("notes", "", "Decision notes")
	cmd.Flags().Bool("ignore-role-mismatches", false, "Approve despite role mismatches")
	cmd.Flags().String("override-reason", "", "Justification for overriding role mismatches")
	return cmd
}

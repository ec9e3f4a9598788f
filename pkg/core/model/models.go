package model

import "time"

// StaffRef identifies a staff member involved in a swap. The staff record
// itself is owned by the scheduling backend.
type StaffRef struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	RoleName string `json:"role_name,omitempty"`
}

// SwapRequest is one shift-exchange transaction as reported by the backend.
// Day and shift fields are indices into the fixed weekly grid
// (7 days x a facility-configured shift count per day).
type SwapRequest struct {
	ID       string      `json:"id"`
	SwapType SwapType    `json:"swap_type"`
	Status   SwapStatus  `json:"status"`
	Urgency  SwapUrgency `json:"urgency"`

	RequestingStaff StaffRef  `json:"requesting_staff"`
	TargetStaff     *StaffRef `json:"target_staff,omitempty"`   // specific swaps only
	AssignedStaff   *StaffRef `json:"assigned_staff,omitempty"` // auto swaps only

	FacilityID string `json:"facility_id"`
	ZoneID     string `json:"zone_id,omitempty"`

	OriginalDay   int  `json:"original_day"`
	OriginalShift int  `json:"original_shift"`
	TargetDay     *int `json:"target_day,omitempty"`
	TargetShift   *int `json:"target_shift,omitempty"`

	// Role-compatibility verification results, computed server-side.
	RoleMatchOverride     bool   `json:"role_match_override"`
	AssignedStaffRoleName string `json:"assigned_staff_role_name,omitempty"`
	OriginalShiftRoleName string `json:"original_shift_role_name,omitempty"`

	Reason string `json:"reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoleMismatch reports whether the backend assigned a staff member whose role
// differs from the role the original shift requires.
func (s *SwapRequest) RoleMismatch() bool {
	return s.AssignedStaffRoleName != "" &&
		s.OriginalShiftRoleName != "" &&
		s.AssignedStaffRoleName != s.OriginalShiftRoleName
}

// SwapSummary holds the per-facility aggregate counts computed server-side.
// The client fetches it alongside the swap list and never derives it locally,
// except for the display-only analytics subset in the store.
type SwapSummary struct {
	FacilityID                 string `json:"facility_id"`
	PendingSwaps               int    `json:"pending_swaps"`
	UrgentSwaps                int    `json:"urgent_swaps"`
	ManagerApprovalNeeded      int    `json:"manager_approval_needed"`
	PotentialAssignments       int    `json:"potential_assignments"`
	StaffResponsesNeeded       int    `json:"staff_responses_needed"`
	ManagerFinalApprovalNeeded int    `json:"manager_final_approval_needed"`
	RoleCompatibleAssignments  int    `json:"role_compatible_assignments"`
	RoleOverrideAssignments    int    `json:"role_override_assignments"`
	PendingOver24h             int    `json:"pending_over_24h"`
	ExecutedThisWeek           int    `json:"executed_this_week"`
}

// WorkflowStatus is the backend's projection of what a swap needs next.
type WorkflowStatus struct {
	SwapID              string     `json:"swap_id"`
	CurrentStatus       SwapStatus `json:"current_status"`
	NextActionRequired  string     `json:"next_action_required"`
	NextActionBy        string     `json:"next_action_by"`
	CanExecute          bool       `json:"can_execute"`
	BlockingReasons     []string   `json:"blocking_reasons,omitempty"`
	EstimatedCompletion *time.Time `json:"estimated_completion,omitempty"`
}

// SwapAction describes one action the backend will currently accept for a
// swap, scoped to the caller's role.
type SwapAction struct {
	Action      string `json:"action"`
	Label       string `json:"label"`
	ActorRole   string `json:"actor_role"`
	Destructive bool   `json:"destructive,omitempty"`
}

// RoleCompatibility is the result of a compatibility pre-check.
type RoleCompatibility struct {
	Compatible       bool   `json:"compatible"`
	StaffRoleName    string `json:"staff_role_name"`
	RequiredRoleName string `json:"required_role_name"`
	RequiresOverride bool   `json:"requires_override"`
	IncompatibleNote string `json:"incompatible_note,omitempty"`
}

// BulkApprovalResult is the backend's breakdown of a batched decision.
type BulkApprovalResult struct {
	Successful               int      `json:"successful"`
	RoleVerificationFailures int      `json:"role_verification_failures"`
	FailedSwapIDs            []string `json:"failed_swap_ids,omitempty"`
}

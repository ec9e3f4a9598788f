package swapapi

import "github.com/harbourview/swapctl/pkg/core/model"

// NotificationOptions passes through to the backend, which owns all
// notification delivery.
type NotificationOptions struct {
	NotifyStaff   bool `json:"notify_staff"`
	NotifyManager bool `json:"notify_manager"`
	SendPush      bool `json:"send_push,omitempty"`
}

// SwapFilters narrows list queries. Zero values mean "no filter".
type SwapFilters struct {
	Status   model.SwapStatus  `json:"status,omitempty"`
	Urgency  model.SwapUrgency `json:"urgency,omitempty"`
	SwapType model.SwapType    `json:"swap_type,omitempty"`
	Limit    int               `json:"limit,omitempty"`
}

// CreateSwapRequest is the payload for creating a swap request.
type CreateSwapRequest struct {
	SwapType      model.SwapType       `json:"swap_type" validate:"required,oneof=auto specific"`
	Urgency       model.SwapUrgency    `json:"urgency" validate:"required,oneof=low normal high emergency"`
	FacilityID    string               `json:"facility_id" validate:"required"`
	ZoneID        string               `json:"zone_id,omitempty"`
	OriginalDay   int                  `json:"original_day" validate:"min=0,max=6"`
	OriginalShift int                  `json:"original_shift" validate:"min=0"`
	TargetDay     *int                 `json:"target_day,omitempty" validate:"omitempty,min=0,max=6"`
	TargetShift   *int                 `json:"target_shift,omitempty" validate:"omitempty,min=0"`
	TargetStaffID string               `json:"target_staff_id,omitempty" validate:"required_if=SwapType specific"`
	Reason        string               `json:"reason,omitempty"`
	Notifications *NotificationOptions `json:"notification_options,omitempty"`
}

// ManagerDecisionRequest is the first-stage manager approval or decline.
type ManagerDecisionRequest struct {
	Approved      bool                 `json:"approved"`
	Notes         string               `json:"notes,omitempty"`
	Notifications *NotificationOptions `json:"notification_options,omitempty"`
}

// PotentialAssignmentResponse is an auto-swap candidate's answer.
type PotentialAssignmentResponse struct {
	Accepted              bool   `json:"accepted"`
	Notes                 string `json:"notes,omitempty"`
	AvailabilityConfirmed bool   `json:"availability_confirmed"`
}

// SwapResponse is a specific-swap target's answer.
type SwapResponse struct {
	Accepted            bool   `json:"accepted"`
	Notes               string `json:"notes,omitempty"`
	ConfirmAvailability bool   `json:"confirm_availability"`
}

// FinalApprovalRequest is the final execution gate. When override is
// requested the justification is mandatory; the store enforces that before
// the call is ever dispatched.
type FinalApprovalRequest struct {
	Approved                 bool   `json:"approved"`
	Notes                    string `json:"notes,omitempty"`
	OverrideRoleVerification bool   `json:"override_role_verification"`
	RoleOverrideReason       string `json:"role_override_reason,omitempty" validate:"required_if=OverrideRoleVerification true"`
}

// RetryAssignmentRequest re-runs the backend's assignment search.
type RetryAssignmentRequest struct {
	AvoidStaffIDs []string `json:"avoid_staff_ids,omitempty"`
}

// CancelSwapRequest cancels a swap on behalf of its requester.
type CancelSwapRequest struct {
	Reason string `json:"reason,omitempty"`
}

// UpdateSwapRequest patches mutable fields of a pending swap.
type UpdateSwapRequest struct {
	Urgency model.SwapUrgency `json:"urgency,omitempty" validate:"omitempty,oneof=low normal high emergency"`
	Reason  string            `json:"reason,omitempty"`
}

// BulkApprovalRequest is a single batched first-stage decision.
type BulkApprovalRequest struct {
	SwapIDs              []string `json:"swap_ids" validate:"required,min=1"`
	Approved             bool     `json:"approved"`
	Notes                string   `json:"notes,omitempty"`
	IgnoreRoleMismatches bool     `json:"ignore_role_mismatches"`
	RoleOverrideReason   string   `json:"role_override_reason,omitempty" validate:"required_if=IgnoreRoleMismatches true"`
}

// RoleCompatibilityQuery identifies one (facility, zone, staff, day, shift)
// combination to pre-check.
type RoleCompatibilityQuery struct {
	FacilityID          string `json:"facility_id" validate:"required"`
	ZoneID              string `json:"zone_id" validate:"required"`
	StaffID             string `json:"staff_id" validate:"required"`
	OriginalShiftDay    int    `json:"original_shift_day" validate:"min=0,max=6"`
	OriginalShiftNumber int    `json:"original_shift_number" validate:"min=0"`
}

// ExportConfig describes a server-side report export.
type ExportConfig struct {
	FacilityID string             `json:"facility_id" validate:"required"`
	Format     string             `json:"format" validate:"required,oneof=csv xlsx pdf"`
	Statuses   []model.SwapStatus `json:"statuses,omitempty"`
	DateFrom   string             `json:"date_from,omitempty"`
	DateTo     string             `json:"date_to,omitempty"`
}

package model

// SwapStatus is the lifecycle state of a swap request as reported by the
// scheduling backend. The backend owns every transition; the client only
// renders whatever the last successful fetch returned.
type SwapStatus string

const (
	StatusPending              SwapStatus = "pending"
	StatusManagerApproved      SwapStatus = "manager_approved"
	StatusPotentialAssignment  SwapStatus = "potential_assignment"
	StatusStaffAccepted        SwapStatus = "staff_accepted"
	StatusManagerFinalApproval SwapStatus = "manager_final_approval"
	StatusExecuted             SwapStatus = "executed"
	StatusDeclined             SwapStatus = "declined"
	StatusCancelled            SwapStatus = "cancelled"
)

func (s SwapStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusManagerApproved, StatusPotentialAssignment,
		StatusStaffAccepted, StatusManagerFinalApproval,
		StatusExecuted, StatusDeclined, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition can happen.
func (s SwapStatus) IsTerminal() bool {
	return s == StatusExecuted || s == StatusDeclined || s == StatusCancelled
}

// IsActive reports whether the swap still needs workflow-status tracking.
func (s SwapStatus) IsActive() bool {
	return s.IsValid() && !s.IsTerminal()
}

// SwapType distinguishes how a covering staff member is found.
type SwapType string

const (
	// SwapTypeAuto lets the backend search for a covering staff member.
	SwapTypeAuto SwapType = "auto"
	// SwapTypeSpecific names a target staff member directly.
	SwapTypeSpecific SwapType = "specific"
)

func (t SwapType) IsValid() bool {
	return t == SwapTypeAuto || t == SwapTypeSpecific
}

// SwapUrgency affects display ordering and bulk-action warnings only; it
// never changes which transitions the backend will accept.
type SwapUrgency string

const (
	UrgencyLow       SwapUrgency = "low"
	UrgencyNormal    SwapUrgency = "normal"
	UrgencyHigh      SwapUrgency = "high"
	UrgencyEmergency SwapUrgency = "emergency"
)

func (u SwapUrgency) IsValid() bool {
	switch u {
	case UrgencyLow, UrgencyNormal, UrgencyHigh, UrgencyEmergency:
		return true
	}
	return false
}

// Rank orders urgencies for display sorting, highest first.
func (u SwapUrgency) Rank() int {
	switch u {
	case UrgencyEmergency:
		return 3
	case UrgencyHigh:
		return 2
	case UrgencyNormal:
		return 1
	default:
		return 0
	}
}

package domain

import "time"

// AssignmentStatus is the outcome of one assignment attempt.
type AssignmentStatus string

// Outcomes of an assignment attempt.
const (
	AssignmentSuccess AssignmentStatus = "success"
	AssignmentFailed  AssignmentStatus = "failed"
)

// Reason strings recorded on assignment records.
const (
	ReasonPartnerFound = "Partner found for the Time and Area"
	ReasonNoPartner    = "No matching partner available"
)

// Assignment is an immutable audit record of one match attempt:
// exactly one is written per pending order per pass.
type Assignment struct {
	ID        int64
	OrderID   int64
	PartnerID *int64
	Timestamp time.Time
	Status    AssignmentStatus
	Reason    string
}

// AssignmentFilter narrows assignment listings. Nil fields match everything.
type AssignmentFilter struct {
	Status    *AssignmentStatus
	PartnerID *int64
}

// FailureReason is one bucket of the failure-reason histogram.
type FailureReason struct {
	Reason string
	Count  int
}

// AssignmentMetrics is the aggregate over all assignment records.
//
// AverageTime reproduces the reference behavior literally: the mean of the
// raw epoch-millisecond timestamps of successful records, not an elapsed
// duration. Zero when there are no successful records.
type AssignmentMetrics struct {
	TotalAssigned  int
	SuccessRate    float64
	AverageTime    float64
	FailureReasons []FailureReason
}

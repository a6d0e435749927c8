package handlers

import (
	"time"

	"delivery-dispatch/internal/domain"
)

type assignmentDTO struct {
	ID        int64                   `json:"id"`
	OrderID   int64                   `json:"order_id"`
	PartnerID *int64                  `json:"partner_id,omitempty"`
	Timestamp time.Time               `json:"timestamp"`
	Status    domain.AssignmentStatus `json:"status"`
	Reason    string                  `json:"reason"`
}

type runPassResponse struct {
	Assignments []assignmentDTO `json:"assignments"`
	Matched     int             `json:"matched"`
	Unmatched   int             `json:"unmatched"`
}

type failureReasonDTO struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

type metricsResponse struct {
	TotalAssigned  int                `json:"total_assigned"`
	SuccessRate    float64            `json:"success_rate"`
	AverageTime    float64            `json:"average_time"`
	FailureReasons []failureReasonDTO `json:"failure_reasons"`
}

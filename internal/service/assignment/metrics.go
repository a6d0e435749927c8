package assignment

import "delivery-dispatch/internal/domain"

// ComputeMetrics reduces the full assignment history into its aggregate.
// Pure function; the record order only affects failure-reason ordering,
// which follows first appearance.
//
// AverageTime keeps the reference semantics: the mean of raw epoch
// milliseconds of successful records' timestamps, zero when there are no
// successes. SuccessRate is a percentage; with zero records both rate and
// average are zero rather than NaN.
func ComputeMetrics(records []domain.Assignment) domain.AssignmentMetrics {
	m := domain.AssignmentMetrics{
		TotalAssigned:  len(records),
		FailureReasons: []domain.FailureReason{},
	}
	if len(records) == 0 {
		return m
	}

	var (
		successes int
		tsSum     float64
		reasonIdx = make(map[string]int)
	)
	for _, r := range records {
		switch r.Status {
		case domain.AssignmentSuccess:
			successes++
			tsSum += float64(r.Timestamp.UnixMilli())
		case domain.AssignmentFailed:
			reason := r.Reason
			if reason == "" {
				reason = "Unknown"
			}
			if i, ok := reasonIdx[reason]; ok {
				m.FailureReasons[i].Count++
			} else {
				reasonIdx[reason] = len(m.FailureReasons)
				m.FailureReasons = append(m.FailureReasons, domain.FailureReason{Reason: reason, Count: 1})
			}
		}
	}

	m.SuccessRate = 100 * float64(successes) / float64(len(records))
	if successes > 0 {
		m.AverageTime = tsSum / float64(successes)
	}
	return m
}

package handlers

import "delivery-dispatch/internal/domain"

func assignmentToResponse(a domain.Assignment) assignmentDTO {
	return assignmentDTO{
		ID:        a.ID,
		OrderID:   a.OrderID,
		PartnerID: a.PartnerID,
		Timestamp: a.Timestamp,
		Status:    a.Status,
		Reason:    a.Reason,
	}
}

func assignmentsToResponse(list []domain.Assignment) []assignmentDTO {
	out := make([]assignmentDTO, 0, len(list))
	for _, a := range list {
		out = append(out, assignmentToResponse(a))
	}
	return out
}

func passToResponse(list []domain.Assignment) runPassResponse {
	resp := runPassResponse{Assignments: assignmentsToResponse(list)}
	for _, a := range list {
		if a.Status == domain.AssignmentSuccess {
			resp.Matched++
		} else {
			resp.Unmatched++
		}
	}
	return resp
}

func metricsToResponse(m domain.AssignmentMetrics) metricsResponse {
	reasons := make([]failureReasonDTO, 0, len(m.FailureReasons))
	for _, fr := range m.FailureReasons {
		reasons = append(reasons, failureReasonDTO{Reason: fr.Reason, Count: fr.Count})
	}
	return metricsResponse{
		TotalAssigned:  m.TotalAssigned,
		SuccessRate:    m.SuccessRate,
		AverageTime:    m.AverageTime,
		FailureReasons: reasons,
	}
}

package domain

import "regexp"

// List of possible partner statuses
const (
	PartnerActive   PartnerStatus = "active"
	PartnerInactive PartnerStatus = "inactive"
)

// List of possible order statuses
const (
	OrderPending   OrderStatus = "pending"
	OrderAssigned  OrderStatus = "assigned"
	OrderPicked    OrderStatus = "picked"
	OrderDelivered OrderStatus = "delivered"
)

var allowedPartnerStatuses = [...]PartnerStatus{
	PartnerActive, PartnerInactive,
}

var allowedOrderStatuses = [...]OrderStatus{
	OrderPending, OrderAssigned, OrderPicked, OrderDelivered,
}

var allowedAssignmentStatuses = [...]AssignmentStatus{
	AssignmentSuccess, AssignmentFailed,
}

// Valid checks if the PartnerStatus is valid
func (s PartnerStatus) Valid() bool {
	for _, v := range allowedPartnerStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the OrderStatus is valid
func (s OrderStatus) Valid() bool {
	for _, v := range allowedOrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the AssignmentStatus is valid
func (s AssignmentStatus) Valid() bool {
	for _, v := range allowedAssignmentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// rePhone is a regex to validate phone numbers
var rePhone = regexp.MustCompile(`^\+[0-9]{11}$`)

// ValidatePhone validates the phone number format
func ValidatePhone(s string) bool {
	return rePhone.MatchString(s)
}

// reEmail is a light email shape check; uniqueness is enforced by the store.
var reEmail = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail validates the email format
func ValidateEmail(s string) bool {
	return reEmail.MatchString(s)
}

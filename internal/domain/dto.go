package domain

type RoleType string

const (
	RoleUser  RoleType = "user"
	RoleAdmin RoleType = "admin"
)

type WithdrawalStatusType string

const (
	WithdrawalStatusPending  WithdrawalStatusType = "pending"
	WithdrawalStatusApproved WithdrawalStatusType = "approved"
	WithdrawalStatusRejected WithdrawalStatusType = "rejected"
)

type InvestmentStatusType string

const (
	InvestmentStatusActive    InvestmentStatusType = "active"
	InvestmentStatusCompleted InvestmentStatusType = "completed"
	InvestmentStatusCancelled InvestmentStatusType = "cancelled"
)

// ValidInvestmentStatus reports whether status belongs to the closed status
// set. Arbitrary strings are rejected at the service boundary.
func ValidInvestmentStatus(status InvestmentStatusType) bool {
	switch status {
	case InvestmentStatusActive, InvestmentStatusCompleted, InvestmentStatusCancelled:
		return true
	default:
		return false
	}
}

package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// ContractStatus – immutable value object
// ---------------------------------------------------------------------------

// ContractStatus represents the lifecycle stage of a loan contract.
type ContractStatus struct {
	value string
}

const (
	contractStatusActive   = "ACTIVE"
	contractStatusFinished = "FINISHED"
)

var (
	ContractStatusActive   = ContractStatus{value: contractStatusActive}
	ContractStatusFinished = ContractStatus{value: contractStatusFinished}
)

var validContractStatuses = map[string]ContractStatus{
	contractStatusActive:   ContractStatusActive,
	contractStatusFinished: ContractStatusFinished,
	// Codes used by the legacy schema.
	"ACT": ContractStatusActive,
	"FIN": ContractStatusFinished,
}

// NewContractStatus creates a ContractStatus from a raw string.
func NewContractStatus(s string) (ContractStatus, error) {
	v, ok := validContractStatuses[s]
	if !ok {
		return ContractStatus{}, fmt.Errorf("invalid contract status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s ContractStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s ContractStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s ContractStatus) Equal(other ContractStatus) bool { return s.value == other.value }

// IsActive reports whether the contract still accepts changes.
func (s ContractStatus) IsActive() bool { return s.value == contractStatusActive }

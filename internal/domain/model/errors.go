package model

import "github.com/prestamos/loan-service/internal/domain/apperror"

// Sentinel failures shared by the domain, repositories and use cases.
var (
	ErrBeneficiaryNotFound = apperror.NotFound("beneficiary not found")
	ErrContractNotFound    = apperror.NotFound("contract not found")
	ErrInstallmentNotFound = apperror.NotFound("installment not found")

	ErrInvalidPaymentMedium = apperror.Validation("payment medium must be CASH or DEPOSIT")

	ErrDNIAlreadyRegistered     = apperror.BusinessRule("DNI already registered")
	ErrBeneficiaryHasContracts  = apperror.BusinessRule("beneficiary has contracts and cannot be deleted")
	ErrActiveContractExists     = apperror.BusinessRule("beneficiary already has an active contract; finalize it before creating a new one")
	ErrContractAlreadyFinalized = apperror.BusinessRule("contract is already finalized")
	ErrContractFinished         = apperror.BusinessRule("a finalized contract cannot be modified")
	ErrContractHasPayments      = apperror.BusinessRule("contract has registered payments and cannot be deleted")
	ErrInstallmentAlreadyPaid   = apperror.BusinessRule("installment is already paid")
)

package commission

import (
	"github.com/erp/feeengine/internal/domain/deal"
	"github.com/erp/feeengine/internal/domain/shared"
)

// CanRecord reports whether the actor may record a commission on the deal:
// staff admins, the system, or a user acting for the deal's arranger.
func CanRecord(actor shared.Actor, d *deal.Deal) bool {
	if actor.IsStaffAdmin() || actor.IsSystem() {
		return true
	}
	if d == nil || d.ArrangerID == nil {
		return false
	}
	return actor.ActsFor(*d.ArrangerID)
}

// CanConfirmPayment reports whether the actor may mark a commission paid.
// assignedLawyer is true when the actor is the lawyer assigned to the commission's deal.
func CanConfirmPayment(actor shared.Actor, assignedLawyer bool) bool {
	if actor.IsStaffAdmin() {
		return true
	}
	return assignedLawyer && actor.HasRole(shared.RoleLawyer)
}

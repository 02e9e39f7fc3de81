package models

// FeeEngine returns every model of the fee engine schema.
// The SQL migrations are authoritative in production; AutoMigrate on these
// models backs the SQLite test databases.
func FeeEngine() []any {
	return []any{
		&DealModel{},
		&TermsheetModel{},
		&DealAssignmentModel{},
		&PartyModel{},
		&UserProfileModel{},
		&UserRoleModel{},
		&FeePlanModel{},
		&FeeComponentModel{},
		&SubscriptionModel{},
		&FeeEventModel{},
		&InvoiceSequenceModel{},
		&InvoiceModel{},
		&InvoiceLineModel{},
		&InvoicePaymentModel{},
		&CommissionAgreementModel{},
		&PartyCommissionModel{},
		&ApprovalModel{},
		&NotificationModel{},
		&AuditLogModel{},
	}
}

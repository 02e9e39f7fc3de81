// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
//   - base.go: shared tenant aggregate columns (TenantAggregateModel)
//   - fee.go: fee plans, components and fee events
//   - subscription.go: investor subscriptions (allocations)
//   - billing.go: invoices, lines, payments and the yearly number sequence
//   - commission.go: party commissions, agreements and the party read model
//   - deal.go: deal, termsheet and assignment read models
//   - approval.go, notification.go, audit.go, directory.go: supporting tables
package models

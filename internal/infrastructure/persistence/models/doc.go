// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
//   - base.go: columns shared by every aggregate (AggregateModel)
//   - profile.go: society member profiles
package models

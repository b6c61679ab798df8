// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (records, splits, patches) and contracts (interfaces) only.
package domain

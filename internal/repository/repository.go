// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.
// No business logic here — strictly persistence operations.
package repository

// SortKey is one (field, direction) pair of an ordering request. Field names
// are API-level names; implementations map them to columns and reject unknown
// fields with a validation error.
type SortKey struct {
	Field string
	Desc  bool
}

// ListQuery holds the filter, search, ordering, and pagination arguments of a
// list operation. Filters are exact-match and ANDed; Search is a
// case-insensitive substring matched against the entity's designated search
// fields (OR across fields). An unknown filter or sort field fails validation;
// a filter value outside an enum's declared set simply matches nothing.
type ListQuery struct {
	Filters map[string]string
	Search  string
	Sort    []SortKey
	Limit   int
	Offset  int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}

// SummaryCounts are the dashboard counters computed over one broker's scoped
// collections.
type SummaryCounts struct {
	TotalClients       int
	ActiveApplications int
	PendingTasks       int
	UpcomingReminders  int
}

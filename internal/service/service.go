// Package service implements the use cases behind the HTTP handlers: input
// validation, ownership resolution, invariant maintenance, and notification
// fan-out. Services speak apperr so handlers can map outcomes to status codes
// without inspecting messages.
package service

// ListResult is the service-level DTO for a paginated collection.
type ListResult[T any] struct {
	Items []T `json:"data"`
	Total int `json:"total"`
}

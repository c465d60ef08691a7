package model

import "time"

// DocumentType classifies an uploaded client document.
type DocumentType string

const (
	DocumentIdentification DocumentType = "id"
	DocumentIncome         DocumentType = "income"
	DocumentBank           DocumentType = "bank"
	DocumentProperty       DocumentType = "property"
	DocumentOther          DocumentType = "other"
)

// Valid reports whether t belongs to the declared type set.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentIdentification, DocumentIncome, DocumentBank, DocumentProperty, DocumentOther:
		return true
	}
	return false
}

// DocumentStatus is the review status of a document.
type DocumentStatus string

const (
	DocumentPending     DocumentStatus = "pending"
	DocumentApproved    DocumentStatus = "approved"
	DocumentRejected    DocumentStatus = "rejected"
	DocumentUnderReview DocumentStatus = "under_review"
)

// Valid reports whether s belongs to the declared status set.
func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentPending, DocumentApproved, DocumentRejected, DocumentUnderReview:
		return true
	}
	return false
}

// Document is file metadata for a client upload. The bytes themselves live in
// object storage under StoragePath; the store owns nothing but the reference.
type Document struct {
	ID            string         `json:"id"`
	ClientID      string         `json:"client_id"`
	ApplicationID *string        `json:"application_id,omitempty"`
	Title         string         `json:"title"`
	DocumentType  DocumentType   `json:"document_type"`
	StoragePath   string         `json:"storage_path"`
	FileSize      int64          `json:"file_size"`
	ContentType   string         `json:"content_type"`
	Status        DocumentStatus `json:"status"`
	Notes         string         `json:"notes,omitempty"`
	UploadedAt    time.Time      `json:"uploaded_at"`
}

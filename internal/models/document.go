package models

import "time"

type Document struct {
	ID            string    `json:"id" db:"id"`
	UserID        string    `json:"user_id" db:"user_id"`
	Filename      string    `json:"filename" db:"filename"`
	DocumentType  string    `json:"document_type" db:"document_type"`
	ExtractedText string    `json:"extracted_text,omitempty" db:"extracted_text"`
	Analysis      string    `json:"analysis" db:"analysis"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// DocumentSummary excludes the large extracted-text field for listings.
type DocumentSummary struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"user_id" db:"user_id"`
	Filename     string    `json:"filename" db:"filename"`
	DocumentType string    `json:"document_type" db:"document_type"`
	Analysis     string    `json:"analysis" db:"analysis"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

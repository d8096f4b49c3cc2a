// Package types provides type definitions for the résumé analysis data shared across the system.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// AnalyzedAtLayout is the ISO-8601 layout used for HistoryIndexEntry.AnalyzedAt.
const AnalyzedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// MinRating and MaxRating bound Feedback.Rating.
const (
	MinRating = 0
	MaxRating = 10
)

// AnalysisRecord is the full structured result of one résumé analysis.
// Records are written once at upload completion and never mutated.
type AnalysisRecord struct {
	ID              string          `json:"id" validate:"required"`
	FileName        string          `json:"fileName,omitempty"`
	PersonalDetails PersonalDetails `json:"personalDetails"`
	Content         Content         `json:"content"`
	Skills          Skills          `json:"skills"`
	Feedback        Feedback        `json:"feedback"`
}

// PersonalDetails holds the candidate's contact information.
type PersonalDetails struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
	LinkedIn  string `json:"linkedin,omitempty" validate:"omitempty,url"`
	Portfolio string `json:"portfolio,omitempty" validate:"omitempty,url"`
}

// Content is the extracted résumé body.
type Content struct {
	Summary        string           `json:"summary"`
	WorkExperience []WorkExperience `json:"workExperience" validate:"dive"`
	Education      []Education      `json:"education" validate:"dive"`
	Projects       []Project        `json:"projects" validate:"dive"`
	Certifications []string         `json:"certifications"`
}

// WorkExperience is a single position held by the candidate.
type WorkExperience struct {
	Company     string `json:"company" validate:"required"`
	Position    string `json:"position" validate:"required"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Education is a single degree entry.
type Education struct {
	Institution string `json:"institution" validate:"required"`
	Degree      string `json:"degree"`
	Year        string `json:"year"`
}

// Project is a portfolio project listed on the résumé.
type Project struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// Skills groups technical and soft skills.
type Skills struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
}

// Feedback is the reviewer output attached to an analysis.
type Feedback struct {
	Rating          int      `json:"rating" validate:"min=0,max=10"`
	Improvements    []string `json:"improvements"`
	SuggestedSkills []string `json:"suggestedSkills"`
}

// HistoryIndexEntry is the lightweight summary row used for list views.
type HistoryIndexEntry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	FileName   string `json:"fileName"`
	Rating     int    `json:"rating"`
	AnalyzedAt string `json:"analyzedAt"`
}

// UploadFile describes an uploaded file as seen by the upload flow.
type UploadFile struct {
	Name     string `json:"name" validate:"required"`
	Size     int64  `json:"size" validate:"min=0"`
	MimeType string `json:"mimeType"`
}

// Validate validates the AnalysisRecord using the validator.
func (r *AnalysisRecord) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// NewHistoryEntry projects a record into its index entry.
// Name, email and rating are copied from the record so the list view never disagrees with it.
func NewHistoryEntry(record *AnalysisRecord, fileName string, analyzedAt time.Time) HistoryIndexEntry {
	return HistoryIndexEntry{
		ID:         record.ID,
		Name:       record.PersonalDetails.Name,
		Email:      record.PersonalDetails.Email,
		FileName:   fileName,
		Rating:     record.Feedback.Rating,
		AnalyzedAt: analyzedAt.UTC().Format(AnalyzedAtLayout),
	}
}

// RatingLabel returns the human-readable band for a rating.
func RatingLabel(rating int) string {
	switch {
	case rating >= 8:
		return "Excellent"
	case rating >= 6:
		return "Good"
	case rating >= 4:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}

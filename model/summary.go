package model

import (
	"time"

	"github.com/google/uuid"
)

type SummaryType string

const (
	TypeBrief    SummaryType = "Brief"
	TypeDetailed SummaryType = "Detailed"
	TypeKeyPoint SummaryType = "Key Point"
)

type SummaryLength string

const (
	LengthShort  SummaryLength = "Short"
	LengthMedium SummaryLength = "Medium"
	LengthLong   SummaryLength = "Long"
)

// ParseSummaryType maps any input to a known type. Unrecognized values
// degrade to Brief rather than fail.
func ParseSummaryType(s string) SummaryType {
	switch SummaryType(s) {
	case TypeDetailed:
		return TypeDetailed
	case TypeKeyPoint:
		return TypeKeyPoint
	case SummaryType("KeyPoint"):
		return TypeKeyPoint
	default:
		return TypeBrief
	}
}

// ParseSummaryLength maps any input to a known length, defaulting to Medium.
func ParseSummaryLength(s string) SummaryLength {
	switch SummaryLength(s) {
	case LengthShort:
		return LengthShort
	case LengthLong:
		return LengthLong
	default:
		return LengthMedium
	}
}

type Summary struct {
	ID           uuid.UUID     `json:"id"`
	OwnerID      string        `json:"owner_id"`
	VideoURL     string        `json:"video_url"`
	VideoTitle   string        `json:"video_title"`
	ThumbnailURL string        `json:"video_thumbnail_url,omitempty"`
	SummaryText  string        `json:"summary_text"`
	Type         SummaryType   `json:"summary_type"`
	Length       SummaryLength `json:"summary_length"`
	CreatedAt    time.Time     `json:"created_at"`
}

// SummaryMatch is a semantic search hit against the vector index.
type SummaryMatch struct {
	ID          uuid.UUID `json:"id"`
	VideoURL    string    `json:"video_url"`
	VideoTitle  string    `json:"video_title"`
	SummaryText string    `json:"summary_text"`
}

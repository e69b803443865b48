package models

import (
	"time"

	"github.com/google/uuid"
)

// Try-on session statuses.
const (
	TryOnStatusQueued     = "QUEUED"
	TryOnStatusProcessing = "PROCESSING"
	TryOnStatusCompleted  = "COMPLETED"
	TryOnStatusFailed     = "FAILED"
)

// TryOnSession is an ephemeral simulated try-on job kept in Redis. There is
// no real inference behind it: a worker flips the status after a short delay
// and hands back the garment image as the result.
type TryOnSession struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	GarmentID      uuid.UUID  `json:"garment_id"`
	Status         string     `json:"status"`
	InputImageURL  string     `json:"input_image_url"`
	ResultImageURL string     `json:"result_image_url,omitempty"`
	QualityScore   float64    `json:"quality_score,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

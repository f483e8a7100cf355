package model

import "time"

// Record is one body-metrics measurement for a user. Records are
// append-only and retrieved ordered by RecordedAt.
type Record struct {
	ID         uint64    // records.id
	UserID     uint64    // records.user_id
	RecordedAt time.Time // records.recorded_at
	Weight     uint32    // records.weight (kg)
	BodyFat    uint32    // records.body_fat (percent)
	MuscleMass uint32    // records.muscle_mass (kg)
}

package model

import "time"

// OwnPhoto is a workout progress photo saved by a user. Photos are
// private until the owner pushes them to the social feed, which
// flips IsUploaded; the feed only ever shows uploaded photos.
//
// Fields:
//  ID         – primary key identifier.
//  UserID     – owner of the photo.
//  RoutineID  – routine group the photo was taken after (nullable).
//  TakenAt    – capture timestamp.
//  PhotoPath  – storage reference of the image.
//  IsUploaded – whether the photo is visible in the social feed.
type OwnPhoto struct {
	ID         uint64    // own_photos.id
	UserID     uint64    // own_photos.user_id
	RoutineID  *uint64   // own_photos.routine_id (nullable)
	TakenAt    time.Time // own_photos.taken_at
	PhotoPath  string    // own_photos.photo_path
	IsUploaded bool      // own_photos.is_uploaded
}

// MealPhoto is a meal photo saved by a user. Meal photos are private
// and never appear in the social feed.
type MealPhoto struct {
	ID        uint64    // meal_photos.id
	UserID    uint64    // meal_photos.user_id
	TakenAt   time.Time // meal_photos.taken_at
	PhotoPath string    // meal_photos.photo_path
}

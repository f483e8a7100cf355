package model

// ExerciseName is one entry of the fixed exercise catalog. The
// catalog is seeded externally and read-only from the application's
// point of view.
//
// Fields:
//  ID         – numeric identifier of the exercise.
//  Name       – display name (e.g. "Barbell Squat").
//  TargetArea – body area the exercise targets (e.g. "legs").
type ExerciseName struct {
	ID         uint64 // exercise_names.id
	Name       string // exercise_names.name
	TargetArea string // exercise_names.target_area
}

// Routine is one row per (routine group, user, exercise) triple.
// Entries created in the same batch share a RoutineID and start out
// unnamed; a later bulk update assigns the same RoutineName to every
// entry of the group. Sets and reps are edited per entry without
// touching sibling rows.
//
// The triple (UserID, ExerciseID, RoutineID) is unique; replaying a
// batch with an identical triple is a no-op rather than a duplicate.
type Routine struct {
	ID          uint64  // routines.id
	UserID      uint64  // routines.user_id
	ExerciseID  uint64  // routines.exercise_id
	RoutineID   uint64  // routines.routine_id (group identifier)
	RoutineName *string // routines.routine_name (null until assigned)
	Sets        uint32  // routines.sets
	Reps        uint32  // routines.reps
}

package model

import "time"

// Friend is one directed edge in the friend graph: "UserID lists
// FriendID as a friend". An accepted friendship always materializes
// as two rows, (A,B) and (B,A), so that listing the friends of A is
// a single filter on user_id. The ordered pair is unique and a user
// can never befriend themselves.
//
// Mutation and deletion act on a single direction only; removing
// (A,B) leaves (B,A) in place. This asymmetry is intentional and
// exposed to callers as two independent edge operations.
type Friend struct {
	ID        uint64    // friends.id
	UserID    uint64    // friends.user_id
	FriendID  uint64    // friends.friend_id
	CreatedAt time.Time // friends.created_at
}

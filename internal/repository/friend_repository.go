package repository

import (
	"context"
	"database/sql"

	"github.com/fitlink/fitlink-backend/internal/model"
)

// FriendRepo persists the directed friend edges backing mutual
// friendships. Adding a friend writes both directions in a single
// transaction; edge updates and deletions act on one direction only,
// which is a documented property of the system rather than an
// oversight.
type FriendRepo struct{ DB *sql.DB }

func NewFriendRepo(db *sql.DB) *FriendRepo { return &FriendRepo{DB: db} }

// FriendProfile is one friend of a user resolved to the counterpart's
// public profile fields, as returned by ListByUser.
type FriendProfile struct {
	ID           uint64 `json:"id"`
	Nickname     string `json:"nickname"`
	ProfileImage string `json:"profile_image"`
}

// Add creates the mutual friendship between userID and friendID by
// inserting both (userID, friendID) and (friendID, userID) in one
// transaction; if either insert fails, neither is committed.
// Returns ErrSelfFriend when the two ids are equal and
// ErrFriendExists when the edge is already present. Two concurrent
// Add calls for the same pair are resolved by the unique key on the
// ordered pair: the loser's 1062 error is reported as ErrFriendExists.
func (r *FriendRepo) Add(ctx context.Context, userID, friendID uint64) error {
	if userID == friendID {
		return ErrSelfFriend
	}

	var exists bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM friends WHERE user_id=? AND friend_id=?)",
		userID, friendID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return ErrFriendExists
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	edges := [2]model.Friend{
		{UserID: userID, FriendID: friendID},
		{UserID: friendID, FriendID: userID},
	}
	for _, e := range edges {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO friends (user_id, friend_id) VALUES (?,?)", e.UserID, e.FriendID); err != nil {
			if isDuplicateKey(err) {
				return ErrFriendExists
			}
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListByUser returns the friends of userID, each joined to the
// counterpart user's nickname and profile image. A user with no
// friends yields an empty slice, not an error.
func (r *FriendRepo) ListByUser(ctx context.Context, userID uint64) ([]FriendProfile, error) {
	const q = `SELECT u.id, u.nickname, u.profile_image
	           FROM friends f
	           JOIN users u ON u.id = f.friend_id
	           WHERE f.user_id = ?
	           ORDER BY u.nickname, u.id`
	rows, err := r.DB.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	friends := make([]FriendProfile, 0)
	for rows.Next() {
		var p FriendProfile
		if err := rows.Scan(&p.ID, &p.Nickname, &p.ProfileImage); err != nil {
			return nil, err
		}
		friends = append(friends, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return friends, nil
}

// UpdateEdge repoints the single directed edge (userID, oldFriendID)
// at newFriendID. The reverse edge is not touched. Returns
// ErrFriendNotFound when the edge does not exist and ErrFriendExists
// when (userID, newFriendID) is already present. The connection's
// clientFoundRows option makes RowsAffected count matched rows, so
// repointing an edge at the friend it already targets succeeds.
func (r *FriendRepo) UpdateEdge(ctx context.Context, userID, oldFriendID, newFriendID uint64) error {
	if userID == newFriendID {
		return ErrSelfFriend
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE friends SET friend_id=? WHERE user_id=? AND friend_id=?",
		newFriendID, userID, oldFriendID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrFriendExists
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFriendNotFound
	}
	return nil
}

// DeleteEdge removes the single directed edge (userID, friendID).
// The reverse edge survives, so the counterpart still lists userID
// as a friend afterwards. Returns ErrFriendNotFound when absent.
func (r *FriendRepo) DeleteEdge(ctx context.Context, userID, friendID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM friends WHERE user_id=? AND friend_id=?", userID, friendID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFriendNotFound
	}
	return nil
}

// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrSelfFriend indicates that a user tried to befriend
// themselves, while ErrFriendExists signals that the requested
// friendship edge is already present.
package repository

import "errors"

// ErrSelfFriend is returned when a user attempts to add themselves
// as a friend. Handlers should translate this into an HTTP 400
// response.
var ErrSelfFriend = errors.New("cannot befriend yourself")

// ErrFriendExists is returned when the requested friendship edge
// already exists, either found up front or detected through the
// unique key during insert. Handlers should translate this into an
// HTTP 409 response.
var ErrFriendExists = errors.New("friendship already exists")

// ErrFriendNotFound is returned when a directed friend edge that a
// caller wants to update or delete does not exist. Handlers should
// translate this into an HTTP 404 response.
var ErrFriendNotFound = errors.New("friendship not found")

// ErrRoutineNotFound is returned when a routine entry addressed by
// (routine group, user, exercise) does not exist. Handlers should
// translate this into an HTTP 404 response.
var ErrRoutineNotFound = errors.New("routine entry not found")

// ErrPhotoNotFound is returned when a photo does not exist or is not
// owned by the requesting user. Handlers should translate this into
// an HTTP 404 response.
var ErrPhotoNotFound = errors.New("photo not found")

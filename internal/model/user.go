package model

import "time"

// User represents an application user record as stored in the
// `users` table. Accounts are created on first login with the
// external provider identifier; the provider identifier is
// immutable afterwards and login never rewrites the stored
// profile fields even when the provider reports new values.
//
// Fields:
//  ID             – primary key identifier of the user.
//  KakaoID        – unique identifier issued by the identity provider.
//  Nickname       – display name reported at first login.
//  ProfileImage   – URL of the profile image (may be empty).
//  ThumbnailImage – URL of the small profile image (may be empty).
//  Email          – e-mail address; the provider does not always share it.
//  ConnectedAt    – when the provider link was established (nullable).
//  CreatedAt      – timestamp of creation.
//  UpdatedAt      – timestamp of last update.
type User struct {
	ID             uint64     // users.id
	KakaoID        string     // users.kakao_id
	Nickname       string     // users.nickname
	ProfileImage   string     // users.profile_image
	ThumbnailImage string     // users.thumbnail_image
	Email          *string    // users.email (nullable)
	ConnectedAt    *time.Time // users.connected_at (nullable)
	CreatedAt      time.Time  // users.created_at
	UpdatedAt      time.Time  // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. Each
// refresh token belongs to a user; only the SHA-256 hash of the raw
// token value is stored.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}

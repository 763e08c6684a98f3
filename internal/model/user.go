package model

import "time"

// User represents an application user record as stored in the `users`
// table.  Each field corresponds to a column in the database.  The json
// tags are omitted here because these structs are used internally by the
// repository layer; handlers define separate response types with
// appropriate JSON tags.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Username     – unique login name, at least four characters.
//	PasswordHash – bcrypt hashed password.
//	Email        – unique email address.
//	RegDate      – timestamp of registration.
type User struct {
	ID           uint64    // users.user_id
	Username     string    // users.username
	PasswordHash string    // users.password_hash
	Email        string    // users.email
	RegDate      time.Time // users.reg_date
}

// Session models the single active credential of a user in the
// `user_sessions` table.  A user has at most one row here; logging in
// again replaces it atomically.  Only the raw token bytes are stored,
// clients present the hex encoding.
//
// Fields:
//
//	UserID    – owner of the session (primary key).
//	Token     – 28 random bytes presented hex-encoded by the client.
//	CreatedAt – when the session was issued.
type Session struct {
	UserID    uint64    // user_sessions.user_id
	Token     []byte    // user_sessions.token
	CreatedAt time.Time // user_sessions.created_at
}

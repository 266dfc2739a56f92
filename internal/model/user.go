package model

import "time"

// User represents an application user record as stored in the `users`
// table. Each field corresponds to a column in the database. The json tags
// are omitted here because these structs are used internally by the
// repository layer; handlers define separate response types with the
// appropriate JSON shape so the password hash can never leak into a body.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Email        – unique email address, stored lowercased.
//	PasswordHash – bcrypt hashed password; the plaintext is never persisted.
//	FullName     – display name of the user.
//	IsActive     – whether the account may authenticate.
//	IsSuperuser  – elevated privileges bypassing ownership checks.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	FullName     string    // users.full_name
	IsActive     bool      // users.is_active
	IsSuperuser  bool      // users.is_superuser
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// UserUpdate is a partial update of a user row. Nil fields are left
// untouched. IsActive and IsSuperuser may only be set through the
// superuser-only endpoints; the handlers enforce that, not this struct.
type UserUpdate struct {
	Email        *string
	FullName     *string
	PasswordHash *string
	IsActive     *bool
	IsSuperuser  *bool
}

package model

import "time"

// Admin represents an administrator account as stored in the `admins`
// table.  Only administrators use the API; the role claim issued in
// their tokens is always RoleAdmin.
//
// Fields:
//  ID           – primary key identifier.
//  Username     – display name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
type Admin struct {
    ID           uint64    // admins.id
    Username     string    // admins.username
    Email        string    // admins.email
    PasswordHash string    // admins.password_hash
    CreatedAt    time.Time // admins.created_at
}

// RoleAdmin is the role claim carried by administrator access tokens.
const RoleAdmin = "ADMIN"

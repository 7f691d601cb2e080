// Package models defines the records owned by the identity backend.
//
// # Models
//
//   - User: a registered account, identified by a UUID and a unique email
//   - Session: one issued login, keyed by the JWT ID of its token
//
// # Design Principles
//
// 1. **Facts only**: models carry no behavior beyond small helpers
// 2. **Unix timestamps**: all times are stored as seconds since the epoch
// 3. **IDs over pointers**: relationships use ID strings (Session.UserID)
package models

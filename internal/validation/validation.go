// Package validation checks raw credential input before any identity
// provider is contacted. Every function is pure: inputs are never modified
// and failures are returned as field-keyed data, never as errors.
package validation

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf16"
)

// MinPasswordLength is the shortest password accepted at signup and login.
const MinPasswordLength = 6

// Field names a form input that can carry an error.
type Field string

const (
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"
)

// Messages shown to the user.
const (
	MsgEmailRequired   = "Email is required"
	MsgEmailInvalid    = "Please enter a valid email"
	MsgPasswordMissing = "Password is required"
	MsgPasswordShort   = "Password must be at least 6 characters"
	MsgConfirmMissing  = "Please confirm your password"
	MsgConfirmMismatch = "Passwords do not match"
)

// emailRegex rejects every rune isSpace reports.
var emailRegex = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Z, r)
}

// blank reports whether s holds nothing but whitespace.
func blank(s string) bool {
	return strings.TrimFunc(s, isSpace) == ""
}

// length counts UTF-16 code units, so characters outside the Basic
// Multilingual Plane count twice.
func length(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// FieldResult is the outcome of checking a single field.
type FieldResult struct {
	Valid bool
	Error string
}

func ok() FieldResult { return FieldResult{Valid: true} }

func fail(msg string) FieldResult { return FieldResult{Error: msg} }

// FieldErrors maps a field to its error message. A missing key means the
// field is valid.
type FieldErrors map[Field]string

// Get returns the message for f, or "" when f is valid.
func (e FieldErrors) Get(f Field) string {
	return e[f]
}

// Fields returns the failing fields in a stable order.
func (e FieldErrors) Fields() []Field {
	fields := make([]Field, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}

// Error renders the errors as "field: message; ..." so they can travel as
// a single error message.
func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, string(f)+": "+e[f])
	}
	return strings.Join(parts, "; ")
}

// Summary joins the messages in field order, one per line, without field
// names. It is meant for display.
func (e FieldErrors) Summary() string {
	msgs := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		msgs = append(msgs, e[f])
	}
	return strings.Join(msgs, "\n")
}

// Result is the outcome of validating a whole form. Valid is true iff
// Errors is empty.
type Result struct {
	Valid  bool
	Errors FieldErrors
}

// collect runs every check and records each failure. No check is skipped
// because another failed.
func collect(checks map[Field]FieldResult) Result {
	errs := FieldErrors{}
	for f, r := range checks {
		if !r.Valid {
			errs[f] = r.Error
		}
	}
	return Result{Valid: len(errs) == 0, Errors: errs}
}

// ValidateEmail requires a non-blank value shaped like local@domain.tld.
func ValidateEmail(email string) FieldResult {
	if blank(email) {
		return fail(MsgEmailRequired)
	}
	if !emailRegex.MatchString(email) {
		return fail(MsgEmailInvalid)
	}
	return ok()
}

// ValidatePassword requires a non-blank value of at least
// MinPasswordLength UTF-16 code units. Length is measured on the raw input.
func ValidatePassword(password string) FieldResult {
	if blank(password) {
		return fail(MsgPasswordMissing)
	}
	if length(password) < MinPasswordLength {
		return fail(MsgPasswordShort)
	}
	return ok()
}

// ValidateConfirmPassword requires a non-blank confirmation that equals
// password exactly.
func ValidateConfirmPassword(password, confirmPassword string) FieldResult {
	if blank(confirmPassword) {
		return fail(MsgConfirmMissing)
	}
	if password != confirmPassword {
		return fail(MsgConfirmMismatch)
	}
	return ok()
}

// ValidateLoginForm checks email and password independently.
func ValidateLoginForm(email, password string) Result {
	return collect(map[Field]FieldResult{
		FieldEmail:    ValidateEmail(email),
		FieldPassword: ValidatePassword(password),
	})
}

// ValidateSignupForm checks email, password and confirmation independently.
// A mismatch does not hide a password length error.
func ValidateSignupForm(email, password, confirmPassword string) Result {
	return collect(map[Field]FieldResult{
		FieldEmail:           ValidateEmail(email),
		FieldPassword:        ValidatePassword(password),
		FieldConfirmPassword: ValidateConfirmPassword(password, confirmPassword),
	})
}

// Credentials is the raw input held by a form.
type Credentials struct {
	Email           string
	Password        string
	ConfirmPassword string
}

// ValidateLogin validates c as a login form.
func (c Credentials) ValidateLogin() Result {
	return ValidateLoginForm(c.Email, c.Password)
}

// ValidateSignup validates c as a signup form.
func (c Credentials) ValidateSignup() Result {
	return ValidateSignupForm(c.Email, c.Password, c.ConfirmPassword)
}

package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  FieldResult
	}{
		{"empty", "", FieldResult{Error: MsgEmailRequired}},
		{"whitespace only", " \t\n ", FieldResult{Error: MsgEmailRequired}},
		{"missing at", "alice.example.com", FieldResult{Error: MsgEmailInvalid}},
		{"missing tld dot", "alice@example", FieldResult{Error: MsgEmailInvalid}},
		{"empty local part", "@example.com", FieldResult{Error: MsgEmailInvalid}},
		{"double at", "alice@@example.com", FieldResult{Error: MsgEmailInvalid}},
		{"inner space", "ali ce@example.com", FieldResult{Error: MsgEmailInvalid}},
		{"surrounding spaces are not trimmed for the pattern", " alice@example.com ", FieldResult{Error: MsgEmailInvalid}},
		{"trailing dot", "alice@example.", FieldResult{Error: MsgEmailInvalid}},
		{"vertical tab", "a\vb@c.com", FieldResult{Error: MsgEmailInvalid}},
		{"no-break space", "a\u00a0b@c.com", FieldResult{Error: MsgEmailInvalid}},
		{"ideographic space", "a@c\u3000d.com", FieldResult{Error: MsgEmailInvalid}},
		{"byte order mark", "a@c.c\ufeffom", FieldResult{Error: MsgEmailInvalid}},
		{"byte order mark only", "\ufeff", FieldResult{Error: MsgEmailRequired}},
		{"unicode spaces only", "\u00a0\u3000", FieldResult{Error: MsgEmailRequired}},
		{"simple", "a@b.com", FieldResult{Valid: true}},
		{"subdomain", "alice@mail.example.co.uk", FieldResult{Valid: true}},
		{"plus tag", "alice+news@example.com", FieldResult{Valid: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateEmail(tt.email))
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     FieldResult
	}{
		{"empty", "", FieldResult{Error: MsgPasswordMissing}},
		{"whitespace only", "        ", FieldResult{Error: MsgPasswordMissing}},
		{"five chars", "abcde", FieldResult{Error: MsgPasswordShort}},
		{"six chars", "abcdef", FieldResult{Valid: true}},
		{"padding counts toward length", "  abcd", FieldResult{Valid: true}},
		{"multibyte counted by character", "pässw", FieldResult{Error: MsgPasswordShort}},
		{"astral characters count twice", "😀😀😀", FieldResult{Valid: true}},
		{"two astral characters are short", "😀😀a", FieldResult{Error: MsgPasswordShort}},
		{"byte order mark only", "\ufeff\ufeff\ufeff\ufeff\ufeff\ufeff", FieldResult{Error: MsgPasswordMissing}},
		{"long", strings.Repeat("x", 64), FieldResult{Valid: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePassword(tt.password))
		})
	}
}

func TestValidateConfirmPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		confirm  string
		want     FieldResult
	}{
		{"empty", "secret1", "", FieldResult{Error: MsgConfirmMissing}},
		{"whitespace only", "secret1", "   ", FieldResult{Error: MsgConfirmMissing}},
		{"unicode whitespace only", "secret1", "\u00a0\u2003", FieldResult{Error: MsgConfirmMissing}},
		{"mismatch", "secret1", "secret2", FieldResult{Error: MsgConfirmMismatch}},
		{"case sensitive", "Secret1", "secret1", FieldResult{Error: MsgConfirmMismatch}},
		{"no trimming on compare", "secret1", "secret1 ", FieldResult{Error: MsgConfirmMismatch}},
		{"match", "secret1", "secret1", FieldResult{Valid: true}},
		{"match even when password is short", "abc", "abc", FieldResult{Valid: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateConfirmPassword(tt.password, tt.confirm))
		})
	}
}

func TestValidateLoginForm(t *testing.T) {
	t.Run("reports every failing field", func(t *testing.T) {
		got := ValidateLoginForm("", "")
		assert.False(t, got.Valid)
		assert.Equal(t, FieldErrors{
			FieldEmail:    MsgEmailRequired,
			FieldPassword: MsgPasswordMissing,
		}, got.Errors)
	})

	t.Run("bad email does not hide short password", func(t *testing.T) {
		got := ValidateLoginForm("nope", "abc")
		assert.False(t, got.Valid)
		assert.Equal(t, MsgEmailInvalid, got.Errors.Get(FieldEmail))
		assert.Equal(t, MsgPasswordShort, got.Errors.Get(FieldPassword))
	})

	t.Run("valid", func(t *testing.T) {
		got := ValidateLoginForm("a@b.com", "abcdef")
		assert.True(t, got.Valid)
		require.NotNil(t, got.Errors)
		assert.Empty(t, got.Errors)
	})
}

func TestValidateSignupForm(t *testing.T) {
	t.Run("matching short passwords only report length", func(t *testing.T) {
		got := ValidateSignupForm("a@b.com", "short", "short")
		assert.False(t, got.Valid)
		assert.Equal(t, FieldErrors{FieldPassword: MsgPasswordShort}, got.Errors)
	})

	t.Run("mismatch only", func(t *testing.T) {
		got := ValidateSignupForm("a@b.com", "abcdef", "xyz123")
		assert.False(t, got.Valid)
		assert.Equal(t, FieldErrors{FieldConfirmPassword: MsgConfirmMismatch}, got.Errors)
	})

	t.Run("mismatch does not suppress length error", func(t *testing.T) {
		got := ValidateSignupForm("a@b.com", "abc", "abd")
		assert.Equal(t, FieldErrors{
			FieldPassword:        MsgPasswordShort,
			FieldConfirmPassword: MsgConfirmMismatch,
		}, got.Errors)
	})

	t.Run("all empty", func(t *testing.T) {
		got := ValidateSignupForm("", "", "")
		assert.Len(t, got.Errors, 3)
		assert.Equal(t, MsgConfirmMissing, got.Errors.Get(FieldConfirmPassword))
	})

	t.Run("valid", func(t *testing.T) {
		got := Credentials{Email: "a@b.com", Password: "abcdef", ConfirmPassword: "abcdef"}.ValidateSignup()
		assert.True(t, got.Valid)
		assert.Empty(t, got.Errors)
	})
}

func TestValidateDoesNotMutateInput(t *testing.T) {
	c := Credentials{Email: " a@b.com ", Password: " abc ", ConfirmPassword: "x"}
	before := c
	c.ValidateSignup()
	c.ValidateLogin()
	assert.Equal(t, before, c)
}

func TestFieldErrorsError(t *testing.T) {
	errs := FieldErrors{
		FieldPassword: MsgPasswordShort,
		FieldEmail:    MsgEmailInvalid,
	}
	assert.Equal(t, []Field{FieldEmail, FieldPassword}, errs.Fields())
	assert.Equal(t,
		"email: Please enter a valid email; password: Password must be at least 6 characters",
		errs.Error())
	assert.Equal(t, "", FieldErrors{}.Error())
}

func TestFieldErrorsSummary(t *testing.T) {
	errs := FieldErrors{
		FieldPassword: MsgPasswordShort,
		FieldEmail:    MsgEmailInvalid,
	}
	assert.Equal(t, "Please enter a valid email\nPassword must be at least 6 characters", errs.Summary())
	assert.Equal(t, "", FieldErrors{}.Summary())
}

// Package validate holds the stateless rule sets applied to account input.
// Every predicate is evaluated; each failing one contributes a message in
// declaration order.
package validate

import (
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MsgFirstNameRequired = "First name is required."
	MsgLastNameRequired  = "Last name is required."
	MsgEmailRequired     = "Email is required."
	MsgEmailInvalid      = "A valid email is required."
	MsgPasswordRequired  = "Password is required."
	MsgPasswordsMismatch = "Passwords must match."

	MsgPasswordTooShort  = "Password must be at least 10 characters long."
	MsgPasswordUppercase = "Password must contain at least one uppercase letter."
	MsgPasswordLowercase = "Password must contain at least one lowercase letter."
	MsgPasswordDigit     = "Password must contain at least one digit."
	MsgPasswordSpecial   = "Password must contain at least one special character."
)

// MinPasswordLength is counted in characters, not bytes.
const MinPasswordLength = 10

// SpecialCharacters is the fixed set a strong password must draw from.
const SpecialCharacters = "@$!%*?&"

// Violations is an ordered list of rule messages. Empty means valid.
type Violations []string

func (v Violations) Valid() bool { return len(v) == 0 }

// Error joins the messages the way they are reported to callers.
func (v Violations) Error() string { return strings.Join(v, " | ") }

func (v *Violations) check(ok bool, msg string) {
	if !ok {
		*v = append(*v, msg)
	}
}

// Registration validates sign-up input.
func Registration(firstName, lastName, email, password, confirmPassword string) Violations {
	var v Violations
	v.check(notEmpty(firstName), MsgFirstNameRequired)
	v.check(notEmpty(lastName), MsgLastNameRequired)
	v.check(notEmpty(email), MsgEmailRequired)
	v.check(isEmail(email), MsgEmailInvalid)
	v.check(notEmpty(password), MsgPasswordRequired)
	v.check(confirmPassword == password, MsgPasswordsMismatch)
	return v
}

// Login validates credentials input.
func Login(email, password string) Violations {
	var v Violations
	v.check(notEmpty(email), MsgEmailRequired)
	v.check(isEmail(email), MsgEmailInvalid)
	v.check(notEmpty(password), MsgPasswordRequired)
	return v
}

// Password checks the strength rule applied on change and reset.
func Password(pw string) Violations {
	var v Violations
	v.check(utf8.RuneCountInString(pw) >= MinPasswordLength, MsgPasswordTooShort)
	v.check(containsFunc(pw, func(r rune) bool { return r >= 'A' && r <= 'Z' }), MsgPasswordUppercase)
	v.check(containsFunc(pw, func(r rune) bool { return r >= 'a' && r <= 'z' }), MsgPasswordLowercase)
	v.check(containsFunc(pw, unicode.IsDigit), MsgPasswordDigit)
	v.check(strings.ContainsAny(pw, SpecialCharacters), MsgPasswordSpecial)
	return v
}

func notEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

func containsFunc(s string, f func(rune) bool) bool {
	return strings.IndexFunc(s, f) >= 0
}

// isEmail accepts a bare addr-spec: no display name, no angle brackets and
// exactly one '@' with a non-empty local part and domain.
func isEmail(s string) bool {
	if s == "" || strings.TrimSpace(s) != s {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	return at > 0 && at < len(s)-1
}

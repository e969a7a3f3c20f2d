package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovaphlow/pitchfork/service-account-go/internal/account/entity"
)

var testConfig = Config{
	SigningKey: "YourVeryLongSecretKeyThatIsAtLeast32Chars!",
	Issuer:     "https://localhost",
	Audience:   "https://localhost",
}

func newTestIssuer(t *testing.T, now time.Time) *Issuer {
	t.Helper()
	i, err := NewIssuer(testConfig)
	require.NoError(t, err)
	i.now = func() time.Time { return now }
	return i
}

func TestNewIssuer_MissingKey(t *testing.T) {
	_, err := NewIssuer(Config{Issuer: "x"})
	assert.ErrorIs(t, err, ErrMissingSigningKey)
}

func TestIssue_ZeroIssuer(t *testing.T) {
	var i *Issuer
	_, err := i.Issue(entity.NewUser("a", "b", "c@d.e", "p"))
	assert.ErrorIs(t, err, ErrMissingSigningKey)
}

func TestIssueAndParse_Claims(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	i := newTestIssuer(t, now)
	u := entity.NewUser("Ada", "Lovelace", "ada@example.com", "pw")

	signed, err := i.Issue(u)
	require.NoError(t, err)

	claims, err := i.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims.Subject)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "Ada", claims.GivenName)
	assert.Equal(t, "Lovelace", claims.Surname)
	assert.Equal(t, "User", claims.Role)
	assert.Equal(t, "https://localhost", claims.Issuer)
	assert.Equal(t, jwt.ClaimStrings{"https://localhost"}, claims.Audience)
	assert.Equal(t, now, claims.IssuedAt.Time.UTC())
	assert.Equal(t, time.Hour, claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time))
}

func TestIssue_UsesHS256(t *testing.T) {
	i := newTestIssuer(t, time.Now().UTC())
	signed, err := i.Issue(entity.NewUser("Ada", "Lovelace", "ada@example.com", "pw"))
	require.NoError(t, err)

	tok, _, err := jwt.NewParser().ParseUnverified(signed, &Claims{})
	require.NoError(t, err)
	assert.Equal(t, "HS256", tok.Method.Alg())
}

func TestParse_Expired(t *testing.T) {
	issued := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	i := newTestIssuer(t, issued)
	signed, err := i.Issue(entity.NewUser("Ada", "Lovelace", "ada@example.com", "pw"))
	require.NoError(t, err)

	i.now = func() time.Time { return issued.Add(Lifetime + time.Second) }
	_, err = i.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParse_WrongKey(t *testing.T) {
	i := newTestIssuer(t, time.Now().UTC())
	signed, err := i.Issue(entity.NewUser("Ada", "Lovelace", "ada@example.com", "pw"))
	require.NoError(t, err)

	other, err := NewIssuer(Config{SigningKey: "another-key", Issuer: testConfig.Issuer, Audience: testConfig.Audience})
	require.NoError(t, err)
	_, err = other.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_WrongAudience(t *testing.T) {
	i := newTestIssuer(t, time.Now().UTC())
	signed, err := i.Issue(entity.NewUser("Ada", "Lovelace", "ada@example.com", "pw"))
	require.NoError(t, err)

	cfg := testConfig
	cfg.Audience = "https://elsewhere"
	other, err := NewIssuer(cfg)
	require.NoError(t, err)
	_, err = other.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

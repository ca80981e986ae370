package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeRegistration(t *testing.T) {
	in := NormalizeRegistration(RegistrationInput{
		Username: "  JaneDoe ",
		Email:    " Jane@Example.COM ",
		Password: " KeepMe ",
	})
	require.Equal(t, "janedoe", in.Username)
	require.Equal(t, "jane@example.com", in.Email)
	require.Equal(t, " KeepMe ", in.Password, "passwords are never altered")
}

func TestValidateRegistrationAccumulatesEveryViolation(t *testing.T) {
	errs := ValidateRegistration(NormalizeRegistration(RegistrationInput{
		Username: "x!",
		Email:    "not-an-email",
		Password: "short",
	}))

	require.Contains(t, errs, "username can only contain letters and numbers")
	require.Contains(t, errs, "username must be at least 3 characters")
	require.Contains(t, errs, "you must provide a valid email")
	require.Contains(t, errs, "password must be at least 12 characters")
}

func TestValidateRegistrationBounds(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		errs := ValidateRegistration(RegistrationInput{})
		require.Contains(t, errs, "you must provide a username")
		require.Contains(t, errs, "you must provide a valid email")
		require.Contains(t, errs, "you must provide a password")
	})

	t.Run("over maximum lengths", func(t *testing.T) {
		errs := ValidateRegistration(RegistrationInput{
			Username: strings.Repeat("a", 31),
			Email:    "jane@example.com",
			Password: strings.Repeat("p", 51),
		})
		require.Contains(t, errs, "username cannot exceed 30 characters")
		require.Contains(t, errs, "password cannot exceed 50 characters")
	})

	t.Run("acceptable input", func(t *testing.T) {
		errs := ValidateRegistration(RegistrationInput{
			Username: "janedoe42",
			Email:    "jane@example.com",
			Password: "a long enough password",
		})
		require.Empty(t, errs)
	})
}

func TestAvatarURLDerivedFromFoldedEmail(t *testing.T) {
	a := User{Email: "jane@example.com"}
	b := User{Email: "  JANE@Example.com "}

	require.Equal(t, a.AvatarURL(), b.AvatarURL())
	require.True(t, strings.HasPrefix(a.AvatarURL(), "https://gravatar.com/avatar/"))
	require.True(t, strings.HasSuffix(a.AvatarURL(), "?s=128"))
}

func TestPublicProfileHidesPrivateFields(t *testing.T) {
	u := User{ID: 7, Username: "janedoe", Email: "jane@example.com", PasswordHash: "secret"}
	p := u.Public()

	require.Equal(t, "janedoe", p.Username)
	require.Equal(t, u.AvatarURL(), p.Avatar)
}

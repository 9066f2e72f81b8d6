package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avalder/go-bookstore-api/internal/domains/users/adapters/memory"
	"github.com/avalder/go-bookstore-api/internal/domains/users/ports"
	"github.com/avalder/go-bookstore-api/internal/shared/apperror"
)

type staticIssuer struct {
	token string
	last  ports.Identity
}

func (s *staticIssuer) Issue(identity ports.Identity) (string, error) {
	s.last = identity
	return s.token, nil
}

func registerInput() ports.RegisterInput {
	return ports.RegisterInput{Name: "John Smith", Email: "john@mail.com", Password: "abcd1234"}
}

func TestRegister_HashesPassword(t *testing.T) {
	svc := NewService(memory.NewRepository(), &staticIssuer{token: "t"})

	user, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "abcd1234", user.PasswordHash)
	assert.False(t, user.IsAdmin)
}

func TestRegister_EmailTaken(t *testing.T) {
	svc := NewService(memory.NewRepository(), &staticIssuer{token: "t"})
	_, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerInput())
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidArgument))
	assert.Equal(t, "Email is already taken.", apperror.MessageOf(err))
}

func TestRegister_PasswordPolicy(t *testing.T) {
	svc := NewService(memory.NewRepository(), &staticIssuer{token: "t"})
	for _, password := range []string{"short1", "lettersonly", "12345678", "with space1"} {
		input := registerInput()
		input.Password = password
		_, err := svc.Register(context.Background(), input)
		require.Error(t, err, "password %q must be rejected", password)
		assert.True(t, apperror.IsKind(err, apperror.KindInvalidArgument))
	}
}

func TestAuthenticate_IssuesToken(t *testing.T) {
	issuer := &staticIssuer{token: "signed-token"}
	svc := NewService(memory.NewRepository(), issuer)
	input := registerInput()
	input.IsAdmin = true
	registered, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	result, err := svc.Authenticate(context.Background(), "john@mail.com", "abcd1234")
	require.NoError(t, err)

	assert.Equal(t, "signed-token", result.Token)
	assert.Equal(t, registered.ID, result.User.ID)
	assert.Equal(t, registered.ID, issuer.last.UserID)
	assert.True(t, issuer.last.IsAdmin)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	svc := NewService(memory.NewRepository(), &staticIssuer{token: "t"})
	_, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), "john@mail.com", "wrong1234")
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password.", apperror.MessageOf(err))
}

func TestAuthenticate_UnknownEmailSharesMessage(t *testing.T) {
	svc := NewService(memory.NewRepository(), &staticIssuer{token: "t"})

	_, err := svc.Authenticate(context.Background(), "nobody@mail.com", "abcd1234")
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password.", apperror.MessageOf(err))
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(memory.NewRepository(), &staticIssuer{token: "t"})

	_, err := svc.GetByID(context.Background(), "5f4e61c8-0000-4000-8000-000000000000")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	assert.Equal(t, "User with id:5f4e61c8-0000-4000-8000-000000000000 was not found.", apperror.MessageOf(err))
}

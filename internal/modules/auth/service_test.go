package auth

import (
	"context"
	"testing"

	"github.com/mboloapp/mbolo-backend/internal/modules/user"
	"github.com/mboloapp/mbolo-backend/internal/platform/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	byEmail map[string]*user.User
}

func (f *fakeUserRepo) CreateUser(_ context.Context, _ *user.User) error { return nil }

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return u, nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, _ string) (*user.User, error) {
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, _ primitive.ObjectID, _, _, _ string) error {
	return nil
}

func (f *fakeUserRepo) SetImage(_ context.Context, _ primitive.ObjectID, _ storage.Asset) error {
	return nil
}

func (f *fakeUserRepo) SetStore(_ context.Context, _ primitive.ObjectID, _ *primitive.ObjectID) error {
	return nil
}

func repoWithUser(t *testing.T, email, password string) (*fakeUserRepo, *user.User) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &user.User{ID: primitive.NewObjectID(), Email: email, PasswordHash: string(hash)}
	return &fakeUserRepo{byEmail: map[string]*user.User{email: u}}, u
}

func TestLoginAndVerify(t *testing.T) {
	repo, u := repoWithUser(t, "maria@example.com", "secret-password")
	svc := NewService(repo, "test-secret")

	token, got, err := svc.Login(context.Background(), "maria@example.com", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	require.NotEmpty(t, token)

	subject, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.Hex(), subject)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo, _ := repoWithUser(t, "maria@example.com", "secret-password")
	svc := NewService(repo, "test-secret")

	_, _, err := svc.Login(context.Background(), "maria@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "secret-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown email and wrong password look identical")
}

func TestVerifyTokenRejectsForeignSignature(t *testing.T) {
	repo, _ := repoWithUser(t, "maria@example.com", "secret-password")
	token, _, err := NewService(repo, "other-secret").Login(context.Background(), "maria@example.com", "secret-password")
	require.NoError(t, err)

	_, err = NewService(repo, "test-secret").VerifyToken(token)
	assert.Error(t, err)
}

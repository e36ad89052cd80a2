package user

import (
	"context"
	"testing"

	"github.com/mboloapp/mbolo-backend/internal/platform/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type fakeRepo struct {
	byEmail map[string]*User
	byID    map[string]*User
	created []*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byEmail: map[string]*User{}, byID: map[string]*User{}}
}

func (f *fakeRepo) CreateUser(_ context.Context, u *User) error {
	u.ID = primitive.NewObjectID()
	f.byEmail[u.Email] = u
	f.byID[u.ID.Hex()] = u
	f.created = append(f.created, u)
	return nil
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (*User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return u, nil
}

func (f *fakeRepo) GetUserByID(_ context.Context, id string) (*User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return u, nil
}

func (f *fakeRepo) UpdateProfile(_ context.Context, _ primitive.ObjectID, _, _, _ string) error {
	return nil
}

func (f *fakeRepo) SetImage(_ context.Context, _ primitive.ObjectID, _ storage.Asset) error {
	return nil
}

func (f *fakeRepo) SetStore(_ context.Context, _ primitive.ObjectID, _ *primitive.ObjectID) error {
	return nil
}

type noopUploader struct{}

func (noopUploader) Upload(_ context.Context, _, _ string) (storage.Asset, error) {
	return storage.Asset{URL: "u", PublicID: "p"}, nil
}

func (noopUploader) UploadRaw(_ context.Context, _, _ string) (storage.Asset, error) {
	return storage.Asset{}, nil
}

func (noopUploader) Update(_ context.Context, _, _, _ string) (storage.Asset, error) {
	return storage.Asset{}, nil
}

func (noopUploader) Delete(_ context.Context, _ string) error { return nil }

func TestRegisterUser(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, noopUploader{})

	u, err := svc.RegisterUser(context.Background(), RegisterRequest{
		UserName: "maria",
		Email:    "maria@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)
	assert.False(t, u.ID.IsZero())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret-password")))
	assert.NotEqual(t, "secret-password", u.PasswordHash)
}

func TestRegisterUserValidation(t *testing.T) {
	svc := NewService(newFakeRepo(), noopUploader{})
	cases := []RegisterRequest{
		{UserName: "ab", Email: "a@b.co", Password: "longenough"},
		{UserName: "maria", Email: "not-an-email", Password: "longenough"},
		{UserName: "maria", Email: "a@b.co", Password: "short"},
	}
	for _, req := range cases {
		_, err := svc.RegisterUser(context.Background(), req)
		require.Error(t, err, "request %+v should be rejected", req)
	}
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, noopUploader{})

	req := RegisterRequest{UserName: "maria", Email: "maria@example.com", Password: "secret-password"}
	_, err := svc.RegisterUser(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.RegisterUser(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
	assert.Len(t, repo.created, 1)
}

func TestUpdateProfile(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, noopUploader{})

	u, err := svc.RegisterUser(context.Background(), RegisterRequest{
		UserName: "maria", Email: "maria@example.com", Password: "secret-password",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), u.ID.Hex(),
		UpdateProfileRequest{UserName: "maria.o", Mobile: "+240222", Location: "Malabo"}, "avatar.jpg")
	require.NoError(t, err)
	assert.Equal(t, "maria.o", updated.UserName)
	require.NotNil(t, updated.Image)
	assert.Equal(t, "p", updated.Image.PublicID)
}

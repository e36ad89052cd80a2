package user

import (
	"context"
	"fmt"
	"regexp"

	"github.com/mboloapp/mbolo-backend/internal/platform/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Service defines user account business logic.
type Service interface {
	// RegisterUser validates and creates a new account.
	RegisterUser(ctx context.Context, req RegisterRequest) (*User, error)

	// GetUser retrieves a user by hex id.
	GetUser(ctx context.Context, id string) (*User, error)

	// UpdateProfile updates the caller's profile, optionally replacing the
	// avatar with the file at avatarPath.
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest, avatarPath string) (*User, error)
}

// RegisterRequest holds data for creating an account.
type RegisterRequest struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Mobile   string `json:"mobile,omitempty"`
	Location string `json:"location,omitempty"`
}

// UpdateProfileRequest holds the mutable profile fields.
type UpdateProfileRequest struct {
	UserName string `json:"userName"`
	Mobile   string `json:"mobile"`
	Location string `json:"location"`
}

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type service struct {
	repo     Repository
	uploader storage.Uploader
}

// NewService creates a new user service.
func NewService(repo Repository, uploader storage.Uploader) Service {
	return &service{repo: repo, uploader: uploader}
}

func (s *service) RegisterUser(ctx context.Context, req RegisterRequest) (*User, error) {
	if len(req.UserName) < 3 {
		return nil, fmt.Errorf("userName must be at least 3 characters")
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, fmt.Errorf("email is not valid")
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	if _, err := s.repo.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email is already registered")
	} else if err != mongo.ErrNoDocuments {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		UserName:     req.UserName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Mobile:       req.Mobile,
		Location:     req.Location,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest, avatarPath string) (*User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	if len(req.UserName) < 3 {
		return nil, fmt.Errorf("userName must be at least 3 characters")
	}

	if err := s.repo.UpdateProfile(ctx, u.ID, req.UserName, req.Mobile, req.Location); err != nil {
		return nil, err
	}
	u.UserName = req.UserName
	u.Mobile = req.Mobile
	u.Location = req.Location

	if avatarPath != "" {
		var asset storage.Asset
		if u.Image != nil && u.Image.PublicID != "" {
			asset, err = s.uploader.Update(ctx, u.Image.PublicID, avatarPath, "usuarios")
		} else {
			asset, err = s.uploader.Upload(ctx, avatarPath, "usuarios")
		}
		if err != nil {
			return nil, fmt.Errorf("upload avatar: %w", err)
		}
		if err := s.repo.SetImage(ctx, u.ID, asset); err != nil {
			return nil, err
		}
		u.Image = &asset
	}
	return u, nil
}

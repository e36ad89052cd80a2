package store

import (
	"context"
	"fmt"
	"log"

	"github.com/mboloapp/mbolo-backend/internal/modules/user"
	"github.com/mboloapp/mbolo-backend/internal/platform/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// LocationChecker reports whether a location reference exists. Implemented by
// the catalog service.
type LocationChecker interface {
	LocationExists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// Service defines store business logic.
type Service interface {
	// CreateStore validates ownership, uploads logo and banner, and creates
	// the store. One store per owner.
	CreateStore(ctx context.Context, req CreateStoreRequest, logoPath, bannerPath string) (*Store, error)

	// GetStore retrieves a store by hex id.
	GetStore(ctx context.Context, id string) (*Store, error)

	// GetStoreByOwner retrieves the store owned by a user.
	GetStoreByOwner(ctx context.Context, ownerID string) (*Store, error)

	// ListStores returns all stores.
	ListStores(ctx context.Context) ([]*Store, error)

	// UpdateStore updates store fields, optionally replacing logo/banner.
	UpdateStore(ctx context.Context, id string, req UpdateStoreRequest, logoPath, bannerPath string) (*Store, error)

	// DeleteStore removes the store and its blob assets.
	DeleteStore(ctx context.Context, id string) error

	// AddPaymentMethod registers a payout method, uploading its image if given.
	AddPaymentMethod(ctx context.Context, storeID string, req AddPaymentMethodRequest, imagePath string) (*Store, error)

	// RemovePaymentMethod deletes a registered method and its image asset.
	RemovePaymentMethod(ctx context.Context, storeID, name, accountNumber string) error
}

type service struct {
	repo      Repository
	userRepo  user.Repository
	locations LocationChecker
	uploader  storage.Uploader
}

// NewService creates a new store service.
func NewService(repo Repository, userRepo user.Repository, locations LocationChecker, uploader storage.Uploader) Service {
	return &service{repo: repo, userRepo: userRepo, locations: locations, uploader: uploader}
}

const assetFolder = "tiendas"

func (s *service) CreateStore(ctx context.Context, req CreateStoreRequest, logoPath, bannerPath string) (*Store, error) {
	var missing []string
	for field, v := range map[string]string{
		"name": req.Name, "description": req.Description, "phone_number": req.PhoneNumber,
		"address": req.Address, "owner": req.Owner, "specific_location": req.SpecificLocation,
	} {
		if v == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required fields: %v", missing)
	}
	if logoPath == "" || bannerPath == "" {
		return nil, fmt.Errorf("logo and banner images are required")
	}

	ownerID, err := primitive.ObjectIDFromHex(req.Owner)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id")
	}
	addressID, err := primitive.ObjectIDFromHex(req.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid address id")
	}

	owner, err := s.userRepo.GetUserByID(ctx, req.Owner)
	if err != nil {
		return nil, fmt.Errorf("owner does not exist")
	}
	if owner.StoreID != nil {
		return nil, fmt.Errorf("user already owns a store")
	}
	if _, err := s.repo.GetStoreByOwner(ctx, ownerID); err == nil {
		return nil, fmt.Errorf("user already owns a store")
	} else if err != mongo.ErrNoDocuments {
		return nil, err
	}
	if ok, err := s.locations.LocationExists(ctx, addressID); err != nil {
		return nil, err
	} else if !ok {
		return nil, fmt.Errorf("location does not exist")
	}

	logo, err := s.uploader.Upload(ctx, logoPath, assetFolder)
	if err != nil {
		return nil, fmt.Errorf("upload logo: %w", err)
	}
	banner, err := s.uploader.Upload(ctx, bannerPath, assetFolder)
	if err != nil {
		// the logo already made it to the blob store; undo it
		if delErr := s.uploader.Delete(ctx, logo.PublicID); delErr != nil {
			log.Printf("store create: cleanup logo %s: %v", logo.PublicID, delErr)
		}
		return nil, fmt.Errorf("upload banner: %w", err)
	}

	st := &Store{
		Name:             req.Name,
		Description:      req.Description,
		Logo:             logo,
		Banner:           banner,
		PhoneNumber:      req.PhoneNumber,
		Address:          addressID,
		SpecificLocation: req.SpecificLocation,
		Owner:            ownerID,
	}
	if err := s.repo.CreateStore(ctx, st); err != nil {
		for _, a := range []storage.Asset{logo, banner} {
			if delErr := s.uploader.Delete(ctx, a.PublicID); delErr != nil {
				log.Printf("store create: cleanup %s: %v", a.PublicID, delErr)
			}
		}
		return nil, fmt.Errorf("create store: %w", err)
	}

	if err := s.userRepo.SetStore(ctx, ownerID, &st.ID); err != nil {
		return nil, fmt.Errorf("link store to owner: %w", err)
	}
	return st, nil
}

func (s *service) GetStore(ctx context.Context, id string) (*Store, error) {
	return s.repo.GetStoreByID(ctx, id)
}

func (s *service) GetStoreByOwner(ctx context.Context, ownerID string) (*Store, error) {
	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id")
	}
	return s.repo.GetStoreByOwner(ctx, oid)
}

func (s *service) ListStores(ctx context.Context) ([]*Store, error) {
	return s.repo.ListStores(ctx)
}

func (s *service) UpdateStore(ctx context.Context, id string, req UpdateStoreRequest, logoPath, bannerPath string) (*Store, error) {
	st, err := s.repo.GetStoreByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("store not found: %w", err)
	}

	if req.Name != "" {
		st.Name = req.Name
	}
	if req.Description != "" {
		st.Description = req.Description
	}
	if req.PhoneNumber != "" {
		st.PhoneNumber = req.PhoneNumber
	}
	if req.SpecificLocation != "" {
		st.SpecificLocation = req.SpecificLocation
	}
	if req.Address != "" {
		addressID, err := primitive.ObjectIDFromHex(req.Address)
		if err != nil {
			return nil, fmt.Errorf("invalid address id")
		}
		if ok, err := s.locations.LocationExists(ctx, addressID); err != nil {
			return nil, err
		} else if !ok {
			return nil, fmt.Errorf("location does not exist")
		}
		st.Address = addressID
	}

	if logoPath != "" {
		logo, err := s.uploader.Update(ctx, st.Logo.PublicID, logoPath, assetFolder)
		if err != nil {
			return nil, fmt.Errorf("update logo: %w", err)
		}
		st.Logo = logo
	}
	if bannerPath != "" {
		banner, err := s.uploader.Update(ctx, st.Banner.PublicID, bannerPath, assetFolder)
		if err != nil {
			return nil, fmt.Errorf("update banner: %w", err)
		}
		st.Banner = banner
	}

	if err := s.repo.UpdateStore(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *service) DeleteStore(ctx context.Context, id string) error {
	st, err := s.repo.GetStoreByID(ctx, id)
	if err != nil {
		return fmt.Errorf("store not found: %w", err)
	}

	for _, a := range []storage.Asset{st.Logo, st.Banner} {
		if a.PublicID == "" {
			continue
		}
		if err := s.uploader.Delete(ctx, a.PublicID); err != nil {
			log.Printf("store delete: remove asset %s: %v", a.PublicID, err)
		}
	}
	for _, pm := range st.PaymentMethods {
		if pm.Image != nil && pm.Image.PublicID != "" {
			if err := s.uploader.Delete(ctx, pm.Image.PublicID); err != nil {
				log.Printf("store delete: remove payment method asset %s: %v", pm.Image.PublicID, err)
			}
		}
	}

	if err := s.userRepo.SetStore(ctx, st.Owner, nil); err != nil {
		return fmt.Errorf("unlink store from owner: %w", err)
	}
	return s.repo.DeleteStore(ctx, st.ID)
}

func (s *service) AddPaymentMethod(ctx context.Context, storeID string, req AddPaymentMethodRequest, imagePath string) (*Store, error) {
	if req.Name == "" || req.AccountNumber == "" {
		return nil, fmt.Errorf("name and accountNumber are required")
	}
	st, err := s.repo.GetStoreByID(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("store not found: %w", err)
	}
	for _, pm := range st.PaymentMethods {
		if pm.Name == req.Name && pm.AccountNumber == req.AccountNumber {
			return nil, fmt.Errorf("payment method already registered")
		}
	}

	pm := PaymentMethod{Name: req.Name, AccountNumber: req.AccountNumber}
	if imagePath != "" {
		img, err := s.uploader.Upload(ctx, imagePath, assetFolder)
		if err != nil {
			return nil, fmt.Errorf("upload payment method image: %w", err)
		}
		pm.Image = &img
	}

	if err := s.repo.AddPaymentMethod(ctx, st.ID, pm); err != nil {
		if pm.Image != nil {
			if delErr := s.uploader.Delete(ctx, pm.Image.PublicID); delErr != nil {
				log.Printf("payment method add: cleanup %s: %v", pm.Image.PublicID, delErr)
			}
		}
		return nil, err
	}
	st.PaymentMethods = append(st.PaymentMethods, pm)
	return st, nil
}

func (s *service) RemovePaymentMethod(ctx context.Context, storeID, name, accountNumber string) error {
	st, err := s.repo.GetStoreByID(ctx, storeID)
	if err != nil {
		return fmt.Errorf("store not found: %w", err)
	}
	removed, err := s.repo.RemovePaymentMethod(ctx, st.ID, name, accountNumber)
	if err != nil {
		return err
	}
	if removed.Image != nil && removed.Image.PublicID != "" {
		if err := s.uploader.Delete(ctx, removed.Image.PublicID); err != nil {
			log.Printf("payment method remove: delete asset %s: %v", removed.Image.PublicID, err)
		}
	}
	return nil
}

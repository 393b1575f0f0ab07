package services

import (
	"context"
	"fmt"

	"github.com/mdcampos/wants-api/internal/apperrors"
	"github.com/mdcampos/wants-api/internal/models"
	"github.com/mdcampos/wants-api/internal/storage"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WantStore is the persistence capability the service needs. Implemented
// by repository.WantRepository.
type WantStore interface {
	CreateWant(ctx context.Context, want *models.Want) (*models.Want, error)
	GetWantByID(ctx context.Context, id primitive.ObjectID) (*models.Want, error)
	UpdateWantInTransaction(ctx context.Context, id primitive.ObjectID, mutate func(ctx context.Context, want *models.Want) error) error
}

// UserResolver resolves user ids to accounts. Absence is (nil, nil).
// Implemented by services.UserService.
type UserResolver interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// WantService encapsulates the business logic for the Want lifecycle:
// creation, retrieval and partial update including image attachment.
type WantService struct {
	store   WantStore
	users   UserResolver
	storage storage.Storage
}

// NewWantService creates a new instance of WantService.
func NewWantService(store WantStore, users UserResolver, blobStorage storage.Storage) *WantService {
	return &WantService{
		store:   store,
		users:   users,
		storage: blobStorage,
	}
}

// CreateWantOptions are the caller-supplied fields for a new want.
type CreateWantOptions struct {
	Creator     primitive.ObjectID
	Title       string
	Description string
	Visibility  models.WantVisibility
}

// UpdateWantOptions describes a partial update. A nil field is left
// untouched; a non-nil pointer is applied even when it points at a zero
// value, so Description can be explicitly cleared. Title and Admins must
// not be set to empty values.
type UpdateWantOptions struct {
	Admins      []primitive.ObjectID
	Title       *string
	Description *string
	Visibility  *models.WantVisibility
	Location    *models.WantLocation
	ImageData   []byte
}

func (o UpdateWantOptions) isEmpty() bool {
	return o.Admins == nil &&
		o.Title == nil &&
		o.Description == nil &&
		o.Visibility == nil &&
		o.Location == nil &&
		len(o.ImageData) == 0
}

// CreateWant creates a new want owned by opts.Creator. The creator must
// resolve to an existing user. The returned want is the canonical stored
// representation, re-read after the insert.
func (s *WantService) CreateWant(ctx context.Context, opts CreateWantOptions) (*models.Want, error) {
	if opts.Title == "" {
		return nil, fmt.Errorf("want must have a title: %w", apperrors.ErrInvalidInput)
	}

	creator, err := s.users.GetUserByID(ctx, opts.Creator)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		logrus.WithField("creatorID", opts.Creator.Hex()).Warn("Want creator does not exist")
		return nil, fmt.Errorf("creator %s: %w", opts.Creator.Hex(), apperrors.ErrNotFound)
	}

	want := &models.Want{
		Creator:     creator.ID,
		Admins:      []primitive.ObjectID{creator.ID},
		Title:       opts.Title,
		Description: opts.Description,
		Visibility:  opts.Visibility,
	}

	created, err := s.store.CreateWant(ctx, want)
	if err != nil {
		return nil, err
	}

	stored, err := s.store.GetWantByID(ctx, created.ID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("failed to read back created want %s", created.ID.Hex())
	}

	logrus.WithFields(logrus.Fields{
		"wantID":  stored.ID.Hex(),
		"creator": stored.Creator.Hex(),
	}).Info("Want created successfully")

	return stored, nil
}

// GetWantByID retrieves a want by id. Absence (including a malformed id,
// which cannot name any stored want) is returned as (nil, nil).
func (s *WantService) GetWantByID(ctx context.Context, id string) (*models.Want, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return s.store.GetWantByID(ctx, objID)
}

// UpdateWantByID applies a partial update to the want. Fields absent from
// opts are left untouched. When every field is unset the stored want is
// returned unchanged with no transaction and no updated_at bump. If image
// bytes are supplied they are sniffed, uploaded and attached inside the
// same transaction, before the document write, so a failed upload aborts
// the whole update.
func (s *WantService) UpdateWantByID(ctx context.Context, id string, opts UpdateWantOptions) (*models.Want, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("want %s: %w", id, apperrors.ErrNotFound)
	}

	current, err := s.store.GetWantByID(ctx, objID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("want %s: %w", id, apperrors.ErrNotFound)
	}

	if opts.Title != nil && *opts.Title == "" {
		return nil, fmt.Errorf("want must have a title: %w", apperrors.ErrInvalidInput)
	}
	if opts.Admins != nil && len(opts.Admins) == 0 {
		return nil, fmt.Errorf("want must have at least one admin: %w", apperrors.ErrInvalidInput)
	}

	if opts.isEmpty() {
		return current, nil
	}

	err = s.store.UpdateWantInTransaction(ctx, objID, func(ctx context.Context, want *models.Want) error {
		if opts.Admins != nil {
			want.Admins = opts.Admins
		}
		if opts.Title != nil {
			want.Title = *opts.Title
		}
		if opts.Description != nil {
			want.Description = *opts.Description
		}
		if opts.Visibility != nil {
			want.Visibility = *opts.Visibility
		}
		if opts.Location != nil {
			want.Visibility.Location = opts.Location
		}
		if len(opts.ImageData) > 0 {
			imageURL, err := s.uploadWantImage(ctx, objID, opts.ImageData)
			if err != nil {
				return err
			}
			want.Image = &models.WantImage{URL: imageURL}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.store.GetWantByID(ctx, objID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("want %s: %w", id, apperrors.ErrNotFound)
	}

	logrus.WithField("wantID", updated.ID.Hex()).Info("Want updated successfully")
	return updated, nil
}

// uploadWantImage publishes image bytes for the want and returns the
// public URL. The file type comes from sniffing the bytes, never from
// anything the client declared. The object key is derived from the want
// id, so a later upload for the same want overwrites the previous object.
func (s *WantService) uploadWantImage(ctx context.Context, wantID primitive.ObjectID, data []byte) (string, error) {
	want, err := s.store.GetWantByID(ctx, wantID)
	if err != nil {
		return "", err
	}
	if want == nil {
		return "", fmt.Errorf("want %s: %w", wantID.Hex(), apperrors.ErrNotFound)
	}

	ext, mimeType, err := storage.DetectImageType(data)
	if err != nil {
		return "", fmt.Errorf("could not determine file type of want image: %w", err)
	}

	objectKey := fmt.Sprintf("%s.%s", wantID.Hex(), ext)

	imageURL, err := s.storage.Upload(ctx, objectKey, data, mimeType)
	if err != nil {
		return "", fmt.Errorf("failed to upload want image: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"wantID":    wantID.Hex(),
		"objectKey": objectKey,
		"mimeType":  mimeType,
	}).Info("Want image uploaded")

	return imageURL, nil
}

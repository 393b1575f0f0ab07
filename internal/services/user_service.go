package services

import (
	"context"

	"github.com/mdcampos/wants-api/internal/models"
	"github.com/mdcampos/wants-api/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService exposes read-only access to user accounts. Account
// management (registration, login, passwords) lives in another system.
type UserService struct {
	repo *repository.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// GetUserByID resolves a user by id. Absence is (nil, nil).
func (s *UserService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

package service

import (
	"context"
	"errors"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"

	"gorm.io/gorm"
)

type UserService interface {
	List(ctx context.Context, page, pageSize int) ([]models.User, int64, error)
	Create(ctx context.Context, req dto.CreateUserRequest) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, username string, req dto.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, username string) error
	// UpdateMe applies a self-service profile update. The stored role always
	// wins: this path cannot change it.
	UpdateMe(ctx context.Context, user *models.User, req dto.UpdateMeRequest) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, page, pageSize int) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, page, pageSize)
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*models.User, error) {
	if req.Username == models.ReservedUsername {
		return nil, ErrReservedUsername
	}
	if !models.ValidUsername(req.Username) {
		return nil, ErrInvalidUsername
	}

	role := models.RoleUser
	if req.Role != "" {
		parsed, err := models.ParseRole(req.Role)
		if err != nil {
			return nil, ErrInvalidRole
		}
		role = parsed
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSignupConflict
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, username string, req dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := applyProfileFields(user, req.Username, req.Email, req.FirstName, req.LastName, req.Bio); err != nil {
		return nil, err
	}
	if req.Role != nil {
		role, err := models.ParseRole(*req.Role)
		if err != nil {
			return nil, ErrInvalidRole
		}
		user.Role = role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSignupConflict
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, username string) error {
	err := s.userRepo.Delete(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	return err
}

func (s *userService) UpdateMe(ctx context.Context, user *models.User, req dto.UpdateMeRequest) (*models.User, error) {
	role := user.Role

	if err := applyProfileFields(user, req.Username, req.Email, req.FirstName, req.LastName, req.Bio); err != nil {
		return nil, err
	}
	user.Role = role

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSignupConflict
		}
		return nil, err
	}
	return user, nil
}

func applyProfileFields(user *models.User, username, email, firstName, lastName, bio *string) error {
	if username != nil {
		if *username == models.ReservedUsername {
			return ErrReservedUsername
		}
		if !models.ValidUsername(*username) {
			return ErrInvalidUsername
		}
		user.Username = *username
	}
	if email != nil {
		user.Email = *email
	}
	if firstName != nil {
		user.FirstName = *firstName
	}
	if lastName != nil {
		user.LastName = *lastName
	}
	if bio != nil {
		user.Bio = *bio
	}
	return nil
}

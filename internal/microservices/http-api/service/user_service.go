package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
)

// UserService is administrator user management plus the caller's own profile.
type UserService interface {
	List(ctx context.Context, search string, page repository.Page) ([]models.User, int64, error)
	Get(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, req dto.CreateUserRequest) (*models.User, error)
	// CreateSuperuser stores a new admin with the superuser flag in a single write.
	CreateSuperuser(ctx context.Context, username, email string) (*models.User, error)
	Update(ctx context.Context, username string, req dto.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, username string) error
	UpdateProfile(ctx context.Context, me *models.User, req dto.UpdateProfileRequest) (*models.User, error)
	SetRole(ctx context.Context, username string, role models.Role) (*models.User, error)
}

type userService struct {
	userRepo  repository.UserRepository
	validator *UserValidator
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo, validator: NewUserValidator(userRepo)}
}

func (s *userService) List(ctx context.Context, search string, page repository.Page) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, strings.TrimSpace(search), page)
}

func (s *userService) Get(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, notFound("user")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*models.User, error) {
	return s.create(ctx, req, false)
}

func (s *userService) CreateSuperuser(ctx context.Context, username, email string) (*models.User, error) {
	return s.create(ctx, dto.CreateUserRequest{
		Username: username,
		Email:    email,
		Role:     string(models.RoleAdmin),
	}, true)
}

func (s *userService) create(ctx context.Context, req dto.CreateUserRequest, superuser bool) (*models.User, error) {
	role := models.RoleUser
	if req.Role != "" {
		parsed, err := models.ParseRole(req.Role)
		if err != nil {
			return nil, fieldError("role", err.Error())
		}
		role = parsed
	}

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if err := s.checkIdentity(ctx, &username, &email, ""); err != nil {
		return nil, err
	}

	user := &models.User{
		Username:    username,
		Email:       email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Bio:         req.Bio,
		Role:        role,
		IsSuperuser: superuser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, storeError("create user", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, username string, req dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.Get(ctx, username)
	if err != nil {
		return nil, err
	}

	var newUsername, newEmail *string
	if req.Username != nil && *req.Username != user.Username {
		v := strings.TrimSpace(*req.Username)
		newUsername = &v
	}
	if req.Email != nil && !strings.EqualFold(*req.Email, user.Email) {
		v := strings.TrimSpace(*req.Email)
		newEmail = &v
	}
	if err := s.checkIdentity(ctx, newUsername, newEmail, user.ID); err != nil {
		return nil, err
	}

	if req.Role != nil {
		role, err := models.ParseRole(*req.Role)
		if err != nil {
			return nil, fieldError("role", err.Error())
		}
		user.Role = role
	}
	if newUsername != nil {
		user.Username = *newUsername
	}
	if req.Email != nil {
		user.Email = strings.TrimSpace(*req.Email)
	}
	applyNames(user, req.FirstName, req.LastName, req.Bio)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, storeError("update user", err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, username string) error {
	user, err := s.Get(ctx, username)
	if err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		if repository.IsNotFound(err) {
			return notFound("user")
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// UpdateProfile never touches username or role.
func (s *userService) UpdateProfile(ctx context.Context, me *models.User, req dto.UpdateProfileRequest) (*models.User, error) {
	if me == nil {
		return nil, ErrUnauthenticated
	}

	if req.Email != nil && !strings.EqualFold(*req.Email, me.Email) {
		v := strings.TrimSpace(*req.Email)
		if err := s.checkIdentity(ctx, nil, &v, me.ID); err != nil {
			return nil, err
		}
	}
	if req.Email != nil {
		me.Email = strings.TrimSpace(*req.Email)
	}
	applyNames(me, req.FirstName, req.LastName, req.Bio)

	if err := s.userRepo.Update(ctx, me); err != nil {
		return nil, storeError("update profile", err)
	}
	return me, nil
}

func (s *userService) SetRole(ctx context.Context, username string, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, fieldError("role", fmt.Sprintf("%q is not a valid role.", role))
	}
	user, err := s.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	return user, nil
}

// checkIdentity validates whichever of username/email is non-nil, collecting
// field messages from both before failing.
func (s *userService) checkIdentity(ctx context.Context, username, email *string, excludeID string) error {
	ve := &ValidationError{}
	if username != nil {
		if err := s.validator.ValidateUsername(ctx, *username, excludeID); err != nil {
			if !isValidation(err) {
				return err
			}
			ve.Merge(err)
		}
	}
	if email != nil {
		if err := s.validator.ValidateEmail(ctx, *email, excludeID); err != nil {
			if !isValidation(err) {
				return err
			}
			ve.Merge(err)
		}
	}
	return ve.OrNil()
}

func applyNames(u *models.User, first, last, bio *string) {
	if first != nil {
		u.FirstName = *first
	}
	if last != nil {
		u.LastName = *last
	}
	if bio != nil {
		u.Bio = bio
	}
}

func isValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// storeError turns unique violations into conflicts and wraps everything else.
func storeError(op string, err error) error {
	if constraint, ok := repository.UniqueViolation(err); ok {
		return conflictFromConstraint(constraint)
	}
	return fmt.Errorf("%s: %w", op, err)
}

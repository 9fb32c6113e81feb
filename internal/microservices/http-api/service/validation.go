package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"yamdb/internal/microservices/http-api/repository"
)

const (
	maxUsernameLen = 150
	maxEmailLen    = 254
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9@+\-_]+$`)
	emailValidate   = validator.New()
)

// CheckUsernameFormat validates shape only; it does not touch the store.
func CheckUsernameFormat(raw string) error {
	ve := &ValidationError{}
	switch {
	case raw == "":
		ve.Add("username", "This field is required.")
	case len(raw) > maxUsernameLen:
		ve.Add("username", fmt.Sprintf("Ensure this field has no more than %d characters.", maxUsernameLen))
	case strings.EqualFold(raw, "me"):
		ve.Add("username", `The username "me" is reserved.`)
	case !usernamePattern.MatchString(raw):
		ve.Add("username", "Username must start with a letter or digit and contain only letters, digits and @/+/-/_.")
	}
	return ve.OrNil()
}

// CheckEmailFormat validates shape only.
func CheckEmailFormat(raw string) error {
	if raw == "" {
		return fieldError("email", "This field is required.")
	}
	if err := emailValidate.Var(raw, fmt.Sprintf("email,max=%d", maxEmailLen)); err != nil {
		return fieldError("email", "Enter a valid email address.")
	}
	return nil
}

// ValidateYear rejects years in the future relative to now.
func ValidateYear(year int, now time.Time) error {
	if year > now.Year() {
		return fieldError("year", fmt.Sprintf("Year must not be later than %d.", now.Year()))
	}
	return nil
}

// UserValidator runs the store-backed checks on usernames and emails.
type UserValidator struct {
	users repository.UserRepository
}

func NewUserValidator(users repository.UserRepository) *UserValidator {
	return &UserValidator{users: users}
}

// ValidateUsername checks format and case-insensitive uniqueness, ignoring excludeID.
func (v *UserValidator) ValidateUsername(ctx context.Context, raw, excludeID string) error {
	if err := CheckUsernameFormat(raw); err != nil {
		return err
	}
	taken, err := v.users.UsernameTaken(ctx, raw, excludeID)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if taken {
		return fieldError("username", "A user with that username already exists.")
	}
	return nil
}

// ValidateEmail checks format and case-insensitive uniqueness, ignoring excludeID.
func (v *UserValidator) ValidateEmail(ctx context.Context, raw, excludeID string) error {
	if err := CheckEmailFormat(raw); err != nil {
		return err
	}
	taken, err := v.users.EmailTaken(ctx, raw, excludeID)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if taken {
		return fieldError("email", "A user with that email already exists.")
	}
	return nil
}

// conflictFromConstraint maps a violated unique index to the field it guards.
func conflictFromConstraint(constraint string) error {
	switch {
	case strings.Contains(constraint, "username"):
		return &ConflictError{Field: "username", Message: "A user with that username already exists."}
	case strings.Contains(constraint, "email"):
		return &ConflictError{Field: "email", Message: "A user with that email already exists."}
	case strings.Contains(constraint, "slug"):
		return &ConflictError{Field: "slug", Message: "This slug is already in use."}
	case strings.Contains(constraint, "name"):
		return &ConflictError{Field: "name", Message: "This name is already in use."}
	case constraint == "unique_author":
		return &ConflictError{Field: "non_field_errors", Message: "You have already reviewed this title."}
	}
	return &ConflictError{Field: "non_field_errors", Message: "Record already exists."}
}

// ValidateName rejects names that are empty once surrounding whitespace is removed.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fieldError("name", "This field may not be blank.")
	}
	return nil
}

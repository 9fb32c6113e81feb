package command

import (
	"context"
	"testing"
	"time"

	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) UsernameTaken(ctx context.Context, username, excludeID string) (bool, error) {
	args := m.Called(username, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	args := m.Called(email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context, search string, page repository.Page) ([]models.User, int64, error) {
	args := m.Called(search, page)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *mockUserRepo) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return m.Called(id, at).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	return m.Called(id).Error(0)
}

func TestCreateAdmin(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("UsernameTaken", "root", "").Return(false, nil)
	repo.On("EmailTaken", "root@example.com", "").Return(false, nil)
	repo.On("Create", mock.MatchedBy(func(u *models.User) bool {
		return u.IsSuperuser && u.Role == models.RoleAdmin
	})).Return(nil).Once()

	user, err := createAdmin(context.Background(), repo, "root", "root@example.com")

	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.True(t, user.IsSuperuser)
	assert.True(t, user.IsAdmin())
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestCreateAdmin_TakenUsername(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("UsernameTaken", "root", "").Return(true, nil)
	repo.On("EmailTaken", "root@example.com", "").Return(false, nil)

	_, err := createAdmin(context.Background(), repo, "root", "root@example.com")

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCommandTree(t *testing.T) {
	for _, name := range []string{"migrate", "create-admin", "set-role"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}

	assert.Error(t, setRoleCmd.Args(setRoleCmd, []string{"alice"}))
	assert.NoError(t, setRoleCmd.Args(setRoleCmd, []string{"alice", "moderator"}))
}

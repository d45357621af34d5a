package team

import (
	"context"
	"testing"

	"review-rotation-service/internal/http/api"
	"review-rotation-service/internal/models"
	repo "review-rotation-service/internal/repository"
	"review-rotation-service/internal/service/mocks"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*TeamService, *mocks.TeamProvider, *mocks.UserProvider) {
	teamProvider := mocks.NewTeamProvider(t)
	userProvider := mocks.NewUserProvider(t)

	s := NewTeamService(mocks.TxManager{}, teamProvider, userProvider)
	return s, teamProvider, userProvider
}

func TestAdd_Success(t *testing.T) {
	s, teamProvider, userProvider := newService(t)

	members := []api.TeamMember{
		{UserID: "u1", Username: "Alice", IsActive: true},
		{UserID: "u2", Username: "Bob", IsActive: false},
	}

	teamProvider.On("Create", mock.Anything, "backend").Return(nil)
	userProvider.On("Save", mock.Anything, &models.User{
		UserID: "u1", Username: "Alice", TeamName: "backend", IsActive: true,
	}).Return(nil)
	userProvider.On("Save", mock.Anything, &models.User{
		UserID: "u2", Username: "Bob", TeamName: "backend", IsActive: false,
	}).Return(nil)

	resp, err := s.Add(context.Background(), "backend", members)

	require.NoError(t, err)
	require.Equal(t, "backend", resp.TeamName)
	require.True(t, resp.IsActive)
	require.Equal(t, members, resp.Members)
}

func TestAdd_TeamExists(t *testing.T) {
	s, teamProvider, _ := newService(t)

	teamProvider.On("Create", mock.Anything, "backend").Return(repo.ErrTeamExists)

	_, err := s.Add(context.Background(), "backend", []api.TeamMember{{UserID: "u1"}})

	require.ErrorIs(t, err, repo.ErrTeamExists)
}

func TestAdd_DuplicateMember(t *testing.T) {
	s, _, _ := newService(t)

	_, err := s.Add(context.Background(), "backend", []api.TeamMember{
		{UserID: "u1", Username: "Alice"},
		{UserID: "u1", Username: "Alice again"},
	})

	require.ErrorIs(t, err, ErrDuplicateMember)
}

func TestGet_Success(t *testing.T) {
	s, teamProvider, userProvider := newService(t)

	teamProvider.On("GetByName", mock.Anything, "backend").
		Return(&models.Team{Name: "backend", IsActive: true}, nil)
	userProvider.On("GetUsersInTeam", mock.Anything, "backend").
		Return([]*models.User{
			{UserID: "u1", Username: "Alice", TeamName: "backend", IsActive: true},
		}, nil)

	resp, err := s.Get(context.Background(), "backend")

	require.NoError(t, err)
	require.Equal(t, "backend", resp.TeamName)
	require.True(t, resp.IsActive)
	require.Len(t, resp.Members, 1)
	require.Equal(t, "u1", resp.Members[0].UserID)
}

func TestGet_NotFound(t *testing.T) {
	s, teamProvider, _ := newService(t)

	teamProvider.On("GetByName", mock.Anything, "ghosts").Return(nil, repo.ErrNotFound)

	_, err := s.Get(context.Background(), "ghosts")

	require.ErrorIs(t, err, repo.ErrNotFound)
}

func TestDeactivate_CascadesToMembers(t *testing.T) {
	s, teamProvider, userProvider := newService(t)

	teamProvider.On("GetByName", mock.Anything, "backend").
		Return(&models.Team{Name: "backend", IsActive: true}, nil)
	teamProvider.On("SetActive", mock.Anything, "backend", false).Return(nil)
	userProvider.On("SetTeamMembersActive", mock.Anything, "backend", false).
		Return(int64(2), nil)
	userProvider.On("GetUsersInTeam", mock.Anything, "backend").
		Return([]*models.User{
			{UserID: "u1", Username: "Alice", TeamName: "backend", IsActive: false},
			{UserID: "u2", Username: "Bob", TeamName: "backend", IsActive: false},
		}, nil)

	resp, err := s.Deactivate(context.Background(), "backend")

	require.NoError(t, err)
	require.False(t, resp.IsActive)
	for _, m := range resp.Members {
		require.False(t, m.IsActive)
	}
}

func TestDeactivate_AlreadyInactiveIsNoOp(t *testing.T) {
	s, teamProvider, userProvider := newService(t)

	teamProvider.On("GetByName", mock.Anything, "backend").
		Return(&models.Team{Name: "backend", IsActive: false}, nil)
	userProvider.On("GetUsersInTeam", mock.Anything, "backend").
		Return([]*models.User{}, nil)

	resp, err := s.Deactivate(context.Background(), "backend")

	require.NoError(t, err)
	require.False(t, resp.IsActive)
	teamProvider.AssertNotCalled(t, "SetActive", mock.Anything, "backend", false)
}

func TestDeactivate_NotFound(t *testing.T) {
	s, teamProvider, _ := newService(t)

	teamProvider.On("GetByName", mock.Anything, "ghosts").Return(nil, repo.ErrNotFound)

	_, err := s.Deactivate(context.Background(), "ghosts")

	require.ErrorIs(t, err, repo.ErrNotFound)
}

package team

import (
	"context"
	"errors"

	"review-rotation-service/internal/http/api"
	"review-rotation-service/internal/metrics"
	"review-rotation-service/internal/models"
	"review-rotation-service/internal/service"
)

// ErrDuplicateMember is returned when the members list references the same
// user id twice.
var ErrDuplicateMember = errors.New("members list contains duplicate user ids")

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=TeamProvider
type TeamProvider interface {
	Create(ctx context.Context, teamName string) error
	GetByName(ctx context.Context, teamName string) (*models.Team, error)
	SetActive(ctx context.Context, teamName string, active bool) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=UserProvider
type UserProvider interface {
	Save(ctx context.Context, user *models.User) error
	GetUsersInTeam(ctx context.Context, teamName string) ([]*models.User, error)
	SetTeamMembersActive(ctx context.Context, teamName string, isActive bool) (int64, error)
}

type TeamService struct {
	trm          service.TransactionManager
	teamProvider TeamProvider
	userProvider UserProvider
}

func NewTeamService(
	trm service.TransactionManager,
	teamProvider TeamProvider,
	userProvider UserProvider,
) *TeamService {
	return &TeamService{
		trm:          trm,
		teamProvider: teamProvider,
		userProvider: userProvider,
	}
}

func (s *TeamService) Add(ctx context.Context, teamName string, users []api.TeamMember) (*api.TeamSchema, error) {
	seen := make(map[string]struct{}, len(users))
	for _, u := range users {
		if _, dup := seen[u.UserID]; dup {
			return nil, ErrDuplicateMember
		}
		seen[u.UserID] = struct{}{}
	}

	resp := &api.TeamSchema{}
	members := make([]api.TeamMember, 0, len(users))

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		if err := s.teamProvider.Create(ctx, teamName); err != nil {
			return err
		}

		for _, u := range users {
			user := &models.User{
				UserID:   u.UserID,
				Username: u.Username,
				TeamName: teamName,
				IsActive: u.IsActive,
			}

			if err := s.userProvider.Save(ctx, user); err != nil {
				return err
			}

			members = append(members, api.TeamMember{
				UserID:   user.UserID,
				Username: user.Username,
				IsActive: user.IsActive,
			})
		}

		resp.TeamName = teamName
		resp.IsActive = true
		resp.Members = members
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.TeamsCreated.Inc()
	metrics.UsersCreated.Add(float64(len(members)))
	return resp, nil
}

func (s *TeamService) Get(ctx context.Context, teamName string) (*api.TeamSchema, error) {
	resp := &api.TeamSchema{}

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		team, err := s.teamProvider.GetByName(ctx, teamName)
		if err != nil {
			return err
		}

		users, err := s.userProvider.GetUsersInTeam(ctx, teamName)
		if err != nil {
			return err
		}

		members := make([]api.TeamMember, 0, len(users))
		for _, u := range users {
			members = append(members, api.TeamMember{
				UserID:   u.UserID,
				Username: u.Username,
				IsActive: u.IsActive,
			})
		}

		resp.TeamName = team.Name
		resp.IsActive = team.IsActive
		resp.Members = members
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// Deactivate retires the team and cascades the inactive flag to every member.
// Already-inactive teams are a no-op success. Reviewers of open PRs keep
// their assignments; eligibility loss surfaces on the next reassignment.
func (s *TeamService) Deactivate(ctx context.Context, teamName string) (*api.TeamSchema, error) {
	resp := &api.TeamSchema{}
	var deactivated bool

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		team, err := s.teamProvider.GetByName(ctx, teamName)
		if err != nil {
			return err
		}

		if team.IsActive {
			if err := s.teamProvider.SetActive(ctx, teamName, false); err != nil {
				return err
			}
			if _, err := s.userProvider.SetTeamMembersActive(ctx, teamName, false); err != nil {
				return err
			}
			deactivated = true
		}

		users, err := s.userProvider.GetUsersInTeam(ctx, teamName)
		if err != nil {
			return err
		}

		members := make([]api.TeamMember, 0, len(users))
		for _, u := range users {
			members = append(members, api.TeamMember{
				UserID:   u.UserID,
				Username: u.Username,
				IsActive: u.IsActive,
			})
		}

		resp.TeamName = teamName
		resp.IsActive = false
		resp.Members = members
		return nil
	})
	if err != nil {
		return nil, err
	}

	if deactivated {
		metrics.TeamsDeactivated.Inc()
	}
	return resp, nil
}

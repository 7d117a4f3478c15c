package stats

import (
	"cmp"
	"context"
	"slices"

	"repo-stats-admin/internal/http/api"
	"repo-stats-admin/internal/models"
)

const (
	SortStars     = "stars"
	SortRepos     = "repos"
	SortFollowers = "followers"
	SortCreated   = "created"

	OrderAsc  = "asc"
	OrderDesc = "desc"

	DefaultLimit = 50
	MaxLimit     = 100
)

type UserQuery struct {
	Limit  int
	Offset int
	Sort   string
	Order  string
	// Type keeps only users of that type ("User", "Organization") when set.
	Type string
}

// ListUsers filters, sorts and pages the per-user statistics.
func (s *StatsService) ListUsers(ctx context.Context, q UserQuery) (*api.UsersResponse, error) {
	var users []*models.UserRepoStats
	err := s.trm.Do(ctx, func(ctx context.Context) error {
		var err error
		users, err = s.statsProvider.GetUserRepoStats(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	users = slices.Clone(users)
	if q.Type != "" {
		users = slices.DeleteFunc(users, func(u *models.UserRepoStats) bool {
			return u.Type == nil || *u.Type != q.Type
		})
	}

	key := sortKey(q.Sort)
	slices.SortStableFunc(users, func(a, b *models.UserRepoStats) int {
		if q.Order == OrderAsc {
			return cmp.Compare(key(a), key(b))
		}
		return cmp.Compare(key(b), key(a))
	})

	total := len(users)
	start := min(q.Offset, total)
	end := min(start+q.Limit, total)

	resp := &api.UsersResponse{
		Users:   make([]api.UserSchema, 0, end-start),
		Total:   total,
		Limit:   q.Limit,
		Offset:  q.Offset,
		HasMore: end < total,
	}
	for _, u := range users[start:end] {
		resp.Users = append(resp.Users, toUserSchema(u))
	}

	return resp, nil
}

func sortKey(sort string) func(*models.UserRepoStats) int64 {
	switch sort {
	case SortRepos:
		return func(u *models.UserRepoStats) int64 { return u.TotalReposInDB }
	case SortFollowers:
		return func(u *models.UserRepoStats) int64 {
			if u.Followers == nil {
				return 0
			}
			return *u.Followers
		}
	case SortCreated:
		return func(u *models.UserRepoStats) int64 {
			if u.AccountCreatedAt == nil {
				return 0
			}
			return u.AccountCreatedAt.UnixNano()
		}
	default:
		return func(u *models.UserRepoStats) int64 { return u.TotalStars }
	}
}

func toUserSchema(u *models.UserRepoStats) api.UserSchema {
	return api.UserSchema{
		Login:            u.Login,
		Name:             u.Name,
		Type:             u.Type,
		Followers:        u.Followers,
		Following:        u.Following,
		PublicRepos:      u.PublicRepos,
		TotalReposInDB:   u.TotalReposInDB,
		TotalStars:       u.TotalStars,
		AvgStars:         u.AvgStars,
		TopLanguage:      u.TopLanguage,
		LanguagesCount:   u.LanguagesCount,
		LastRepoUpdate:   u.LastRepoUpdate,
		AccountCreatedAt: u.AccountCreatedAt,
	}
}

package stats

import (
	"context"
	"time"

	"repo-stats-admin/internal/models"
	"repo-stats-admin/internal/service"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=StatsProvider
type StatsProvider interface {
	GetUserRepoStats(ctx context.Context) ([]*models.UserRepoStats, error)
	GetDataQualityChecks(ctx context.Context) (*models.DataQualityChecks, error)
}

type StatsService struct {
	statsProvider StatsProvider
	trm           service.TransactionManager
	now           func() time.Time
}

func NewStatsService(trm service.TransactionManager, statsProvider StatsProvider) *StatsService {
	return &StatsService{
		trm:           trm,
		statsProvider: statsProvider,
		now:           time.Now,
	}
}

// BuildReport runs the aggregate and, when it returned any users, the data-quality counts.
func (s *StatsService) BuildReport(ctx context.Context) (*models.StatsReport, error) {
	report := &models.StatsReport{
		Users: []*models.UserRepoStats{},
	}

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		users, err := s.statsProvider.GetUserRepoStats(ctx)
		if err != nil {
			return err
		}
		if len(users) == 0 {
			return nil
		}

		checks, err := s.statsProvider.GetDataQualityChecks(ctx)
		if err != nil {
			return err
		}

		report.Users = users
		report.Checks = checks
		return nil
	})
	if err != nil {
		return nil, err
	}

	report.Summary = Summarize(report.Users)
	report.GeneratedAt = s.now()
	return report, nil
}

func (s *StatsService) GetChecks(ctx context.Context) (*models.DataQualityChecks, error) {
	return s.statsProvider.GetDataQualityChecks(ctx)
}

// Summarize totals the report rows. Averages only cover users that have repositories.
func Summarize(users []*models.UserRepoStats) models.StatsSummary {
	sum := models.StatsSummary{UsersReturned: len(users)}

	for _, u := range users {
		if u.TotalReposInDB > 0 {
			sum.UsersWithRepos++
		}
		sum.TotalRepos += u.TotalReposInDB
		sum.TotalStars += u.TotalStars
	}
	sum.UsersWithoutRepos = sum.UsersReturned - sum.UsersWithRepos

	if sum.UsersWithRepos > 0 {
		sum.HasUsersWithRepos = true
		sum.AvgReposPerUser = float64(sum.TotalRepos) / float64(sum.UsersWithRepos)
		sum.AvgStarsPerUser = float64(sum.TotalStars) / float64(sum.UsersWithRepos)
	}

	return sum
}

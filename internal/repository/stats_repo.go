package repo

import (
	"context"

	"repo-stats-admin/internal/lib"
	"repo-stats-admin/internal/models"

	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"
)

// userRepoStatsQuery ranks each user's languages with ROW_NUMBER, so ties on the top
// language are broken by the engine.
const userRepoStatsQuery = `
	WITH user_repo_stats AS (
		SELECT
			ur.user_id,
			COUNT(*) AS total_repos_in_db,
			SUM(ur.stargazers_count) AS total_stars,
			AVG(ur.stargazers_count) AS avg_stars,
			MAX(ur.updated_at) AS last_repo_update
		FROM user_repositories ur
		WHERE ur.user_id IS NOT NULL
		GROUP BY ur.user_id
	),
	user_language_stats AS (
		SELECT
			ur.user_id,
			ur.language,
			COUNT(*) AS lang_count,
			ROW_NUMBER() OVER (PARTITION BY ur.user_id ORDER BY COUNT(*) DESC) AS rn
		FROM user_repositories ur
		WHERE ur.user_id IS NOT NULL AND ur.language IS NOT NULL AND ur.language != ''
		GROUP BY ur.user_id, ur.language
	),
	user_top_language AS (
		SELECT user_id, language AS top_language
		FROM user_language_stats
		WHERE rn = 1
	),
	user_languages_count AS (
		SELECT
			user_id,
			COUNT(DISTINCT language) AS languages_count
		FROM user_repositories
		WHERE user_id IS NOT NULL AND language IS NOT NULL AND language != ''
		GROUP BY user_id
	)
	SELECT
		u.id,
		u.login AS user_login,
		u.name AS user_name,
		u.type AS user_type,
		u.followers,
		u.following,
		u.public_repos,
		COALESCE(urs.total_repos_in_db, 0) AS total_repos_in_db,
		COALESCE(urs.total_stars, 0) AS total_stars,
		ROUND(COALESCE(urs.avg_stars, 0), 2) AS avg_stars,
		utl.top_language,
		COALESCE(ulc.languages_count, 0) AS languages_count,
		urs.last_repo_update,
		u.created_at AS account_created_at
	FROM users u
	LEFT JOIN user_repo_stats urs ON u.id = urs.user_id
	LEFT JOIN user_top_language utl ON u.id = utl.user_id
	LEFT JOIN user_languages_count ulc ON u.id = ulc.user_id
	ORDER BY COALESCE(urs.total_stars, 0) DESC;
`

const (
	tableUsers            = "users"
	tableUserRepositories = "user_repositories"
)

type StatisticsRepo struct {
	db     *sqlx.DB
	getter *trmsqlx.CtxGetter
}

func NewStatisticsRepo(db *sqlx.DB, c *trmsqlx.CtxGetter) *StatisticsRepo {
	return &StatisticsRepo{
		db:     db,
		getter: c,
	}
}

func (r *StatisticsRepo) GetUserRepoStats(ctx context.Context) ([]*models.UserRepoStats, error) {
	const op = "stats_repo.GetUserRepoStats"

	stats := []*models.UserRepoStats{}
	err := r.getter.DefaultTrOrDB(ctx, r.db).SelectContext(ctx, &stats, userRepoStatsQuery)
	if err != nil {
		return nil, lib.Err(op, classify(err))
	}

	return stats, nil
}

func (r *StatisticsRepo) GetDataQualityChecks(ctx context.Context) (*models.DataQualityChecks, error) {
	const op = "stats_repo.GetDataQualityChecks"

	var checks models.DataQualityChecks
	for _, q := range DataQualityQueries() {
		n, err := r.count(ctx, q.Dataset)
		if err != nil {
			return nil, lib.Err(op+"."+q.Name, classify(err))
		}
		switch q.Name {
		case CheckTotalUsers:
			checks.TotalUsers = n
		case CheckTotalRepoRecords:
			checks.TotalRepoRecords = n
		case CheckUniqueOwners:
			checks.UniqueOwners = n
		case CheckNullUserID:
			checks.NullUserIDRecords = n
		}
	}

	return &checks, nil
}

func (r *StatisticsRepo) count(ctx context.Context, ds *goqu.SelectDataset) (int64, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return 0, err
	}

	var n int64
	if err := r.getter.DefaultTrOrDB(ctx, r.db).GetContext(ctx, &n, query, args...); err != nil {
		return 0, err
	}
	return n, nil
}

const (
	CheckTotalUsers       = "total_users"
	CheckTotalRepoRecords = "total_repo_records"
	CheckUniqueOwners     = "unique_owners"
	CheckNullUserID       = "null_user_id_records"
)

type NamedQuery struct {
	Name    string
	Dataset *goqu.SelectDataset
}

// DataQualityQueries are the supplementary counts run after the report.
func DataQualityQueries() []NamedQuery {
	pg := goqu.Dialect(dialectPostgres)

	return []NamedQuery{
		{
			Name:    CheckTotalUsers,
			Dataset: pg.From(tableUsers).Select(goqu.COUNT(goqu.Star())).Prepared(true),
		},
		{
			Name:    CheckTotalRepoRecords,
			Dataset: pg.From(tableUserRepositories).Select(goqu.COUNT(goqu.Star())).Prepared(true),
		},
		{
			Name: CheckUniqueOwners,
			Dataset: pg.From(tableUserRepositories).
				Select(goqu.L("COUNT(DISTINCT ?)", goqu.C("owner"))).
				Where(goqu.C("owner").IsNotNull()).
				Prepared(true),
		},
		{
			Name: CheckNullUserID,
			Dataset: pg.From(tableUserRepositories).
				Select(goqu.COUNT(goqu.Star())).
				Where(goqu.C("user_id").IsNull()).
				Prepared(true),
		},
	}
}

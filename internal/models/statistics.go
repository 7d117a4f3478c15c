package models

import "time"

// UserRepoStats is one row of the per-user repository aggregate.
// Nullable user columns are pointers; aggregates are coalesced to zero by the query.
type UserRepoStats struct {
	ID               int64      `db:"id"`
	Login            string     `db:"user_login"`
	Name             *string    `db:"user_name"`
	Type             *string    `db:"user_type"`
	Followers        *int64     `db:"followers"`
	Following        *int64     `db:"following"`
	PublicRepos      *int64     `db:"public_repos"`
	TotalReposInDB   int64      `db:"total_repos_in_db"`
	TotalStars       int64      `db:"total_stars"`
	AvgStars         float64    `db:"avg_stars"`
	TopLanguage      *string    `db:"top_language"`
	LanguagesCount   int64      `db:"languages_count"`
	LastRepoUpdate   *time.Time `db:"last_repo_update"`
	AccountCreatedAt *time.Time `db:"account_created_at"`
}

type DataQualityChecks struct {
	TotalUsers        int64 `db:"total_users"`
	TotalRepoRecords  int64 `db:"total_repo_records"`
	UniqueOwners      int64 `db:"unique_owners"`
	NullUserIDRecords int64 `db:"null_user_id_records"`
}

type StatsSummary struct {
	UsersReturned     int
	UsersWithRepos    int
	UsersWithoutRepos int
	TotalRepos        int64
	TotalStars        int64
	AvgReposPerUser   float64
	AvgStarsPerUser   float64
	HasUsersWithRepos bool
}

type StatsReport struct {
	Users       []*UserRepoStats
	Summary     StatsSummary
	Checks      *DataQualityChecks
	GeneratedAt time.Time
}

package api

import "time"

type UserSchema struct {
	Login            string     `json:"login"`
	Name             *string    `json:"name"`
	Type             *string    `json:"type"`
	Followers        *int64     `json:"followers"`
	Following        *int64     `json:"following"`
	PublicRepos      *int64     `json:"public_repos"`
	TotalReposInDB   int64      `json:"total_repos_in_db"`
	TotalStars       int64      `json:"total_stars"`
	AvgStars         float64    `json:"avg_stars"`
	TopLanguage      *string    `json:"top_language"`
	LanguagesCount   int64      `json:"languages_count"`
	LastRepoUpdate   *time.Time `json:"last_repo_update"`
	AccountCreatedAt *time.Time `json:"account_created_at"`
}

package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"repo-stats-admin/internal/http/api"
	"repo-stats-admin/internal/lib/sl"
	"repo-stats-admin/internal/models"
	svc "repo-stats-admin/internal/service/stats"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=statsService --structname=MockStatsService --output=../mocks --outpkg=mocks
type statsService interface {
	ListUsers(ctx context.Context, q svc.UserQuery) (*api.UsersResponse, error)
	GetChecks(ctx context.Context) (*models.DataQualityChecks, error)
}

type StatsHandler struct {
	log     *slog.Logger
	service statsService
}

func NewStatsHandler(log *slog.Logger, s statsService) *StatsHandler {
	return &StatsHandler{
		log:     log,
		service: s,
	}
}

var (
	sortFields = []string{svc.SortStars, svc.SortRepos, svc.SortFollowers, svc.SortCreated}
	orders     = []string{svc.OrderDesc, svc.OrderAsc}
)

func (h *StatsHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.stats.ListUsers"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q, err := parseUserQuery(r)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error(api.ErrBadRequest, err.Error()))
		return
	}

	resp, err := h.service.ListUsers(r.Context(), q)
	if err != nil {
		log.Error("error while listing users", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, api.InternalError())
		return
	}

	render.JSON(w, r, resp)
}

func (h *StatsHandler) GetChecks(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.stats.GetChecks"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	checks, err := h.service.GetChecks(r.Context())
	if err != nil {
		log.Error("error while counting data quality checks", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, api.InternalError())
		return
	}

	render.JSON(w, r, api.ChecksResponse{
		TotalUsers:        checks.TotalUsers,
		TotalRepoRecords:  checks.TotalRepoRecords,
		UniqueOwners:      checks.UniqueOwners,
		NullUserIDRecords: checks.NullUserIDRecords,
	})
}

func parseUserQuery(r *http.Request) (svc.UserQuery, error) {
	values := r.URL.Query()

	q := svc.UserQuery{
		Limit: svc.DefaultLimit,
		Sort:  strings.ToLower(values.Get("sort")),
		Order: strings.ToLower(values.Get("order")),
		Type:  values.Get("type"),
	}

	if v := values.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return q, errors.New("limit must be a positive integer")
		}
		if limit > svc.MaxLimit {
			return q, fmt.Errorf("limit must not exceed %d", svc.MaxLimit)
		}
		q.Limit = limit
	}

	if v := values.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return q, errors.New("offset must be a non-negative integer")
		}
		q.Offset = offset
	}

	if q.Sort == "" {
		q.Sort = svc.SortStars
	} else if !slices.Contains(sortFields, q.Sort) {
		return q, fmt.Errorf("sort must be one of: %s", strings.Join(sortFields, ", "))
	}

	if q.Order == "" {
		q.Order = svc.OrderDesc
	} else if !slices.Contains(orders, q.Order) {
		return q, errors.New("order must be 'desc' or 'asc'. can be omitted: 'desc' by default")
	}

	return q, nil
}

package apifootball

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/israelis-abroad/footballmap/internal/platform/logging"
	"github.com/israelis-abroad/footballmap/internal/platform/metrics"
	"github.com/israelis-abroad/footballmap/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultBaseURL = "https://api-football-v1.p.rapidapi.com/v3"
	defaultHost    = "api-football-v1.p.rapidapi.com"
	maxBodyBytes   = 6 << 20

	headerAPIKey = "x-rapidapi-key"
	headerHost   = "x-rapidapi-host"

	providerName = "apifootball"

	// worldCountry is what the provider reports for international competitions.
	worldCountry = "World"
)

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Host       string
	Timeout    time.Duration
	Logger     *logging.Logger
	Metrics    *metrics.Recorder
}

// Client talks to API-Football through RapidAPI. Every call is a single
// attempt; callers decide how to degrade.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	host       string
	logger     *logging.Logger
	metrics    *metrics.Recorder
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = defaultHost
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		host:       host,
		logger:     logger,
		metrics:    cfg.Metrics,
	}
}

func (c *Client) ListPlayersByLeague(ctx context.Context, season, leagueID, page int) (usecase.ExternalPlayerPage, error) {
	if season <= 0 || leagueID <= 0 {
		return usecase.ExternalPlayerPage{}, fmt.Errorf("%w: season and league id must be greater than zero", usecase.ErrInvalidInput)
	}
	query := map[string]string{
		"season": strconv.Itoa(season),
		"league": strconv.Itoa(leagueID),
	}
	if page > 1 {
		query["page"] = strconv.Itoa(page)
	}

	var payload envelope[PlayerItem]
	if err := c.doJSON(ctx, "/players", query, &payload); err != nil {
		return usecase.ExternalPlayerPage{}, err
	}

	out := usecase.ExternalPlayerPage{
		Players:     make([]usecase.ExternalPlayerEntry, 0, len(payload.Data)),
		CurrentPage: payload.Paging.Current,
		TotalPages:  payload.Paging.Total,
	}
	for _, item := range payload.Data {
		out.Players = append(out.Players, mapPlayerEntry(item))
	}
	return out, nil
}

func (c *Client) CountLeagues(ctx context.Context) (int, error) {
	var payload envelope[LeagueItem]
	if err := c.doJSON(ctx, "/leagues", nil, &payload); err != nil {
		return 0, err
	}
	return len(payload.Data), nil
}

func (c *Client) SearchTeams(ctx context.Context, name string) ([]usecase.ExternalTeam, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: team name is required", usecase.ErrInvalidInput)
	}

	var payload envelope[TeamItem]
	if err := c.doJSON(ctx, "/teams", map[string]string{"search": name}, &payload); err != nil {
		return nil, err
	}
	return mapTeams(payload.Data), nil
}

func (c *Client) ListTeamsByLeague(ctx context.Context, leagueID, season int) ([]usecase.ExternalTeam, error) {
	query := map[string]string{
		"league": strconv.Itoa(leagueID),
		"season": strconv.Itoa(season),
	}
	var payload envelope[TeamItem]
	if err := c.doJSON(ctx, "/teams", query, &payload); err != nil {
		return nil, err
	}
	return mapTeams(payload.Data), nil
}

func (c *Client) NextFixtures(ctx context.Context, teamID int64, count int) ([]usecase.ExternalFixture, error) {
	if teamID <= 0 {
		return nil, fmt.Errorf("%w: team id must be greater than zero", usecase.ErrInvalidInput)
	}
	if count <= 0 {
		count = 5
	}
	query := map[string]string{
		"team": strconv.FormatInt(teamID, 10),
		"next": strconv.Itoa(count),
	}

	var payload envelope[FixtureItem]
	if err := c.doJSON(ctx, "/fixtures", query, &payload); err != nil {
		return nil, err
	}

	out := make([]usecase.ExternalFixture, 0, len(payload.Data))
	for _, item := range payload.Data {
		out = append(out, usecase.ExternalFixture{
			ExternalID:         item.Fixture.ID,
			LeagueName:         strings.TrimSpace(item.League.Name),
			KickoffAt:          parseKickoff(item.Fixture),
			HomeTeamExternalID: item.Teams.Home.ID,
			HomeTeamName:       strings.TrimSpace(item.Teams.Home.Name),
			AwayTeamExternalID: item.Teams.Away.ID,
			AwayTeamName:       strings.TrimSpace(item.Teams.Away.Name),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].KickoffAt.Before(out[j].KickoffAt) })
	return out, nil
}

func (c *Client) ListTeamPlayers(ctx context.Context, teamID int64, season int) ([]usecase.ExternalSquadPlayer, error) {
	if teamID <= 0 {
		return nil, fmt.Errorf("%w: team id must be greater than zero", usecase.ErrInvalidInput)
	}
	query := map[string]string{"team": strconv.FormatInt(teamID, 10)}
	if season > 0 {
		query["season"] = strconv.Itoa(season)
	}

	var payload envelope[PlayerItem]
	if err := c.doJSON(ctx, "/players", query, &payload); err != nil {
		return nil, err
	}

	out := make([]usecase.ExternalSquadPlayer, 0, len(payload.Data))
	for _, item := range payload.Data {
		out = append(out, usecase.ExternalSquadPlayer{
			ExternalID: item.Player.ID,
			Name:       strings.TrimSpace(item.Player.Name),
			PhotoURL:   strings.TrimSpace(item.Player.Photo),
		})
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) (err error) {
	started := time.Now()
	defer func() {
		c.metrics.RecordProviderAttempt(providerName, strings.TrimPrefix(path, "/"), time.Since(started), err)
	}()

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	raw, err := c.executeRequest(ctx, fullURL)
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrapf(usecase.ErrDependencyUnavailable, "decode provider payload path=%s: %v", path, err)
	}
	if reporter, ok := target.(interface{ providerErrors() string }); ok {
		if msg := reporter.providerErrors(); msg != "" {
			c.logger.WarnContext(ctx, "football api reported errors", "path", path, "errors", msg)
			return crerr.Wrapf(usecase.ErrDependencyUnavailable, "provider errors path=%s: %s", path, msg)
		}
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set(headerAPIKey, c.apiKey)
	req.Header.Set(headerHost, c.host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.WarnContext(ctx, "football api request failed", "url", fullURL, "error", sanitizeSensitiveText(err.Error(), c.apiKey))
		return nil, crerr.Wrapf(usecase.ErrDependencyUnavailable, "send request: %s", sanitizeSensitiveText(err.Error(), c.apiKey))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, crerr.Wrapf(usecase.ErrDependencyUnavailable, "read response body: %v", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WarnContext(ctx, "football api returned non-success status", "url", fullURL, "status", resp.StatusCode)
		return nil, &usecase.UpstreamStatusError{Status: resp.StatusCode, Body: abbreviateBody(raw)}
	}
	return raw, nil
}

func (e envelope[T]) providerErrors() string {
	switch v := e.Errors.(type) {
	case map[string]any:
		if len(v) == 0 {
			return ""
		}
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, key := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", key, v[key]))
		}
		return strings.Join(parts, "; ")
	case []any:
		if len(v) == 0 {
			return ""
		}
		return fmt.Sprint(v...)
	default:
		return ""
	}
}

func mapPlayerEntry(item PlayerItem) usecase.ExternalPlayerEntry {
	entry := usecase.ExternalPlayerEntry{
		ExternalID:  item.Player.ID,
		Name:        strings.TrimSpace(item.Player.Name),
		Nationality: strings.TrimSpace(item.Player.Nationality),
		BirthDate:   parseBirthDate(item.Player.Birth.Date),
		PhotoURL:    strings.TrimSpace(item.Player.Photo),
		Statistics:  make([]usecase.ExternalPlayerStatistic, 0, len(item.Statistics)),
	}
	for _, stat := range item.Statistics {
		entry.Statistics = append(entry.Statistics, usecase.ExternalPlayerStatistic{
			TeamExternalID: stat.Team.ID,
			TeamName:       strings.TrimSpace(stat.Team.Name),
			TeamCountry:    teamCountry(stat),
			TeamCity:       strings.TrimSpace(stat.Team.City),
			Appearances:    stat.Games.Appearences,
			Goals:          stat.Goals.Total,
			Assists:        stat.Goals.Assists,
			Position:       strings.TrimSpace(stat.Games.Position),
			ShirtNumber:    stat.Games.Number,
		})
	}
	return entry
}

// teamCountry prefers the club country and falls back to the country of the
// domestic league the entry belongs to.
func teamCountry(stat PlayerStatistic) string {
	if country := strings.TrimSpace(stat.Team.Country); country != "" {
		return country
	}
	country := strings.TrimSpace(stat.League.Country)
	if strings.EqualFold(country, worldCountry) {
		return ""
	}
	return country
}

func mapTeams(items []TeamItem) []usecase.ExternalTeam {
	out := make([]usecase.ExternalTeam, 0, len(items))
	for _, item := range items {
		out = append(out, usecase.ExternalTeam{
			ExternalID: item.Team.ID,
			Name:       strings.TrimSpace(item.Team.Name),
			Country:    strings.TrimSpace(item.Team.Country),
			LogoURL:    strings.TrimSpace(item.Team.Logo),
		})
	}
	return out
}

func parseBirthDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parsed, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil
	}
	return &parsed
}

func parseKickoff(info FixtureInfo) time.Time {
	if raw := strings.TrimSpace(info.Date); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			return parsed.UTC()
		}
	}
	if info.Timestamp > 0 {
		return time.Unix(info.Timestamp, 0).UTC()
	}
	return time.Time{}
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" || apiKey == "" {
		return value
	}
	return strings.ReplaceAll(value, apiKey, "REDACTED")
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

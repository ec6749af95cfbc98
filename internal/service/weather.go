package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"weatherapi/internal/model"
	"weatherapi/internal/repository"
	"weatherapi/internal/storage"
	"weatherapi/internal/upstream"
)

var (
	ErrIDRequired      = errors.New("id is required")
	ErrNotFound        = errors.New("lookup not found")
	ErrNotArchived     = errors.New("lookup has no archived payload")
	ErrJournalDisabled = errors.New("lookup journal is not configured")
	ErrArchiveDisabled = errors.New("payload archive is not configured")
)

const (
	defaultLimit         = 10
	maxLimit             = 100
	defaultSinkTimeout   = 3 * time.Second
	defaultPresignExpiry = 15 * time.Minute
)

// LookupListResult is the service-level DTO for paginated lookups.
type LookupListResult struct {
	Items []model.Lookup `json:"data"`
	Total int            `json:"total"`
}

// LookupDetail is a journal entry plus a temporary download link for its
// archived payload, when there is one.
type LookupDetail struct {
	model.Lookup
	PayloadURL string `json:"payload_url,omitempty"`
}

// WeatherService defines the weather proxy use cases.
type WeatherService interface {
	// Current forwards a current-weather lookup and returns the upstream reply as-is.
	Current(ctx context.Context, city string) (*upstream.Response, error)

	// Forecast forwards a forecast lookup and returns the upstream reply as-is.
	Forecast(ctx context.Context, city string) (*upstream.Response, error)

	// ListLookups returns journal entries using limit/offset and a total count.
	ListLookups(ctx context.Context, limit, offset int) (*LookupListResult, error)

	// GetLookup returns a single journal entry by ID.
	GetLookup(ctx context.Context, id string) (*LookupDetail, error)

	// OpenPayload streams the archived upstream body of a lookup.
	OpenPayload(ctx context.Context, id string) (io.ReadCloser, storage.PayloadInfo, error)

	JournalEnabled() bool
	ArchiveEnabled() bool
}

// Option configures the service built by NewWeatherService.
type Option func(*weatherService)

// WithJournal records every forwarded lookup in repo. The journal is off
// unless this option is given, and Current/Forecast never read from it.
func WithJournal(repo repository.LookupRepository) Option {
	return func(s *weatherService) { s.repo = repo }
}

// WithArchive keeps a write-only copy of every upstream body in store for
// the /lookups payload routes. The archive is off unless this option is
// given; Current and Forecast always go to the provider and never read it.
func WithArchive(store storage.Archive) Option {
	return func(s *weatherService) { s.store = store }
}

// WithLogger sets the logger used for sink failures.
func WithLogger(log zerolog.Logger) Option {
	return func(s *weatherService) { s.log = log }
}

// WithPresignExpiry sets how long payload download links stay valid.
func WithPresignExpiry(d time.Duration) Option {
	return func(s *weatherService) { s.presignExpiry = d }
}

type weatherService struct {
	client        upstream.Client
	repo          repository.LookupRepository
	store         storage.Archive
	log           zerolog.Logger
	tracer        trace.Tracer
	now           func() time.Time
	sinkTimeout   time.Duration
	presignExpiry time.Duration
}

// NewWeatherService constructs a WeatherService. Journal and archive are
// optional; without them the service is a plain pass-through.
func NewWeatherService(client upstream.Client, opts ...Option) WeatherService {
	s := &weatherService{
		client:        client,
		log:           zerolog.Nop(),
		tracer:        otel.Tracer("weatherapi/internal/service"),
		now:           time.Now,
		sinkTimeout:   defaultSinkTimeout,
		presignExpiry: defaultPresignExpiry,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *weatherService) JournalEnabled() bool { return s.repo != nil }
func (s *weatherService) ArchiveEnabled() bool { return s.store != nil }

func (s *weatherService) Current(ctx context.Context, city string) (*upstream.Response, error) {
	return s.forward(ctx, upstream.KindCurrent, city, s.client.FetchCurrent)
}

func (s *weatherService) Forecast(ctx context.Context, city string) (*upstream.Response, error) {
	return s.forward(ctx, upstream.KindForecast, city, s.client.FetchForecast)
}

type fetchFunc func(ctx context.Context, city string) (*upstream.Response, error)

func (s *weatherService) forward(ctx context.Context, kind upstream.Kind, city string, fetch fetchFunc) (*upstream.Response, error) {
	ctx, span := s.tracer.Start(ctx, "weather."+string(kind),
		trace.WithAttributes(attribute.String("weather.city", city)))
	defer span.End()

	resp, err := fetch(ctx, city)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("weather.upstream_status", resp.StatusCode))

	s.record(ctx, resp)
	return resp, nil
}

// record writes the archive copy and the journal row. Failures are logged
// only; the caller's response never depends on them.
func (s *weatherService) record(ctx context.Context, resp *upstream.Response) {
	if s.repo == nil && s.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.sinkTimeout)
	defer cancel()

	id := uuid.NewString()
	log := s.log.With().
		Str("lookup_id", id).
		Str("kind", string(resp.Kind)).
		Int("upstream_status", resp.StatusCode).
		Logger()

	var archiveKey string
	if s.store != nil {
		key := storage.PayloadKey(resp.Kind, id)
		_, err := s.store.Put(ctx, key, bytes.NewReader(resp.Body), storage.PayloadOptions{
			Size:        int64(len(resp.Body)),
			ContentType: "application/json",
			Metadata: map[string]string{
				"city":            url.QueryEscape(resp.City),
				"upstream-status": strconv.Itoa(resp.StatusCode),
			},
		})
		if err != nil {
			log.Warn().Err(err).Str("event", "archive_put_failed").Send()
		} else {
			archiveKey = key
		}
	}

	if s.repo == nil {
		return
	}

	_, err := s.repo.Create(ctx, &model.Lookup{
		ID:             id,
		Kind:           string(resp.Kind),
		City:           resp.City,
		UpstreamStatus: resp.StatusCode,
		DurationMs:     resp.Duration.Milliseconds(),
		ArchiveKey:     archiveKey,
		CreatedAt:      s.now().UTC(),
	})
	if err == nil {
		return
	}
	log.Error().Err(err).Str("event", "journal_create_failed").Send()

	// Drop the archive copy so no object is left without a journal row.
	if archiveKey != "" {
		if delErr := s.store.Delete(ctx, archiveKey); delErr != nil {
			log.Error().Err(delErr).Str("event", "archive_rollback_failed").Str("archive_key", archiveKey).Send()
		}
	}
}

func (s *weatherService) ListLookups(ctx context.Context, limit, offset int) (*LookupListResult, error) {
	if s.repo == nil {
		return nil, ErrJournalDisabled
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &LookupListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *weatherService) GetLookup(ctx context.Context, id string) (*LookupDetail, error) {
	l, err := s.findLookup(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &LookupDetail{Lookup: *l}
	if l.Archived() && s.store != nil {
		u, err := s.store.PresignGet(ctx, l.ArchiveKey, s.presignExpiry)
		if err != nil {
			s.log.Warn().Err(err).Str("event", "archive_presign_failed").Str("lookup_id", id).Send()
		} else {
			detail.PayloadURL = u
		}
	}
	return detail, nil
}

func (s *weatherService) OpenPayload(ctx context.Context, id string) (io.ReadCloser, storage.PayloadInfo, error) {
	if s.store == nil {
		return nil, storage.PayloadInfo{}, ErrArchiveDisabled
	}
	l, err := s.findLookup(ctx, id)
	if err != nil {
		return nil, storage.PayloadInfo{}, err
	}
	if !l.Archived() {
		return nil, storage.PayloadInfo{}, ErrNotArchived
	}

	rc, info, err := s.store.Get(ctx, l.ArchiveKey)
	if err != nil {
		if errors.Is(err, storage.ErrPayloadNotFound) {
			return nil, storage.PayloadInfo{}, ErrNotArchived
		}
		return nil, storage.PayloadInfo{}, fmt.Errorf("open payload: %w", err)
	}
	return rc, info, nil
}

func (s *weatherService) findLookup(ctx context.Context, id string) (*model.Lookup, error) {
	if s.repo == nil {
		return nil, ErrJournalDisabled
	}
	if id == "" {
		return nil, ErrIDRequired
	}
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

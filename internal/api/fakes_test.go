// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/wayfarer/internal/authz"
	"github.com/tomtom215/wayfarer/internal/config"
	"github.com/tomtom215/wayfarer/internal/database"
	"github.com/tomtom215/wayfarer/internal/models"
	"github.com/tomtom215/wayfarer/internal/recommend"
)

// fakeStore implements DataStore over in-memory Hanoi fixtures.
type fakeStore struct {
	mu       sync.Mutex
	users    []models.User
	places   []models.Place
	visits   []models.UserPlace
	comments []models.Comment
	pingErr  error
	reloads  int
}

func newFakeStore() *fakeStore {
	four, five := 4, 5
	return &fakeStore{
		users: []models.User{
			{UserID: "1", UserName: "linh", FullName: "Nguyen Linh", Role: models.RoleAdmin},
			{UserID: "2", UserName: "minh", FullName: "Tran Minh", Role: models.RoleUser},
		},
		places: []models.Place{
			{PlaceID: "1", PlaceName: "Hoan Kiem Lake", Address: "Hoan Kiem", Content: "Lake in the old quarter"},
			{PlaceID: "2", PlaceName: "Temple of Literature", Address: "Dong Da", Content: "Confucian temple and university"},
			{PlaceID: "3", PlaceName: "Long Bien Bridge", Address: "Long Bien", Content: "Cantilever bridge over the Red River"},
			{PlaceID: "4", PlaceName: "West Lake", Address: "Tay Ho", Content: "Largest lake in Hanoi"},
		},
		visits: []models.UserPlace{
			{UserID: "1", PlaceID: "1"},
			{UserID: "2", PlaceID: "4"},
		},
		comments: []models.Comment{
			{ID: "1", Username: "linh", PlaceID: "1", Content: "Lovely at dawn", Rating: &five},
			{ID: "2", Username: "minh", PlaceID: "4", Content: "Great sunset", Rating: &four},
		},
	}
}

func (f *fakeStore) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeStore) TableRows() map[string]int {
	return map[string]int{"users": len(f.users), "places": len(f.places)}
}

func (f *fakeStore) Reload(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reloads++
	return nil
}

func (f *fakeStore) ListUsers(ctx context.Context) ([]models.User, error) {
	return append([]models.User(nil), f.users...), nil
}

func (f *fakeStore) UserByName(ctx context.Context, name string) (models.User, error) {
	for _, u := range f.users {
		if u.UserName == name {
			return u, nil
		}
	}
	return models.User{}, database.ErrNotFound
}

func (f *fakeStore) UserByID(ctx context.Context, id string) (models.User, error) {
	for _, u := range f.users {
		if u.UserID == id {
			return u, nil
		}
	}
	return models.User{}, database.ErrNotFound
}

func (f *fakeStore) UserPlaces(ctx context.Context, userID string) ([]models.UserPlace, error) {
	out := []models.UserPlace{}
	for _, v := range f.visits {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeStore) ListPlaces(ctx context.Context) ([]models.Place, error) {
	return append([]models.Place(nil), f.places...), nil
}

func (f *fakeStore) PlaceByID(ctx context.Context, id string) (models.Place, error) {
	for _, p := range f.places {
		if p.PlaceID == id {
			return p, nil
		}
	}
	return models.Place{}, database.ErrNotFound
}

func (f *fakeStore) SearchPlaces(ctx context.Context, q string) ([]models.Place, error) {
	q = strings.ToLower(q)
	out := []models.Place{}
	for _, p := range f.places {
		if strings.Contains(strings.ToLower(p.PlaceName), q) || strings.Contains(strings.ToLower(p.Address), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) VisitedPlaces(ctx context.Context, userID string) ([]models.Place, error) {
	out := []models.Place{}
	for _, v := range f.visits {
		if v.UserID != userID {
			continue
		}
		if p, err := f.PlaceByID(ctx, v.PlaceID); err == nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) PlacesByKeys(ctx context.Context, field string, keys []string) ([]models.Place, error) {
	out := make([]models.Place, 0, len(keys))
	for _, k := range keys {
		for _, p := range f.places {
			key := p.PlaceName
			if field == database.PlaceKeyID {
				key = p.PlaceID
			}
			if key == k {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeStore) Comments(ctx context.Context, filter models.CommentFilter) ([]models.Comment, error) {
	out := []models.Comment{}
	for _, c := range f.comments {
		if filter.Username != "" && c.Username != filter.Username {
			continue
		}
		if filter.PlaceID != "" && c.PlaceID != filter.PlaceID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeStore) Ratings(ctx context.Context) (map[string]models.Rating, error) {
	return map[string]models.Rating{
		"1": {Avg: "5.0", Count: 1},
		"4": {Avg: "4.0", Count: 1},
	}, nil
}

// storeInteractions exposes fakeStore visits in the name key space.
type storeInteractions struct {
	store *fakeStore
}

func (s storeInteractions) VisitedItems(ctx context.Context, userKey string) ([]string, error) {
	user, err := s.store.UserByName(ctx, userKey)
	if err != nil {
		return nil, nil
	}
	places, err := s.store.VisitedPlaces(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(places))
	for i, p := range places {
		keys[i] = p.PlaceName
	}
	return keys, nil
}

func (s storeInteractions) ItemPopularity(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, v := range s.store.visits {
		if p, err := s.store.PlaceByID(ctx, v.PlaceID); err == nil {
			counts[p.PlaceName]++
		}
	}
	return counts, nil
}

// mapSource serves artifacts from memory; absent kinds are not found.
type mapSource map[recommend.ModelKind]*recommend.Artifact

func (m mapSource) Open(ctx context.Context, kind recommend.ModelKind) (*recommend.Artifact, error) {
	a, ok := m[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", recommend.ErrArtifactNotFound, kind)
	}
	return a, nil
}

// nfmArtifact knows linh only. Her scores rank
// Hoan Kiem Lake > Temple of Literature > Long Bien Bridge > West Lake.
func nfmArtifact(t *testing.T) *recommend.Artifact {
	t.Helper()
	a, err := recommend.NewArtifact(
		map[string]int{"linh": 0},
		map[string]int{"Hoan Kiem Lake": 0, "Temple of Literature": 1, "Long Bien Bridge": 2, "West Lake": 3},
		[][]float64{{1, 0}},
		[][]float64{{0.9, 0}, {0.8, 0.1}, {0.5, 0.5}, {0.1, 0.9}},
	)
	if err != nil {
		t.Fatalf("NewArtifact() error = %v", err)
	}
	return a
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Data: config.DataConfig{
			SummaryPath: t.TempDir() + "/summary.txt",
		},
		Recommend: config.RecommendConfig{
			DefaultKind:  "NFM",
			DefaultK:     5,
			MaxK:         100,
			ColdStart:    "popularity",
			UserKeyField: "user_name",
			ItemKeyField: "place_name",
		},
		Security: config.SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitDisabled: true,
		},
	}
}

type testServer struct {
	handler http.Handler
	store   *fakeStore
	cache   *recommend.Store
	cfg     *config.Config
	h       *Handler
}

// setupTestServer builds the full router over fakes. Only NFM is available.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	store := newFakeStore()
	cfg := testConfig(t)

	cache := recommend.NewStore(mapSource{recommend.KindNFM: nfmArtifact(t)}, zerolog.Nop())
	rec := recommend.NewRecommender(cache, storeInteractions{store: store}, zerolog.Nop(),
		recommend.WithColdStartPolicy(cfg.Recommend.ColdStartPolicy()))

	enforcer, err := authz.NewEnforcer(nil)
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}

	h := NewHandler(store, rec, cache, cfg, "test")
	router := NewRouter(h, NewChiMiddleware(NewChiMiddlewareConfig(cfg.Security)), enforcer)

	return &testServer{
		handler: router.SetupChi(),
		store:   store,
		cache:   cache,
		cfg:     cfg,
		h:       h,
	}
}

// do sends a request through the router. token may be empty.
func (s *testServer) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors models.APIResponse with raw data for typed decoding.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %q)", err, rec.Body.String())
	}
	if data != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode data: %v (data %s)", err, env.Data)
		}
	}
	return env
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}

func assertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	env := decodeEnvelope(t, rec, nil)
	if env.Error == nil {
		t.Fatalf("error = nil, want code %q (body %s)", want, rec.Body.String())
	}
	if env.Error.Code != want {
		t.Errorf("error code = %q, want %q", env.Error.Code, want)
	}
}

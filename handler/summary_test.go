package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"ewintr.nl/vidsum/auth"
	"ewintr.nl/vidsum/model"
	"ewintr.nl/vidsum/storage"
	"ewintr.nl/vidsum/summarize"
)

type fakeVerifier struct{}

func (f *fakeVerifier) Verify(_ context.Context, token string) (string, error) {
	if owner, ok := strings.CutPrefix(token, "token-"); ok {
		return owner, nil
	}
	return "", auth.ErrInvalidToken
}

type fakeRepo struct {
	summaries []*model.Summary
	clock     time.Time
}

func (f *fakeRepo) Create(_ context.Context, summary *model.Summary) error {
	summary.ID = uuid.New()
	f.clock = f.clock.Add(time.Minute)
	summary.CreatedAt = f.clock
	f.summaries = append(f.summaries, summary)
	return nil
}

func (f *fakeRepo) FindByOwner(_ context.Context, ownerID string) ([]*model.Summary, error) {
	result := []*model.Summary{}
	for i := len(f.summaries) - 1; i >= 0; i-- {
		if f.summaries[i].OwnerID == ownerID {
			result = append(result, f.summaries[i])
		}
	}
	return result, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID, ownerID string) (*model.Summary, error) {
	for _, s := range f.summaries {
		if s.ID == id && s.OwnerID == ownerID {
			return s, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeRepo) Update(_ context.Context, summary *model.Summary) error {
	for i, s := range f.summaries {
		if s.ID == summary.ID && s.OwnerID == summary.OwnerID {
			summary.CreatedAt = s.CreatedAt
			f.summaries[i] = summary
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID, ownerID string) error {
	for i, s := range f.summaries {
		if s.ID == id && s.OwnerID == ownerID {
			f.summaries = append(f.summaries[:i], f.summaries[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

type fakeVec struct {
	saved   []uuid.UUID
	deleted []uuid.UUID
	matches []*model.SummaryMatch
	err     error
}

func (f *fakeVec) Save(_ context.Context, summary *model.Summary) error {
	f.saved = append(f.saved, summary.ID)
	return nil
}

func (f *fakeVec) Delete(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeVec) Search(_ context.Context, _, _ string, _ int) ([]*model.SummaryMatch, error) {
	return f.matches, f.err
}

type fakePipeline struct {
	err   error
	calls int
}

func (f *fakePipeline) Run(_ context.Context, videoURL string, summaryType model.SummaryType, summaryLength model.SummaryLength) (*model.Summary, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &model.Summary{
		VideoURL:    videoURL,
		VideoTitle:  "A Video",
		SummaryText: "summary of " + videoURL,
		Type:        summaryType,
		Length:      summaryLength,
	}, nil
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(repo storage.SummaryRepository, vec storage.SummaryVecRepository, pipeline SummaryPipeline) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard))
	summaryAPI := NewSummaryAPI(repo, vec, pipeline, &fakeVerifier{}, logger)
	authAPI := NewAuthAPI(nil, logger)

	return NewServer(summaryAPI, authAPI, "", logger)
}

func doRequest(t *testing.T, srv *Server, method, target, token, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("could not decode response %q: %v", rec.Body.String(), err)
		}
	}

	return rec.Code, env
}

func TestSummaryAuthRequired(t *testing.T) {
	srv := newTestServer(&fakeRepo{}, &fakeVec{}, &fakePipeline{})

	for _, tc := range []struct {
		name  string
		token string
	}{
		{name: "no token"},
		{name: "unknown token", token: "garbage"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			code, env := doRequest(t, srv, http.MethodGet, "/summaries", tc.token, "")
			if code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", code, http.StatusUnauthorized)
			}
			if env.Status != "error" {
				t.Errorf("envelope status = %q, want %q", env.Status, "error")
			}
		})
	}
}

func TestSummaryCreateAndGet(t *testing.T) {
	repo := &fakeRepo{}
	vec := &fakeVec{}
	srv := newTestServer(repo, vec, &fakePipeline{})

	code, env := doRequest(t, srv, http.MethodPost, "/summaries", "token-owner-1", `{"video_url":"https://youtu.be/abc","summary_type":"Detailed","summary_length":"Long"}`)
	if code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", code, http.StatusCreated)
	}

	var created struct {
		Summary model.Summary `json:"summary"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatal(err)
	}
	if created.Summary.ID == uuid.Nil {
		t.Error("created summary has no id")
	}
	if created.Summary.Type != model.TypeDetailed || created.Summary.Length != model.LengthLong {
		t.Errorf("style = %q/%q", created.Summary.Type, created.Summary.Length)
	}
	if len(vec.saved) != 1 {
		t.Errorf("vector store received %d saves, want 1", len(vec.saved))
	}

	t.Run("owner can fetch it back", func(t *testing.T) {
		code, env := doRequest(t, srv, http.MethodGet, "/summaries/"+created.Summary.ID.String(), "token-owner-1", "")
		if code != http.StatusOK {
			t.Fatalf("status = %d, want %d", code, http.StatusOK)
		}
		var fetched struct {
			Summary model.Summary `json:"summary"`
		}
		if err := json.Unmarshal(env.Data, &fetched); err != nil {
			t.Fatal(err)
		}
		if fetched.Summary.VideoURL != "https://youtu.be/abc" {
			t.Errorf("videoURL = %q", fetched.Summary.VideoURL)
		}
	})

	t.Run("other owners see nothing", func(t *testing.T) {
		for _, method := range []string{http.MethodGet, http.MethodDelete} {
			code, _ := doRequest(t, srv, method, "/summaries/"+created.Summary.ID.String(), "token-owner-2", "")
			if code != http.StatusNotFound {
				t.Errorf("%s status = %d, want %d", method, code, http.StatusNotFound)
			}
		}
	})

	t.Run("malformed id reads as not found", func(t *testing.T) {
		code, _ := doRequest(t, srv, http.MethodGet, "/summaries/not-a-uuid", "token-owner-1", "")
		if code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", code, http.StatusNotFound)
		}
	})
}

func TestSummaryList(t *testing.T) {
	repo := &fakeRepo{}
	srv := newTestServer(repo, &fakeVec{}, &fakePipeline{})

	for _, url := range []string{"https://youtu.be/one", "https://youtu.be/two", "https://youtu.be/three"} {
		code, _ := doRequest(t, srv, http.MethodPost, "/summaries", "token-owner-1", fmt.Sprintf(`{"video_url":%q}`, url))
		if code != http.StatusCreated {
			t.Fatalf("create returned %d", code)
		}
	}
	doRequest(t, srv, http.MethodPost, "/summaries", "token-owner-2", `{"video_url":"https://youtu.be/other"}`)

	code, env := doRequest(t, srv, http.MethodGet, "/summaries", "token-owner-1", "")
	if code != http.StatusOK {
		t.Fatalf("status = %d, want %d", code, http.StatusOK)
	}

	var listed struct {
		Results   int             `json:"results"`
		Summaries []model.Summary `json:"summaries"`
	}
	if err := json.Unmarshal(env.Data, &listed); err != nil {
		t.Fatal(err)
	}
	if listed.Results != 3 {
		t.Errorf("results = %d, want 3", listed.Results)
	}
	if len(listed.Summaries) != 3 || listed.Summaries[0].VideoURL != "https://youtu.be/three" {
		t.Errorf("expected newest first, got %+v", listed.Summaries)
	}
}

func TestSummaryUpdate(t *testing.T) {
	repo := &fakeRepo{}
	srv := newTestServer(repo, &fakeVec{}, &fakePipeline{})

	_, env := doRequest(t, srv, http.MethodPost, "/summaries", "token-owner-1", `{"video_url":"https://youtu.be/abc"}`)
	var created struct {
		Summary model.Summary `json:"summary"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatal(err)
	}

	t.Run("owner can regenerate", func(t *testing.T) {
		code, env := doRequest(t, srv, http.MethodPut, "/summaries/"+created.Summary.ID.String(), "token-owner-1", `{"video_url":"https://youtu.be/abc","summary_type":"Key Point"}`)
		if code != http.StatusOK {
			t.Fatalf("status = %d, want %d", code, http.StatusOK)
		}
		var updated struct {
			Summary model.Summary `json:"summary"`
		}
		if err := json.Unmarshal(env.Data, &updated); err != nil {
			t.Fatal(err)
		}
		if updated.Summary.ID != created.Summary.ID {
			t.Error("update changed the id")
		}
		if updated.Summary.Type != model.TypeKeyPoint {
			t.Errorf("type = %q, want %q", updated.Summary.Type, model.TypeKeyPoint)
		}
		if !updated.Summary.CreatedAt.Equal(created.Summary.CreatedAt) {
			t.Error("update changed the creation timestamp")
		}
	})

	t.Run("cross-owner update is not found", func(t *testing.T) {
		code, _ := doRequest(t, srv, http.MethodPut, "/summaries/"+created.Summary.ID.String(), "token-owner-2", `{"video_url":"https://youtu.be/abc"}`)
		if code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", code, http.StatusNotFound)
		}
	})
}

func TestSummaryDelete(t *testing.T) {
	repo := &fakeRepo{}
	vec := &fakeVec{}
	srv := newTestServer(repo, vec, &fakePipeline{})

	_, env := doRequest(t, srv, http.MethodPost, "/summaries", "token-owner-1", `{"video_url":"https://youtu.be/abc"}`)
	var created struct {
		Summary model.Summary `json:"summary"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatal(err)
	}

	code, _ := doRequest(t, srv, http.MethodDelete, "/summaries/"+created.Summary.ID.String(), "token-owner-1", "")
	if code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", code, http.StatusNoContent)
	}
	if len(vec.deleted) != 1 {
		t.Errorf("vector store received %d deletes, want 1", len(vec.deleted))
	}

	code, _ = doRequest(t, srv, http.MethodDelete, "/summaries/"+created.Summary.ID.String(), "token-owner-1", "")
	if code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want %d", code, http.StatusNotFound)
	}
}

func TestSummaryCreateFailures(t *testing.T) {
	for _, tc := range []struct {
		name       string
		body       string
		pipeline   *fakePipeline
		expStatus  int
		expCreates int
	}{
		{
			name:      "malformed body",
			body:      `{not json`,
			pipeline:  &fakePipeline{},
			expStatus: http.StatusBadRequest,
		},
		{
			name:      "missing video url",
			body:      `{"summary_type":"Brief"}`,
			pipeline:  &fakePipeline{},
			expStatus: http.StatusBadRequest,
		},
		{
			name:      "invalid video url",
			body:      `{"video_url":"https://example.com/watch"}`,
			pipeline:  &fakePipeline{err: fmt.Errorf("%w: https://example.com/watch", summarize.ErrInvalidVideoURL)},
			expStatus: http.StatusBadRequest,
		},
		{
			name:      "video without transcript",
			body:      `{"video_url":"https://youtu.be/abc"}`,
			pipeline:  &fakePipeline{err: fmt.Errorf("%w: video abc", summarize.ErrNoTranscript)},
			expStatus: http.StatusNotFound,
		},
		{
			name:      "generation failure",
			body:      `{"video_url":"https://youtu.be/abc"}`,
			pipeline:  &fakePipeline{err: fmt.Errorf("%w: backend exploded", summarize.ErrGeneration)},
			expStatus: http.StatusInternalServerError,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeRepo{}
			srv := newTestServer(repo, &fakeVec{}, tc.pipeline)

			code, env := doRequest(t, srv, http.MethodPost, "/summaries", "token-owner-1", tc.body)
			if code != tc.expStatus {
				t.Errorf("status = %d, want %d", code, tc.expStatus)
			}
			if env.Status != "error" {
				t.Errorf("envelope status = %q, want %q", env.Status, "error")
			}
			if len(repo.summaries) != 0 {
				t.Errorf("%d summaries were stored after a failed request", len(repo.summaries))
			}
		})
	}
}

func TestSummarySearch(t *testing.T) {
	t.Run("matches", func(t *testing.T) {
		vec := &fakeVec{matches: []*model.SummaryMatch{
			{ID: uuid.New(), VideoTitle: "A Video", SummaryText: "all about videos"},
		}}
		srv := newTestServer(&fakeRepo{}, vec, &fakePipeline{})

		code, env := doRequest(t, srv, http.MethodGet, "/summaries/search?q=video", "token-owner-1", "")
		if code != http.StatusOK {
			t.Fatalf("status = %d, want %d", code, http.StatusOK)
		}
		var result struct {
			Results int                   `json:"results"`
			Matches []*model.SummaryMatch `json:"matches"`
		}
		if err := json.Unmarshal(env.Data, &result); err != nil {
			t.Fatal(err)
		}
		if result.Results != 1 || len(result.Matches) != 1 {
			t.Errorf("results = %d, matches = %d", result.Results, len(result.Matches))
		}
	})

	t.Run("missing query", func(t *testing.T) {
		srv := newTestServer(&fakeRepo{}, &fakeVec{}, &fakePipeline{})
		code, _ := doRequest(t, srv, http.MethodGet, "/summaries/search", "token-owner-1", "")
		if code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", code, http.StatusBadRequest)
		}
	})

	t.Run("search disabled", func(t *testing.T) {
		srv := newTestServer(&fakeRepo{}, &fakeVec{err: storage.ErrSearchUnavailable}, &fakePipeline{})
		code, _ := doRequest(t, srv, http.MethodGet, "/summaries/search?q=video", "token-owner-1", "")
		if code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want %d", code, http.StatusServiceUnavailable)
		}
	})
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"ewintr.nl/vidsum/auth"
	"ewintr.nl/vidsum/model"
	"ewintr.nl/vidsum/storage"
)

const searchLimit = 10

// SummaryPipeline turns a video reference and a style into an unsaved summary.
type SummaryPipeline interface {
	Run(ctx context.Context, videoURL string, summaryType model.SummaryType, summaryLength model.SummaryLength) (*model.Summary, error)
}

type SummaryAPI struct {
	repo     storage.SummaryRepository
	vecRepo  storage.SummaryVecRepository
	pipeline SummaryPipeline
	verifier auth.TokenVerifier
	logger   *slog.Logger
}

func NewSummaryAPI(repo storage.SummaryRepository, vecRepo storage.SummaryVecRepository, pipeline SummaryPipeline, verifier auth.TokenVerifier, logger *slog.Logger) *SummaryAPI {
	return &SummaryAPI{
		repo:     repo,
		vecRepo:  vecRepo,
		pipeline: pipeline,
		verifier: verifier,
		logger:   logger,
	}
}

func (api *SummaryAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ownerID, err := api.authenticate(r)
	if err != nil {
		Error(w, http.StatusUnauthorized, errMessage(err))
		return
	}

	head, _ := ShiftPath(r.URL.Path)
	switch {
	case r.Method == http.MethodPost && head == "":
		api.Create(w, r, ownerID)
	case r.Method == http.MethodGet && head == "":
		api.List(w, r, ownerID)
	case r.Method == http.MethodGet && head == "search":
		api.Search(w, r, ownerID)
	case r.Method == http.MethodGet:
		api.Get(w, r, ownerID, head)
	case r.Method == http.MethodPut && head != "":
		api.Update(w, r, ownerID, head)
	case r.Method == http.MethodDelete && head != "":
		api.Delete(w, r, ownerID, head)
	default:
		Error(w, http.StatusNotFound, "not found")
	}
}

type summaryRequest struct {
	VideoURL      string `json:"video_url"`
	SummaryType   string `json:"summary_type"`
	SummaryLength string `json:"summary_length"`
}

func (api *SummaryAPI) Create(w http.ResponseWriter, r *http.Request, ownerID string) {
	var req summaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.VideoURL == "" {
		Error(w, http.StatusBadRequest, "video URL is required")
		return
	}

	summary, err := api.pipeline.Run(r.Context(), req.VideoURL, model.ParseSummaryType(req.SummaryType), model.ParseSummaryLength(req.SummaryLength))
	if err != nil {
		api.returnErr(w, err)
		return
	}

	summary.OwnerID = ownerID
	if err := api.repo.Create(r.Context(), summary); err != nil {
		api.returnErr(w, err)
		return
	}
	api.mirror(r.Context(), summary)

	Success(w, http.StatusCreated, map[string]any{"summary": summary})
}

func (api *SummaryAPI) List(w http.ResponseWriter, r *http.Request, ownerID string) {
	summaries, err := api.repo.FindByOwner(r.Context(), ownerID)
	if err != nil {
		api.returnErr(w, err)
		return
	}

	Success(w, http.StatusOK, struct {
		Results   int              `json:"results"`
		Summaries []*model.Summary `json:"summaries"`
	}{
		Results:   len(summaries),
		Summaries: summaries,
	})
}

func (api *SummaryAPI) Get(w http.ResponseWriter, r *http.Request, ownerID, id string) {
	summaryID, err := uuid.Parse(id)
	if err != nil {
		Error(w, http.StatusNotFound, "summary not found")
		return
	}

	summary, err := api.repo.FindByID(r.Context(), summaryID, ownerID)
	if err != nil {
		api.returnErr(w, err)
		return
	}

	Success(w, http.StatusOK, map[string]any{"summary": summary})
}

func (api *SummaryAPI) Update(w http.ResponseWriter, r *http.Request, ownerID, id string) {
	summaryID, err := uuid.Parse(id)
	if err != nil {
		Error(w, http.StatusNotFound, "summary not found")
		return
	}

	var req summaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.VideoURL == "" {
		Error(w, http.StatusBadRequest, "video URL is required")
		return
	}

	summary, err := api.pipeline.Run(r.Context(), req.VideoURL, model.ParseSummaryType(req.SummaryType), model.ParseSummaryLength(req.SummaryLength))
	if err != nil {
		api.returnErr(w, err)
		return
	}

	summary.ID = summaryID
	summary.OwnerID = ownerID
	if err := api.repo.Update(r.Context(), summary); err != nil {
		api.returnErr(w, err)
		return
	}
	api.mirror(r.Context(), summary)

	Success(w, http.StatusOK, map[string]any{"summary": summary})
}

func (api *SummaryAPI) Delete(w http.ResponseWriter, r *http.Request, ownerID, id string) {
	summaryID, err := uuid.Parse(id)
	if err != nil {
		Error(w, http.StatusNotFound, "summary not found")
		return
	}

	if err := api.repo.Delete(r.Context(), summaryID, ownerID); err != nil {
		api.returnErr(w, err)
		return
	}
	if err := api.vecRepo.Delete(r.Context(), summaryID); err != nil {
		api.logger.Error("could not remove summary from vector store", err, "id", summaryID)
	}

	w.WriteHeader(http.StatusNoContent)
}

func (api *SummaryAPI) Search(w http.ResponseWriter, r *http.Request, ownerID string) {
	query := r.URL.Query().Get("q")
	if query == "" {
		Error(w, http.StatusBadRequest, "search query is required")
		return
	}

	matches, err := api.vecRepo.Search(r.Context(), ownerID, query, searchLimit)
	if err != nil {
		api.returnErr(w, err)
		return
	}

	Success(w, http.StatusOK, struct {
		Results int                   `json:"results"`
		Matches []*model.SummaryMatch `json:"matches"`
	}{
		Results: len(matches),
		Matches: matches,
	})
}

func (api *SummaryAPI) authenticate(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", auth.ErrInvalidToken
	}

	return api.verifier.Verify(r.Context(), strings.TrimPrefix(header, "Bearer "))
}

// mirror keeps the vector store in sync. Failures are logged, the
// relational store remains the source of truth.
func (api *SummaryAPI) mirror(ctx context.Context, summary *model.Summary) {
	if err := api.vecRepo.Save(ctx, summary); err != nil {
		api.logger.Error("could not mirror summary to vector store", err, "id", summary.ID)
	}
}

func (api *SummaryAPI) returnErr(w http.ResponseWriter, err error) {
	status := errStatus(err)
	if status >= http.StatusInternalServerError {
		api.logger.Error("request failed", err)
	}
	Error(w, status, errMessage(err))
}

package storage

import (
	"context"
	"fmt"
	"net/http"

	"ewintr.nl/vidsum/model"
	"github.com/google/uuid"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/fault"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

const (
	className = "Summary"
)

type Weaviate struct {
	client *weaviate.Client
}

func NewWeaviate(host, weaviateApiKey, openaiApiKey string) (*Weaviate, error) {
	config := weaviate.Config{
		Scheme:     "https",
		Host:       host,
		AuthConfig: auth.ApiKey{Value: weaviateApiKey},
		Headers: map[string]string{
			"X-OpenAI-Api-Key": openaiApiKey,
		},
	}

	c, err := weaviate.NewClient(config)
	if err != nil {
		return nil, err
	}

	return &Weaviate{client: c}, nil
}

// EnsureSchema creates the Summary class. An already existing class is not
// an error, so this is safe to run on every start.
func (w *Weaviate) EnsureSchema(ctx context.Context) error {
	classObj := &models.Class{
		Class:      className,
		Vectorizer: "text2vec-openai",
		ModuleConfig: map[string]any{
			"text2vec-openai": map[string]any{
				"model":        "ada",
				"modelVersion": "002",
				"type":         "text",
			},
		},
	}

	err := w.client.Schema().ClassCreator().WithClass(classObj).Do(ctx)
	if status, ok := err.(*fault.WeaviateClientError); ok && status.StatusCode == http.StatusUnprocessableEntity {
		return nil
	}

	return err
}

func (w *Weaviate) Save(ctx context.Context, summary *model.Summary) error {
	sID := summary.ID.String()
	properties := map[string]any{
		"ownerId":     summary.OwnerID,
		"videoUrl":    summary.VideoURL,
		"videoTitle":  summary.VideoTitle,
		"summaryText": summary.SummaryText,
	}

	// check it already exists
	exists, err := w.client.Data().
		Checker().
		WithID(sID).
		WithClassName(className).
		Do(ctx)
	if err != nil {
		return err
	}

	if exists {
		return w.client.Data().
			Updater().
			WithID(sID).
			WithClassName(className).
			WithProperties(properties).
			Do(ctx)
	}

	_, err = w.client.Data().
		Creator().
		WithClassName(className).
		WithID(sID).
		WithProperties(properties).
		Do(ctx)

	return err
}

func (w *Weaviate) Delete(ctx context.Context, id uuid.UUID) error {
	err := w.client.Data().
		Deleter().
		WithClassName(className).
		WithID(id.String()).
		Do(ctx)
	if status, ok := err.(*fault.WeaviateClientError); ok && status.StatusCode == http.StatusNotFound {
		return nil
	}

	return err
}

// Search runs a nearText query over the summaries of one owner.
func (w *Weaviate) Search(ctx context.Context, ownerID, query string, limit int) ([]*model.SummaryMatch, error) {
	nearText := w.client.GraphQL().
		NearTextArgBuilder().
		WithConcepts([]string{query})
	where := filters.Where().
		WithPath([]string{"ownerId"}).
		WithOperator(filters.Equal).
		WithValueString(ownerID)

	resp, err := w.client.GraphQL().Get().
		WithClassName(className).
		WithFields(
			graphql.Field{Name: "videoUrl"},
			graphql.Field{Name: "videoTitle"},
			graphql.Field{Name: "summaryText"},
			graphql.Field{Name: "_additional", Fields: []graphql.Field{{Name: "id"}}},
		).
		WithNearText(nearText).
		WithWhere(where).
		WithLimit(limit).
		Do(ctx)
	if err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("weaviate: %s", resp.Errors[0].Message)
	}

	return parseMatches(resp)
}

func parseMatches(resp *models.GraphQLResponse) ([]*model.SummaryMatch, error) {
	get, ok := resp.Data["Get"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("weaviate: unexpected response shape")
	}
	objects, ok := get[className].([]any)
	if !ok {
		return []*model.SummaryMatch{}, nil
	}

	matches := make([]*model.SummaryMatch, 0, len(objects))
	for _, obj := range objects {
		fields, ok := obj.(map[string]any)
		if !ok {
			continue
		}
		match := &model.SummaryMatch{}
		if additional, ok := fields["_additional"].(map[string]any); ok {
			if rawID, ok := additional["id"].(string); ok {
				if id, err := uuid.Parse(rawID); err == nil {
					match.ID = id
				}
			}
		}
		match.VideoURL, _ = fields["videoUrl"].(string)
		match.VideoTitle, _ = fields["videoTitle"].(string)
		match.SummaryText, _ = fields["summaryText"].(string)
		matches = append(matches, match)
	}

	return matches, nil
}

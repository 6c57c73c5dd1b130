// Package search finds adoptable animals in the listing index.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "adoption-workers/internal/common/errors"
	"adoption-workers/internal/common/logger"
	"adoption-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// Query narrows the candidate listings. Zero values mean no filter.
type Query struct {
	Species        *models.Species
	ExcludeOwnerID string
	Size           int
}

type AnimalIndex struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewAnimalIndex(client *elasticsearch.Client, index string, log logger.Logger) *AnimalIndex {
	return &AnimalIndex{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "animal-index", "index": index}),
	}
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string               `json:"_id"`
			Source models.AnimalListing `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

type errorResponse struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
}

// SearchAvailable returns listings in AVAILABLE status, newest first.
func (x *AnimalIndex) SearchAvailable(ctx context.Context, q Query) ([]models.AnimalListing, error) {
	body, err := json.Marshal(buildAvailableQuery(q))
	if err != nil {
		return nil, apperrors.NewSearchQueryFailedError(x.index, err)
	}

	size := q.Size
	if size <= 0 {
		size = 20
	}
	req := esapi.SearchRequest{
		Index: []string{x.index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}

	res, err := req.Do(ctx, x.client)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, apperrors.NewSearchTimeoutError(x.index)
		}
		return nil, apperrors.NewSearchQueryFailedError(x.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, x.responseError(res)
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, apperrors.NewSearchQueryFailedError(x.index, fmt.Errorf("decode response: %w", err))
	}

	listings := make([]models.AnimalListing, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		listing := hit.Source
		if listing.ID == "" {
			listing.ID = hit.ID
		}
		listings = append(listings, listing)
	}

	x.logger.Debug("animal search finished", map[string]interface{}{
		"total":    parsed.Hits.Total.Value,
		"returned": len(listings),
	})
	return listings, nil
}

func (x *AnimalIndex) responseError(res *esapi.Response) error {
	var e errorResponse
	_ = json.NewDecoder(res.Body).Decode(&e)

	if res.StatusCode == http.StatusNotFound && e.Error.Type == "index_not_found_exception" {
		return apperrors.NewIndexNotFoundError(x.index)
	}
	reason := e.Error.Reason
	if reason == "" {
		reason = res.Status()
	}
	return apperrors.NewSearchQueryFailedError(x.index, errors.New(reason))
}

func buildAvailableQuery(q Query) map[string]interface{} {
	filters := []interface{}{
		map[string]interface{}{"term": map[string]interface{}{"status": models.ListingStatusAvailable}},
	}
	if q.Species != nil && *q.Species != models.SpeciesBoth && strings.TrimSpace(string(*q.Species)) != "" {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{"preferences.species": string(*q.Species)},
		})
	}

	boolQuery := map[string]interface{}{"filter": filters}
	if q.ExcludeOwnerID != "" {
		boolQuery["must_not"] = []interface{}{
			map[string]interface{}{"term": map[string]interface{}{"ownerId": q.ExcludeOwnerID}},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
		"sort": []interface{}{
			map[string]interface{}{"createdAt": map[string]interface{}{"order": "desc", "unmapped_type": "date"}},
		},
	}
}

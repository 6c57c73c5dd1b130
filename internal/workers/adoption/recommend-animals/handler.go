// internal/workers/adoption/recommend-animals/handler.go
package recommendanimals

import (
	"context"
	"errors"
	"sort"

	apperrors "adoption-workers/internal/common/errors"
	"adoption-workers/internal/common/logger"
	"adoption-workers/internal/common/metrics"
	"adoption-workers/internal/common/observability"
	"adoption-workers/internal/common/validation"
	"adoption-workers/internal/matching"
	"adoption-workers/internal/models"
	"adoption-workers/internal/search"
	"adoption-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	TaskType = "recommend-animals"
)

type AnimalSearcher interface {
	SearchAvailable(ctx context.Context, q search.Query) ([]models.AnimalListing, error)
}

type ProfileReader interface {
	GetAdopterProfile(ctx context.Context, adopterID string) (*models.AdopterProfile, error)
}

type Handler struct {
	config     *Config
	animals    AnimalSearcher
	profiles   ProfileReader
	scorer     *matching.Scorer
	validator  *validation.SchemaValidator
	errHandler *apperrors.ErrorHandler
	obs        *observability.Observability
	logger     logger.Logger
}

func NewHandler(config *Config, animals AnimalSearcher, profiles ProfileReader, validator *validation.SchemaValidator, obs *observability.Observability, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		animals:    animals,
		profiles:   profiles,
		scorer:     matching.NewScorer(),
		validator:  validator,
		errHandler: apperrors.NewErrorHandler(scoped),
		obs:        obs,
		logger:     scoped,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	timer := metrics.StartJob(TaskType)
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()
	ctx, span := h.obs.StartSpan(ctx, TaskType, attribute.Int64("job.key", job.Key))

	var input Input
	if err := validation.DecodeJob(h.validator, TaskType, job.Variables, &input); err != nil {
		h.failJob(client, job, timer, span, err)
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, timer, span, err)
		return
	}

	h.completeJob(client, job, output)
	timer.Completed()
	h.obs.RecordJob(ctx, TaskType, "completed", timer.Elapsed())
	observability.EndSpan(span, nil)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	profile, err := h.adopterProfile(ctx, input)
	if err != nil {
		return nil, err
	}

	species := input.Species
	if species == nil {
		species = profile.SpeciesPreference
	}

	listings, err := h.animals.SearchAvailable(ctx, search.Query{
		Species:        species,
		ExcludeOwnerID: input.AdopterID,
		Size:           h.config.CandidatePool,
	})
	if err != nil {
		return nil, err
	}

	recommended := make([]RecommendedAnimal, 0, len(listings))
	for _, l := range listings {
		if l.ID == "" || l.OwnerID == input.AdopterID {
			continue
		}
		result := h.scorer.Score(*profile, l.Preferences)
		metrics.ObserveScore(TaskType, result.Score)
		recommended = append(recommended, RecommendedAnimal{
			AnimalID:    l.ID,
			Name:        l.Name,
			OwnerID:     l.OwnerID,
			PhotoURL:    l.PhotoURL,
			MatchResult: result,
		})
	}

	sortRecommendations(recommended)
	if limit := h.config.limit(input.Limit); limit > 0 && len(recommended) > limit {
		recommended = recommended[:limit]
	}

	output := &Output{
		RecommendationID: uuid.NewString(),
		AdopterID:        input.AdopterID,
		Animals:          recommended,
		Total:            len(recommended),
	}

	h.logger.Info("animals recommended", map[string]interface{}{
		"recommendationId": output.RecommendationID,
		"adopterId":        input.AdopterID,
		"candidates":       len(listings),
		"total":            output.Total,
	})
	return output, nil
}

func (h *Handler) adopterProfile(ctx context.Context, input *Input) (*models.AdopterProfile, error) {
	if input.AdopterProfile != nil {
		return input.AdopterProfile, nil
	}
	profile, err := h.profiles.GetAdopterProfile(ctx, input.AdopterID)
	if errors.Is(err, store.ErrAdopterNotFound) {
		return &models.AdopterProfile{}, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// sortRecommendations orders by score, highest first, with null scores last
// and animal id breaking ties.
func sortRecommendations(items []RecommendedAnimal) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Score, items[j].Score
		switch {
		case a != nil && b != nil && *a != *b:
			return *a > *b
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return items[i].AnimalID < items[j].AnimalID
	})
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, timer *metrics.JobTimer, span trace.Span, err error) {
	stdErr := apperrors.Normalize(err)
	timer.Failed(string(stdErr.Code))
	h.obs.RecordJob(context.Background(), TaskType, "failed", timer.Elapsed())
	observability.EndSpan(span, stdErr)
	h.errHandler.HandleJobError(context.Background(), client, job, stdErr)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

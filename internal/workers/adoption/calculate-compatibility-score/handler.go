// internal/workers/adoption/calculate-compatibility-score/handler.go
package calculatecompatibilityscore

import (
	"context"
	"errors"

	apperrors "adoption-workers/internal/common/errors"
	"adoption-workers/internal/common/logger"
	"adoption-workers/internal/common/metrics"
	"adoption-workers/internal/common/observability"
	"adoption-workers/internal/common/validation"
	"adoption-workers/internal/matching"
	"adoption-workers/internal/models"
	"adoption-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	TaskType = "calculate-compatibility-score"
)

type AnimalReader interface {
	GetAnimal(ctx context.Context, animalID string) (*models.Animal, error)
}

type ProfileReader interface {
	GetAdopterProfile(ctx context.Context, adopterID string) (*models.AdopterProfile, error)
}

type Handler struct {
	config     *Config
	animals    AnimalReader
	profiles   ProfileReader
	scorer     *matching.Scorer
	validator  *validation.SchemaValidator
	errHandler *apperrors.ErrorHandler
	obs        *observability.Observability
	logger     logger.Logger
}

func NewHandler(config *Config, animals AnimalReader, profiles ProfileReader, validator *validation.SchemaValidator, obs *observability.Observability, log logger.Logger) *Handler {
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
	prefs, err := h.preferences(ctx, input)
	if err != nil {
		return nil, err
	}
	profile, err := h.adopterProfile(ctx, input)
	if err != nil {
		return nil, err
	}

	result := h.scorer.Score(*profile, *prefs)
	metrics.ObserveScore(TaskType, result.Score)

	h.logger.Info("compatibility score calculated", map[string]interface{}{
		"adopterId":     input.AdopterID,
		"animalId":      input.AnimalID,
		"score":         result.Score,
		"criteriaCount": result.CriteriaCount,
	})

	return &Output{
		AdopterID:   input.AdopterID,
		AnimalID:    input.AnimalID,
		MatchResult: result,
	}, nil
}

func (h *Handler) preferences(ctx context.Context, input *Input) (*models.PetTutorPreferences, error) {
	if input.PetPreferences != nil {
		return input.PetPreferences, nil
	}
	animal, err := h.animals.GetAnimal(ctx, input.AnimalID)
	if errors.Is(err, store.ErrAnimalNotFound) {
		return nil, apperrors.NewAnimalNotFoundError(input.AnimalID)
	}
	if err != nil {
		return nil, err
	}
	return &animal.Preferences, nil
}

// adopterProfile treats an adopter who never filled in the questionnaire as an empty profile.
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

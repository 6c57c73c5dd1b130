// internal/workers/adoption/rank-interested-adopters/handler.go
package rankinterestedadopters

import (
	"context"
	"errors"

	apperrors "adoption-workers/internal/common/errors"
	"adoption-workers/internal/common/logger"
	"adoption-workers/internal/common/metrics"
	"adoption-workers/internal/common/observability"
	"adoption-workers/internal/common/validation"
	"adoption-workers/internal/models"
	"adoption-workers/internal/ranking"
	"adoption-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	TaskType = "rank-interested-adopters"
)

// Store is the part of the adoption data layer the ranking needs.
type Store interface {
	GetAnimal(ctx context.Context, animalID string) (*models.Animal, error)
	ListInterestedAdopters(ctx context.Context, animalID string) ([]models.InterestedAdopter, error)
	ConversationsByAdopter(ctx context.Context, animalID, tutorID string) (map[string]string, error)
}

type ProfileReader interface {
	GetAdopterProfile(ctx context.Context, adopterID string) (*models.AdopterProfile, error)
}

type Handler struct {
	config     *Config
	store      Store
	profiles   ProfileReader
	ranker     *ranking.Ranker
	validator  *validation.SchemaValidator
	errHandler *apperrors.ErrorHandler
	obs        *observability.Observability
	logger     logger.Logger
}

func NewHandler(config *Config, st Store, profiles ProfileReader, validator *validation.SchemaValidator, obs *observability.Observability, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		store:      st,
		profiles:   profiles,
		ranker:     ranking.NewRanker(nil, config.Weights),
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
	span.SetAttributes(attribute.String("animal.id", input.AnimalID))

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
	animal, err := h.store.GetAnimal(ctx, input.AnimalID)
	if errors.Is(err, store.ErrAnimalNotFound) {
		return nil, apperrors.NewAnimalNotFoundError(input.AnimalID)
	}
	if err != nil {
		return nil, err
	}
	if animal.OwnerID != input.RequestingTutorID {
		return nil, apperrors.NewNotAnimalOwnerError(input.AnimalID, input.RequestingTutorID)
	}

	adopters, err := h.store.ListInterestedAdopters(ctx, animal.ID)
	if err != nil {
		return nil, err
	}
	conversations, err := h.store.ConversationsByAdopter(ctx, animal.ID, input.RequestingTutorID)
	if err != nil {
		return nil, err
	}

	profiles, err := h.loadProfiles(ctx, adopters, input.RequestingTutorID)
	if err != nil {
		return nil, err
	}

	candidates := make([]ranking.Candidate, len(adopters))
	for i, a := range adopters {
		candidates[i] = ranking.Candidate{Adopter: a, Profile: profiles[a.AdopterID]}
	}

	_, rankSpan := h.obs.StartSpan(ctx, "rank", attribute.Int("candidates", len(candidates)))
	items := h.ranker.Rank(*animal, input.RequestingTutorID, candidates, conversations)
	observability.EndSpan(rankSpan, nil)

	for _, it := range items {
		metrics.ObserveScore(TaskType, it.MatchScore)
	}
	metrics.RankedAdopters.Observe(float64(len(items)))

	output := &Output{
		RankingID: uuid.NewString(),
		AnimalID:  animal.ID,
		Adopters:  items,
		Total:     len(items),
	}

	h.logger.Info("interested adopters ranked", map[string]interface{}{
		"rankingId":     output.RankingID,
		"animalId":      animal.ID,
		"favorites":     len(adopters),
		"total":         output.Total,
		"conversations": len(conversations),
	})
	return output, nil
}

// loadProfiles fetches each distinct adopter's profile with bounded
// concurrency. A failed load leaves that adopter without a profile so the
// ranking still covers everyone else.
func (h *Handler) loadProfiles(ctx context.Context, adopters []models.InterestedAdopter, tutorID string) (map[string]*models.AdopterProfile, error) {
	ids := make([]string, 0, len(adopters))
	seen := make(map[string]bool, len(adopters))
	for _, a := range adopters {
		if a.AdopterID == "" || a.AdopterID == tutorID || seen[a.AdopterID] {
			continue
		}
		seen[a.AdopterID] = true
		ids = append(ids, a.AdopterID)
	}

	loaded := make([]*models.AdopterProfile, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.config.MaxConcurrentLoads)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			profile, err := h.profiles.GetAdopterProfile(gctx, id)
			switch {
			case err == nil:
				loaded[i] = profile
			case errors.Is(err, store.ErrAdopterNotFound):
			default:
				h.logger.Warn("adopter profile unavailable, ranking without match score", map[string]interface{}{
					"adopterId": id,
					"error":     err,
				})
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make(map[string]*models.AdopterProfile, len(ids))
	for i, id := range ids {
		out[id] = loaded[i]
	}
	return out, nil
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

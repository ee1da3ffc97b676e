package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/kitcraft/internal/apperror"
	"github.com/sakif/kitcraft/internal/genai"
	"github.com/sakif/kitcraft/internal/model"
	"github.com/sakif/kitcraft/internal/repository"
)

const (
	MaxPromptLength  = 2000
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// KitService orchestrates kit generation and the per-user kit collection.
//
// Generate is the create→kit-detail path: invoke the generator, and only on
// success persist the kit (with a fresh ID) into the user's collection. On
// failure nothing is persisted — the caller stays on the create form with an
// inline error.
//
// The generator may be nil when no API key is configured; every generation
// attempt then fails with ErrUnavailable while the rest of the app keeps
// working.
type KitService struct {
	kits      repository.KitRepository
	generator genai.Generator
	logger    *slog.Logger
}

// NewKitService creates a KitService. generator may be nil (generation
// disabled).
func NewKitService(kits repository.KitRepository, generator genai.Generator, logger *slog.Logger) *KitService {
	return &KitService{
		kits:      kits,
		generator: generator,
		logger:    logger,
	}
}

// Generate produces and persists a new kit for userID.
//
// Input rules: the prompt may be empty only when an image is supplied, and
// the skill level must be one of the three known values. Generation failures
// surface as ErrUnavailable with the generator's human-readable message —
// retryable by the user, never fatal, and no kit is stored.
func (s *KitService) Generate(ctx context.Context, userID, prompt string, level model.SkillLevel, image *genai.ImageInput) (*model.ProjectKit, error) {
	prompt = strings.TrimSpace(prompt)

	if prompt == "" && image == nil {
		return nil, apperror.ValidationFailed("prompt", "describe your project or attach a photo")
	}
	if len(prompt) > MaxPromptLength {
		return nil, apperror.ValidationFailed("prompt",
			fmt.Sprintf("prompt must be %d characters or less", MaxPromptLength))
	}
	if !level.Valid() {
		return nil, apperror.ValidationFailed("skillLevel", "skill level must be Beginner, Intermediate or Advanced")
	}

	if s.generator == nil {
		return nil, apperror.Unavailable("kit generation is not configured")
	}

	draft, err := s.generator.Generate(ctx, genai.KitRequest{
		Prompt:     prompt,
		SkillLevel: level,
		Image:      image,
	})
	if err != nil {
		var genErr *genai.GenerationError
		if errors.As(err, &genErr) {
			return nil, apperror.Unavailable(genErr.Message)
		}
		return nil, fmt.Errorf("service/kit: generating kit: %w", err)
	}

	kit := &model.ProjectKit{
		UserID:        userID,
		ProjectName:   draft.ProjectName,
		Description:   draft.Description,
		Prompt:        prompt,
		SkillLevel:    draft.SkillLevel,
		EstimatedTime: draft.EstimatedTime,
		Materials:     draft.Materials,
		Tools:         draft.Tools,
		Instructions:  draft.Instructions,
	}

	if err := s.kits.CreateKit(ctx, kit); err != nil {
		s.logger.Error("failed to persist generated kit",
			slog.String("userID", userID),
			slog.String("projectName", kit.ProjectName),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("service/kit: saving kit: %w", err)
	}

	s.logger.Info("kit generated",
		slog.String("kitID", kit.ID),
		slog.String("userID", userID),
		slog.String("projectName", kit.ProjectName),
		slog.String("skillLevel", string(kit.SkillLevel)),
	)

	return kit, nil
}

// List retrieves the user's kits, newest first, with pagination clamped to
// a sane range.
func (s *KitService) List(ctx context.Context, userID string, limit, offset int) ([]model.ProjectKit, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	kits, err := s.kits.ListKits(ctx, userID, repository.ListOptions{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		s.logger.Error("failed to list kits",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("service/kit: listing kits: %w", err)
	}

	return kits, nil
}

// Get retrieves one of the user's kits by ID.
// Another user's kit ID behaves exactly like a nonexistent one.
func (s *KitService) Get(ctx context.Context, userID, id string) (*model.ProjectKit, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "kit ID is required")
	}

	kit, err := s.kits.GetKitByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	return kit, nil
}

package usecase

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/voley-club/internal/domain/coach"
	idgen "github.com/riskibarqy/voley-club/internal/platform/id"
	"github.com/riskibarqy/voley-club/internal/platform/logging"
)

type CreateCoachInput struct {
	FirstName string
	LastName  string
	Document  string
	AvatarURL string
}

type CoachService struct {
	coachRepo coach.Repository
	idGen     idgen.Generator
	logger    *logging.Logger
}

func NewCoachService(coachRepo coach.Repository, idGen idgen.Generator, logger *logging.Logger) *CoachService {
	if logger == nil {
		logger = logging.Default()
	}

	return &CoachService{
		coachRepo: coachRepo,
		idGen:     idGen,
		logger:    logger,
	}
}

func (s *CoachService) ListCoaches(ctx context.Context) ([]coach.Coach, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CoachService.ListCoaches")
	defer span.End()

	coaches, err := s.coachRepo.List(ctx)
	if err != nil {
		return nil, storeFailure(err, "list coaches")
	}
	return coaches, nil
}

func (s *CoachService) CreateCoach(ctx context.Context, in CreateCoachInput) (coach.Coach, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CoachService.CreateCoach")
	defer span.End()

	c := coach.Coach{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Document:  strings.TrimSpace(in.Document),
		AvatarURL: strings.TrimSpace(in.AvatarURL),
	}
	switch {
	case c.FirstName == "":
		return coach.Coach{}, invalidField("firstName", "is required")
	case c.LastName == "":
		return coach.Coach{}, invalidField("lastName", "is required")
	case c.Document == "":
		return coach.Coach{}, invalidField("document", "is required")
	}

	_, taken, err := s.coachRepo.GetByDocument(ctx, c.Document)
	if err != nil {
		return coach.Coach{}, storeFailure(err, "check coach document")
	}
	if taken {
		return coach.Coach{}, conflict(coach.ErrDuplicateDocument, "document %s", c.Document)
	}

	c.ID, err = s.idGen.NewID()
	if err != nil {
		return coach.Coach{}, errors.Wrap(err, "generate coach id")
	}
	if err := c.Validate(); err != nil {
		return coach.Coach{}, invalidRule("coach", err)
	}

	if err := s.coachRepo.Create(ctx, c); err != nil {
		if errors.Is(err, coach.ErrDuplicateDocument) {
			return coach.Coach{}, conflict(err, "document %s", c.Document)
		}
		return coach.Coach{}, storeFailure(err, "create coach")
	}

	s.logger.InfoContext(ctx, "coach created", "coach_id", c.ID)
	return c, nil
}

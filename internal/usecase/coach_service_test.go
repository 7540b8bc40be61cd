package usecase

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/voley-club/internal/domain/coach"
	"github.com/riskibarqy/voley-club/internal/infrastructure/repository/memory"
	coachmock "github.com/riskibarqy/voley-club/internal/mocks/domain/coach"
)

func TestCoachService_CreateCoach(t *testing.T) {
	store := memory.NewStore()
	svc := NewCoachService(memory.NewCoachRepository(store), &sequenceIDs{prefix: "coach"}, nil)
	ctx := context.Background()

	got, err := svc.CreateCoach(ctx, CreateCoachInput{FirstName: " Laura ", LastName: "Pérez", Document: "30111222"})
	if err != nil {
		t.Fatalf("create coach: %v", err)
	}
	if got.ID != "coach-1" || got.FirstName != "Laura" {
		t.Fatalf("unexpected coach: %+v", got)
	}

	_, err = svc.CreateCoach(ctx, CreateCoachInput{FirstName: "Otra", LastName: "Persona", Document: "30111222"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	assert.True(t, errors.Is(err, coach.ErrDuplicateDocument))

	coaches, err := svc.ListCoaches(ctx)
	require.NoError(t, err)
	assert.Len(t, coaches, 1)
}

func TestCoachService_CreateCoach_RequiresFields(t *testing.T) {
	svc := NewCoachService(coachmock.NewRepository(t), &sequenceIDs{prefix: "coach"}, nil)

	tests := map[string]CreateCoachInput{
		"firstName": {LastName: "Pérez", Document: "1"},
		"lastName":  {FirstName: "Laura", Document: "1"},
		"document":  {FirstName: "Laura", LastName: "Pérez"},
	}
	for field, in := range tests {
		_, err := svc.CreateCoach(context.Background(), in)
		fe, ok := FieldErrorOf(err)
		if !ok || fe.Field != field {
			t.Fatalf("expected field error on %s, got %v", field, err)
		}
	}
}

func TestCoachService_CreateCoach_RaceOnDocument(t *testing.T) {
	repo := coachmock.NewRepository(t)
	svc := NewCoachService(repo, &sequenceIDs{prefix: "coach"}, nil)

	repo.On("GetByDocument", mock.Anything, "1").Return(coach.Coach{}, false, nil).Once()
	repo.On("Create", mock.Anything, mock.AnythingOfType("coach.Coach")).Return(coach.ErrDuplicateDocument).Once()

	_, err := svc.CreateCoach(context.Background(), CreateCoachInput{FirstName: "Laura", LastName: "Pérez", Document: "1"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

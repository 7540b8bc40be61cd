package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/voley-club/internal/domain/coach"
	qb "github.com/riskibarqy/voley-club/internal/platform/querybuilder"
)

const coachDocumentConstraint = "coaches_document_key"

var coachSelectColumns = mustModelColumns(coachTableModel{})

type CoachRepository struct {
	db *sqlx.DB
}

func NewCoachRepository(db *sqlx.DB) *CoachRepository {
	return &CoachRepository{db: db}
}

func (r *CoachRepository) List(ctx context.Context) ([]coach.Coach, error) {
	query, args, err := qb.Select(coachSelectColumns...).From("coaches").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select coaches query: %w", err)
	}

	var rows []coachTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select coaches: %w", err)
	}

	out := make([]coach.Coach, 0, len(rows))
	for _, row := range rows {
		out = append(out, toCoach(row))
	}
	return out, nil
}

func (r *CoachRepository) GetByID(ctx context.Context, id string) (coach.Coach, bool, error) {
	return r.getBy(ctx, "public_id", id)
}

func (r *CoachRepository) GetByDocument(ctx context.Context, document string) (coach.Coach, bool, error) {
	return r.getBy(ctx, "document", document)
}

func (r *CoachRepository) getBy(ctx context.Context, column, value string) (coach.Coach, bool, error) {
	query, args, err := qb.Select(coachSelectColumns...).From("coaches").
		Where(qb.Eq(column, value)).
		Limit(1).
		ToSQL()
	if err != nil {
		return coach.Coach{}, false, fmt.Errorf("build get coach by %s query: %w", column, err)
	}

	var row coachTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return coach.Coach{}, false, nil
		}
		return coach.Coach{}, false, fmt.Errorf("get coach by %s: %w", column, err)
	}
	return toCoach(row), true, nil
}

func (r *CoachRepository) Create(ctx context.Context, c coach.Coach) error {
	query, args, err := insertModelSQL("coaches", fromCoach(c))
	if err != nil {
		return fmt.Errorf("build insert coach query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, coachDocumentConstraint) {
			return fmt.Errorf("%w: %s", coach.ErrDuplicateDocument, c.Document)
		}
		return fmt.Errorf("insert coach: %w", err)
	}
	return nil
}

func fromCoach(c coach.Coach) coachTableModel {
	return coachTableModel{
		PublicID:  c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Document:  c.Document,
		AvatarURL: c.AvatarURL,
	}
}

func toCoach(row coachTableModel) coach.Coach {
	return coach.Coach{
		ID:        row.PublicID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Document:  row.Document,
		AvatarURL: row.AvatarURL,
	}
}

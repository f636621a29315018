package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-candidates-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Sortable field -> column whitelist. Anything else falls back to created_at,
// never into the query string.
var candidateSortColumns = map[string]string{
	domain.SortByFirstName:         "first_name",
	domain.SortByLastName:          "last_name",
	domain.SortBySeniority:         "seniority",
	domain.SortByYearsOfExperience: "years_of_experience",
	domain.SortByAvailability:      "availability",
	domain.SortByCreatedAt:         "created_at",
}

type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Save(ctx context.Context, candidate *domain.Candidate) error {
	p := candidate.Primitives()
	query := `
		INSERT INTO candidates (id, first_name, last_name, seniority, years_of_experience, availability, created_at, file_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			seniority = EXCLUDED.seniority,
			years_of_experience = EXCLUDED.years_of_experience,
			availability = EXCLUDED.availability,
			created_at = EXCLUDED.created_at,
			file_id = EXCLUDED.file_id`

	_, err := r.db.Exec(ctx, query,
		p.ID, p.FirstName, p.LastName, p.Seniority, p.YearsOfExperience, p.Availability, p.CreatedAt, p.FileID,
	)
	if err != nil {
		return fmt.Errorf("failed to save candidate: %w", err)
	}
	return nil
}

func (r *candidateRepository) FindByID(ctx context.Context, id domain.CandidateID) (*domain.Candidate, error) {
	query := `
		SELECT id, first_name, last_name, seniority, years_of_experience, availability, created_at, file_id
		FROM candidates WHERE id = $1`

	var p domain.CandidatePrimitives
	err := r.db.QueryRow(ctx, query, id.String()).Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Seniority, &p.YearsOfExperience, &p.Availability, &p.CreatedAt, &p.FileID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return domain.CandidateFromPrimitives(p)
}

func (r *candidateRepository) FindAll(ctx context.Context) ([]*domain.Candidate, error) {
	query := `
		SELECT id, first_name, last_name, seniority, years_of_experience, availability, created_at, file_id
		FROM candidates ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidates: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows)
}

func (r *candidateRepository) FindWithPagination(ctx context.Context, q domain.PageQuery) (*domain.PaginatedResult[*domain.Candidate], error) {
	where := ""
	args := []any{}
	if q.Search != "" {
		where = `WHERE first_name ILIKE $1 OR last_name ILIKE $1`
		args = append(args, "%"+q.Search+"%")
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM candidates ` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count candidates: %w", err)
	}

	column, ok := candidateSortColumns[q.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if q.SortOrder == domain.SortAsc {
		direction = "ASC"
	}

	offset := (q.Page - 1) * q.Limit
	query := fmt.Sprintf(`
		SELECT id, first_name, last_name, seniority, years_of_experience, availability, created_at, file_id
		FROM candidates %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`, where, column, direction, len(args)+1, len(args)+2)
	args = append(args, q.Limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidates page: %w", err)
	}
	defer rows.Close()

	candidates, err := scanCandidates(rows)
	if err != nil {
		return nil, err
	}
	return domain.NewPaginatedResult(candidates, total, q.Page, q.Limit), nil
}

func (r *candidateRepository) Delete(ctx context.Context, id domain.CandidateID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id.String())
	return err
}

func scanCandidates(rows pgx.Rows) ([]*domain.Candidate, error) {
	candidates := []*domain.Candidate{}
	for rows.Next() {
		var p domain.CandidatePrimitives
		err := rows.Scan(
			&p.ID, &p.FirstName, &p.LastName, &p.Seniority, &p.YearsOfExperience, &p.Availability, &p.CreatedAt, &p.FileID,
		)
		if err != nil {
			return nil, err
		}
		candidate, err := domain.CandidateFromPrimitives(p)
		if err != nil {
			return nil, fmt.Errorf("invalid candidate row %s: %w", p.ID, err)
		}
		candidates = append(candidates, candidate)
	}
	return candidates, rows.Err()
}

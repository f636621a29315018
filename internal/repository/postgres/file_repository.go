package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-candidates-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type fileRepository struct {
	db *pgxpool.Pool
}

func NewFileRepository(db *pgxpool.Pool) domain.FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Save(ctx context.Context, file *domain.File) error {
	p := file.Primitives()
	query := `
		INSERT INTO files (id, original_name, stored_name, url, mime_type, size, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			original_name = EXCLUDED.original_name,
			stored_name = EXCLUDED.stored_name,
			url = EXCLUDED.url,
			mime_type = EXCLUDED.mime_type,
			size = EXCLUDED.size,
			uploaded_at = EXCLUDED.uploaded_at`

	_, err := r.db.Exec(ctx, query,
		p.ID, p.OriginalName, p.StoredName, p.URL, p.MimeType, p.Size, p.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

func (r *fileRepository) FindByID(ctx context.Context, id domain.FileID) (*domain.File, error) {
	query := `
		SELECT id, original_name, stored_name, url, mime_type, size, uploaded_at
		FROM files WHERE id = $1`

	var p domain.FilePrimitives
	err := r.db.QueryRow(ctx, query, id.String()).Scan(
		&p.ID, &p.OriginalName, &p.StoredName, &p.URL, &p.MimeType, &p.Size, &p.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return domain.FileFromPrimitives(p)
}

func (r *fileRepository) FindAll(ctx context.Context) ([]*domain.File, error) {
	query := `
		SELECT id, original_name, stored_name, url, mime_type, size, uploaded_at
		FROM files ORDER BY uploaded_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch files: %w", err)
	}
	defer rows.Close()

	files := []*domain.File{}
	for rows.Next() {
		var p domain.FilePrimitives
		err := rows.Scan(&p.ID, &p.OriginalName, &p.StoredName, &p.URL, &p.MimeType, &p.Size, &p.UploadedAt)
		if err != nil {
			return nil, err
		}
		file, err := domain.FileFromPrimitives(p)
		if err != nil {
			return nil, fmt.Errorf("invalid file row %s: %w", p.ID, err)
		}
		files = append(files, file)
	}
	return files, rows.Err()
}

func (r *fileRepository) Delete(ctx context.Context, id domain.FileID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM files WHERE id = $1`, id.String())
	return err
}

package memory

import (
	"context"
	"sort"
	"sync"

	"go-candidates-backend/internal/domain"
)

// FileRepository keeps file metadata in an in-process map.
type FileRepository struct {
	mu    sync.RWMutex
	files map[domain.FileID]*domain.File
}

func NewFileRepository() *FileRepository {
	return &FileRepository{
		files: make(map[domain.FileID]*domain.File),
	}
}

func (r *FileRepository) Save(_ context.Context, file *domain.File) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files[file.ID()] = file
	return nil
}

func (r *FileRepository) FindByID(_ context.Context, id domain.FileID) (*domain.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.files[id], nil
}

func (r *FileRepository) FindAll(_ context.Context) ([]*domain.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*domain.File, 0, len(r.files))
	for _, f := range r.files {
		all = append(all, f)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[j].UploadedAt().Before(all[i].UploadedAt())
	})
	return all, nil
}

func (r *FileRepository) Delete(_ context.Context, id domain.FileID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.files, id)
	return nil
}

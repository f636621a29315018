package storage

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStorage abstracts where uploaded spreadsheet bytes live. Implementations
// must store under a name of the caller's choosing and hand the bytes back
// verbatim on Download.
type FileStorage interface {
	// Upload stores the bytes under a freshly generated unique name and
	// returns that stored name.
	Upload(ctx context.Context, data []byte, originalName, mimeType string) (string, error)
	Download(ctx context.Context, storedName string) ([]byte, error)
	// FileURL returns a retrievable URL for a stored name. It does not check
	// that the object exists.
	FileURL(storedName string) string
	Delete(ctx context.Context, storedName string) error
}

// uniqueName derives a collision-free stored name from the original upload
// name, keeping the extension so downloads stay openable.
func uniqueName(originalName string) string {
	ext := filepath.Ext(originalName)
	base := strings.TrimSuffix(filepath.Base(originalName), ext)
	if base == "" {
		base = "upload"
	}
	return base + "-" + uuid.NewString() + ext
}

package domain

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileID identifies one stored file. Unlike CandidateID it must be a UUID.
type FileID string

func NewFileID(value string) (FileID, error) {
	if _, err := uuid.Parse(value); err != nil {
		return "", NewValidationError("Invalid UUID format: %s", value)
	}
	return FileID(value), nil
}

func GenerateFileID() FileID {
	return FileID(uuid.NewString())
}

func (id FileID) String() string {
	return string(id)
}

// Characters that are unsafe in file names across filesystems.
var invalidFileNameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// FileName is a non-empty name of at most 255 characters with no control or
// reserved characters.
type FileName string

func NewFileName(value string) (FileName, error) {
	if strings.TrimSpace(value) == "" {
		return "", NewValidationError("File name cannot be empty")
	}
	if len(value) > 255 {
		return "", NewValidationError("File name cannot exceed 255 characters")
	}
	if invalidFileNameChars.MatchString(value) {
		return "", NewValidationError("File name contains invalid characters")
	}
	return FileName(value), nil
}

func (n FileName) String() string {
	return string(n)
}

// FileURL is a non-empty URL of at most 2048 characters.
type FileURL string

func NewFileURL(value string) (FileURL, error) {
	if strings.TrimSpace(value) == "" {
		return "", NewValidationError("File URL cannot be empty")
	}
	if len(value) > 2048 {
		return "", NewValidationError("File URL cannot exceed 2048 characters")
	}
	return FileURL(value), nil
}

func (u FileURL) String() string {
	return string(u)
}

// MIME types accepted for uploaded files.
const (
	MimeTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimeTypeXLS  = "application/vnd.ms-excel"
	MimeTypeCSV  = "text/csv"
	MimeTypePDF  = "application/pdf"
)

var allowedMimeTypes = map[string]bool{
	MimeTypeXLSX: true,
	MimeTypeXLS:  true,
	MimeTypeCSV:  true,
	MimeTypePDF:  true,
}

type FileMimeType string

func NewFileMimeType(value string) (FileMimeType, error) {
	if strings.TrimSpace(value) == "" {
		return "", NewValidationError("MIME type cannot be empty")
	}
	if !allowedMimeTypes[value] {
		return "", NewValidationError("Unsupported MIME type: %s", value)
	}
	return FileMimeType(value), nil
}

func (m FileMimeType) String() string {
	return string(m)
}

func (m FileMimeType) IsSpreadsheet() bool {
	return m == MimeTypeXLSX || m == MimeTypeXLS
}

// MaxFileSize caps uploads at 10 MiB.
const MaxFileSize = 10 * 1024 * 1024

type FileSize int64

func NewFileSize(value int64) (FileSize, error) {
	if value < 0 {
		return 0, NewValidationError("File size cannot be negative")
	}
	if value > MaxFileSize {
		return 0, NewValidationError("File size cannot exceed 10MB")
	}
	return FileSize(value), nil
}

func (s FileSize) Bytes() int64 {
	return int64(s)
}

// File is the immutable metadata record for one stored upload. The bytes
// themselves live in a FileStorage backend under the stored name.
type File struct {
	id           FileID
	originalName FileName
	storedName   FileName
	url          FileURL
	mimeType     FileMimeType
	size         FileSize
	uploadedAt   time.Time
}

func NewFile(originalName, storedName FileName, url FileURL, mimeType FileMimeType, size FileSize) *File {
	return &File{
		id:           GenerateFileID(),
		originalName: originalName,
		storedName:   storedName,
		url:          url,
		mimeType:     mimeType,
		size:         size,
		uploadedAt:   time.Now(),
	}
}

type FilePrimitives struct {
	ID           string
	OriginalName string
	StoredName   string
	URL          string
	MimeType     string
	Size         int64
	UploadedAt   time.Time
}

func FileFromPrimitives(p FilePrimitives) (*File, error) {
	id, err := NewFileID(p.ID)
	if err != nil {
		return nil, err
	}
	originalName, err := NewFileName(p.OriginalName)
	if err != nil {
		return nil, err
	}
	storedName, err := NewFileName(p.StoredName)
	if err != nil {
		return nil, err
	}
	url, err := NewFileURL(p.URL)
	if err != nil {
		return nil, err
	}
	mimeType, err := NewFileMimeType(p.MimeType)
	if err != nil {
		return nil, err
	}
	size, err := NewFileSize(p.Size)
	if err != nil {
		return nil, err
	}

	return &File{
		id:           id,
		originalName: originalName,
		storedName:   storedName,
		url:          url,
		mimeType:     mimeType,
		size:         size,
		uploadedAt:   p.UploadedAt,
	}, nil
}

func (f *File) ID() FileID             { return f.id }
func (f *File) OriginalName() FileName { return f.originalName }
func (f *File) StoredName() FileName   { return f.storedName }
func (f *File) URL() FileURL           { return f.url }
func (f *File) MimeType() FileMimeType { return f.mimeType }
func (f *File) Size() FileSize         { return f.size }
func (f *File) UploadedAt() time.Time  { return f.uploadedAt }

func (f *File) Primitives() FilePrimitives {
	return FilePrimitives{
		ID:           f.id.String(),
		OriginalName: f.originalName.String(),
		StoredName:   f.storedName.String(),
		URL:          f.url.String(),
		MimeType:     f.mimeType.String(),
		Size:         f.size.Bytes(),
		UploadedAt:   f.uploadedAt,
	}
}

// FileRepository owns the stored file-metadata collection. Same absence
// semantics as CandidateRepository.
type FileRepository interface {
	Save(ctx context.Context, file *File) error
	FindByID(ctx context.Context, id FileID) (*File, error)
	FindAll(ctx context.Context) ([]*File, error)
	Delete(ctx context.Context, id FileID) error
}

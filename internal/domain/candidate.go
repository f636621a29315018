package domain

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CandidateID identifies one candidate record. Opaque to callers; a fresh ID
// is a UUID but any non-blank string loaded from storage is accepted.
type CandidateID string

func NewCandidateID(value string) (CandidateID, error) {
	if strings.TrimSpace(value) == "" {
		return "", NewValidationError("Candidate ID cannot be empty")
	}
	return CandidateID(value), nil
}

func GenerateCandidateID() CandidateID {
	return CandidateID(uuid.NewString())
}

func (id CandidateID) String() string {
	return string(id)
}

// PersonName holds a first and last name, both trimmed and non-blank.
type PersonName struct {
	first string
	last  string
}

func NewPersonName(first, last string) (PersonName, error) {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	if first == "" {
		return PersonName{}, NewValidationError("First name cannot be empty")
	}
	if last == "" {
		return PersonName{}, NewValidationError("Last name cannot be empty")
	}
	return PersonName{first: first, last: last}, nil
}

func (n PersonName) First() string {
	return n.first
}

func (n PersonName) Last() string {
	return n.last
}

func (n PersonName) Full() string {
	return n.first + " " + n.last
}

// Seniority is either "Junior" or "Senior", normalized to canonical casing.
type Seniority string

const (
	SeniorityJunior Seniority = "Junior"
	SenioritySenior Seniority = "Senior"
)

func NewSeniority(value string) (Seniority, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "junior":
		return SeniorityJunior, nil
	case "senior":
		return SenioritySenior, nil
	default:
		return "", NewValidationError(`Seniority must be "Junior" or "Senior"`)
	}
}

func (s Seniority) String() string {
	return string(s)
}

// YearsOfExperience is a non-negative finite number of years.
type YearsOfExperience float64

func NewYearsOfExperience(value float64) (YearsOfExperience, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0, NewValidationError("Years of experience must be a non-negative number")
	}
	return YearsOfExperience(value), nil
}

func (y YearsOfExperience) Value() float64 {
	return float64(y)
}

// Availability says whether the candidate can start now.
type Availability bool

func NewAvailability(value bool) Availability {
	return Availability(value)
}

// AvailabilityFromAny accepts a native bool or the case-insensitive strings
// "true"/"false". Everything else, numbers and nil included, is rejected.
func AvailabilityFromAny(value any) (Availability, error) {
	switch v := value.(type) {
	case bool:
		return Availability(v), nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return Availability(true), nil
		case "false":
			return Availability(false), nil
		}
	}
	return false, NewValidationError("Availability must be true or false")
}

func (a Availability) Bool() bool {
	return bool(a)
}

// Candidate is the immutable candidate aggregate. Construction goes through
// NewCandidate or CandidateFromPrimitives only, so every live instance has
// passed value object validation.
type Candidate struct {
	id           CandidateID
	name         PersonName
	seniority    Seniority
	years        YearsOfExperience
	availability Availability
	createdAt    time.Time
	fileID       *FileID
}

// NewCandidate builds a fresh record, generating the identifier and stamping
// the creation time. fileID may be nil when no spreadsheet was kept.
func NewCandidate(name PersonName, seniority Seniority, years YearsOfExperience, availability Availability, fileID *FileID) *Candidate {
	return &Candidate{
		id:           GenerateCandidateID(),
		name:         name,
		seniority:    seniority,
		years:        years,
		availability: availability,
		createdAt:    time.Now(),
		fileID:       fileID,
	}
}

// CandidatePrimitives is the flat projection used for persistence and
// response assembly.
type CandidatePrimitives struct {
	ID                string
	FirstName         string
	LastName          string
	Seniority         string
	YearsOfExperience float64
	Availability      bool
	CreatedAt         time.Time
	FileID            *string
}

// CandidateFromPrimitives rebuilds a record from stored fields. The same
// validation as first construction applies, so malformed persisted data
// fails loudly instead of being coerced.
func CandidateFromPrimitives(p CandidatePrimitives) (*Candidate, error) {
	id, err := NewCandidateID(p.ID)
	if err != nil {
		return nil, err
	}
	name, err := NewPersonName(p.FirstName, p.LastName)
	if err != nil {
		return nil, err
	}
	seniority, err := NewSeniority(p.Seniority)
	if err != nil {
		return nil, err
	}
	years, err := NewYearsOfExperience(p.YearsOfExperience)
	if err != nil {
		return nil, err
	}

	var fileID *FileID
	if p.FileID != nil {
		fid, err := NewFileID(*p.FileID)
		if err != nil {
			return nil, err
		}
		fileID = &fid
	}

	return &Candidate{
		id:           id,
		name:         name,
		seniority:    seniority,
		years:        years,
		availability: NewAvailability(p.Availability),
		createdAt:    p.CreatedAt,
		fileID:       fileID,
	}, nil
}

func (c *Candidate) ID() CandidateID            { return c.id }
func (c *Candidate) Name() PersonName           { return c.name }
func (c *Candidate) Seniority() Seniority       { return c.seniority }
func (c *Candidate) Years() YearsOfExperience   { return c.years }
func (c *Candidate) Availability() Availability { return c.availability }
func (c *Candidate) CreatedAt() time.Time       { return c.createdAt }
func (c *Candidate) IsAvailable() bool          { return c.availability.Bool() }

// FileID returns the associated file reference, or nil.
func (c *Candidate) FileID() *FileID {
	if c.fileID == nil {
		return nil
	}
	fid := *c.fileID
	return &fid
}

func (c *Candidate) Primitives() CandidatePrimitives {
	p := CandidatePrimitives{
		ID:                c.id.String(),
		FirstName:         c.name.First(),
		LastName:          c.name.Last(),
		Seniority:         c.seniority.String(),
		YearsOfExperience: c.years.Value(),
		Availability:      c.availability.Bool(),
		CreatedAt:         c.createdAt,
	}
	if c.fileID != nil {
		fid := c.fileID.String()
		p.FileID = &fid
	}
	return p
}

// CandidateRepository owns the stored candidate collection. FindByID returns
// (nil, nil) when the record is absent; Delete of an absent record is a no-op.
// FindAll returns records in descending creation-time order.
type CandidateRepository interface {
	Save(ctx context.Context, candidate *Candidate) error
	FindByID(ctx context.Context, id CandidateID) (*Candidate, error)
	FindAll(ctx context.Context) ([]*Candidate, error)
	FindWithPagination(ctx context.Context, query PageQuery) (*PaginatedResult[*Candidate], error)
	Delete(ctx context.Context, id CandidateID) error
}

// CreateCandidateInput carries the multipart form fields for creation.
type CreateCandidateInput struct {
	FirstName string `form:"firstName" validate:"required"`
	LastName  string `form:"lastName" validate:"required"`
}

// UploadedSpreadsheet is the raw file as received from the client.
type UploadedSpreadsheet struct {
	Name     string
	MimeType string
	Size     int64
	Data     []byte
}

// CandidateResponse is the API projection of one candidate.
type CandidateResponse struct {
	ID                string    `json:"id"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	Seniority         string    `json:"seniority"`
	YearsOfExperience float64   `json:"yearsOfExperience"`
	Availability      bool      `json:"availability"`
	CreatedAt         time.Time `json:"createdAt"`
	FileURL           string    `json:"fileUrl,omitempty"`
}

// FileDownload is a resolved attachment ready to stream back.
type FileDownload struct {
	FileName string
	MimeType string
	Data     []byte
}

type CandidateUsecase interface {
	Create(ctx context.Context, input CreateCandidateInput, sheet UploadedSpreadsheet) (*CandidateResponse, error)
	ListAll(ctx context.Context) ([]CandidateResponse, error)
	ListWithPagination(ctx context.Context, query PageQuery) (*PaginatedResult[CandidateResponse], error)
	DownloadFile(ctx context.Context, id string) (*FileDownload, error)
}

// SheetData is what the spreadsheet parser extracts from the data row.
type SheetData struct {
	Seniority         string
	YearsOfExperience float64
	Availability      bool
}

// SheetParser turns uploaded spreadsheet bytes into typed candidate fields.
type SheetParser interface {
	Parse(data []byte) (*SheetData, error)
}

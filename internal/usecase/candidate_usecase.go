package usecase

import (
	"context"

	"go-candidates-backend/internal/domain"
	"go-candidates-backend/pkg/apperror"
	"go-candidates-backend/pkg/logger"
	"go-candidates-backend/pkg/storage"

	"github.com/go-playground/validator/v10"
)

type candidateUsecase struct {
	candidates domain.CandidateRepository
	files      domain.FileRepository
	parser     domain.SheetParser
	storage    storage.FileStorage
	validate   *validator.Validate
}

func NewCandidateUsecase(
	candidates domain.CandidateRepository,
	files domain.FileRepository,
	parser domain.SheetParser,
	fileStorage storage.FileStorage,
	validate *validator.Validate,
) domain.CandidateUsecase {
	return &candidateUsecase{
		candidates: candidates,
		files:      files,
		parser:     parser,
		storage:    fileStorage,
		validate:   validate,
	}
}

// Create runs the full creation flow: parse the spreadsheet, store the raw
// bytes, persist the file record, then persist the candidate referencing it.
// A failure after the bytes were stored triggers best-effort cleanup so the
// storage backend is not left holding orphans.
func (u *candidateUsecase) Create(ctx context.Context, input domain.CreateCandidateInput, sheet domain.UploadedSpreadsheet) (*domain.CandidateResponse, error) {
	if err := u.validate.Struct(input); err != nil {
		return nil, apperror.BadRequest("First name and last name are required")
	}

	sheetData, err := u.parser.Parse(sheet.Data)
	if err != nil {
		return nil, err
	}

	name, err := domain.NewPersonName(input.FirstName, input.LastName)
	if err != nil {
		return nil, err
	}
	seniority, err := domain.NewSeniority(sheetData.Seniority)
	if err != nil {
		return nil, err
	}
	years, err := domain.NewYearsOfExperience(sheetData.YearsOfExperience)
	if err != nil {
		return nil, err
	}
	availability := domain.NewAvailability(sheetData.Availability)

	originalName, err := domain.NewFileName(sheet.Name)
	if err != nil {
		return nil, err
	}
	mimeType, err := domain.NewFileMimeType(sheet.MimeType)
	if err != nil {
		return nil, err
	}
	size, err := domain.NewFileSize(sheet.Size)
	if err != nil {
		return nil, err
	}

	stored, err := u.storage.Upload(ctx, sheet.Data, sheet.Name, sheet.MimeType)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	storedName, err := domain.NewFileName(stored)
	if err != nil {
		return nil, err
	}
	url, err := domain.NewFileURL(u.storage.FileURL(stored))
	if err != nil {
		return nil, err
	}

	file := domain.NewFile(originalName, storedName, url, mimeType, size)
	if err := u.files.Save(ctx, file); err != nil {
		u.cleanupStored(ctx, stored, "")
		return nil, apperror.Internal(err)
	}

	fileID := file.ID()
	candidate := domain.NewCandidate(name, seniority, years, availability, &fileID)
	if err := u.candidates.Save(ctx, candidate); err != nil {
		u.cleanupStored(ctx, stored, fileID.String())
		return nil, apperror.Internal(err)
	}

	resp := toResponse(candidate, url.String())
	return &resp, nil
}

// cleanupStored undoes the file side of a half-finished creation. Failures
// here are logged, not returned: the caller already has the real error.
func (u *candidateUsecase) cleanupStored(ctx context.Context, storedName, fileID string) {
	if err := u.storage.Delete(ctx, storedName); err != nil {
		logger.Log.Warn("failed to clean up stored file", "storedName", storedName, "error", err)
	}
	if fileID == "" {
		return
	}
	id, err := domain.NewFileID(fileID)
	if err != nil {
		return
	}
	if err := u.files.Delete(ctx, id); err != nil {
		logger.Log.Warn("failed to clean up file record", "fileId", fileID, "error", err)
	}
}

func (u *candidateUsecase) ListAll(ctx context.Context) ([]domain.CandidateResponse, error) {
	candidates, err := u.candidates.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.CandidateResponse, 0, len(candidates))
	for _, c := range candidates {
		responses = append(responses, toResponse(c, u.resolveFileURL(ctx, c)))
	}
	return responses, nil
}

func (u *candidateUsecase) ListWithPagination(ctx context.Context, query domain.PageQuery) (*domain.PaginatedResult[domain.CandidateResponse], error) {
	if query.Page < 1 || query.Limit < 1 || query.Limit > 100 {
		return nil, apperror.BadRequest("Invalid pagination parameters")
	}
	if query.SortBy != "" && !validSortField(query.SortBy) {
		return nil, apperror.BadRequest("Invalid sort field: " + query.SortBy)
	}
	if query.SortOrder == "" {
		query.SortOrder = domain.SortDesc
	}

	page, err := u.candidates.FindWithPagination(ctx, query)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.CandidateResponse, 0, len(page.Data))
	for _, c := range page.Data {
		responses = append(responses, toResponse(c, u.resolveFileURL(ctx, c)))
	}
	return &domain.PaginatedResult[domain.CandidateResponse]{
		Data:       responses,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	}, nil
}

func (u *candidateUsecase) DownloadFile(ctx context.Context, id string) (*domain.FileDownload, error) {
	candidateID, err := domain.NewCandidateID(id)
	if err != nil {
		return nil, err
	}

	candidate, err := u.candidates.FindByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, apperror.NotFound("Candidate not found")
	}

	fileID := candidate.FileID()
	if fileID == nil {
		return nil, apperror.NotFound("No file found for this candidate")
	}

	file, err := u.files.FindByID(ctx, *fileID)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, apperror.NotFound("File not found")
	}

	data, err := u.storage.Download(ctx, file.StoredName().String())
	if err != nil {
		return nil, apperror.NotFound("File not found")
	}

	return &domain.FileDownload{
		FileName: file.OriginalName().String(),
		MimeType: file.MimeType().String(),
		Data:     data,
	}, nil
}

// resolveFileURL looks up a candidate's file record to fill the fileUrl
// field. One lookup per record; fine at the scale this service targets.
func (u *candidateUsecase) resolveFileURL(ctx context.Context, c *domain.Candidate) string {
	fileID := c.FileID()
	if fileID == nil {
		return ""
	}
	file, err := u.files.FindByID(ctx, *fileID)
	if err != nil || file == nil {
		// Missing file metadata is tolerated on reads; listing just omits it.
		return ""
	}
	return file.URL().String()
}

func toResponse(c *domain.Candidate, fileURL string) domain.CandidateResponse {
	p := c.Primitives()
	return domain.CandidateResponse{
		ID:                p.ID,
		FirstName:         p.FirstName,
		LastName:          p.LastName,
		Seniority:         p.Seniority,
		YearsOfExperience: p.YearsOfExperience,
		Availability:      p.Availability,
		CreatedAt:         p.CreatedAt,
		FileURL:           fileURL,
	}
}

func validSortField(field string) bool {
	switch field {
	case domain.SortByFirstName, domain.SortByLastName, domain.SortBySeniority,
		domain.SortByYearsOfExperience, domain.SortByAvailability, domain.SortByCreatedAt:
		return true
	}
	return false
}

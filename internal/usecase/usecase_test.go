package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go-candidates-backend/internal/domain"
	"go-candidates-backend/internal/usecase"
	"go-candidates-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.Init()
}

// Mock Repositories

type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) Save(ctx context.Context, c *domain.Candidate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCandidateRepo) FindByID(ctx context.Context, id domain.CandidateID) (*domain.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) FindAll(ctx context.Context) ([]*domain.Candidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) FindWithPagination(ctx context.Context, q domain.PageQuery) (*domain.PaginatedResult[*domain.Candidate], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaginatedResult[*domain.Candidate]), args.Error(1)
}

func (m *MockCandidateRepo) Delete(ctx context.Context, id domain.CandidateID) error {
	return m.Called(ctx, id).Error(0)
}

type MockFileRepo struct {
	mock.Mock
}

func (m *MockFileRepo) Save(ctx context.Context, f *domain.File) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFileRepo) FindByID(ctx context.Context, id domain.FileID) (*domain.File, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.File), args.Error(1)
}

func (m *MockFileRepo) FindAll(ctx context.Context) ([]*domain.File, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.File), args.Error(1)
}

func (m *MockFileRepo) Delete(ctx context.Context, id domain.FileID) error {
	return m.Called(ctx, id).Error(0)
}

type MockParser struct {
	mock.Mock
}

func (m *MockParser) Parse(data []byte) (*domain.SheetData, error) {
	args := m.Called(data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SheetData), args.Error(1)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, data []byte, originalName, mimeType string) (string, error) {
	args := m.Called(ctx, data, originalName, mimeType)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) Download(ctx context.Context, storedName string) ([]byte, error) {
	args := m.Called(ctx, storedName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStorage) FileURL(storedName string) string {
	return m.Called(storedName).String(0)
}

func (m *MockStorage) Delete(ctx context.Context, storedName string) error {
	return m.Called(ctx, storedName).Error(0)
}

func validSheet() domain.UploadedSpreadsheet {
	return domain.UploadedSpreadsheet{
		Name:     "candidates.xlsx",
		MimeType: domain.MimeTypeXLSX,
		Size:     1024,
		Data:     []byte("workbook-bytes"),
	}
}

func newUsecase(candidates *MockCandidateRepo, files *MockFileRepo, p *MockParser, s *MockStorage) domain.CandidateUsecase {
	return usecase.NewCandidateUsecase(candidates, files, p, s, validator.New())
}

func TestCreateCandidate(t *testing.T) {
	ctx := context.Background()

	t.Run("Should parse, store, persist file then candidate", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		files := new(MockFileRepo)
		p := new(MockParser)
		s := new(MockStorage)
		uc := newUsecase(candidates, files, p, s)

		sheet := validSheet()
		p.On("Parse", sheet.Data).Return(&domain.SheetData{Seniority: "Senior", YearsOfExperience: 5, Availability: true}, nil)
		s.On("Upload", ctx, sheet.Data, "candidates.xlsx", domain.MimeTypeXLSX).Return("candidates-abc.xlsx", nil)
		s.On("FileURL", "candidates-abc.xlsx").Return("/uploads/candidates-abc.xlsx")

		var savedFile *domain.File
		files.On("Save", ctx, mock.AnythingOfType("*domain.File")).Return(nil).Run(func(args mock.Arguments) {
			savedFile = args.Get(1).(*domain.File)
		})
		candidates.On("Save", ctx, mock.AnythingOfType("*domain.Candidate")).Return(nil).Run(func(args mock.Arguments) {
			c := args.Get(1).(*domain.Candidate)
			require.NotNil(t, savedFile)
			require.NotNil(t, c.FileID())
			assert.Equal(t, savedFile.ID(), *c.FileID())
		})

		resp, err := uc.Create(ctx, domain.CreateCandidateInput{FirstName: "John", LastName: "Doe"}, sheet)
		require.NoError(t, err)

		assert.Equal(t, "John", resp.FirstName)
		assert.Equal(t, "Doe", resp.LastName)
		assert.Equal(t, "Senior", resp.Seniority)
		assert.Equal(t, 5.0, resp.YearsOfExperience)
		assert.True(t, resp.Availability)
		assert.NotEmpty(t, resp.ID)
		assert.False(t, resp.CreatedAt.IsZero())
		assert.Equal(t, "/uploads/candidates-abc.xlsx", resp.FileURL)

		candidates.AssertExpectations(t)
		files.AssertExpectations(t)
		s.AssertExpectations(t)
	})

	t.Run("Should reject missing names before touching the parser", func(t *testing.T) {
		uc := newUsecase(new(MockCandidateRepo), new(MockFileRepo), new(MockParser), new(MockStorage))

		_, err := uc.Create(ctx, domain.CreateCandidateInput{FirstName: "John"}, validSheet())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "required")
	})

	t.Run("Should abort on parse failure without storing anything", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		files := new(MockFileRepo)
		p := new(MockParser)
		s := new(MockStorage)
		uc := newUsecase(candidates, files, p, s)

		sheet := validSheet()
		p.On("Parse", sheet.Data).Return(nil, domain.NewParseError("Excel file must contain at least one data row", nil))

		_, err := uc.Create(ctx, domain.CreateCandidateInput{FirstName: "John", LastName: "Doe"}, sheet)
		require.Error(t, err)

		var parseErr *domain.ParseError
		assert.ErrorAs(t, err, &parseErr)
		s.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		candidates.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Should clean up stored bytes and file record when candidate save fails", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		files := new(MockFileRepo)
		p := new(MockParser)
		s := new(MockStorage)
		uc := newUsecase(candidates, files, p, s)

		sheet := validSheet()
		p.On("Parse", sheet.Data).Return(&domain.SheetData{Seniority: "Junior", YearsOfExperience: 1, Availability: false}, nil)
		s.On("Upload", ctx, sheet.Data, "candidates.xlsx", domain.MimeTypeXLSX).Return("candidates-abc.xlsx", nil)
		s.On("FileURL", "candidates-abc.xlsx").Return("/uploads/candidates-abc.xlsx")
		files.On("Save", ctx, mock.AnythingOfType("*domain.File")).Return(nil)
		candidates.On("Save", ctx, mock.AnythingOfType("*domain.Candidate")).Return(errors.New("db down"))

		s.On("Delete", ctx, "candidates-abc.xlsx").Return(nil)
		files.On("Delete", ctx, mock.AnythingOfType("domain.FileID")).Return(nil)

		_, err := uc.Create(ctx, domain.CreateCandidateInput{FirstName: "John", LastName: "Doe"}, sheet)
		require.Error(t, err)

		s.AssertCalled(t, "Delete", ctx, "candidates-abc.xlsx")
		files.AssertCalled(t, "Delete", ctx, mock.AnythingOfType("domain.FileID"))
	})

	t.Run("Should reject a disallowed MIME type", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		files := new(MockFileRepo)
		p := new(MockParser)
		s := new(MockStorage)
		uc := newUsecase(candidates, files, p, s)

		sheet := validSheet()
		sheet.MimeType = "text/html"
		p.On("Parse", sheet.Data).Return(&domain.SheetData{Seniority: "Junior", YearsOfExperience: 1, Availability: false}, nil)

		_, err := uc.Create(ctx, domain.CreateCandidateInput{FirstName: "John", LastName: "Doe"}, sheet)
		require.Error(t, err)
		s.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestListWithPagination(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject out-of-range pagination parameters", func(t *testing.T) {
		uc := newUsecase(new(MockCandidateRepo), new(MockFileRepo), new(MockParser), new(MockStorage))

		for _, q := range []domain.PageQuery{
			{Page: 0, Limit: 10},
			{Page: 1, Limit: 0},
			{Page: 1, Limit: 101},
			{Page: -3, Limit: 10},
		} {
			_, err := uc.ListWithPagination(ctx, q)
			assert.Error(t, err, "query %+v", q)
		}
	})

	t.Run("Should reject unknown sort fields", func(t *testing.T) {
		uc := newUsecase(new(MockCandidateRepo), new(MockFileRepo), new(MockParser), new(MockStorage))

		_, err := uc.ListWithPagination(ctx, domain.PageQuery{Page: 1, Limit: 10, SortBy: "salary"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sort field")
	})

	t.Run("Should default the sort order to descending and map the envelope", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		files := new(MockFileRepo)
		uc := newUsecase(candidates, files, new(MockParser), new(MockStorage))

		name, _ := domain.NewPersonName("Jane", "Doe")
		seniority, _ := domain.NewSeniority("senior")
		years, _ := domain.NewYearsOfExperience(7)
		c := domain.NewCandidate(name, seniority, years, domain.NewAvailability(true), nil)

		candidates.On("FindWithPagination", ctx, mock.MatchedBy(func(q domain.PageQuery) bool {
			return q.SortOrder == domain.SortDesc
		})).Return(domain.NewPaginatedResult([]*domain.Candidate{c}, 1, 1, 10), nil)

		result, err := uc.ListWithPagination(ctx, domain.PageQuery{Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Len(t, result.Data, 1)
		assert.Equal(t, "Jane", result.Data[0].FirstName)
		assert.Equal(t, int64(1), result.Total)
		assert.Equal(t, 1, result.TotalPages)
	})
}

func TestListAllResolvesFileURLs(t *testing.T) {
	ctx := context.Background()
	candidates := new(MockCandidateRepo)
	files := new(MockFileRepo)
	uc := newUsecase(candidates, files, new(MockParser), new(MockStorage))

	originalName, _ := domain.NewFileName("a.xlsx")
	storedName, _ := domain.NewFileName("a-1.xlsx")
	url, _ := domain.NewFileURL("/uploads/a-1.xlsx")
	mimeType, _ := domain.NewFileMimeType(domain.MimeTypeXLSX)
	size, _ := domain.NewFileSize(10)
	file := domain.NewFile(originalName, storedName, url, mimeType, size)
	fileID := file.ID()

	name, _ := domain.NewPersonName("Jane", "Doe")
	seniority, _ := domain.NewSeniority("junior")
	years, _ := domain.NewYearsOfExperience(1)
	withFile := domain.NewCandidate(name, seniority, years, domain.NewAvailability(true), &fileID)
	withoutFile := domain.NewCandidate(name, seniority, years, domain.NewAvailability(false), nil)

	candidates.On("FindAll", ctx).Return([]*domain.Candidate{withFile, withoutFile}, nil)
	files.On("FindByID", ctx, fileID).Return(file, nil)

	responses, err := uc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, responses, 2)
	assert.Equal(t, "/uploads/a-1.xlsx", responses[0].FileURL)
	assert.Empty(t, responses[1].FileURL)
}

func TestDownloadFile(t *testing.T) {
	ctx := context.Background()

	t.Run("Should 404 when the candidate is missing", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		uc := newUsecase(candidates, new(MockFileRepo), new(MockParser), new(MockStorage))

		candidates.On("FindByID", ctx, mock.AnythingOfType("domain.CandidateID")).Return(nil, nil)

		_, err := uc.DownloadFile(ctx, "missing-id")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Candidate not found")
	})

	t.Run("Should 404 when the candidate has no file", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		uc := newUsecase(candidates, new(MockFileRepo), new(MockParser), new(MockStorage))

		name, _ := domain.NewPersonName("Jane", "Doe")
		seniority, _ := domain.NewSeniority("junior")
		years, _ := domain.NewYearsOfExperience(1)
		c := domain.NewCandidate(name, seniority, years, domain.NewAvailability(true), nil)

		candidates.On("FindByID", ctx, c.ID()).Return(c, nil)

		_, err := uc.DownloadFile(ctx, c.ID().String())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "No file found")
	})

	t.Run("Should stream the original name, type and bytes", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		files := new(MockFileRepo)
		s := new(MockStorage)
		uc := newUsecase(candidates, files, new(MockParser), s)

		originalName, _ := domain.NewFileName("report.xlsx")
		storedName, _ := domain.NewFileName("report-1.xlsx")
		url, _ := domain.NewFileURL("/uploads/report-1.xlsx")
		mimeType, _ := domain.NewFileMimeType(domain.MimeTypeXLSX)
		size, _ := domain.NewFileSize(4)
		file := domain.NewFile(originalName, storedName, url, mimeType, size)
		fileID := file.ID()

		name, _ := domain.NewPersonName("Jane", "Doe")
		seniority, _ := domain.NewSeniority("senior")
		years, _ := domain.NewYearsOfExperience(3)
		c := domain.NewCandidate(name, seniority, years, domain.NewAvailability(true), &fileID)

		candidates.On("FindByID", ctx, c.ID()).Return(c, nil)
		files.On("FindByID", ctx, fileID).Return(file, nil)
		s.On("Download", ctx, "report-1.xlsx").Return([]byte("data"), nil)

		download, err := uc.DownloadFile(ctx, c.ID().String())
		require.NoError(t, err)
		assert.Equal(t, "report.xlsx", download.FileName)
		assert.Equal(t, domain.MimeTypeXLSX, download.MimeType)
		assert.Equal(t, []byte("data"), download.Data)
	})
}

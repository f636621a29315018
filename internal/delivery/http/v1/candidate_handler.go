package v1

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"go-candidates-backend/internal/domain"
	"go-candidates-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

func NewCandidateHandler(r *gin.RouterGroup, candidateUC domain.CandidateUsecase, uploadLimiter gin.HandlerFunc) {
	handler := &CandidateHandler{candidateUC: candidateUC}

	candidates := r.Group("/candidates")
	{
		candidates.POST("", uploadLimiter, handler.CreateCandidate)
		candidates.GET("", handler.ListCandidates)
		candidates.GET("/:id/download-file", handler.DownloadFile)
	}
}

// CreateCandidate godoc
// @Summary      Create a candidate
// @Description  Create a candidate from form names plus an uploaded spreadsheet
// @Tags         candidates
// @Accept       multipart/form-data
// @Produce      json
// @Param        firstName  formData  string  true  "First name"
// @Param        lastName   formData  string  true  "Last name"
// @Param        excelFile  formData  file    true  "Spreadsheet with seniority, years, availability"
// @Success      201  {object}  domain.CandidateResponse
// @Failure      400  {object}  response.Response
// @Router       /candidates [post]
func (h *CandidateHandler) CreateCandidate(c *gin.Context) {
	fileHeader, err := c.FormFile("excelFile")
	if err != nil {
		c.Error(apperror.BadRequest("Excel file is required"))
		return
	}

	input := domain.CreateCandidateInput{
		FirstName: c.PostForm("firstName"),
		LastName:  c.PostForm("lastName"),
	}
	if input.FirstName == "" || input.LastName == "" {
		c.Error(apperror.BadRequest("First name and last name are required"))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, domain.MaxFileSize+1))
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	sheet := domain.UploadedSpreadsheet{
		Name:     filepath.Base(fileHeader.Filename),
		MimeType: sheetMimeType(fileHeader.Filename, fileHeader.Header.Get("Content-Type")),
		Size:     int64(len(data)),
		Data:     data,
	}

	resp, err := h.candidateUC.Create(c.Request.Context(), input, sheet)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListCandidates godoc
// @Summary      List candidates
// @Description  Without page and limit returns the full array; with them returns a pagination envelope
// @Tags         candidates
// @Produce      json
// @Param        page       query  int     false  "1-indexed page"
// @Param        limit      query  int     false  "Page size (1-100)"
// @Param        sortBy     query  string  false  "firstName|lastName|seniority|yearsOfExperience|availability|createdAt"
// @Param        sortOrder  query  string  false  "ASC or DESC"
// @Param        search     query  string  false  "Substring match on first or last name"
// @Success      200  {array}  domain.CandidateResponse
// @Failure      400  {object}  response.Response
// @Router       /candidates [get]
func (h *CandidateHandler) ListCandidates(c *gin.Context) {
	page := c.Query("page")
	limit := c.Query("limit")

	// Back-compatible shape: no pagination params means the bare array.
	if page == "" && limit == "" {
		responses, err := h.candidateUC.ListAll(c.Request.Context())
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, responses)
		return
	}

	pageNumber, err := strconv.Atoi(defaultString(page, "1"))
	if err != nil {
		c.Error(apperror.BadRequest("Invalid pagination parameters"))
		return
	}
	limitNumber, err := strconv.Atoi(defaultString(limit, "10"))
	if err != nil {
		c.Error(apperror.BadRequest("Invalid pagination parameters"))
		return
	}

	query := domain.PageQuery{
		Page:      pageNumber,
		Limit:     limitNumber,
		SortBy:    c.Query("sortBy"),
		SortOrder: domain.SortOrder(strings.ToUpper(c.DefaultQuery("sortOrder", string(domain.SortDesc)))),
		Search:    c.Query("search"),
	}

	result, err := h.candidateUC.ListWithPagination(c.Request.Context(), query)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DownloadFile godoc
// @Summary      Download a candidate's uploaded spreadsheet
// @Tags         candidates
// @Produce      application/octet-stream
// @Param        id  path  string  true  "Candidate ID"
// @Success      200  {file}  binary
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id}/download-file [get]
func (h *CandidateHandler) DownloadFile(c *gin.Context) {
	download, err := h.candidateUC.DownloadFile(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.FileName))
	c.Data(http.StatusOK, download.MimeType, download.Data)
}

// sheetMimeType prefers the client-supplied content type but falls back to
// the extension when the client sent nothing useful.
func sheetMimeType(filename, headerMime string) string {
	if headerMime != "" && headerMime != "application/octet-stream" {
		return headerMime
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return domain.MimeTypeXLSX
	case ".xls":
		return domain.MimeTypeXLS
	case ".csv":
		return domain.MimeTypeCSV
	case ".pdf":
		return domain.MimeTypePDF
	}
	return headerMime
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

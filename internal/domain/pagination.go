package domain

type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// Sortable candidate fields. SortByCreatedAt is the default.
const (
	SortByFirstName         = "firstName"
	SortByLastName          = "lastName"
	SortBySeniority         = "seniority"
	SortByYearsOfExperience = "yearsOfExperience"
	SortByAvailability      = "availability"
	SortByCreatedAt         = "createdAt"
)

// PageQuery describes one paginated listing request. Page is 1-indexed.
// Search matches first or last name as a case-insensitive substring.
type PageQuery struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder SortOrder
	Search    string
}

// PaginatedResult is the listing envelope. TotalPages is ceil(Total/Limit),
// zero when nothing matched.
type PaginatedResult[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// NewPaginatedResult assembles the envelope from an already-sliced page.
func NewPaginatedResult[T any](data []T, total int64, page, limit int) *PaginatedResult[T] {
	totalPages := 0
	if limit > 0 {
		totalPages = int(total) / limit
		if int(total)%limit > 0 {
			totalPages++
		}
	}
	return &PaginatedResult[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go-candidates-backend/internal/domain"
)

// CandidateRepository keeps candidates in an in-process map. The repository
// owns the collection exclusively; callers never touch the map. Concurrent
// saves to the same identifier are last-writer-wins.
type CandidateRepository struct {
	mu         sync.RWMutex
	candidates map[domain.CandidateID]*domain.Candidate
}

func NewCandidateRepository() *CandidateRepository {
	return &CandidateRepository{
		candidates: make(map[domain.CandidateID]*domain.Candidate),
	}
}

func (r *CandidateRepository) Save(_ context.Context, candidate *domain.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.candidates[candidate.ID()] = candidate
	return nil
}

func (r *CandidateRepository) FindByID(_ context.Context, id domain.CandidateID) (*domain.Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.candidates[id], nil
}

func (r *CandidateRepository) FindAll(_ context.Context) ([]*domain.Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*domain.Candidate, 0, len(r.candidates))
	for _, c := range r.candidates {
		all = append(all, c)
	}
	sortCandidates(all, domain.SortByCreatedAt, domain.SortDesc)
	return all, nil
}

func (r *CandidateRepository) FindWithPagination(_ context.Context, query domain.PageQuery) (*domain.PaginatedResult[*domain.Candidate], error) {
	r.mu.RLock()
	matched := make([]*domain.Candidate, 0, len(r.candidates))
	for _, c := range r.candidates {
		if matchesSearch(c, query.Search) {
			matched = append(matched, c)
		}
	}
	r.mu.RUnlock()

	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = domain.SortByCreatedAt
	}
	order := query.SortOrder
	if order == "" {
		order = domain.SortDesc
	}
	sortCandidates(matched, sortBy, order)

	total := int64(len(matched))
	start := (query.Page - 1) * query.Limit
	end := start + query.Limit
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}

	return domain.NewPaginatedResult(matched[start:end], total, query.Page, query.Limit), nil
}

func (r *CandidateRepository) Delete(_ context.Context, id domain.CandidateID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.candidates, id)
	return nil
}

func matchesSearch(c *domain.Candidate, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	name := c.Name()
	return strings.Contains(strings.ToLower(name.First()), term) ||
		strings.Contains(strings.ToLower(name.Last()), term)
}

func sortCandidates(cs []*domain.Candidate, sortBy string, order domain.SortOrder) {
	less := lessFunc(sortBy)
	sort.SliceStable(cs, func(i, j int) bool {
		if order == domain.SortAsc {
			return less(cs[i], cs[j])
		}
		return less(cs[j], cs[i])
	})
}

func lessFunc(sortBy string) func(a, b *domain.Candidate) bool {
	switch sortBy {
	case domain.SortByFirstName:
		return func(a, b *domain.Candidate) bool {
			return strings.ToLower(a.Name().First()) < strings.ToLower(b.Name().First())
		}
	case domain.SortByLastName:
		return func(a, b *domain.Candidate) bool {
			return strings.ToLower(a.Name().Last()) < strings.ToLower(b.Name().Last())
		}
	case domain.SortBySeniority:
		return func(a, b *domain.Candidate) bool {
			return a.Seniority() < b.Seniority()
		}
	case domain.SortByYearsOfExperience:
		return func(a, b *domain.Candidate) bool {
			return a.Years() < b.Years()
		}
	case domain.SortByAvailability:
		return func(a, b *domain.Candidate) bool {
			return !a.IsAvailable() && b.IsAvailable()
		}
	default:
		return func(a, b *domain.Candidate) bool {
			return a.CreatedAt().Before(b.CreatedAt())
		}
	}
}

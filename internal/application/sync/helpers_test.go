package sync

import (
	"context"
	"fmt"
	gosync "sync"

	"github.com/google/uuid"

	"github.com/gradestock/backend/internal/domain/catalog"
	"github.com/gradestock/backend/internal/domain/shared"
	syncdomain "github.com/gradestock/backend/internal/domain/sync"
)

// memStore is an in-memory implementation of the catalog repositories,
// safe for concurrent workers.
type memStore struct {
	mu             gosync.Mutex
	masterProducts map[uuid.UUID]*catalog.MasterProduct
	variants       map[uuid.UUID]*catalog.ProductVariant
	mappings       map[string]*catalog.ExternalMapping
	categories     map[int64]*catalog.Category

	failCreateVariant  bool
	failFindAll        bool
	failFindCategories bool
}

func newMemStore() *memStore {
	return &memStore{
		masterProducts: make(map[uuid.UUID]*catalog.MasterProduct),
		variants:       make(map[uuid.UUID]*catalog.ProductVariant),
		mappings:       make(map[string]*catalog.ExternalMapping),
		categories:     make(map[int64]*catalog.Category),
	}
}

func (s *memStore) FindByName(_ context.Context, name string) (*catalog.MasterProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.masterProducts {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (s *memStore) FindByID(_ context.Context, id uuid.UUID) (*catalog.MasterProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.masterProducts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, shared.ErrNotFound
}

func (s *memStore) Create(_ context.Context, p *catalog.MasterProduct) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.masterProducts[p.ID] = &cp
	return nil
}

func (s *memStore) List(_ context.Context, _ string, _, _ int) ([]catalog.MasterProduct, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.MasterProduct, 0, len(s.masterProducts))
	for _, p := range s.masterProducts {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (s *memStore) masterProductCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.masterProducts)
}

// variantRepo adapts memStore to catalog.VariantRepository.
type variantRepo struct{ *memStore }

func (s variantRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.ProductVariant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.variants[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, shared.ErrNotFound
}

func (s variantRepo) Create(_ context.Context, v *catalog.ProductVariant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreateVariant {
		return fmt.Errorf("disk on fire")
	}
	cp := *v
	s.variants[v.ID] = &cp
	return nil
}

func (s variantRepo) Update(_ context.Context, v *catalog.ProductVariant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.variants[v.ID]; !ok {
		return shared.ErrNotFound
	}
	cp := *v
	s.variants[v.ID] = &cp
	return nil
}

func (s variantRepo) ListByMasterProduct(_ context.Context, masterProductID uuid.UUID) ([]catalog.ProductVariant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.ProductVariant, 0)
	for _, v := range s.variants {
		if v.MasterProductID == masterProductID {
			out = append(out, *v)
		}
	}
	return out, nil
}

// mappingRepo adapts memStore to catalog.MappingRepository.
type mappingRepo struct{ *memStore }

func (s mappingRepo) FindByExternalID(_ context.Context, externalID string) (*catalog.ExternalMapping, uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.mappings[externalID]
	if !ok {
		return nil, uuid.Nil, shared.ErrNotFound
	}
	cp := *m
	v, ok := s.variants[m.VariantID]
	if !ok {
		return nil, uuid.Nil, shared.ErrNotFound
	}
	return &cp, v.MasterProductID, nil
}

func (s mappingRepo) Create(_ context.Context, m *catalog.ExternalMapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *m
	s.mappings[m.ExternalID] = &cp
	return nil
}

func (s mappingRepo) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.mappings)), nil
}

// categoryRepo adapts memStore to catalog.CategoryRepository.
type categoryRepo struct{ *memStore }

func (s categoryRepo) FindByID(_ context.Context, id int64) (*catalog.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failFindCategories {
		return nil, fmt.Errorf("connection refused")
	}
	if c, ok := s.categories[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, shared.ErrNotFound
}

func (s categoryRepo) FindAll(_ context.Context) ([]catalog.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failFindAll {
		return nil, fmt.Errorf("connection refused")
	}
	out := make([]catalog.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (s categoryRepo) ListForProductLine(_ context.Context, productLineID int64) ([]catalog.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.Category, 0)
	for _, c := range s.categories {
		if c.ProductLineID == productLineID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s categoryRepo) UpsertCategories(_ context.Context, cats []catalog.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range cats {
		cp := cats[i]
		s.categories[cp.ID] = &cp
	}
	return nil
}

func (s categoryRepo) UpsertProductLines(context.Context, []catalog.ProductLine) error { return nil }
func (s categoryRepo) UpsertSuperCats(context.Context, []catalog.SuperCat) error      { return nil }
func (s categoryRepo) ListProductLineIDs(context.Context) ([]int64, error)            { return nil, nil }

// fakeRemote is a scripted remote catalog. Pages are keyed by category id,
// details by external id. Hooks observe fetches for cancellation tests.
type fakeRemote struct {
	mu      gosync.Mutex
	pages   map[int64][]syncdomain.PageResult
	details map[string]*syncdomain.ItemDetail

	pageFetches   map[int64]int
	detailFetches int

	pageErr   map[int64]error
	detailErr map[string]error

	onPageFetch func(categoryID int64, page int)

	superCats        []catalog.SuperCat
	productLines     []catalog.ProductLine
	categoriesByLine map[int64][]catalog.Category
	taxonomyErr      error
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		pages:       make(map[int64][]syncdomain.PageResult),
		details:     make(map[string]*syncdomain.ItemDetail),
		pageFetches: make(map[int64]int),
		pageErr:     make(map[int64]error),
		detailErr:   make(map[string]error),
	}
}

func (f *fakeRemote) SearchCategoryPage(_ context.Context, categoryID int64, page int) (*syncdomain.PageResult, error) {
	f.mu.Lock()
	f.pageFetches[categoryID]++
	hook := f.onPageFetch
	err := f.pageErr[categoryID]
	pages := f.pages[categoryID]
	f.mu.Unlock()

	if hook != nil {
		hook(categoryID, page)
	}
	if err != nil {
		return nil, err
	}
	if page < 1 || page > len(pages) {
		return &syncdomain.PageResult{Page: page, TotalPages: len(pages)}, nil
	}
	result := pages[page-1]
	return &result, nil
}

func (f *fakeRemote) ItemDetail(_ context.Context, externalID string) (*syncdomain.ItemDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailFetches++
	if err := f.detailErr[externalID]; err != nil {
		return nil, err
	}
	d, ok := f.details[externalID]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (f *fakeRemote) SuperCats(context.Context) ([]catalog.SuperCat, error) {
	return f.superCats, f.taxonomyErr
}

func (f *fakeRemote) ProductLines(context.Context) ([]catalog.ProductLine, error) {
	return f.productLines, f.taxonomyErr
}

func (f *fakeRemote) Categories(_ context.Context, productLineID int64) ([]catalog.Category, error) {
	return f.categoriesByLine[productLineID], f.taxonomyErr
}

func (f *fakeRemote) fetchCount(categoryID int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pageFetches[categoryID]
}

package v1_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"job-board-backend/internal/domain"
)

// memoryDB backs every fake repository so joins see the same rows. Unique
// constraints mirror the SQL schema.
type memoryDB struct {
	mu sync.Mutex

	nextID       int64
	accounts     map[int64]*domain.Account
	jobSeekers   map[int64]*domain.JobSeekerProfile
	companies    map[int64]*domain.CompanyProfile
	listings     map[int64]*domain.JobListing
	applications map[int64]*domain.JobApplication
}

func newMemoryDB() *memoryDB {
	return &memoryDB{
		accounts:     map[int64]*domain.Account{},
		jobSeekers:   map[int64]*domain.JobSeekerProfile{},
		companies:    map[int64]*domain.CompanyProfile{},
		listings:     map[int64]*domain.JobListing{},
		applications: map[int64]*domain.JobApplication{},
	}
}

func (db *memoryDB) id() int64 {
	db.nextID++
	return db.nextID
}

func (db *memoryDB) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type accountRepo struct{ db *memoryDB }

func (r accountRepo) Create(_ context.Context, a *domain.Account) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.accounts {
		if existing.Email == a.Email || existing.Username == a.Username {
			return domain.ErrDuplicate
		}
	}
	a.ID = r.db.id()
	a.CreatedAt = time.Now()
	cp := *a
	r.db.accounts[a.ID] = &cp
	return nil
}

func (r accountRepo) FindByID(_ context.Context, id int64) (*domain.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, ok := r.db.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r accountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, a := range r.db.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r accountRepo) FindByEmailOrUsername(_ context.Context, email, username string) (*domain.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, a := range r.db.accounts {
		if a.Email == email || a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

type jobSeekerRepo struct{ db *memoryDB }

func (r jobSeekerRepo) Create(_ context.Context, p *domain.JobSeekerProfile) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p.ID = r.db.id()
	cp := *p
	r.db.jobSeekers[p.ID] = &cp
	return nil
}

func (r jobSeekerRepo) Update(_ context.Context, p *domain.JobSeekerProfile) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.jobSeekers[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	cp.ResumeURL = ""
	r.db.jobSeekers[p.ID] = &cp
	return nil
}

func (r jobSeekerRepo) FindByID(_ context.Context, id int64) (*domain.JobSeekerProfile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.jobSeekers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r jobSeekerRepo) FindByAccountID(_ context.Context, accountID int64) (*domain.JobSeekerProfile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, p := range r.db.jobSeekers {
		if p.AccountID == accountID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

type companyRepo struct{ db *memoryDB }

func (r companyRepo) Create(_ context.Context, c *domain.CompanyProfile) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c.ID = r.db.id()
	cp := *c
	r.db.companies[c.ID] = &cp
	return nil
}

func (r companyRepo) Update(_ context.Context, c *domain.CompanyProfile) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.companies[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.db.companies[c.ID] = &cp
	return nil
}

func (r companyRepo) FindByID(_ context.Context, id int64) (*domain.CompanyProfile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.companies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r companyRepo) FindByAccountID(_ context.Context, accountID int64) (*domain.CompanyProfile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, c := range r.db.companies {
		if c.AccountID == accountID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

type listingRepo struct{ db *memoryDB }

// withCompany must be called with db.mu held.
func (r listingRepo) withCompany(l *domain.JobListing) domain.JobListing {
	cp := *l
	if c, ok := r.db.companies[l.CompanyID]; ok {
		company := *c
		cp.Company = &company
	}
	return cp
}

func (r listingRepo) Create(_ context.Context, l *domain.JobListing) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.companies[l.CompanyID]; !ok {
		return domain.ErrNotFound
	}
	l.ID = r.db.id()
	l.CreatedAt = time.Now()
	cp := *l
	cp.Company = nil
	r.db.listings[l.ID] = &cp
	return nil
}

func (r listingRepo) Update(_ context.Context, l *domain.JobListing) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.listings[l.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *l
	cp.Company = nil
	r.db.listings[l.ID] = &cp
	return nil
}

func (r listingRepo) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.listings[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.db.listings, id)
	for appID, app := range r.db.applications {
		if app.JobListingID == id {
			delete(r.db.applications, appID)
		}
	}
	return nil
}

func (r listingRepo) FindByID(_ context.Context, id int64) (*domain.JobListing, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	l, ok := r.db.listings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := r.withCompany(l)
	return &out, nil
}

func (r listingRepo) List(_ context.Context, f domain.JobListingFilter) ([]domain.JobListing, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []domain.JobListing
	for _, l := range r.db.listings {
		if f.Title != "" && !containsFold(l.Title, f.Title) {
			continue
		}
		if f.Location != "" && !containsFold(l.Location, f.Location) {
			continue
		}
		if f.Skill != "" && !hasSkill(l.SkillsRequired, f.Skill) {
			continue
		}
		out = append(out, r.withCompany(l))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r listingRepo) ListByCompany(_ context.Context, companyID int64) ([]domain.JobListing, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []domain.JobListing
	for _, l := range r.db.listings {
		if l.CompanyID == companyID {
			out = append(out, r.withCompany(l))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type applicationRepo struct{ db *memoryDB }

func (r applicationRepo) Create(_ context.Context, a *domain.JobApplication) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.listings[a.JobListingID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range r.db.applications {
		if existing.JobSeekerID == a.JobSeekerID && existing.JobListingID == a.JobListingID {
			return domain.ErrDuplicate
		}
	}
	a.ID = r.db.id()
	a.CreatedAt = time.Now()
	cp := *a
	r.db.applications[a.ID] = &cp
	return nil
}

func (r applicationRepo) Find(_ context.Context, seekerID, listingID int64) (*domain.JobApplication, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, a := range r.db.applications {
		if a.JobSeekerID == seekerID && a.JobListingID == listingID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r applicationRepo) FindByID(_ context.Context, id int64) (*domain.JobApplication, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, ok := r.db.applications[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r applicationRepo) ListByJobSeeker(_ context.Context, seekerID int64) ([]domain.JobApplication, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []domain.JobApplication
	for _, a := range r.db.applications {
		if a.JobSeekerID != seekerID {
			continue
		}
		cp := *a
		if l, ok := r.db.listings[a.JobListingID]; ok {
			listing := listingRepo(r).withCompany(l)
			cp.JobListing = &listing
		}
		out = append(out, cp)
	}
	return out, nil
}

func (r applicationRepo) ListByListing(_ context.Context, listingID int64) ([]domain.JobApplication, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []domain.JobApplication
	for _, a := range r.db.applications {
		if a.JobListingID != listingID {
			continue
		}
		cp := *a
		if p, ok := r.db.jobSeekers[a.JobSeekerID]; ok {
			seeker := *p
			cp.JobSeeker = &seeker
		}
		out = append(out, cp)
	}
	return out, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func hasSkill(skills []string, want string) bool {
	for _, s := range skills {
		if containsFold(s, want) {
			return true
		}
	}
	return false
}

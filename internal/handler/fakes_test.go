package handler_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ecotrack/waste-report-api/internal/model"
	"github.com/ecotrack/waste-report-api/internal/repository"
)

// memUserStore is an in-memory UserStore for handler tests.
type memUserStore struct {
	mu   sync.Mutex
	seq  uint64
	byID map[uint64]model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{byID: make(map[uint64]model.User)}
}

func (s *memUserStore) Create(_ context.Context, email, passwordHash, fullName string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.byID {
		if u.Email == email {
			return 0, repository.ErrEmailExists
		}
	}
	s.seq++
	s.byID[s.seq] = model.User{
		ID:           s.seq,
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	return s.seq, nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func (s *memUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (s *memUserStore) List(_ context.Context, skip, limit int) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]model.User, 0, len(s.byID))
	for _, u := range s.byID {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	if skip >= len(all) {
		return nil, nil
	}
	all = all[skip:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *memUserStore) Update(_ context.Context, id uint64, upd model.UserUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	if upd.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*upd.Email))
		for oid, other := range s.byID {
			if oid != id && other.Email == e {
				return repository.ErrEmailExists
			}
		}
		u.Email = e
	}
	if upd.FullName != nil {
		u.FullName = *upd.FullName
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.IsActive != nil {
		u.IsActive = *upd.IsActive
	}
	if upd.IsSuperuser != nil {
		u.IsSuperuser = *upd.IsSuperuser
	}
	s.byID[id] = u
	return nil
}

func (s *memUserStore) Delete(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(s.byID, id)
	return nil
}

// setFlags flips the active/superuser flags directly, for test setup.
func (s *memUserStore) setFlags(id uint64, active, superuser bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.byID[id]
	u.IsActive = active
	u.IsSuperuser = superuser
	s.byID[id] = u
}

// memReportStore is an in-memory ReportStore for handler tests.
type memReportStore struct {
	mu   sync.Mutex
	seq  uint64
	byID map[uint64]model.WasteReport
}

func newMemReportStore() *memReportStore {
	return &memReportStore{byID: make(map[uint64]model.WasteReport)}
}

func (s *memReportStore) Create(_ context.Context, wr *model.WasteReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	wr.ID = s.seq
	wr.CreatedAt = time.Now().UTC().Truncate(time.Second)
	s.byID[wr.ID] = *wr
	return nil
}

func (s *memReportStore) GetByID(_ context.Context, id uint64) (model.WasteReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wr, ok := s.byID[id]
	if !ok {
		return model.WasteReport{}, repository.ErrReportNotFound
	}
	return wr, nil
}

func (s *memReportStore) ListByOwner(_ context.Context, ownerID uint64, skip, limit int) ([]model.WasteReport, error) {
	return s.list(func(wr model.WasteReport) bool { return wr.OwnerID == ownerID }, skip, limit), nil
}

func (s *memReportStore) ListAll(_ context.Context, skip, limit int) ([]model.WasteReport, error) {
	return s.list(func(model.WasteReport) bool { return true }, skip, limit), nil
}

func (s *memReportStore) list(keep func(model.WasteReport) bool, skip, limit int) []model.WasteReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.WasteReport, 0)
	for _, wr := range s.byID {
		if keep(wr) {
			out = append(out, wr)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if skip >= len(out) {
		return []model.WasteReport{}
	}
	out = out[skip:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *memReportStore) Update(_ context.Context, id uint64, upd model.WasteReportUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	wr, ok := s.byID[id]
	if !ok {
		return repository.ErrReportNotFound
	}
	if upd.Location != nil {
		wr.Location = *upd.Location
	}
	if upd.WasteType != nil {
		wr.WasteType = *upd.WasteType
	}
	if upd.Quantity != nil {
		wr.Quantity = *upd.Quantity
	}
	s.byID[id] = wr
	return nil
}

func (s *memReportStore) UpdateStatus(_ context.Context, id uint64, status model.ReportStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	wr, ok := s.byID[id]
	if !ok {
		return repository.ErrReportNotFound
	}
	wr.Status = status
	s.byID[id] = wr
	return nil
}

func (s *memReportStore) Delete(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return repository.ErrReportNotFound
	}
	delete(s.byID, id)
	return nil
}

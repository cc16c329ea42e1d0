package repository

import (
	"sync"

	"github.com/starkteam/stark/internal/domain"
)

// PendingRepository holds at most one outstanding verification record
// per email. CompareAndRemove gives confirmation its atomicity: two
// concurrent confirms for the same email cannot both consume a record.
type PendingRepository interface {
	Get(email string) (*domain.PendingVerification, bool)
	Put(rec *domain.PendingVerification)
	Delete(email string)
	CompareAndRemove(email, code string) (*domain.PendingVerification, bool)
}

type pendingRepository struct {
	mu      sync.Mutex
	records map[string]domain.PendingVerification
}

func NewPendingRepository() PendingRepository {
	return &pendingRepository{records: make(map[string]domain.PendingVerification)}
}

func (r *pendingRepository) Get(email string) (*domain.PendingVerification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[email]
	if !ok {
		return nil, false
	}
	return &rec, true
}

func (r *pendingRepository) Put(rec *domain.PendingVerification) {
	if rec == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[rec.Email] = *rec
}

func (r *pendingRepository) Delete(email string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, email)
}

func (r *pendingRepository) CompareAndRemove(email, code string) (*domain.PendingVerification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[email]
	if !ok || rec.Code != code {
		return nil, false
	}
	delete(r.records, email)
	return &rec, true
}

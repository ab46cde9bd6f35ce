package store

import (
	"errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/SaddamHosen42/zap-shift-server/apperrors"
)

// Filter is a conjunction of equality predicates on column names. Fields the
// caller leaves out are simply not constrained (match-all).
type Filter map[string]interface{}

// Patch is a set of column updates applied by Update.
type Patch map[string]interface{}

// Store is the per-entity persistence facade. One instance per entity kind;
// all of them share the one *gorm.DB handle, which is safe for concurrent
// use.
type Store[T any] struct {
	db *gorm.DB
}

func New[T any](db *gorm.DB) *Store[T] {
	return &Store[T]{db: db}
}

// WithTx rebinds the store to a transaction handle so multi-entity
// operations can run all their writes under one commit.
func (s *Store[T]) WithTx(tx *gorm.DB) *Store[T] {
	return &Store[T]{db: tx}
}

// ParseID converts a path/query id into a numeric key. A malformed id is the
// caller's mistake, not a store failure.
func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.Ef(apperrors.ErrInvalidArgument, "malformed id %q", raw)
	}
	return uint(id), nil
}

// Insert persists doc and fills in its generated fields.
func (s *Store[T]) Insert(doc *T) error {
	if err := s.db.Create(doc).Error; err != nil {
		return apperrors.Ef(apperrors.ErrStore, "insert: %v", err)
	}
	return nil
}

// Find returns every document matching filter, ordered by orderBy
// (defaults to newest first).
func (s *Store[T]) Find(filter Filter, orderBy string) ([]T, error) {
	if orderBy == "" {
		orderBy = "created_at DESC"
	}

	q := s.db.Model(new(T)).Order(orderBy)
	if len(filter) > 0 {
		q = q.Where(map[string]interface{}(filter))
	}

	var docs []T
	if err := q.Find(&docs).Error; err != nil {
		return nil, apperrors.Ef(apperrors.ErrStore, "find: %v", err)
	}
	return docs, nil
}

// FindByID loads one document by its raw id string.
func (s *Store[T]) FindByID(raw string) (*T, error) {
	id, err := ParseID(raw)
	if err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Get loads one document by numeric key.
func (s *Store[T]) Get(id uint) (*T, error) {
	var doc T
	if err := s.db.First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Ef(apperrors.ErrNotFound, "id %d", id)
		}
		return nil, apperrors.Ef(apperrors.ErrStore, "get: %v", err)
	}
	return &doc, nil
}

// Update applies patch to every document matching filter and reports how
// many rows changed. Zero is not an error here; callers that need
// "must exist" semantics check the count.
func (s *Store[T]) Update(filter Filter, patch Patch) (int64, error) {
	res := s.db.Model(new(T)).
		Where(map[string]interface{}(filter)).
		Updates(map[string]interface{}(patch))
	if res.Error != nil {
		return 0, apperrors.Ef(apperrors.ErrStore, "update: %v", res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes every document matching filter and reports the count.
func (s *Store[T]) Delete(filter Filter) (int64, error) {
	res := s.db.Where(map[string]interface{}(filter)).Delete(new(T))
	if res.Error != nil {
		return 0, apperrors.Ef(apperrors.ErrStore, "delete: %v", res.Error)
	}
	return res.RowsAffected, nil
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/canchapp/cancha-reservation/internal/model"
	"github.com/canchapp/cancha-reservation/internal/repository"
	"github.com/canchapp/cancha-reservation/internal/storage"
)

// Persistence keys.  One key holds the serialized reservation list, one
// holds the serialized favorite set, both as JSON arrays.
const (
	keyReservations = "reservations"
	keyFavorites    = "favorites"
)

// Filter selects which reservations ListReservations returns.  Upcoming
// and past are computed relative to the current date; see the method
// for the exact partition rules.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterUpcoming  Filter = "upcoming"
	FilterPast      Filter = "past"
	FilterCancelled Filter = "cancelled"
)

// ParseFilter validates a raw filter string.  The empty string maps to
// FilterAll so list endpoints can omit the parameter.
func ParseFilter(raw string) (Filter, bool) {
	switch Filter(raw) {
	case "", FilterAll:
		return FilterAll, true
	case FilterUpcoming, FilterPast, FilterCancelled:
		return Filter(raw), true
	}
	return "", false
}

// Catalog is the read-only facility lookup the store validates against.
// It is satisfied by repository.FacilityRepo; absent facilities are
// reported with repository.ErrFacilityNotFound.
type Catalog interface {
	GetByID(ctx context.Context, id string) (*model.Facility, error)
	ListSlots(ctx context.Context, facilityID string) ([]string, error)
}

// Store maintains the reservation list and favorite set in memory and
// mirrors every successful mutation through the persistence adapter.
// It is the only component allowed to mutate either collection; the
// HTTP layer goes exclusively through the operations below.
//
// The HTTP server makes callers concurrent, so all state is guarded by
// a single mutex.  Mutations are applied in the order the lock is
// acquired, which preserves the one-mutation-path ordering guarantee.
type Store struct {
	mu      sync.RWMutex
	adapter storage.Adapter
	catalog Catalog

	reservations []model.Reservation
	favorites    map[string]struct{}

	// now is swappable in tests to pin the upcoming/past partition.
	now func() time.Time
}

// New constructs an empty store.  Call Load before serving traffic to
// hydrate state persisted by a previous run.
func New(adapter storage.Adapter, catalog Catalog) *Store {
	return &Store{
		adapter:   adapter,
		catalog:   catalog,
		favorites: make(map[string]struct{}),
		now:       time.Now,
	}
}

// Load hydrates the store from the persistence adapter.  Absent keys
// mean a fresh install and leave the store empty.  Corrupt or
// unreadable blobs surface as a PersistenceError so startup can decide
// whether to continue with empty state.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := s.adapter.Get(ctx, keyReservations)
	switch {
	case err == nil:
		var res []model.Reservation
		if err := json.Unmarshal(blob, &res); err != nil {
			return &PersistenceError{Op: "load reservations", Err: err}
		}
		s.reservations = res
	case errors.Is(err, storage.ErrKeyNotFound):
		s.reservations = nil
	default:
		return &PersistenceError{Op: "load reservations", Err: err}
	}

	blob, err = s.adapter.Get(ctx, keyFavorites)
	switch {
	case err == nil:
		var ids []string
		if err := json.Unmarshal(blob, &ids); err != nil {
			return &PersistenceError{Op: "load favorites", Err: err}
		}
		s.favorites = make(map[string]struct{}, len(ids))
		for _, id := range ids {
			s.favorites[id] = struct{}{}
		}
	case errors.Is(err, storage.ErrKeyNotFound):
		s.favorites = make(map[string]struct{})
	default:
		return &PersistenceError{Op: "load favorites", Err: err}
	}
	return nil
}

// persistReservations writes the reservation list under its key.  The
// caller must hold the write lock.
func (s *Store) persistReservations(ctx context.Context, op string) error {
	blob, err := json.Marshal(s.reservations)
	if err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	if err := s.adapter.Set(ctx, keyReservations, blob); err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}

// persistFavorites writes the favorite set, sorted for a stable blob.
// The caller must hold the write lock.
func (s *Store) persistFavorites(ctx context.Context, op string) error {
	ids := make([]string, 0, len(s.favorites))
	for id := range s.favorites {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	blob, err := json.Marshal(ids)
	if err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	if err := s.adapter.Set(ctx, keyFavorites, blob); err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}

// CreateReservation validates the requested booking and appends a new
// confirmed reservation.  Validation covers: the facility must exist in
// the catalog, the date must be a well-formed calendar date not in the
// past, the slot set must be non-empty, every slot must belong to the
// facility's published catalog, and no requested slot may already be
// covered by a non-cancelled reservation for the same facility and
// date.  On success the reservation is immediately visible to
// subsequent queries.  No state is mutated on any failure path.
func (s *Store) CreateReservation(ctx context.Context, facilityID, date string, timeSlots []string) (*model.Reservation, error) {
	if _, err := s.catalog.GetByID(ctx, facilityID); err != nil {
		if errors.Is(err, repository.ErrFacilityNotFound) {
			return nil, &ValidationError{Field: "facility_id", Reason: "unknown facility"}
		}
		return nil, err
	}

	day, err := time.Parse(model.DateLayout, date)
	if err != nil || day.Format(model.DateLayout) != date {
		return nil, &ValidationError{Field: "date", Reason: "must be a calendar date in YYYY-MM-DD form"}
	}
	today := s.now().Format(model.DateLayout)
	if date < today {
		return nil, &ValidationError{Field: "date", Reason: "date is in the past"}
	}

	slots := dedupeSlots(timeSlots)
	if len(slots) == 0 {
		return nil, &ValidationError{Field: "time_slots", Reason: "at least one time slot is required"}
	}
	published, err := s.catalog.ListSlots(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	offered := make(map[string]struct{}, len(published))
	for _, slot := range published {
		offered[slot] = struct{}{}
	}
	for _, slot := range slots {
		if _, ok := offered[slot]; !ok {
			return nil, &ValidationError{Field: "time_slots", Reason: "slot " + slot + " is not offered by this facility"}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Reject double-booking: a slot covered by any non-cancelled
	// reservation for the same facility and date is taken.
	taken := s.takenSlotsLocked(facilityID, date)
	for _, slot := range slots {
		if _, ok := taken[slot]; ok {
			return nil, &ValidationError{Field: "time_slots", Reason: "slot " + slot + " is already booked"}
		}
	}

	res := model.Reservation{
		ID:         uuid.NewString(),
		FacilityID: facilityID,
		Date:       date,
		TimeSlots:  slots,
		Status:     model.StatusConfirmed,
		CreatedAt:  s.now().UTC(),
	}
	s.reservations = append(s.reservations, res)
	if err := s.persistReservations(ctx, "create reservation"); err != nil {
		s.reservations = s.reservations[:len(s.reservations)-1]
		return nil, err
	}
	out := copyReservation(res)
	return &out, nil
}

// CancelReservation marks the reservation cancelled.  The record stays
// in the list so history remains queryable.  Cancelling an already
// cancelled reservation succeeds without effect; an unknown id is a
// NotFoundError.  The returned snapshot reflects the post-cancel state
// and the bool reports whether this call performed the transition, so
// callers can emit the cancelled event exactly once.
func (s *Store) CancelReservation(ctx context.Context, id string) (*model.Reservation, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.reservations {
		if s.reservations[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false, &NotFoundError{Kind: "reservation", ID: id}
	}
	if s.reservations[idx].Cancelled() {
		out := copyReservation(s.reservations[idx])
		return &out, false, nil
	}
	prev := s.reservations[idx].Status
	s.reservations[idx].Status = model.StatusCancelled
	if err := s.persistReservations(ctx, "cancel reservation"); err != nil {
		s.reservations[idx].Status = prev
		return nil, false, err
	}
	out := copyReservation(s.reservations[idx])
	return &out, true, nil
}

// ListReservations returns a snapshot of reservations matching the
// filter, newest first.  Upcoming means date ≥ today and not
// cancelled; past means date < today regardless of status; together
// with future-dated entries they partition the full set by date.
func (s *Store) ListReservations(filter Filter) []model.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	today := s.now().Format(model.DateLayout)
	out := make([]model.Reservation, 0, len(s.reservations))
	for i := len(s.reservations) - 1; i >= 0; i-- {
		r := s.reservations[i]
		switch filter {
		case FilterUpcoming:
			if r.Date < today || r.Cancelled() {
				continue
			}
		case FilterPast:
			if r.Date >= today {
				continue
			}
		case FilterCancelled:
			if !r.Cancelled() {
				continue
			}
		}
		out = append(out, copyReservation(r))
	}
	return out
}

// AvailableSlots returns the facility's published slot catalog minus
// every slot covered by a non-cancelled reservation for that facility
// and date, preserving catalog order.
func (s *Store) AvailableSlots(ctx context.Context, facilityID, date string) ([]string, error) {
	if _, err := s.catalog.GetByID(ctx, facilityID); err != nil {
		if errors.Is(err, repository.ErrFacilityNotFound) {
			return nil, &NotFoundError{Kind: "facility", ID: facilityID}
		}
		return nil, err
	}
	if day, err := time.Parse(model.DateLayout, date); err != nil || day.Format(model.DateLayout) != date {
		return nil, &ValidationError{Field: "date", Reason: "must be a calendar date in YYYY-MM-DD form"}
	}
	published, err := s.catalog.ListSlots(ctx, facilityID)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	taken := s.takenSlotsLocked(facilityID, date)
	available := make([]string, 0, len(published))
	for _, slot := range published {
		if _, ok := taken[slot]; !ok {
			available = append(available, slot)
		}
	}
	return available, nil
}

// ToggleFavorite adds the facility to the favorite set if absent and
// removes it if present.  It returns whether the facility is favorited
// after the call.  Two consecutive calls restore the original set.
func (s *Store) ToggleFavorite(ctx context.Context, facilityID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, was := s.favorites[facilityID]
	if was {
		delete(s.favorites, facilityID)
	} else {
		s.favorites[facilityID] = struct{}{}
	}
	if err := s.persistFavorites(ctx, "toggle favorite"); err != nil {
		if was {
			s.favorites[facilityID] = struct{}{}
		} else {
			delete(s.favorites, facilityID)
		}
		return was, err
	}
	return !was, nil
}

// Favorites returns the favorited facility ids as a sorted snapshot.
func (s *Store) Favorites() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.favorites))
	for id := range s.favorites {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Reset clears all session state, removing both persisted keys before
// dropping the in-memory collections.  It is the teardown hook invoked
// at logout.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.adapter.Remove(ctx, keyReservations); err != nil {
		return &PersistenceError{Op: "reset", Err: err}
	}
	if err := s.adapter.Remove(ctx, keyFavorites); err != nil {
		return &PersistenceError{Op: "reset", Err: err}
	}
	s.reservations = nil
	s.favorites = make(map[string]struct{})
	return nil
}

// takenSlotsLocked collects the slots covered by non-cancelled
// reservations for the facility and date.  The caller must hold at
// least the read lock.
func (s *Store) takenSlotsLocked(facilityID, date string) map[string]struct{} {
	taken := make(map[string]struct{})
	for i := range s.reservations {
		r := &s.reservations[i]
		if r.FacilityID != facilityID || r.Date != date || r.Cancelled() {
			continue
		}
		for _, slot := range r.TimeSlots {
			taken[slot] = struct{}{}
		}
	}
	return taken
}

// dedupeSlots drops empty and repeated labels while preserving the
// order of first appearance.
func dedupeSlots(slots []string) []string {
	out := make([]string, 0, len(slots))
	seen := make(map[string]struct{}, len(slots))
	for _, slot := range slots {
		if slot == "" {
			continue
		}
		if _, ok := seen[slot]; ok {
			continue
		}
		seen[slot] = struct{}{}
		out = append(out, slot)
	}
	return out
}

// copyReservation deep-copies a reservation so snapshots never expose
// the store's internal slices.
func copyReservation(r model.Reservation) model.Reservation {
	slots := make([]string, len(r.TimeSlots))
	copy(slots, r.TimeSlots)
	r.TimeSlots = slots
	return r
}

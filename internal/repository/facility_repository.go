// This file defines the facility repository: CRUD and lookup operations
// over the facilities and facility_slots tables.  A facility is the
// read-only catalog entry the reservation store validates against; the
// owner endpoints are the only writers.  The slot catalog of a facility
// is stored as an ordered list of labels and replaced atomically.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/canchapp/cancha-reservation/internal/model"
)

// FacilityRepo encapsulates all database queries related to facilities.
// It depends on a sql.DB connection configured at startup and satisfies
// the store's Catalog contract.
type FacilityRepo struct {
	db *sql.DB
}

// NewFacilityRepo constructs a FacilityRepo with the provided DB handle.
// This allows dependency injection of the database in tests and at
// startup.
func NewFacilityRepo(db *sql.DB) *FacilityRepo {
	return &FacilityRepo{db: db}
}

const facilityColumns = "id, owner_id, name, address, rating, image_ref, created_at, updated_at"

func scanFacility(row interface{ Scan(...any) error }) (*model.Facility, error) {
	var f model.Facility
	if err := row.Scan(&f.ID, &f.OwnerID, &f.Name, &f.Address, &f.Rating, &f.ImageRef, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts a new facility.  The ID is generated here so callers
// receive a fully populated record; a follow-up SELECT fills the
// timestamp defaults assigned by the database.
func (r *FacilityRepo) Create(ctx context.Context, f *model.Facility) error {
	f.ID = uuid.NewString()
	const qInsert = `INSERT INTO facilities (id, owner_id, name, address, rating, image_ref) VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, qInsert, f.ID, f.OwnerID, f.Name, f.Address, f.Rating, f.ImageRef); err != nil {
		return err
	}
	const qSelect = `SELECT created_at, updated_at FROM facilities WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, f.ID).Scan(&f.CreatedAt, &f.UpdatedAt)
}

// GetByID fetches a facility by its ID regardless of owner.  It returns
// ErrFacilityNotFound if no row exists.
func (r *FacilityRepo) GetByID(ctx context.Context, id string) (*model.Facility, error) {
	const q = `SELECT ` + facilityColumns + ` FROM facilities WHERE id = ?`
	f, err := scanFacility(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFacilityNotFound
		}
		return nil, err
	}
	return f, nil
}

// GetByIDAndOwner fetches a facility only if it belongs to the given
// owner.  A missing row yields ErrFacilityNotFound; a row owned by
// someone else yields ErrForbidden.
func (r *FacilityRepo) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*model.Facility, error) {
	f, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return f, nil
}

// ListAll returns every facility, best rated first.  It backs the public
// browse endpoint.
func (r *FacilityRepo) ListAll(ctx context.Context) ([]model.Facility, error) {
	const q = `SELECT ` + facilityColumns + ` FROM facilities ORDER BY rating DESC, name`
	return r.queryFacilities(ctx, q)
}

// Search returns facilities whose name or address contains the query,
// case-insensitively, best rated first.  An empty query behaves like
// ListAll.
func (r *FacilityRepo) Search(ctx context.Context, query string) ([]model.Facility, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return r.ListAll(ctx)
	}
	const q = `SELECT ` + facilityColumns + ` FROM facilities
	           WHERE name LIKE CONCAT('%', ?, '%') OR address LIKE CONCAT('%', ?, '%')
	           ORDER BY rating DESC, name`
	return r.queryFacilities(ctx, q, query, query)
}

// ListByOwner returns the facilities belonging to an owner, newest
// first.  It backs the owner dashboard.
func (r *FacilityRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Facility, error) {
	const q = `SELECT ` + facilityColumns + ` FROM facilities WHERE owner_id = ? ORDER BY created_at DESC`
	return r.queryFacilities(ctx, q, ownerID)
}

func (r *FacilityRepo) queryFacilities(ctx context.Context, q string, args ...any) ([]model.Facility, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Facility, 0)
	for rows.Next() {
		f, err := scanFacility(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the mutable fields of a facility owned by ownerID.
// It returns ErrFacilityNotFound when the facility does not exist and
// ErrForbidden when it belongs to another owner.
func (r *FacilityRepo) Update(ctx context.Context, id, ownerID, name, address string, rating float64, imageRef string) (*model.Facility, error) {
	if _, err := r.GetByIDAndOwner(ctx, id, ownerID); err != nil {
		return nil, err
	}
	const q = `UPDATE facilities SET name = ?, address = ?, rating = ?, image_ref = ? WHERE id = ? AND owner_id = ?`
	if _, err := r.db.ExecContext(ctx, q, name, address, rating, imageRef, id, ownerID); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a facility and its slot catalog in one transaction,
// enforcing ownership the same way Update does.
func (r *FacilityRepo) Delete(ctx context.Context, id, ownerID string) error {
	if _, err := r.GetByIDAndOwner(ctx, id, ownerID); err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `DELETE FROM facility_slots WHERE facility_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM facilities WHERE id = ? AND owner_id = ?`, id, ownerID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListSlots returns the facility's published slot labels in catalog
// order.  The facility must exist; a facility with an empty catalog
// returns an empty slice.
func (r *FacilityRepo) ListSlots(ctx context.Context, facilityID string) ([]string, error) {
	if _, err := r.GetByID(ctx, facilityID); err != nil {
		return nil, err
	}
	const q = `SELECT slot_label FROM facility_slots WHERE facility_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, q, facilityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	slots := make([]string, 0)
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		slots = append(slots, label)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return slots, nil
}

// ReplaceSlots swaps the facility's slot catalog for the provided
// labels, preserving their order, within a single transaction.  The
// facility must belong to ownerID.
func (r *FacilityRepo) ReplaceSlots(ctx context.Context, facilityID, ownerID string, slots []string) error {
	if _, err := r.GetByIDAndOwner(ctx, facilityID, ownerID); err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `DELETE FROM facility_slots WHERE facility_id = ?`, facilityID); err != nil {
		return err
	}
	if len(slots) > 0 {
		// Single multi-row insert keeps the replacement atomic and cheap.
		query := `INSERT INTO facility_slots (facility_id, slot_label, position) VALUES `
		args := make([]any, 0, len(slots)*3)
		for i, label := range slots {
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?)"
			args = append(args, facilityID, label, i)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/landrun/territory-backend-go/internal/models"
)

// TerritoryRepository handles database operations for territories
type TerritoryRepository struct {
	db *sql.DB
}

// NewTerritoryRepository creates a new territory repository
func NewTerritoryRepository(db *sql.DB) *TerritoryRepository {
	return &TerritoryRepository{db: db}
}

const territoryColumns = `id, owner_id, ring_json, wkt, area_m2, point_count,
	min_lat, min_lon, max_lat, max_lon, session_started_at, claimed_at`

// Insert stores a validated territory upload and returns the stored record
func (r *TerritoryRepository) Insert(upload models.TerritoryUpload) (*models.Territory, error) {
	ringJSON, err := json.Marshal(upload.Ring)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ring: %w", err)
	}

	query := `INSERT INTO territories (
		owner_id, ring_json, wkt, area_m2, point_count,
		min_lat, min_lon, max_lat, max_lon, session_started_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := r.db.Exec(query,
		upload.OwnerID, string(ringJSON), upload.WKT,
		upload.AreaSquareMeters, upload.PointCount,
		upload.MinLat, upload.MinLon, upload.MaxLat, upload.MaxLon,
		upload.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert territory: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted territory id: %w", err)
	}

	return r.GetByID(id)
}

// GetByID retrieves a single territory by ID, or nil if not found
func (r *TerritoryRepository) GetByID(id int64) (*models.Territory, error) {
	query := fmt.Sprintf("SELECT %s FROM territories WHERE id = ?", territoryColumns)

	t, err := scanTerritory(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get territory: %w", err)
	}

	return t, nil
}

// ListActiveExcept retrieves every territory not owned by the given user;
// this is the snapshot the collision engine checks against
func (r *TerritoryRepository) ListActiveExcept(ownerID string) ([]models.Territory, error) {
	query := fmt.Sprintf("SELECT %s FROM territories WHERE owner_id != ? ORDER BY id", territoryColumns)

	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query territories: %w", err)
	}
	defer rows.Close()

	return collectTerritories(rows)
}

// List retrieves territories with filtering and pagination
func (r *TerritoryRepository) List(filter models.TerritoryFilter) ([]models.Territory, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.OwnerID != "" {
		conditions = append(conditions, "owner_id = ?")
		args = append(args, filter.OwnerID)
	}
	if filter.ExcludeOwner != "" {
		conditions = append(conditions, "owner_id != ?")
		args = append(args, filter.ExcludeOwner)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM territories"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count territories: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}
	offset := (filter.Page - 1) * filter.PageSize

	query := fmt.Sprintf("SELECT %s FROM territories%s ORDER BY claimed_at DESC LIMIT ? OFFSET ?",
		territoryColumns, where)
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query territories: %w", err)
	}
	defer rows.Close()

	territories, err := collectTerritories(rows)
	if err != nil {
		return nil, 0, err
	}

	return territories, total, nil
}

// CountByOwner returns the number of territories held by a user
func (r *TerritoryRepository) CountByOwner(ownerID string) (int64, error) {
	var count int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM territories WHERE owner_id = ?", ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count territories for owner: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTerritory(row rowScanner) (*models.Territory, error) {
	var t models.Territory
	var ringJSON string
	var startedAt, claimedAt time.Time

	err := row.Scan(
		&t.ID, &t.OwnerID, &ringJSON, &t.WKT, &t.AreaSquareMeters, &t.PointCount,
		&t.MinLat, &t.MinLon, &t.MaxLat, &t.MaxLon, &startedAt, &claimedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(ringJSON), &t.Ring); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ring for territory %d: %w", t.ID, err)
	}
	t.SessionStartedAt = startedAt
	t.ClaimedAt = claimedAt

	return &t, nil
}

func collectTerritories(rows *sql.Rows) ([]models.Territory, error) {
	var territories []models.Territory
	for rows.Next() {
		t, err := scanTerritory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan territory: %w", err)
		}
		territories = append(territories, *t)
	}
	return territories, rows.Err()
}

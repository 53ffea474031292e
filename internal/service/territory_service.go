package service

import (
	"github.com/landrun/territory-backend-go/internal/models"
	"github.com/landrun/territory-backend-go/internal/repository"
	"github.com/landrun/territory-backend-go/internal/spatial"
)

// TerritoryService handles territory listing. Rings are stored and validated
// in the device frame; conversion to the map display frame happens here, at
// the API boundary, and nowhere else.
type TerritoryService struct {
	repo *repository.TerritoryRepository
}

// NewTerritoryService creates a new territory service
func NewTerritoryService(repo *repository.TerritoryRepository) *TerritoryService {
	return &TerritoryService{repo: repo}
}

// List retrieves territories with filtering, converting rings to the display
// frame when requested
func (s *TerritoryService) List(filter models.TerritoryFilter) ([]models.Territory, int64, error) {
	territories, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, err
	}

	if filter.Frame == "display" {
		for i := range territories {
			territories[i].Ring = toDisplayRing(territories[i].Ring)
		}
	}

	return territories, total, nil
}

// Get retrieves a single territory by ID, optionally in the display frame
func (s *TerritoryService) Get(id int64, frame string) (*models.Territory, error) {
	territory, err := s.repo.GetByID(id)
	if err != nil || territory == nil {
		return territory, err
	}

	if frame == "display" {
		territory.Ring = toDisplayRing(territory.Ring)
	}

	return territory, nil
}

func toDisplayRing(ring []models.GeoPoint) []models.GeoPoint {
	pts := make([]spatial.Point, len(ring))
	for i, p := range ring {
		pts[i] = spatial.Point{Lat: p.Latitude, Lon: p.Longitude}
	}
	converted := spatial.BatchToDisplayFrame(pts)

	out := make([]models.GeoPoint, len(converted))
	for i, p := range converted {
		out[i] = models.GeoPoint{Latitude: p.Lat, Longitude: p.Lon}
	}
	return out
}

// Package geojson provides the minimal GeoJSON geometry handling needed to
// describe and inspect catalog item footprints.
package geojson

import (
	"encoding/json"
	"fmt"
)

// Geometry represents a GeoJSON geometry object. Coordinates are kept raw so
// that footprints round-trip through results files untouched.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// NewPolygon creates a Polygon geometry from a single ring of [lon, lat]
// vertices. The ring is expected to be closed (first vertex == last vertex).
func NewPolygon(ring [][]float64) (*Geometry, error) {
	if len(ring) < 4 {
		return nil, fmt.Errorf("polygon ring needs at least 4 vertices, got %d", len(ring))
	}
	coords, err := json.Marshal([][][]float64{ring})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal polygon coordinates: %w", err)
	}
	return &Geometry{Type: "Polygon", Coordinates: coords}, nil
}

// Polygon returns the coordinates as a Polygon [][][lon, lat].
// Returns an error if the geometry is not a Polygon.
func (g *Geometry) Polygon() ([][][]float64, error) {
	if g.Type != "Polygon" {
		return nil, fmt.Errorf("geometry is not a Polygon, got %s", g.Type)
	}
	var coords [][][]float64
	if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Polygon coordinates: %w", err)
	}
	return coords, nil
}

// OuterRing returns the exterior ring of a Polygon geometry.
func (g *Geometry) OuterRing() ([][]float64, error) {
	coords, err := g.Polygon()
	if err != nil {
		return nil, err
	}
	if len(coords) == 0 {
		return nil, fmt.Errorf("polygon has no rings")
	}
	return coords[0], nil
}

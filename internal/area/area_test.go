package area

import (
	"testing"

	"github.com/rkm/planet-fetch/pkg/geojson"
)

func TestRing_EquatorialQuadrangle(t *testing.T) {
	// A 1x1 degree quadrangle on the equator covers roughly 12,360 km^2.
	ring := [][]float64{
		{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0},
	}

	got := Ring(ring) / 1e6
	if got < 12300 || got > 12450 {
		t.Errorf("Expected roughly 12360 km^2, got %.1f", got)
	}
}

func TestRing_OrientationInvariant(t *testing.T) {
	cw := [][]float64{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}}
	ccw := [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}

	if a, b := Ring(cw), Ring(ccw); a != b {
		t.Errorf("Area depends on ring orientation: %f vs %f", a, b)
	}
}

func TestRing_Degenerate(t *testing.T) {
	if got := Ring([][]float64{{0, 0}, {1, 1}}); got != 0 {
		t.Errorf("Expected 0 for a degenerate ring, got %f", got)
	}
}

func TestPolygon(t *testing.T) {
	geom, err := geojson.NewPolygon([][]float64{
		{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0},
	})
	if err != nil {
		t.Fatalf("NewPolygon failed: %v", err)
	}

	got, err := Polygon(geom)
	if err != nil {
		t.Fatalf("Polygon failed: %v", err)
	}
	if got <= 0 {
		t.Errorf("Expected positive area, got %f", got)
	}

	bad := &geojson.Geometry{Type: "Point", Coordinates: []byte(`[0, 0]`)}
	if _, err := Polygon(bad); err == nil {
		t.Error("Expected error for non-polygon geometry")
	}
}

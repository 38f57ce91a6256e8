package geojson

import (
	"encoding/json"
	"testing"
)

func TestNewPolygon_RoundTrip(t *testing.T) {
	ring := [][]float64{
		{10.0, 54.0}, {10.0, 55.0}, {11.0, 55.0}, {11.0, 54.0}, {10.0, 54.0},
	}

	g, err := NewPolygon(ring)
	if err != nil {
		t.Fatalf("NewPolygon failed: %v", err)
	}
	if g.Type != "Polygon" {
		t.Errorf("Expected Polygon, got %s", g.Type)
	}

	got, err := g.OuterRing()
	if err != nil {
		t.Fatalf("OuterRing failed: %v", err)
	}
	if len(got) != len(ring) {
		t.Fatalf("Expected %d vertices, got %d", len(ring), len(got))
	}
	for i := range ring {
		if got[i][0] != ring[i][0] || got[i][1] != ring[i][1] {
			t.Errorf("Vertex %d: expected %v, got %v", i, ring[i], got[i])
		}
	}
}

func TestNewPolygon_TooFewVertices(t *testing.T) {
	if _, err := NewPolygon([][]float64{{0, 0}, {1, 1}, {0, 0}}); err == nil {
		t.Fatal("Expected error for ring with fewer than 4 vertices")
	}
}

func TestPolygon_TypeMismatch(t *testing.T) {
	g := &Geometry{Type: "Point", Coordinates: json.RawMessage(`[10.0, 54.0]`)}
	if _, err := g.Polygon(); err == nil {
		t.Fatal("Expected error for non-polygon geometry")
	}
}

func TestGeometry_JSONRoundTrip(t *testing.T) {
	raw := `{"type":"Polygon","coordinates":[[[10,54],[10,55],[11,55],[11,54],[10,54]]]}`

	var g Geometry
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	out, err := json.Marshal(&g)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != raw {
		t.Errorf("Geometry did not round-trip:\n in: %s\nout: %s", raw, out)
	}
}

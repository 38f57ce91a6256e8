// Package area computes the geodesic area of item footprints on the WGS84
// authalic sphere.
package area

import (
	"math"

	"github.com/rkm/planet-fetch/pkg/geojson"
)

// authalicRadius is the radius of the sphere with the same surface area as
// the WGS84 ellipsoid, in meters.
const authalicRadius = 6371007.1809

// Ring returns the area in square meters enclosed by a closed ring of
// [lon, lat] vertices, using the spherical excess formula.
func Ring(ring [][]float64) float64 {
	if len(ring) < 4 {
		return 0
	}

	var sum float64
	for i := 0; i < len(ring)-1; i++ {
		lon1, lat1 := toRad(ring[i][0]), toRad(ring[i][1])
		lon2, lat2 := toRad(ring[i+1][0]), toRad(ring[i+1][1])
		sum += (lon2 - lon1) * (2 + math.Sin(lat1) + math.Sin(lat2))
	}

	return math.Abs(sum * authalicRadius * authalicRadius / 2)
}

// Polygon returns the area of a Polygon geometry's exterior ring in square
// meters. Interior rings (holes) are not subtracted; provider footprints do
// not carry them.
func Polygon(g *geojson.Geometry) (float64, error) {
	ring, err := g.OuterRing()
	if err != nil {
		return 0, err
	}
	return Ring(ring), nil
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

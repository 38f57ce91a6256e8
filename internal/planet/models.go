package planet

import (
	"github.com/rkm/planet-fetch/pkg/geojson"
)

// SearchRequest is the body posted to the Data API quick-search endpoint.
type SearchRequest struct {
	ItemTypes []string       `json:"item_types"`
	Filter    map[string]any `json:"filter"`
}

// SearchResponse is the quick-search response envelope.
type SearchResponse struct {
	Features []Feature `json:"features"`
}

// Feature is one catalog item returned by a search. Identity is the ID field,
// which later correlates downloads with search results.
type Feature struct {
	ID         string            `json:"id"`
	Geometry   geojson.Geometry  `json:"geometry"`
	Properties FeatureProperties `json:"properties"`
}

// FeatureProperties holds the item metadata this tool consumes.
type FeatureProperties struct {
	// Acquired is the acquisition timestamp as reported by the provider,
	// e.g. "2024-01-15T10:30:00.123456Z".
	Acquired string `json:"acquired"`
}

// AssetMap is the per-item assets document: asset name (e.g.
// "ortho_analytic_8b", "ortho_analytic_8b_xml") to asset descriptor.
type AssetMap map[string]Asset

// Asset describes one downloadable product of a catalog item.
type Asset struct {
	// Status is the activation status: "inactive", "activating" or "active".
	Status string `json:"status"`

	// Location is the signed download URL, present once the asset is active.
	Location string `json:"location,omitempty"`

	Links AssetLinks `json:"_links"`
}

// AssetLinks carries the per-asset navigation links.
type AssetLinks struct {
	// Self returns the asset descriptor, used for status polling.
	Self string `json:"_self"`

	// Activate triggers provider-side activation of the asset.
	Activate string `json:"activate"`
}

// Activation status values used by the acquisition state machine.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

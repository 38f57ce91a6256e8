package acquire

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rkm/planet-fetch/internal/planet"
)

func TestDownloadAll_FailuresDoNotAbortSiblings(t *testing.T) {
	var baseURL string
	mux := http.NewServeMux()

	mux.HandleFunc("/item-types/PSScene/items/", func(w http.ResponseWriter, r *http.Request) {
		// good-1 has assets; bad-1 is unknown to the provider.
		if strings.Contains(r.URL.Path, "bad-1") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(planet.AssetMap{
			"ortho_analytic_8b": {
				Status: "inactive",
				Links:  planet.AssetLinks{Self: baseURL + "/self/img", Activate: baseURL + "/activate"},
			},
			"ortho_analytic_8b_xml": {
				Status: "inactive",
				Links:  planet.AssetLinks{Self: baseURL + "/self/xml", Activate: baseURL + "/activate"},
			},
		})
	})
	mux.HandleFunc("/activate", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	mux.HandleFunc("/self/img", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(planet.Asset{Status: planet.StatusActive, Location: baseURL + "/dl/good-1_img.tif"})
	})
	mux.HandleFunc("/self/xml", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(planet.Asset{Status: planet.StatusActive, Location: baseURL + "/dl/good-1_meta.xml"})
	})
	mux.HandleFunc("/dl/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("z"))
	})

	server := httptest.NewServer(mux)
	defer server.Close()
	baseURL = server.URL

	a := testAcquirer(server.URL)
	cfg := testJobConfig(t.TempDir())

	results := a.DownloadAll(context.Background(), []string{"bad-1", "good-1"}, cfg, 2, false)

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	byID := make(map[string]Result, len(results))
	for _, r := range results {
		byID[r.ID] = r
	}

	if r := byID["good-1"]; r.Err != nil || r.State != StateDone {
		t.Errorf("Expected good-1 to succeed, got state=%s err=%v", r.State, r.Err)
	}
	if r := byID["bad-1"]; r.Err == nil || r.State != StateFailed {
		t.Errorf("Expected bad-1 to fail, got state=%s err=%v", r.State, r.Err)
	}

	if got := Failed(results); got != 1 {
		t.Errorf("Expected 1 failure, got %d", got)
	}
}

func TestDownloadAll_ProcessesEveryID(t *testing.T) {
	server := newAssetServer(t, []string{planet.StatusActive})

	a := testAcquirer(server.URL)
	cfg := testJobConfig(t.TempDir())

	// All ids resolve to the same assets document; the point is that every
	// id comes back exactly once even with a shuffled queue.
	ids := []string{"item-1", "item-2", "item-3", "item-4", "item-5"}
	results := a.DownloadAll(context.Background(), ids, cfg, 3, true)

	if len(results) != len(ids) {
		t.Fatalf("Expected %d results, got %d", len(ids), len(results))
	}

	seen := make(map[string]int)
	for _, r := range results {
		seen[r.ID]++
	}
	for _, id := range ids {
		if seen[id] != 1 {
			t.Errorf("Expected id %s exactly once, got %d", id, seen[id])
		}
	}
}

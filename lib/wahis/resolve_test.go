package wahis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload any
		switch r.URL.Path {
		case "/pi/country/list":
			payload = []CountryRef{
				{AreaID: 68, Name: "France", IsoCode: "FRA"},
				{AreaID: 12, Name: "Germany", IsoCode: "DEU"},
				{AreaID: 33, Name: "South Africa", IsoCode: "ZAF"},
			}
		case "/pi/country/list-geo-region":
			payload = []GeoRegion{
				{Name: "Europe", CountryIDs: []int64{68, 12}},
				{Name: "Africa", CountryIDs: []int64{33}},
			}
		case "/pi/disease/first-level-filters":
			payload = []DiseaseFilter{
				{Name: "Anthrax", IDs: []int64{42}},
				{Name: "Foot and mouth disease", IDs: []int64{7, 8}},
			}
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}))
}

func TestResolveCountries(t *testing.T) {
	server := newCatalogServer(t)
	defer server.Close()
	client := newTestClient(t, server.URL, 1)
	ctx := context.Background()

	ids, err := client.ResolveCountries(ctx, []string{"france"})
	require.NoError(t, err)
	require.Equal(t, []int64{68}, ids)

	// substring
	ids, err = client.ResolveCountries(ctx, []string{"germ"})
	require.NoError(t, err)
	require.Equal(t, []int64{12}, ids)

	// typo, resolved by fuzzy match
	ids, err = client.ResolveCountries(ctx, []string{"Frannce"})
	require.NoError(t, err)
	require.Equal(t, []int64{68}, ids)

	// nonsense is skipped, not an error
	ids, err = client.ResolveCountries(ctx, []string{"Atlantis"})
	require.NoError(t, err)
	require.Empty(t, ids)

	ids, err = client.ResolveCountries(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestResolveDiseases(t *testing.T) {
	server := newCatalogServer(t)
	defer server.Close()
	client := newTestClient(t, server.URL, 1)

	ids, err := client.ResolveDiseases(context.Background(), []string{"anthrax ", "foot and mouth"})
	require.NoError(t, err)
	require.Equal(t, []int64{42, 7, 8}, ids)
}

func TestResolveRegions(t *testing.T) {
	server := newCatalogServer(t)
	defer server.Close()
	client := newTestClient(t, server.URL, 1)

	ids, err := client.ResolveRegions(context.Background(), []string{"europe", "Oceania"})
	require.NoError(t, err)
	require.Equal(t, []int64{68, 12}, ids)
}

func TestUnionIDs(t *testing.T) {
	require.Equal(t,
		[]int64{68, 12, 33},
		UnionIDs([]int64{68, 12}, []int64{12, 33, 68}),
	)
	require.Empty(t, UnionIDs(nil, nil))
}

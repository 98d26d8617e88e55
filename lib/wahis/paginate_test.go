package wahis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// serves /pi/event/filtered-list from a fixed set of summaries, optionally
// lying about the total size
func newListServer(t *testing.T, summaries []ReportSummary, declaredTotal int, calls *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/pi/event/filtered-list", r.URL.Path)
		*calls++

		var req FilteredListRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, *calls-1, req.PageNumber)

		start := req.PageNumber * req.PageSize
		end := start + req.PageSize
		if start > len(summaries) {
			start = len(summaries)
		}
		if end > len(summaries) {
			end = len(summaries)
		}

		res := FilteredListResponse{List: summaries[start:end], TotalSize: declaredTotal}
		require.NoError(t, json.NewEncoder(w).Encode(res))
	}))
}

func makeSummaries(n int) []ReportSummary {
	out := make([]ReportSummary, n)
	for i := range out {
		out[i] = ReportSummary{
			ReportID: int64(1000 + i),
			EventID:  int64(i),
			Country:  "France",
			Disease:  "Anthrax",
		}
	}
	return out
}

func TestFetchAllReportsSinglePage(t *testing.T) {
	calls := 0
	server := newListServer(t, makeSummaries(1), 1, &calls)
	defer server.Close()

	client := newTestClient(t, server.URL, 1)

	filters := NewFilteredListRequest()
	filters.Countries = []int64{68}
	filters.FirstDiseases = []int64{42}

	reports, err := client.FetchAllReports(context.Background(), filters)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	require.EqualValues(t, 1000, reports[0].ReportID)
	require.Equal(t, 1, calls)
}

func TestFetchAllReportsEmptyResult(t *testing.T) {
	calls := 0
	server := newListServer(t, nil, 0, &calls)
	defer server.Close()

	client := newTestClient(t, server.URL, 1)
	reports, err := client.FetchAllReports(context.Background(), NewFilteredListRequest())
	require.NoError(t, err)
	require.Empty(t, reports)
	require.Equal(t, 1, calls, "totalSize 0 must stop after a single request")
}

func TestFetchAllReportsPaginates(t *testing.T) {
	calls := 0
	server := newListServer(t, makeSummaries(5), 5, &calls)
	defer server.Close()

	client := newTestClient(t, server.URL, 1)

	filters := NewFilteredListRequest()
	filters.PageSize = 2

	reports, err := client.FetchAllReports(context.Background(), filters)
	require.NoError(t, err)
	require.Len(t, reports, 5)
	require.Equal(t, 3, calls)

	for i, r := range reports {
		require.EqualValues(t, 1000+i, r.ReportID)
	}
}

func TestFetchAllReportsShortPageStopsDespiteInflatedTotal(t *testing.T) {
	// server claims 100 reports but only ever has 3: the short-page rule
	// must terminate the loop
	calls := 0
	server := newListServer(t, makeSummaries(3), 100, &calls)
	defer server.Close()

	client := newTestClient(t, server.URL, 1)

	filters := NewFilteredListRequest()
	filters.PageSize = 2

	reports, err := client.FetchAllReports(context.Background(), filters)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	require.Equal(t, 2, calls)
}

func TestFetchAllReportsRequestBound(t *testing.T) {
	// never more than ceil(total/pageSize)+1 requests
	for _, total := range []int{0, 1, 2, 3, 4, 7} {
		calls := 0
		server := newListServer(t, makeSummaries(total), total, &calls)

		client := newTestClient(t, server.URL, 1)
		filters := NewFilteredListRequest()
		filters.PageSize = 2

		reports, err := client.FetchAllReports(context.Background(), filters)
		require.NoError(t, err)
		require.Len(t, reports, total)

		bound := (total+1)/2 + 1
		require.LessOrEqual(t, calls, bound, fmt.Sprintf("total=%d", total))

		server.Close()
	}
}

func TestFetchAllReportsRejectsOversizedPage(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1", 1)

	filters := NewFilteredListRequest()
	filters.PageSize = MaxPageSize + 1

	_, err := client.FetchAllReports(context.Background(), filters)
	require.Error(t, err)
	require.Contains(t, err.Error(), "exceeds the server cap")
}

func TestFetchAllReportsPropagatesPageFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 1)
	_, err := client.FetchAllReports(context.Background(), NewFilteredListRequest())
	require.Error(t, err)
}

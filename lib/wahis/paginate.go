package wahis

import (
	"context"
	"log/slog"
)

// FetchAllReports walks /pi/event/filtered-list page by page (0-indexed)
// and accumulates every report summary matching the filters.
//
// The loop stops when the accumulated count reaches the server's declared
// totalSize, or when a page comes back shorter than the page size. The
// short-page rule guards against inconsistent server counts; when the two
// signals disagree the divergence is logged, not resolved.
func (c *Client) FetchAllReports(ctx context.Context, filters FilteredListRequest) ([]ReportSummary, error) {
	if err := filters.validate(); err != nil {
		return nil, err
	}
	pageSize := filters.PageSize
	if pageSize == 0 {
		pageSize = MaxPageSize
	}

	var all []ReportSummary
	for page := 0; ; page++ {
		filters.PageSize = pageSize
		filters.PageNumber = page

		var res FilteredListResponse
		err := c.postJSON(ctx, "/pi/event/filtered-list", filters, &res)
		if err != nil {
			return nil, err
		}
		all = append(all, res.List...)

		if page == 0 {
			slog.Info("filtered list", "total_size", res.TotalSize)
		}

		if len(all) >= res.TotalSize {
			if len(all) > res.TotalSize {
				slog.Warn(
					"totalSize mismatch, server reported fewer reports than returned",
					"total_size", res.TotalSize,
					"accumulated", len(all),
				)
			}
			break
		}
		if len(res.List) < pageSize {
			slog.Warn(
				"totalSize mismatch, final page arrived before the declared total",
				"total_size", res.TotalSize,
				"accumulated", len(all),
			)
			break
		}
	}

	return all, nil
}

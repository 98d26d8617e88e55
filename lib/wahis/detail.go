package wahis

import (
	"context"
	"fmt"
)

// FetchReportDetail retrieves the full nested record for one report. The
// endpoint only supports a single report per request.
func (c *Client) FetchReportDetail(ctx context.Context, reportID int64) (ReportDetail, error) {
	var detail ReportDetail
	path := fmt.Sprintf("/pi/review/report/%d/all-information", reportID)
	err := c.getJSON(ctx, path, &detail)
	return detail, err
}

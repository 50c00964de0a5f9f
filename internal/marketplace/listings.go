package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/rigmint/tvl/internal/domain"
)

// PageSize is the fixed page size for listing requests. A page shorter than
// this signals the last page.
const PageSize = 100

// listingResponse wraps one page of the device listing endpoint. Metadata
// and message are carried but never interpreted.
type listingResponse struct {
	Data     []domain.GPUListing `json:"data"`
	Metadata json.RawMessage     `json:"metadata"`
	Message  string              `json:"message"`
}

// fetchPage requests one page of device listings with the fixed sort and
// filter parameters.
func (c *Client) fetchPage(ctx context.Context, page int) (listingResponse, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(PageSize))
	params.Set("sort", "month-1-earnings")
	params.Set("order", "desc")
	params.Set("excludeZeroEarnings", "false")
	params.Set("onlyWithApr", "false")

	var resp listingResponse
	if err := c.getJSON(ctx, "/api/v1/devices?"+params.Encode(), &resp); err != nil {
		return listingResponse{}, fmt.Errorf("fetching listings page %d: %w", page, err)
	}
	return resp, nil
}

// FetchAllListings walks the paginated device listing from page 1 until an
// empty page, a short page, or the first error. The returned slice is valid
// even when err is non-nil: it holds every record gathered before the
// failure, and the error is diagnostic only. There is no retry and no
// resumption.
func (c *Client) FetchAllListings(ctx context.Context) ([]domain.GPUListing, error) {
	var all []domain.GPUListing

	for page := 1; ; page++ {
		resp, err := c.fetchPage(ctx, page)
		if err != nil {
			slog.Warn("marketplace: listing fetch aborted, keeping partial results",
				"page", page, "gathered", len(all), "error", err)
			return all, err
		}

		if len(resp.Data) == 0 {
			break
		}
		all = append(all, resp.Data...)

		if len(resp.Data) < PageSize {
			break
		}
	}

	slog.Info("marketplace: fetched device listings", "count", len(all))
	return all, nil
}

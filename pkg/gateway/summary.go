package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

type EventTrendPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type SeverityCount struct {
	Severity Severity `json:"severity"`
	Count    int64    `json:"count"`
}

type SourceCount struct {
	AssetId   *int64 `json:"asset_id"`
	AssetName string `json:"asset_name"`
	Count     int64  `json:"count"`
}

// GetEventTrend returns the daily event counts over the trailing number
// of days, oldest day first
func (c *Client) GetEventTrend(ctx context.Context, days int) ([]EventTrendPoint, error) {
	var trend []EventTrendPoint
	err := c.do(ctx, requestOpts{
		Method: http.MethodGet,
		Path:   "/dashboard/trend",
		Query:  url.Values{"days": {strconv.Itoa(days)}},
	}, &trend)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve the event trend: %w", err)
	}
	return trend, nil
}

// GetSeverityBreakdown returns alert counts per severity, ordered from
// low to critical with zero-count severities included
func (c *Client) GetSeverityBreakdown(ctx context.Context) ([]SeverityCount, error) {
	var breakdown []SeverityCount
	err := c.do(ctx, requestOpts{
		Method: http.MethodGet,
		Path:   "/dashboard/severity",
	}, &breakdown)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve the severity breakdown: %w", err)
	}
	return breakdown, nil
}

// GetTopSources returns the assets producing the most events, busiest
// first, at most limit entries
func (c *Client) GetTopSources(ctx context.Context, limit int) ([]SourceCount, error) {
	var sources []SourceCount
	err := c.do(ctx, requestOpts{
		Method: http.MethodGet,
		Path:   "/dashboard/sources",
		Query:  url.Values{"limit": {strconv.Itoa(limit)}},
	}, &sources)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve the top sources: %w", err)
	}
	return sources, nil
}

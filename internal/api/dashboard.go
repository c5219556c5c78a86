package api

import (
	"context"
	"net/http"

	"github.com/noah-isme/academy-console/internal/models"
)

// DashboardClient fetches summary statistics.
type DashboardClient struct {
	client *Client
}

// Dashboard returns the dashboard client.
func (c *Client) Dashboard() *DashboardClient {
	return &DashboardClient{client: c}
}

// Stats fetches aggregated counters. Absent fields decode to zero.
func (d *DashboardClient) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := d.client.do(ctx, "dashboard", http.MethodGet, "/dashboard/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

package backend

import "context"

// VPNCheck asks the backend whether this connection looks like a
// VPN/proxy/datacenter exit. The caller owns caching and retries.
func (c *Client) VPNCheck(ctx context.Context) (VPNCheck, error) {
	var out VPNCheck
	err := c.get(ctx, "/api/vpn-check", nil, &out)
	return out, err
}

// DBStatus probes the backend's database connectivity banner.
func (c *Client) DBStatus(ctx context.Context) (DBStatus, error) {
	var out DBStatus
	err := c.get(ctx, "/api/db-status", nil, &out)
	return out, err
}

// ReportDevice posts the device fingerprint to the fraud-check endpoint.
// Fire-and-forget at the call site; this method still returns the error so
// tests can observe it.
func (c *Client) ReportDevice(ctx context.Context, report BanCheckReport) error {
	return c.do(ctx, "POST", "/system/auto-ban-check",
		nil,
		map[string]string{"X-Device-Hash": report.DeviceHash},
		report, nil)
}

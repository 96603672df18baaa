package backend

import "context"

// BoostCanActivate asks whether the user may start another boost flow.
func (c *Client) BoostCanActivate(ctx context.Context) (BoostEligibility, error) {
	var out BoostEligibility
	err := c.get(ctx, "/api/boost/can-activate", map[string]string{"user_id": c.userID}, &out)
	return out, err
}

// BoostActivate redeems a completed rewarded ad for the x2 mining boost.
// A success:false body is returned as an APIError so the caller can apply
// already-active collapsing.
func (c *Client) BoostActivate(ctx context.Context) (BoostActivation, error) {
	var out BoostActivation
	err := c.post(ctx, "/api/boost/activate", map[string]string{"user_id": c.userID}, nil, &out)
	if err != nil {
		return out, err
	}
	if !out.Success {
		return out, rejection(out.Error, "", 0)
	}
	return out, nil
}

// BoostStatus fetches the full boost projection shown next to the trigger.
func (c *Client) BoostStatus(ctx context.Context) (BoostStatus, error) {
	var out BoostStatus
	err := c.get(ctx, "/api/boost/status", map[string]string{"user_id": c.userID}, &out)
	return out, err
}

package backend

import "context"

// ShrinkEarnStatus fetches the mission catalog with per-mission cooldowns
// and the user's daily stats. Ordering is whatever the backend returns;
// it is stable by mission id.
func (c *Client) ShrinkEarnStatus(ctx context.Context) (ShrinkEarnStatus, error) {
	var out ShrinkEarnStatus
	err := c.get(ctx, "/shrinkearn/status", map[string]string{"user_id": c.userID}, &out)
	return out, err
}

type shrinkEarnStartReq struct {
	UserID      string `json:"user_id"`
	MissionType string `json:"mission_type"`
}

// ShrinkEarnStart opens a link mission and returns the shortened URL the
// user must complete. 429 rejections carry cooldown_remaining and a
// Spanish fallback message, both preserved in the APIError.
func (c *Client) ShrinkEarnStart(ctx context.Context, missionType string) (ShrinkEarnStart, error) {
	var out ShrinkEarnStart
	err := c.post(ctx, "/shrinkearn/start", nil,
		shrinkEarnStartReq{UserID: c.userID, MissionType: missionType}, &out)
	if err != nil {
		return out, err
	}
	if !out.Success {
		return out, rejection(out.Error, out.ErrorEs, out.CooldownRemaining)
	}
	return out, nil
}

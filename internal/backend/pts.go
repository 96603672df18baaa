package backend

import "context"

// AdCanWatch asks whether the user may watch another OnClickA ad.
func (c *Client) AdCanWatch(ctx context.Context) (AdEligibility, error) {
	var out AdEligibility
	err := c.get(ctx, "/api/ad/can-watch", map[string]string{"user_id": c.userID}, &out)
	return out, err
}

// AdWatch records a completed ad view and credits PTS.
func (c *Client) AdWatch(ctx context.Context, taskType string) (AdWatchResult, error) {
	if taskType == "" {
		taskType = "single_ad"
	}
	var out AdWatchResult
	err := c.post(ctx, "/api/ad/watch",
		map[string]string{"user_id": c.userID},
		map[string]string{"task_type": taskType}, &out)
	if err != nil {
		return out, err
	}
	if !out.Success {
		return out, rejection(out.Error, "", 0)
	}
	return out, nil
}

// PtsStatus fetches the aggregate PTS panel: balance, check-in state,
// ad-task progress, rank and the OnClickA boost projection.
func (c *Client) PtsStatus(ctx context.Context) (PtsStatus, error) {
	var out PtsStatus
	err := c.get(ctx, "/api/pts/status", map[string]string{"user_id": c.userID}, &out)
	return out, err
}

// PtsRanking fetches the weekly PTS competition board.
func (c *Client) PtsRanking(ctx context.Context) (PtsRanking, error) {
	var out PtsRanking
	err := c.get(ctx, "/api/pts/ranking", map[string]string{"user_id": c.userID}, &out)
	return out, err
}

// Checkin performs the daily check-in.
func (c *Client) Checkin(ctx context.Context) (CheckinResult, error) {
	var out CheckinResult
	err := c.post(ctx, "/api/checkin", map[string]string{"user_id": c.userID}, nil, &out)
	if err != nil {
		return out, err
	}
	if !out.Success {
		return out, rejection(out.Message, "", 0)
	}
	return out, nil
}

// CheckinDouble doubles today's check-in reward after a rewarded ad.
func (c *Client) CheckinDouble(ctx context.Context) (CheckinResult, error) {
	var out CheckinResult
	err := c.post(ctx, "/api/checkin/double", map[string]string{"user_id": c.userID}, nil, &out)
	if err != nil {
		return out, err
	}
	if !out.Success {
		return out, rejection(out.Message, "", 0)
	}
	return out, nil
}

package adsdk

import (
	"context"
	"fmt"
	"time"
)

// OnClickA is the rewarded-video provider behind PTS ad tasks.
type OnClickA struct {
	*rewardedUnit
	codeID int
}

func NewOnClickA(codeID int, watchWindow time.Duration) *OnClickA {
	o := &OnClickA{codeID: codeID}
	o.rewardedUnit = newRewardedUnit(
		"onclicka",
		fmt.Sprintf("code-%d", codeID),
		watchWindow,
		o.load,
	)
	return o
}

func (o *OnClickA) CodeID() int { return o.codeID }

func (o *OnClickA) load(ctx context.Context) error {
	if o.codeID <= 0 {
		return fmt.Errorf("onclicka: code id not configured")
	}
	return nil
}

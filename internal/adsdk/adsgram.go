package adsdk

import (
	"context"
	"fmt"
	"time"
)

// AdsGram is the rewarded-video provider behind the mining boost.
type AdsGram struct {
	*rewardedUnit
	blockID int
}

// NewAdsGram builds the provider for one block id. Use a Registry so the
// block is initialized at most once per agent.
func NewAdsGram(blockID int, watchWindow time.Duration) *AdsGram {
	a := &AdsGram{blockID: blockID}
	a.rewardedUnit = newRewardedUnit(
		"adsgram",
		fmt.Sprintf("block-%d", blockID),
		watchWindow,
		a.load,
	)
	return a
}

func (a *AdsGram) BlockID() int { return a.blockID }

func (a *AdsGram) load(ctx context.Context) error {
	if a.blockID <= 0 {
		return fmt.Errorf("adsgram: block id not configured")
	}
	return nil
}

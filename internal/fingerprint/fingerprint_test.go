package fingerprint

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lucia2467/mibot/internal/session"
)

func fixedComponents() Components {
	return Components{
		CanvasHash:     "canvas-1",
		WebGLRenderer:  "ANGLE (Test)",
		AudioSignature: "124.04347",
		ScreenInfo:     "1920x1080",
		Platform:       "linux/amd64",
		Language:       "en_US",
		Timezone:       "+0000",
		UserAgent:      "mibot/1.0",
		Plugins:        []string{"pdf", "widevine"},
		Hostname:       "host-a",
	}
}

func TestHash_DeterministicAndComponentSensitive(t *testing.T) {
	a := Hash(fixedComponents())
	b := Hash(fixedComponents())
	assert.Equal(t, a, b)

	changed := fixedComponents()
	changed.WebGLRenderer = "ANGLE (Other)"
	assert.NotEqual(t, a, Hash(changed))
}

func TestHash_PluginOrderIrrelevant(t *testing.T) {
	a := fixedComponents()
	b := fixedComponents()
	b.Plugins = []string{"widevine", "pdf"}
	assert.Equal(t, Hash(a), Hash(b))
}

func TestCollect_CachedWithin24Hours(t *testing.T) {
	store := session.NewMemory()
	now := time.Now()
	store.SetClock(func() time.Time { return now })

	c := NewCollector(store)
	c.SetComponents(fixedComponents)

	first := c.Collect()

	// A changed environment must not change the cached hash inside 24h.
	c.SetComponents(func() Components {
		comps := fixedComponents()
		comps.Hostname = "host-b"
		return comps
	})

	now = now.Add(23 * time.Hour)
	second := c.Collect()
	assert.Equal(t, first.Hash, second.Hash)

	now = now.Add(2 * time.Hour)
	third := c.Collect()
	assert.NotEqual(t, first.Hash, third.Hash, "expired cache must recompute")

	fourth := c.Collect()
	assert.Equal(t, third.Hash, fourth.Hash, "recomputed hash must be re-cached")
}

func TestCollect_WritesLongLivedHashKey(t *testing.T) {
	store := session.NewMemory()
	c := NewCollector(store)
	c.SetComponents(fixedComponents)

	fp := c.Collect()
	require.NotEmpty(t, fp.Hash)

	v, ok := store.Get("_se_dfp_hash")
	require.True(t, ok)
	assert.Equal(t, fp.Hash, v)
}

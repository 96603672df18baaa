// Package fingerprint reproduces the mini app's device-fingerprint signal:
// a composite of rendering, audio and environment components folded into a
// simple polynomial string hash. Heuristic fraud input, not a security
// boundary.
package fingerprint

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Lucia2467/mibot/internal/backend"
	"github.com/Lucia2467/mibot/internal/session"
)

const (
	cacheKey  = "_se_device_fp"
	cookieKey = "_se_dfp_hash"
	cacheTTL  = 24 * time.Hour
	cookieTTL = 365 * 24 * time.Hour
)

// Components are the raw inputs. In the browser these come from canvas,
// WebGL, the audio pipeline and navigator; the agent fills in its host
// equivalents plus configured stand-ins.
type Components struct {
	CanvasHash     string   `json:"canvas_hash"`
	WebGLRenderer  string   `json:"webgl_renderer"`
	AudioSignature string   `json:"audio_signature"`
	ScreenInfo     string   `json:"screen_info"`
	Platform       string   `json:"platform"`
	Language       string   `json:"language"`
	Timezone       string   `json:"timezone"`
	UserAgent      string   `json:"user_agent"`
	Plugins        []string `json:"plugins"`
	Hostname       string   `json:"hostname"`
}

type Fingerprint struct {
	Hash       string     `json:"hash"`
	Components Components `json:"components"`
	ComputedAt time.Time  `json:"computed_at"`
}

// HostComponents builds components from the running host.
func HostComponents() Components {
	hostname, _ := os.Hostname()
	return Components{
		CanvasHash:     "headless",
		WebGLRenderer:  "headless",
		AudioSignature: "headless",
		ScreenInfo:     "0x0",
		Platform:       runtime.GOOS + "/" + runtime.GOARCH,
		Language:       os.Getenv("LANG"),
		Timezone:       time.Now().Format("-0700"),
		UserAgent:      "mibot/1.0",
		Hostname:       hostname,
	}
}

// Hash folds the serialized components with hash*31+ch over a signed
// 32-bit accumulator, matching the client-side polynomial hash.
func Hash(c Components) string {
	plugins := append([]string(nil), c.Plugins...)
	sort.Strings(plugins)
	material := fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s|%s|%v|%s",
		c.CanvasHash, c.WebGLRenderer, c.AudioSignature, c.ScreenInfo,
		c.Platform, c.Language, c.Timezone, c.UserAgent, plugins, c.Hostname)

	var h int32
	for _, ch := range []byte(material) {
		h = h*31 + int32(ch)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 16)
}

// Collector computes the fingerprint at most once per 24h, serving the
// cached copy in between.
type Collector struct {
	store      *session.Store
	components func() Components
}

func NewCollector(store *session.Store) *Collector {
	return &Collector{store: store, components: HostComponents}
}

// SetComponents overrides the component source. Used in tests.
func (c *Collector) SetComponents(fn func() Components) { c.components = fn }

// Collect returns the cached fingerprint when fresh, otherwise computes
// and caches a new one.
func (c *Collector) Collect() Fingerprint {
	if raw, ok := c.store.Get(cacheKey); ok {
		var fp Fingerprint
		if err := json.Unmarshal([]byte(raw), &fp); err == nil && fp.Hash != "" {
			return fp
		}
	}

	comps := c.components()
	fp := Fingerprint{
		Hash:       Hash(comps),
		Components: comps,
		ComputedAt: time.Now(),
	}
	if data, err := json.Marshal(fp); err == nil {
		c.store.Set(cacheKey, string(data), cacheTTL)
	}
	c.store.Set(cookieKey, fp.Hash, cookieTTL)
	return fp
}

type reporter interface {
	ReportDevice(ctx context.Context, report backend.BanCheckReport) error
	UserID() string
}

// Report sends the fingerprint to the fraud-check endpoint once, in the
// background. Failures are swallowed on purpose: the signal must not
// surface to the user.
func Report(ctx context.Context, client reporter, fp Fingerprint) {
	go func() {
		err := client.ReportDevice(ctx, backend.BanCheckReport{
			UserID:     client.UserID(),
			DeviceHash: fp.Hash,
			DeviceInfo: map[string]string{
				"platform":   fp.Components.Platform,
				"screen":     fp.Components.ScreenInfo,
				"timezone":   fp.Components.Timezone,
				"user_agent": fp.Components.UserAgent,
			},
		})
		if err != nil {
			log.Debug().Err(err).Msg("device report dropped")
		}
	}()
}

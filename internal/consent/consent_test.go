package consent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate_BeginIsExclusive(t *testing.T) {
	g := NewGate(Auto{Accept: true})

	require.True(t, g.Begin())
	assert.False(t, g.Begin(), "second Begin while held must fail")

	g.End()
	assert.True(t, g.Begin(), "End must re-open the gate")
}

func TestGate_EndSafeWhenNotHeld(t *testing.T) {
	g := NewGate(Auto{Accept: true})
	g.End()
	assert.True(t, g.Begin())
}

func TestGate_AskRequiresHeldGate(t *testing.T) {
	g := NewGate(Auto{Accept: true})

	_, err := g.Ask(context.Background(), Request{Flow: "boost"})
	assert.ErrorIs(t, err, ErrLocked)

	require.True(t, g.Begin())
	defer g.End()
	d, err := g.Ask(context.Background(), Request{Flow: "boost"})
	require.NoError(t, err)
	assert.Equal(t, Accepted, d)
}

func TestAuto_Decisions(t *testing.T) {
	d, err := Auto{Accept: true}.Prompt(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, Accepted, d)

	d, err = Auto{Accept: false}.Prompt(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, Cancelled, d)
}

func TestFunc_ReceivesRequest(t *testing.T) {
	var got Request
	p := Func(func(_ context.Context, req Request) (Decision, error) {
		got = req
		return Cancelled, nil
	})

	g := NewGate(p)
	require.True(t, g.Begin())
	defer g.End()

	d, err := g.Ask(context.Background(), Request{Flow: "ad", Title: "Watch?", Reward: "+5 PTS"})
	require.NoError(t, err)
	assert.Equal(t, Cancelled, d)
	assert.Equal(t, "ad", got.Flow)
	assert.Equal(t, "+5 PTS", got.Reward)
}

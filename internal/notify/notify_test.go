package notify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenter_ClassesAndOrder(t *testing.T) {
	c := NewCenter(10)
	c.Success("boost activated")
	c.Error("connection error")
	c.Info("ad cancelled")

	feed := c.Recent(0)
	require.Len(t, feed, 3)
	assert.Equal(t, ClassSuccess, feed[0].Class)
	assert.Equal(t, ClassError, feed[1].Class)
	assert.Equal(t, ClassInfo, feed[2].Class)

	last, ok := c.Last()
	require.True(t, ok)
	assert.Equal(t, "ad cancelled", last.Message)
}

func TestCenter_BoundedFeed(t *testing.T) {
	c := NewCenter(3)
	for i := 0; i < 10; i++ {
		c.Info(fmt.Sprintf("msg-%d", i))
	}

	feed := c.Recent(0)
	require.Len(t, feed, 3)
	assert.Equal(t, "msg-7", feed[0].Message)
	assert.Equal(t, "msg-9", feed[2].Message)
}

func TestCenter_RecentLimit(t *testing.T) {
	c := NewCenter(10)
	c.Info("a")
	c.Info("b")
	c.Info("c")

	feed := c.Recent(2)
	require.Len(t, feed, 2)
	assert.Equal(t, "b", feed[0].Message)
	assert.Equal(t, "c", feed[1].Message)
}

func TestCenter_EmptyLast(t *testing.T) {
	c := NewCenter(5)
	_, ok := c.Last()
	assert.False(t, ok)
}

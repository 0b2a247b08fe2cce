package fetch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestLimiter_PerHost(t *testing.T) {
	l := NewLimiter(1, 1)

	assert.True(t, l.Allow("https://a.example/1"))
	assert.False(t, l.Allow("https://a.example/2"))
	assert.True(t, l.Allow("https://b.example/1"))
}

func TestLimiter_WaitHonoursContext(t *testing.T) {
	l := NewLimiter(0.001, 1)
	assert.NoError(t, l.Wait(context.Background(), "https://a.example/"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Wait(ctx, "https://a.example/"))
}

func TestLimiter_CrawlDelay(t *testing.T) {
	l := NewLimiter(10, 5)
	l.SetCrawlDelay("https://a.example/", 2*time.Second)
	assert.Equal(t, rate.Every(2*time.Second), l.limiter("a.example").Limit())
	assert.Equal(t, 1, l.limiter("a.example").Burst())

	// a looser delay does not speed the host up again
	l.SetCrawlDelay("https://a.example/", 10*time.Millisecond)
	assert.Equal(t, rate.Every(2*time.Second), l.limiter("a.example").Limit())
}

func TestLimiter_BadURL(t *testing.T) {
	l := NewLimiter(1, 1)
	assert.False(t, l.Allow("://bad"))
	assert.Error(t, l.Wait(context.Background(), "://bad"))
}

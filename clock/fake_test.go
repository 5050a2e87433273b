package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFakeAdvance(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	fc := NewFake(start)
	require.Equal(t, start, fc.Now())

	got := fc.Advance(time.Minute)
	require.Equal(t, start.Add(time.Minute), got)
	require.Equal(t, start.Add(time.Minute), fc.Now())
}

func TestFakeSleepAdvancesNow(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	fc := NewFake(start)
	fc.Sleep(30 * time.Second)
	require.Equal(t, start.Add(30*time.Second), fc.Now())
}

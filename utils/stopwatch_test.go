package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_Watch(t *testing.T) {
	watch := Watch{}

	watch.Start()
	time.Sleep(200 * time.Millisecond)
	dur := watch.Elapsed()
	require.True(t, FloatEquals(dur.Seconds(), 0.2, 0.05), "seconds mismatch %v", dur.Seconds())

	watch.Pause()
	time.Sleep(200 * time.Millisecond)
	dur2 := watch.Elapsed()
	require.True(t, FloatEquals(dur2.Seconds(), 0.2, 0.05), "paused seconds mismatch %v", dur2.Seconds())

	watch.UnPause()
	time.Sleep(200 * time.Millisecond)
	dur3 := watch.Elapsed()
	require.True(t, FloatEquals(dur3.Seconds(), 0.4, 0.05), "unpaused seconds mismatch %v", dur3.Seconds())

	dur4 := watch.AbsoluteElapsed()
	require.True(t, FloatEquals(dur4.Seconds(), 0.6, 0.05), "absolute seconds mismatch %v", dur4.Seconds())
}

func Test_WatchLap(t *testing.T) {
	watch := Watch{}
	watch.Start()
	time.Sleep(100 * time.Millisecond)
	first := watch.Lap()
	time.Sleep(50 * time.Millisecond)
	second := watch.Lap()

	require.True(t, FloatEquals(first.Seconds(), 0.1, 0.04), "first lap %v", first.Seconds())
	require.True(t, FloatEquals(second.Seconds(), 0.05, 0.04), "second lap %v", second.Seconds())
	require.Panics(t, func() { watch.UnPause() })
}

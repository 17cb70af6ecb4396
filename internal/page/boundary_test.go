package page

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundaryStartsLoading(t *testing.T) {
	b := NewBoundary[[]int]("B:1")
	assert.Equal(t, Loading, b.State())

	data, err := b.Result()
	assert.Nil(t, data)
	assert.NoError(t, err)

	select {
	case <-b.Done():
		t.Fatal("Done closed before settling")
	default:
	}
}

func TestBoundaryResolveOnce(t *testing.T) {
	b := NewBoundary[[]int]("B:1")
	require.NoError(t, b.Resolve([]int{1, 2}))
	assert.Equal(t, Ready, b.State())

	assert.ErrorIs(t, b.Resolve([]int{3}), ErrAlreadySettled)
	assert.ErrorIs(t, b.Fail(errors.New("late")), ErrAlreadySettled)

	data, err := b.Result()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, data)
	<-b.Done()
}

func TestBoundaryFailOnce(t *testing.T) {
	b := NewBoundary[string]("B:1")
	cause := errors.New("db down")
	require.NoError(t, b.Fail(cause))
	assert.Equal(t, Failed, b.State())
	assert.ErrorIs(t, b.Resolve("late"), ErrAlreadySettled)

	_, err := b.Result()
	assert.Same(t, cause, err)
}

func TestBoundaryFailRejectsNil(t *testing.T) {
	b := NewBoundary[string]("B:1")
	assert.Error(t, b.Fail(nil))
	assert.Equal(t, Loading, b.State())
}

func TestDeferCallsFetchOnce(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})

	b := Defer(context.Background(), "B:1", func(context.Context) ([]string, error) {
		calls.Add(1)
		<-release
		return []string{"a"}, nil
	})
	assert.Equal(t, Loading, b.State())

	close(release)
	data, err := b.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, data)
	assert.Equal(t, Ready, b.State())
	assert.EqualValues(t, 1, calls.Load())
}

func TestDeferFailure(t *testing.T) {
	b := Defer(context.Background(), "B:1", func(context.Context) (int, error) {
		return 0, errors.New("boom")
	})
	_, err := b.Wait(context.Background())
	assert.EqualError(t, err, "boom")
	assert.Equal(t, Failed, b.State())
}

func TestWaitHonorsContext(t *testing.T) {
	b := NewBoundary[int]("B:1")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := b.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, Loading, b.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "State(9)", State(9).String())
}

func TestNewBoundaryIDUnique(t *testing.T) {
	a, b := NewBoundaryID(), NewBoundaryID()
	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^B-[0-9A-Z]{26}$`, a)
}

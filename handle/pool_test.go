// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package handle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type testTag struct{}

func (testTag) handleMarker() {}

func TestPoolObtainReleaseInvariant(t *testing.T) {
	p := New[int, testTag](4, true)

	var live []Handle[testTag]
	for i := 0; i < 4; i++ {
		h, err := p.Obtain()
		require.NoError(t, err)
		*p.Access(h) = i
		live = append(live, h)
	}
	require.Equal(t, 4, p.Len())

	// Release the second handle, then immediately obtain: spec.md §8
	// requires the same index comes back.
	p.Release(live[1])
	require.Equal(t, 3, p.Len())

	again, err := p.Obtain()
	require.NoError(t, err)
	require.Equal(t, live[1].Index(), again.Index())
	require.Equal(t, 4, p.Len())
}

func TestPoolHeadEqualsLiveCount(t *testing.T) {
	p := New[int, testTag](2, true)

	var live []Handle[testTag]
	for i := 0; i < 10; i++ {
		h, err := p.Obtain()
		require.NoError(t, err)
		live = append(live, h)
		require.Equal(t, i+1, p.Len())
	}

	for i, h := range live {
		p.Release(h)
		require.Equal(t, len(live)-i-1, p.Len())
	}
}

func TestPoolIterationYieldsExactlyLiveEntries(t *testing.T) {
	p := New[int, testTag](8, true)

	var live []Handle[testTag]
	for i := 0; i < 8; i++ {
		h, v, err := p.ObtainAndAccess()
		require.NoError(t, err)
		*v = i * 10
		live = append(live, h)
	}

	// Release a couple from the middle.
	p.Release(live[2])
	p.Release(live[5])
	remaining := map[Index]bool{}
	for i, h := range live {
		if i == 2 || i == 5 {
			continue
		}
		remaining[h.Index()] = true
	}

	seen := map[Index]bool{}
	p.Range(func(h Handle[testTag], v *int) bool {
		seen[h.Index()] = true
		require.Equal(t, int(h.Index())*10, *v)
		return true
	})
	require.Equal(t, remaining, seen)
	require.Equal(t, len(remaining), p.Len())
}

func TestPoolNonResizableOutOfMemory(t *testing.T) {
	p := New[int, testTag](2, false)

	_, err := p.Obtain()
	require.NoError(t, err)
	_, err = p.Obtain()
	require.NoError(t, err)

	_, err = p.Obtain()
	require.ErrorIs(t, err, ErrOutOfMemory)
}

func TestPoolResizableGrows(t *testing.T) {
	p := New[int, testTag](1, true)
	for i := 0; i < 100; i++ {
		_, err := p.Obtain()
		require.NoError(t, err)
	}
	require.Equal(t, 100, p.Len())
	require.GreaterOrEqual(t, p.Cap(), 100)
}

func TestPoolAccessReleasedHandlePanics(t *testing.T) {
	p := New[int, testTag](2, true)
	h, err := p.Obtain()
	require.NoError(t, err)
	p.Release(h)

	require.Panics(t, func() {
		p.Access(h)
	})
}

func TestPoolReleaseAll(t *testing.T) {
	p := New[int, testTag](4, true)
	for i := 0; i < 4; i++ {
		_, err := p.Obtain()
		require.NoError(t, err)
	}
	p.ReleaseAll()
	require.Equal(t, 0, p.Len())

	h, err := p.Obtain()
	require.NoError(t, err)
	require.Equal(t, Index(0), h.Index())
}

func TestUndefinedHandle(t *testing.T) {
	u := Undef[testTag]()
	require.True(t, u.IsUndefined())

	h := New[testTag](3)
	require.False(t, h.IsUndefined())
}

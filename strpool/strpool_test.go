// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package strpool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInternDedupesEqualStrings(t *testing.T) {
	p := New(0)

	a := p.Intern("gbuffer-albedo")
	b := p.Intern("gbuffer-albedo")
	require.Same(t, a, b)
	require.Equal(t, 1, p.Len())
}

func TestInternDistinguishesDifferentStrings(t *testing.T) {
	p := New(0)

	a := p.Intern("shadow-map")
	b := p.Intern("shadow-maps")
	require.NotSame(t, a, b)
	require.Equal(t, 2, p.Len())
}

func TestInternEmptyString(t *testing.T) {
	p := New(0)

	a := p.Intern("")
	require.NotNil(t, a)
	require.Equal(t, "", *a)
}

func TestInternAcrossBucketBoundary(t *testing.T) {
	p := New(8)

	first := p.Intern("01234567")
	second := p.Intern("abcdefgh")
	require.Equal(t, "01234567", *first)
	require.Equal(t, "abcdefgh", *second)
	require.Len(t, p.buckets, 2)
}

func TestClearResetsPool(t *testing.T) {
	p := New(0)
	p.Intern("one")
	p.Intern("two")
	require.Equal(t, 2, p.Len())

	p.Clear()
	require.Equal(t, 0, p.Len())

	again := p.Intern("one")
	require.Equal(t, "one", *again)
}

func TestInternGlobalDedupes(t *testing.T) {
	a := InternGlobal("global-resource-name")
	b := InternGlobal("global-resource-name")
	require.Same(t, a, b)
}

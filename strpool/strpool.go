// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

// Package strpool interns UTF-8 names into stable pointers, so frame
// graph resources and nodes can be addressed by interned name rather
// than by repeatedly hashing/copying strings. Grounded on the original
// engine's StringPool (bucketed arena + hash-keyed dedup table), adapted
// to Go idiom: a []byte arena per bucket and a hash map keyed by an
// xxhash of the byte content rather than wyhash/rapidhash (spec.md §9
// permits any equivalent 64-bit non-cryptographic hash).
package strpool

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

const defaultBucketSize = 4096

// Pool is a process-wide-capable string interner. The zero value is not
// usable; construct with [New].
type Pool struct {
	mu         sync.Mutex
	bucketSize int
	buckets    [][]byte
	offset     int
	table      map[uint64]*string
}

// New creates a Pool whose backing arena grows in chunks of bucketSize
// bytes (0 selects a sensible default).
func New(bucketSize int) *Pool {
	if bucketSize <= 0 {
		bucketSize = defaultBucketSize
	}
	p := &Pool{
		bucketSize: bucketSize,
		table:      make(map[uint64]*string),
	}
	p.addBucket()
	return p
}

func (p *Pool) addBucket() {
	p.buckets = append(p.buckets, make([]byte, 0, p.bucketSize))
	p.offset = 0
}

// Intern returns a stable pointer to a copy of s. Calling Intern twice
// with byte-for-byte equal strings returns the same pointer. An empty
// string interns to a non-nil pointer to "" (NULL/empty round-trips as
// specified in spec.md §8, modeled here as the empty string rather than
// a nil pointer since Go strings are not pointers).
func (p *Pool) Intern(s string) *string {
	key := xxhash.Sum64String(s)

	p.mu.Lock()
	defer p.mu.Unlock()

	if existing, ok := p.table[key]; ok && *existing == s {
		return existing
	}

	bucket := p.buckets[len(p.buckets)-1]
	if p.offset+len(s) > cap(bucket) {
		p.addBucket()
		bucket = p.buckets[len(p.buckets)-1]
	}

	start := len(bucket)
	bucket = append(bucket, s...)
	p.buckets[len(p.buckets)-1] = bucket
	p.offset += len(s)

	interned := string(bucket[start : start+len(s)])
	ptr := &interned
	p.table[key] = ptr
	return ptr
}

// Clear discards all interned strings and the backing arena.
func (p *Pool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buckets = p.buckets[:0]
	p.table = make(map[uint64]*string)
	p.addBucket()
}

// Len returns the number of distinct interned strings.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.table)
}

var global = New(0)

// InternGlobal interns s in a shared, process-wide pool, matching the
// original engine's free function gerium::intern for call sites that
// don't own a dedicated Pool (e.g. debug names set at creation time).
func InternGlobal(s string) *string { return global.Intern(s) }

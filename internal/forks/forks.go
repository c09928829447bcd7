// Package forks implements the ring of exclusive resources the philosophers
// contend for. Each fork is a mutex with an owner slot used to check that no
// two philosophers ever hold the same fork.
package forks

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// MaxForks bounds the size of a ring.
const MaxForks = 200

// ErrSize is returned when a ring is requested with an unsupported size.
var ErrSize = errors.New("invalid fork count")

type fork struct {
	mu    sync.Mutex
	owner atomic.Int32
}

// Set is a fixed-size ring of forks.
type Set struct {
	forks      []fork
	violations atomic.Int64
}

// New allocates a ring of n forks.
func New(n int) (*Set, error) {
	if n < 1 || n > MaxForks {
		return nil, fmt.Errorf("%w: %d (must be between 1 and %d)", ErrSize, n, MaxForks)
	}
	return &Set{forks: make([]fork, n)}, nil
}

// Len returns the number of forks in the ring.
func (s *Set) Len() int { return len(s.forks) }

// Take blocks until fork i is free, then records actor as its owner.
func (s *Set) Take(i, actor int) {
	f := &s.forks[i]
	f.mu.Lock()
	if prev := f.owner.Swap(int32(actor)); prev != 0 {
		s.violations.Add(1)
	}
}

// Put releases fork i. Releasing a fork held by another actor counts as a
// violation; the mutex is released regardless.
func (s *Set) Put(i, actor int) {
	f := &s.forks[i]
	if prev := f.owner.Swap(0); prev != int32(actor) {
		s.violations.Add(1)
	}
	f.mu.Unlock()
}

// Holder returns the id of the actor currently holding fork i, or 0.
func (s *Set) Holder(i int) int {
	return int(s.forks[i].owner.Load())
}

// Violations returns how many ownership inconsistencies were observed.
func (s *Set) Violations() int64 {
	return s.violations.Load()
}

// Release drops the ring. Every holder must have been joined first.
func (s *Set) Release() {
	s.forks = nil
}

// Package tokenstore persists the bearer token and the minimal identity that
// came with it.
package tokenstore

import (
	"strings"
	"sync"
)

// Record is everything kept between runs.
type Record struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// Empty reports whether no token is stored.
func (r Record) Empty() bool {
	return strings.TrimSpace(r.Token) == ""
}

// Store is the persistent key-value surface. Clear must be idempotent.
type Store interface {
	Get() (Record, error)
	Set(Record) error
	Clear() error
}

// Memory keeps the record in process; used by tests and one-shot runs.
type Memory struct {
	mu     sync.Mutex
	record Record
}

func NewMemory(record Record) *Memory {
	return &Memory{record: record}
}

func (m *Memory) Get() (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.record, nil
}

func (m *Memory) Set(record Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record = record
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record = Record{}
	return nil
}

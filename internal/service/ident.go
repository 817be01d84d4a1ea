package service

import (
	"sync"
	"time"
)

const agentIDLayout = "20060102_150405"

// IDGenerator issues agent identifiers of the form agent_YYYYMMDD_HHMMSS
// in UTC. The embedded timestamp only has second resolution, so the
// generator remembers the last second it issued and advances past it when
// two calls land on the same second. Identifiers are unique within a
// process and strictly increasing.
type IDGenerator struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

// Next returns a fresh agent identifier.
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	t := g.now().UTC().Truncate(time.Second)
	if !t.After(g.last) {
		t = g.last.Add(time.Second)
	}
	g.last = t

	return "agent_" + t.Format(agentIDLayout)
}

// Package runlog реализует журнал прогресса одного запуска воркфлоу.
// Журнал передается явно по цепочке вызовов вместо глобального буфера,
// чтобы параллельные запуски не перемешивали записи.
package runlog

import (
	"fmt"
	"sync"
	"time"
)

const defaultCapacity = 500

// Collector - кольцевой буфер записей с ограничением по размеру.
// При переполнении самые старые записи вытесняются.
type Collector struct {
	mu       sync.Mutex
	capacity int
	entries  []string
}

func New(capacity int) *Collector {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Collector{capacity: capacity}
}

// Add добавляет запись с временной меткой.
func (c *Collector) Add(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), message)
	c.entries = append(c.entries, entry)
	if len(c.entries) > c.capacity {
		c.entries = c.entries[len(c.entries)-c.capacity:]
	}
}

func (c *Collector) Addf(format string, args ...any) {
	c.Add(fmt.Sprintf(format, args...))
}

// Entries возвращает копию записей в хронологическом порядке.
func (c *Collector) Entries() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, len(c.entries))
	copy(out, c.entries)
	return out
}

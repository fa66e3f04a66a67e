package metrics

import "time"

// SearchMetric describes one completed search.
type SearchMetric struct {
	StartTime  time.Time
	Duration   time.Duration
	Budget     int
	Iterations int
	Expansions int
	Playouts   int
}

// Collector accumulates counters over one search. The search loop is
// single-threaded, so plain counters suffice.
type Collector interface {
	Start(budget int)
	AddIteration()
	AddExpansion()
	AddPlayout()
	Complete() SearchMetric
}

type collector struct {
	startTime  time.Time
	budget     int
	iterations int
	expansions int
	playouts   int
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(budget int) {
	c.startTime = time.Now()
	c.budget = budget
	c.iterations = 0
	c.expansions = 0
	c.playouts = 0
}

func (c *collector) AddIteration() {
	c.iterations++
}

func (c *collector) AddExpansion() {
	c.expansions++
}

func (c *collector) AddPlayout() {
	c.playouts++
}

func (c *collector) Complete() SearchMetric {
	return SearchMetric{
		StartTime:  c.startTime,
		Duration:   time.Since(c.startTime),
		Budget:     c.budget,
		Iterations: c.iterations,
		Expansions: c.expansions,
		Playouts:   c.playouts,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (c *dummyCollector) Start(budget int)       {}
func (c *dummyCollector) AddIteration()          {}
func (c *dummyCollector) AddExpansion()          {}
func (c *dummyCollector) AddPlayout()            {}
func (c *dummyCollector) Complete() SearchMetric { return SearchMetric{} }

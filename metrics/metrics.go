// Package metrics exports pool statistics to Prometheus.
package metrics

import (
	"github.com/fagongzi/mpool"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "mpool"

var (
	allocatedDesc = newDesc("objects_allocated", "Objects backed by allocated chunks.")
	inUseDesc     = newDesc("objects_in_use", "Objects handed out and not put back.")
	maxDesc       = newDesc("objects_max", "Max total objects of the pool.")
	chunksDesc    = newDesc("chunks", "Allocated chunks.")
	getsDesc      = newDesc("gets_total", "Objects handed out.")
	putsDesc      = newDesc("puts_total", "Objects put back.")
	growsDesc     = newDesc("grows_total", "Chunks allocated.")
	failuresDesc  = newDesc("grow_failures_total", "Chunk allocations that failed.")
	exhaustedDesc = newDesc("exhausted_total", "Get calls that returned no object.")
	notifiesDesc  = newDesc("notifies_total", "Calls of the non-empty callback.")
)

func newDesc(name, help string) *prometheus.Desc {
	return prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", name),
		help,
		[]string{"pool", "mem_type"},
		nil)
}

// Collector is a prometheus.Collector for one pool. Pools are not safe for
// concurrent use, so the collector reads them through snapshot, which must take
// whatever lock the pool owner uses.
type Collector struct {
	snapshot func() mpool.Stats
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector create a collector reading stats from snapshot
func NewCollector(snapshot func() mpool.Stats) *Collector {
	return &Collector{snapshot: snapshot}
}

// Describe implements prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- allocatedDesc
	ch <- inUseDesc
	ch <- maxDesc
	ch <- chunksDesc
	ch <- getsDesc
	ch <- putsDesc
	ch <- growsDesc
	ch <- failuresDesc
	ch <- exhaustedDesc
	ch <- notifiesDesc
}

// Collect implements prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.snapshot()
	labels := []string{s.Name, s.MemType.String()}

	gauge := func(desc *prometheus.Desc, v float64) {
		ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, v, labels...)
	}
	counter := func(desc *prometheus.Desc, v uint64) {
		ch <- prometheus.MustNewConstMetric(desc, prometheus.CounterValue, float64(v), labels...)
	}

	gauge(allocatedDesc, float64(s.Allocated))
	gauge(inUseDesc, float64(s.InUse))
	gauge(maxDesc, float64(s.MaxTotal))
	gauge(chunksDesc, float64(s.Chunks))
	counter(getsDesc, s.Gets)
	counter(putsDesc, s.Puts)
	counter(growsDesc, s.Grows)
	counter(failuresDesc, s.GrowFailures)
	counter(exhaustedDesc, s.Exhausted)
	counter(notifiesDesc, s.Notifies)
}

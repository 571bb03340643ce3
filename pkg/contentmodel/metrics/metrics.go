// Package metrics exports content model lifecycle activity as Prometheus
// metrics. Collector implements contentmodel.EventSink.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tendant/content-model/pkg/contentmodel"
)

const namespace = "contentmodel"

// Collector counts type definitions, instance lifecycle, attribute changes
// and broadcasts, labelled by type id.
type Collector struct {
	typesDefined     prometheus.Counter
	instancesCreated *prometheus.CounterVec
	instancesRemoved *prometheus.CounterVec
	instancesLive    *prometheus.GaugeVec
	attributeChanges *prometheus.CounterVec
	broadcasts       *prometheus.CounterVec
}

// NewCollector creates an unregistered collector.
func NewCollector() *Collector {
	return &Collector{
		typesDefined: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "types_defined_total",
			Help:      "Total number of content types defined",
		}),
		instancesCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "instances_created_total",
			Help:      "Total number of content instances created",
		}, []string{"type"}),
		instancesRemoved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "instances_removed_total",
			Help:      "Total number of content instances removed",
		}, []string{"type"}),
		instancesLive: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "instances_live",
			Help:      "Current number of live content instances",
		}, []string{"type"}),
		attributeChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attribute_changes_total",
			Help:      "Total number of attribute assignments",
		}, []string{"type"}),
		broadcasts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broadcasts_total",
			Help:      "Total number of type-level change broadcasts",
		}, []string{"type"}),
	}
}

// Register registers every metric with reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, m := range []prometheus.Collector{
		c.typesDefined,
		c.instancesCreated,
		c.instancesRemoved,
		c.instancesLive,
		c.attributeChanges,
		c.broadcasts,
	} {
		if err := reg.Register(m); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collector) TypeDefined(t *contentmodel.Type) {
	c.typesDefined.Inc()
}

func (c *Collector) InstanceCreated(inst *contentmodel.Instance) {
	c.instancesCreated.WithLabelValues(inst.Name()).Inc()
	c.instancesLive.WithLabelValues(inst.Name()).Inc()
}

func (c *Collector) InstanceRemoved(inst *contentmodel.Instance) {
	c.instancesRemoved.WithLabelValues(inst.Name()).Inc()
	c.instancesLive.WithLabelValues(inst.Name()).Dec()
}

func (c *Collector) AttributeChanged(inst *contentmodel.Instance, name string, value, previous any) {
	c.attributeChanges.WithLabelValues(inst.Name()).Inc()
}

func (c *Collector) Broadcast(t *contentmodel.Type, attr string, notified int) {
	c.broadcasts.WithLabelValues(t.ID()).Inc()
}

var _ contentmodel.EventSink = (*Collector)(nil)

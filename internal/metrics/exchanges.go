package metrics

import "github.com/san-kum/heatsim/internal/sim"

type Exchanges struct {
	name  string
	count int
}

func NewExchanges() *Exchanges {
	return &Exchanges{name: "exchanges"}
}

func (e *Exchanges) Name() string              { return e.name }
func (e *Exchanges) Observe(snap sim.Snapshot) { e.count += snap.Stats.Applied }
func (e *Exchanges) Value() float64            { return float64(e.count) }
func (e *Exchanges) Reset()                    { e.count = 0 }

// Defaults is the metric set every run reports.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewEnergyDrift(),
		NewMeanTemperature(),
		NewSpread(),
		NewClampRate(),
		NewExchanges(),
	}
}

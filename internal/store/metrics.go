package store

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts store activity. Labels never carry paths or secrets.
type Metrics struct {
	Saves         *prometheus.CounterVec
	UnlockAttempt *prometheus.CounterVec
	Autosaves     prometheus.Counter
}

// NewMetrics builds the store counters and registers them on reg when it is
// not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Saves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "svault_saves_total",
				Help: "Vault writes by result",
			},
			[]string{"result"},
		),
		UnlockAttempt: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "svault_unlock_attempts_total",
				Help: "Open and unlock attempts by result",
			},
			[]string{"result"},
		),
		Autosaves: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "svault_autosaves_total",
				Help: "Saves triggered by the autosave ticker",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Saves, m.UnlockAttempt, m.Autosaves)
	}
	return m
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

package bankroll

// Outcome is the result of one simulated trial
type Outcome struct {
	// Ratio is final capital divided by initial capital; 0 means ruin
	Ratio float64 `json:"ratio" yaml:"ratio"`
	// BankruptAt is the 1-based iteration of ruin, or 0 if the trial survived
	BankruptAt int `json:"bankrupt_at" yaml:"bankrupt_at"`
}

// Metric aggregates trial outcomes. Rates are computed on demand.
type Metric struct {
	results []Outcome
}

// NewMetric returns a metric over a copy of results
func NewMetric(results []Outcome) *Metric {
	m := &Metric{results: make([]Outcome, len(results))}
	copy(m.results, results)
	return m
}

// Push appends one outcome
func (m *Metric) Push(o Outcome) {
	m.results = append(m.results, o)
}

// Len returns the number of trials
func (m *Metric) Len() int { return len(m.results) }

// Results returns a copy of the outcomes in trial order
func (m *Metric) Results() []Outcome {
	out := make([]Outcome, len(m.results))
	copy(out, m.results)
	return out
}

func (m *Metric) rate(pred func(float64) bool) float64 {
	if len(m.results) == 0 {
		return 0
	}
	n := 0
	for _, r := range m.results {
		if pred(r.Ratio) {
			n++
		}
	}
	return float64(n) / float64(len(m.results))
}

// BankruptcyRate is the fraction of trials that ended in ruin
func (m *Metric) BankruptcyRate() float64 {
	return m.rate(func(r float64) bool { return r <= 0 })
}

// SurvivalRate is the fraction of trials with capital left
func (m *Metric) SurvivalRate() float64 {
	return m.rate(func(r float64) bool { return r > 0 })
}

// ProfitableRate is the fraction of trials that finished above initial capital
func (m *Metric) ProfitableRate() float64 {
	return m.rate(func(r float64) bool { return r > 1 })
}

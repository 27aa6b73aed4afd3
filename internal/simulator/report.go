package simulator

import (
	"fmt"
	"io"
	"time"

	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/statistics"
)

// Report is the machine-readable summary of a run.
type Report struct {
	Hands        int            `json:"hands"`
	Workers      int            `json:"workers"`
	Seed         int64          `json:"seed"`
	Decks        int            `json:"decks"`
	Advisor      string         `json:"advisor"`
	Wagered      float64        `json:"wagered"`
	Net          float64        `json:"net"`
	HouseEdge    float64        `json:"house_edge"`
	MeanPerHand  float64        `json:"mean_per_hand"`
	StdDev       float64        `json:"std_dev"`
	CILow        float64        `json:"ci95_low"`
	CIHigh       float64        `json:"ci95_high"`
	EVPerHour    float64        `json:"ev_per_hour"`
	RiskOfRuin   float64        `json:"risk_of_ruin"`
	Bankroll     float64        `json:"bankroll"`
	MinBankroll  float64        `json:"min_bankroll"`
	MaxBankroll  float64        `json:"max_bankroll"`
	Outcomes     map[string]int `json:"outcomes"`
	CountBuckets []BucketReport `json:"count_buckets"`
	Elapsed      time.Duration  `json:"elapsed_ns"`
}

// BucketReport is the edge observed at one rounded true count.
type BucketReport struct {
	TrueCount int     `json:"true_count"`
	Hands     int     `json:"hands"`
	Edge      float64 `json:"edge"`
}

// NewReport summarises stats under the simulator's configuration.
func (s *Simulator) NewReport(stats *statistics.Statistics) Report {
	low, high := stats.ConfidenceInterval95()
	r := Report{
		Hands:       stats.Hands,
		Workers:     s.config.Workers,
		Seed:        s.config.Seed,
		Decks:       s.config.Game.Rules.Decks,
		Advisor:     s.config.Game.Advisor,
		Wagered:     stats.Wagered,
		Net:         stats.Net,
		HouseEdge:   stats.HouseEdge(),
		MeanPerHand: stats.Mean(),
		StdDev:      stats.StdDev(),
		CILow:       low,
		CIHigh:      high,
		EVPerHour:   stats.EVPerHour(s.config.HandsPerHour),
		RiskOfRuin:  stats.RiskOfRuin(s.config.Bankroll),
		Bankroll:    s.config.Bankroll,
		MinBankroll: stats.MinBankroll,
		MaxBankroll: stats.MaxBankroll,
		Outcomes: map[string]int{
			"wins":       stats.Wins,
			"losses":     stats.Losses,
			"pushes":     stats.Pushes,
			"blackjacks": stats.Blackjacks,
			"doubles":    stats.Doubles,
			"splits":     stats.Splits,
			"surrenders": stats.Surrenders,
			"insured":    stats.Insured,
		},
		Elapsed: s.elapsed,
	}
	for i, b := range stats.CountResults {
		if b.Hands == 0 {
			continue
		}
		r.CountBuckets = append(r.CountBuckets, BucketReport{
			TrueCount: i - 5,
			Hands:     b.Hands,
			Edge:      stats.BucketEdge(i),
		})
	}
	return r
}

// WriteReport writes the report as JSON, atomically replacing path.
func WriteReport(path string, r Report) error {
	return fileutil.WriteJSONAtomic(path, r, 0o644)
}

// PrintSummary prints a comprehensive summary of simulation results
func PrintSummary(w io.Writer, r Report) {
	fmt.Fprintf(w, "\n=== FINAL RESULTS (%d decks, %s advisor) ===\n", r.Decks, r.Advisor)
	fmt.Fprintf(w, "Hands played: %d\n", r.Hands)
	fmt.Fprintf(w, "Total wagered: %.2f\n", r.Wagered)
	fmt.Fprintf(w, "Net result: %+.2f\n", r.Net)

	fmt.Fprintf(w, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(w, "House edge: %.3f%%\n", r.HouseEdge*100)
	fmt.Fprintf(w, "Mean: %.4f chips/hand\n", r.MeanPerHand)
	fmt.Fprintf(w, "Std Dev: %.4f chips\n", r.StdDev)
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] chips/hand\n", r.CILow, r.CIHigh)
	fmt.Fprintf(w, "EV per hour: %+.2f\n", r.EVPerHour)
	fmt.Fprintf(w, "Risk of ruin (bankroll %.0f): %.2f%%\n", r.Bankroll, r.RiskOfRuin*100)
	fmt.Fprintf(w, "Bankroll range: [%.2f, %.2f]\n", r.MinBankroll, r.MaxBankroll)

	fmt.Fprintf(w, "\n=== OUTCOMES ===\n")
	if r.Hands > 0 {
		pct := func(n int) float64 { return float64(n) / float64(r.Hands) * 100 }
		fmt.Fprintf(w, "Wins: %d (%.1f%%), losses: %d (%.1f%%), pushes: %d (%.1f%%)\n",
			r.Outcomes["wins"], pct(r.Outcomes["wins"]),
			r.Outcomes["losses"], pct(r.Outcomes["losses"]),
			r.Outcomes["pushes"], pct(r.Outcomes["pushes"]))
		fmt.Fprintf(w, "Blackjacks: %d, doubles: %d, splits: %d, surrenders: %d, insured: %d\n",
			r.Outcomes["blackjacks"], r.Outcomes["doubles"], r.Outcomes["splits"],
			r.Outcomes["surrenders"], r.Outcomes["insured"])
	}

	fmt.Fprintf(w, "\n=== TRUE COUNT ANALYSIS ===\n")
	for _, b := range r.CountBuckets {
		fmt.Fprintf(w, "TC %+d: %d hands, edge %.3f%%\n", b.TrueCount, b.Hands, b.Edge*100)
	}
	if r.Elapsed > 0 {
		fmt.Fprintf(w, "\nElapsed: %s (%.0f hands/sec)\n", r.Elapsed.Round(time.Millisecond),
			float64(r.Hands)/r.Elapsed.Seconds())
	}
}

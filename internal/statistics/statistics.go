// Package statistics aggregates simulated blackjack results as running sums
// so partial results from independent workers can be merged by value.
package statistics

import (
	"fmt"
	"math"
)

// HandResult is the outcome of one round for the simulated seat.
type HandResult struct {
	Net       float64 // chips won or lost this round
	Wagered   float64 // chips committed, including doubles, splits and insurance
	Bankroll  float64 // balance after the round
	TrueCount float64 // true count when the bet was placed
	Won       bool
	Lost      bool
	Blackjack bool
	Doubled   bool
	Split     bool
	Surrender bool
	Insured   bool
}

// CountBuckets is the number of true-count buckets, covering -5..+5.
const CountBuckets = 11

// BucketStats tracks results for one true-count bucket
type BucketStats struct {
	Hands   int
	Net     float64
	Wagered float64
}

// Statistics tracks simulation results. Every field is a sum, a count or an
// extreme so Merge is exact.
type Statistics struct {
	Hands   int
	Wagered float64
	Net     float64

	// Welford accumulators of the per-round net
	mean float64
	m2   float64

	Wins       int
	Losses     int
	Pushes     int
	Blackjacks int
	Doubles    int
	Splits     int
	Surrenders int
	Insured    int

	MinBankroll float64
	MaxBankroll float64

	CountResults [CountBuckets]BucketStats
}

// Bucket maps a true count to its bucket index, clamping at ±5.
func Bucket(tc float64) int {
	b := int(math.Round(tc))
	b = max(-5, min(5, b))
	return b + 5
}

// Add incorporates one round.
func (s *Statistics) Add(r HandResult) {
	if s.Hands == 0 {
		s.MinBankroll, s.MaxBankroll = r.Bankroll, r.Bankroll
	}
	s.Hands++
	s.Wagered += r.Wagered
	s.Net += r.Net

	delta := r.Net - s.mean
	s.mean += delta / float64(s.Hands)
	s.m2 += delta * (r.Net - s.mean)

	switch {
	case r.Won:
		s.Wins++
	case r.Lost:
		s.Losses++
	default:
		s.Pushes++
	}
	if r.Blackjack {
		s.Blackjacks++
	}
	if r.Doubled {
		s.Doubles++
	}
	if r.Split {
		s.Splits++
	}
	if r.Surrender {
		s.Surrenders++
	}
	if r.Insured {
		s.Insured++
	}

	s.MinBankroll = min(s.MinBankroll, r.Bankroll)
	s.MaxBankroll = max(s.MaxBankroll, r.Bankroll)

	b := &s.CountResults[Bucket(r.TrueCount)]
	b.Hands++
	b.Net += r.Net
	b.Wagered += r.Wagered
}

// Merge folds o into s. Variances are pooled from the partial accumulators.
func (s *Statistics) Merge(o *Statistics) {
	if o == nil || o.Hands == 0 {
		return
	}
	if s.Hands == 0 {
		*s = *o
		return
	}
	na, nb := float64(s.Hands), float64(o.Hands)
	n := na + nb
	delta := o.mean - s.mean
	s.mean += delta * nb / n
	s.m2 += o.m2 + delta*delta*na*nb/n

	s.Hands += o.Hands
	s.Wagered += o.Wagered
	s.Net += o.Net
	s.Wins += o.Wins
	s.Losses += o.Losses
	s.Pushes += o.Pushes
	s.Blackjacks += o.Blackjacks
	s.Doubles += o.Doubles
	s.Splits += o.Splits
	s.Surrenders += o.Surrenders
	s.Insured += o.Insured
	s.MinBankroll = min(s.MinBankroll, o.MinBankroll)
	s.MaxBankroll = max(s.MaxBankroll, o.MaxBankroll)
	for i := range s.CountResults {
		s.CountResults[i].Hands += o.CountResults[i].Hands
		s.CountResults[i].Net += o.CountResults[i].Net
		s.CountResults[i].Wagered += o.CountResults[i].Wagered
	}
}

// Mean returns the average net per round
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.mean
}

// Variance returns the sample variance of the per-round net
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	return s.m2 / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of the per-round net
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// HouseEdge is the casino's take per unit wagered: -net/wagered.
func (s *Statistics) HouseEdge() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return -s.Net / s.Wagered
}

// EVPerHour scales the mean per round to an hourly rate.
func (s *Statistics) EVPerHour(handsPerHour float64) float64 {
	return s.Mean() * handsPerHour
}

// RiskOfRuin estimates the probability of losing the bankroll with the
// diffusion approximation exp(-2·mean·bankroll/variance). A non-positive
// expectation is certain ruin.
func (s *Statistics) RiskOfRuin(bankroll float64) float64 {
	mean := s.Mean()
	if mean <= 0 || bankroll <= 0 {
		return 1
	}
	v := s.Variance()
	if v == 0 {
		return 0
	}
	return math.Exp(-2 * mean * bankroll / v)
}

// BucketEdge returns the player's edge within a true-count bucket.
func (s *Statistics) BucketEdge(bucket int) float64 {
	if bucket < 0 || bucket >= CountBuckets {
		return 0
	}
	b := s.CountResults[bucket]
	if b.Wagered == 0 {
		return 0
	}
	return b.Net / b.Wagered
}

// IsLedgerBalanced checks that the buckets account for every chip
func (s *Statistics) IsLedgerBalanced() bool {
	sum := 0.0
	for _, b := range s.CountResults {
		sum += b.Net
	}
	return math.Abs(sum-s.Net) <= 1e-6*math.Max(1, math.Abs(s.Net))
}

// Validate checks the internal consistency of the aggregates.
func (s *Statistics) Validate() error {
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if total := s.Wins + s.Losses + s.Pushes; total != s.Hands {
		return fmt.Errorf("outcomes total (%d) does not match hands count (%d)", total, s.Hands)
	}
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: net=%.6f across count buckets", s.Net)
	}
	bucketHands := 0
	for _, b := range s.CountResults {
		bucketHands += b.Hands
	}
	if bucketHands != s.Hands {
		return fmt.Errorf("count bucket hands total (%d) does not match total hands (%d)", bucketHands, s.Hands)
	}
	if s.Wagered < 0 {
		return fmt.Errorf("negative wagered total: %.2f", s.Wagered)
	}
	return nil
}

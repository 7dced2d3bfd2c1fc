package recurring

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/mfpinhal/extrato/internal/transaction"
)

const (
	// minOccurrences is the minimum group size worth fitting an interval to.
	minOccurrences = 3

	// maxGapDeviationRatio rejects groups whose gap standard deviation
	// exceeds this share of the frequency's canonical interval. Such groups
	// only look periodic by coincidence.
	maxGapDeviationRatio = 0.3
)

type groupKey struct {
	description string
	txType      transaction.Type
}

// detectGroups finds recurring groups in a transaction history. Pure
// computation: grouping by normalized description and direction, minimum
// support, interval classification, and the gap-consistency filter.
func detectGroups(txs []*transaction.Transaction) []DetectedPattern {
	groups := make(map[groupKey][]*transaction.Transaction)

	var order []groupKey

	for _, tx := range txs {
		key := groupKey{
			description: normalizeDescription(tx.Description),
			txType:      tx.Type,
		}

		if key.description == "" {
			continue
		}

		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}

		groups[key] = append(groups[key], tx)
	}

	var patterns []DetectedPattern

	for _, key := range order {
		members := groups[key]
		if len(members) < minOccurrences {
			continue
		}

		sort.Slice(members, func(a, b int) bool {
			return members[a].Date.Before(members[b].Date)
		})

		gaps := dayGaps(members)

		freq, ok := classifyFrequency(mean(gaps))
		if !ok {
			continue
		}

		if stdDev(gaps) > maxGapDeviationRatio*freq.canonicalDays() {
			continue
		}

		var sum int64

		ids := make([]uuid.UUID, len(members))
		for i, tx := range members {
			ids[i] = tx.ID
			sum += abs(tx.Amount)
		}

		patterns = append(patterns, DetectedPattern{
			DescriptionPattern: key.description,
			Frequency:          freq,
			Type:               key.txType,
			AvgAmount:          sum / int64(len(members)),
			TransactionIDs:     ids,
		})
	}

	return patterns
}

// dayGaps returns the day distances between consecutive member dates.
func dayGaps(members []*transaction.Transaction) []float64 {
	gaps := make([]float64, 0, len(members)-1)

	for i := 1; i < len(members); i++ {
		gaps = append(gaps, members[i].Date.Sub(members[i-1].Date).Hours()/24)
	}

	return gaps
}

// classifyFrequency maps a mean gap in days onto a frequency band.
// Outside all bands the group is rejected.
func classifyFrequency(meanGap float64) (Frequency, bool) {
	switch {
	case meanGap >= 5 && meanGap <= 9:
		return FrequencyWeekly, true
	case meanGap >= 25 && meanGap <= 35:
		return FrequencyMonthly, true
	case meanGap >= 350 && meanGap <= 380:
		return FrequencyYearly, true
	}

	return "", false
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	m := mean(values)

	var sum float64
	for _, v := range values {
		sum += (v - m) * (v - m)
	}

	return math.Sqrt(sum / float64(len(values)))
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}

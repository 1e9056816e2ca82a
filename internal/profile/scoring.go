package profile

import "math"

// transferProbability computes the probability of making connection c and
// then arriving on time via follow-on entry f, per §4.1. ok is false when
// the pair is not eligible (insufficient slack for the case that applies).
func transferProbability(c Connection, f StationEntry, transferTime int32) (p float64, ok bool) {
	follow := f.Connection

	switch {
	case follow.LineID == c.LineID && follow.StartTime >= c.StopTime:
		// Same vehicle, no transfer risk.
		return f.ArrivalProbability, true

	case follow.IsSentinel() && follow.StartTime >= c.StopTime:
		slack := float64(follow.StartTime - c.StopTime)
		return f.ArrivalProbability * missProbabilityComplement(c, slack), true

	case follow.StartTime >= c.StopTime+transferTime:
		slack := float64(follow.StartTime - c.StopTime - transferTime)
		return f.ArrivalProbability * missProbabilityComplement(c, slack), true

	default:
		return 0, false
	}
}

// missProbabilityComplement is 1 minus the probability that a delay on c
// causes the transfer to be missed, given slack seconds of buffer.
func missProbabilityComplement(c Connection, slack float64) float64 {
	return 1 - c.DelayProbability*math.Exp(-c.DelayParameter*slack)
}

// bestFollowOn picks, among stopEntries, the eligible follow-on for
// connection c with maximum arrival probability. Ties resolve to the
// first-encountered entry (strict > only).
func bestFollowOn(stopEntries []StationEntry, c Connection, transferTime int32) (index int, p float64, ok bool) {
	bestIdx := -1
	bestP := 0.0
	for i, f := range stopEntries {
		candidate, eligible := transferProbability(c, f, transferTime)
		if !eligible {
			continue
		}
		if bestIdx == -1 || candidate > bestP {
			bestIdx = i
			bestP = candidate
		}
	}
	if bestIdx == -1 {
		return 0, 0, false
	}
	return bestIdx, bestP, true
}

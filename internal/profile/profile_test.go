package profile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildEngine reorders connections into the scan order the engine
// expects: (stop_time desc, start_time desc), matching §4.2's input
// contract, and builds an Engine over them. Tests build connections in
// natural chronological order for readability and sort them here.
func buildEngine(t *testing.T, conns []Connection, foot Footpaths) *Engine {
	t.Helper()
	ordered := append([]Connection(nil), conns...)
	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			if ordered[j].StopTime > ordered[i].StopTime ||
				(ordered[j].StopTime == ordered[i].StopTime && ordered[j].StartTime > ordered[i].StartTime) {
				ordered[i], ordered[j] = ordered[j], ordered[i]
			}
		}
	}
	e, err := New(ordered, foot)
	require.NoError(t, err)
	return e
}

const eps = 1e-9

func TestS1DirectSameLine(t *testing.T) {
	e := buildEngine(t, []Connection{
		{StartID: 1, StartTime: 1000, LineID: "L1", TransportType: TransportBus, StopTime: 1100, StopID: 2, DelayProbability: 0.1, DelayParameter: 0.01},
	}, nil)

	require.NoError(t, e.Find(1, 2, 1100, 0))
	journeys := e.BestJourneys()
	require.Len(t, journeys, 1)
	require.Len(t, journeys[0].Legs, 1)
	assert.InDelta(t, 0.9, journeys[0].Legs[0].ArrivalProbability, eps)
}

func TestS2DirectWithSlack(t *testing.T) {
	e := buildEngine(t, []Connection{
		{StartID: 1, StartTime: 1000, LineID: "L1", TransportType: TransportBus, StopTime: 1100, StopID: 2, DelayProbability: 0.1, DelayParameter: 0.01},
	}, nil)

	require.NoError(t, e.Find(1, 2, 1200, 0))
	journeys := e.BestJourneys()
	require.Len(t, journeys, 1)
	expected := 1 - 0.1*math.Exp(-0.01*100)
	assert.InDelta(t, expected, journeys[0].Legs[0].ArrivalProbability, eps)
}

func TestS3TransferFeasible(t *testing.T) {
	e := buildEngine(t, []Connection{
		{StartID: 1, StartTime: 1000, LineID: "L1", TransportType: TransportBus, StopTime: 1100, StopID: 3, DelayProbability: 0.1, DelayParameter: 0.01},
		{StartID: 3, StartTime: 1300, LineID: "L2", TransportType: TransportBus, StopTime: 1400, StopID: 2, DelayProbability: 0.2, DelayParameter: 0.02},
	}, nil)

	require.NoError(t, e.Find(1, 2, 1400, 0, WithTransferTime(120)))
	journeys := e.BestJourneys()
	require.Len(t, journeys, 1)
	require.Len(t, journeys[0].Legs, 2)

	secondLegP := 1 - 0.2*math.Exp(-0.02*0)
	firstLegP := secondLegP * (1 - 0.1*math.Exp(-0.01*80))
	assert.InDelta(t, firstLegP, journeys[0].Legs[0].ArrivalProbability, eps)
	assert.InDelta(t, secondLegP, journeys[0].Legs[1].ArrivalProbability, eps)
}

func TestS4TransferInfeasible(t *testing.T) {
	e := buildEngine(t, []Connection{
		{StartID: 1, StartTime: 1000, LineID: "L1", TransportType: TransportBus, StopTime: 1100, StopID: 3, DelayProbability: 0.1, DelayParameter: 0.01},
		{StartID: 3, StartTime: 1150, LineID: "L2", TransportType: TransportBus, StopTime: 1400, StopID: 2, DelayProbability: 0.2, DelayParameter: 0.02},
	}, nil)

	require.NoError(t, e.Find(1, 2, 1400, 0, WithTransferTime(120)))
	assert.Empty(t, e.BestJourneys())
}

func TestS5Footpath(t *testing.T) {
	foot := Footpaths{3: {{Origin: 1, WalkSeconds: 300}}}
	e := buildEngine(t, []Connection{
		{StartID: 3, StartTime: 1200, LineID: "L1", TransportType: TransportBus, StopTime: 1300, StopID: 2, DelayProbability: 0.1, DelayParameter: 0.01},
	}, foot)

	require.NoError(t, e.Find(1, 2, 1300, 0, WithTransferTime(120)))
	journeys := e.BestJourneys()
	require.Len(t, journeys, 1)
	require.Len(t, journeys[0].Legs, 2)
	assert.Equal(t, TransportFoot, journeys[0].Legs[0].Connection.TransportType)
	assert.True(t, journeys[0].Legs[0].Connection.IsFootpath())
	assert.InDelta(t, 0.9, journeys[0].Legs[0].ArrivalProbability, eps)
	assert.InDelta(t, 0.9, journeys[0].Legs[1].ArrivalProbability, eps)
}

func TestS6DominanceDropsCandidate(t *testing.T) {
	e := &Engine{knownStations: map[StationID]struct{}{1: {}, 2: {}}}
	stations := map[StationID]*StationProfile{
		2: {BestP: 1, FirmDepTime: -1, Entries: []StationEntry{{NextIndex: SentinelIndex, ArrivalProbability: 1}}},
		1: newStationProfile(),
	}
	e.result = &searchResult{stations: stations, departureStation: 1}

	appendCandidate := func(startTime int32, p float64) bool {
		sp := stations[1]
		if dominated(sp.Entries, p, startTime) {
			return false
		}
		sp.Entries = append(sp.Entries, StationEntry{ArrivalProbability: p, Connection: Connection{StartTime: startTime}})
		return true
	}

	assert.True(t, appendCandidate(1000, 0.9))
	assert.False(t, appendCandidate(900, 0.8), "strictly lower p and earlier start must be dropped")
	assert.True(t, appendCandidate(900, 0.95), "higher p survives despite earlier start")
	require.Len(t, stations[1].Entries, 2)
}

func TestSentinelInvariants(t *testing.T) {
	e := buildEngine(t, []Connection{
		{StartID: 1, StartTime: 1000, LineID: "L1", TransportType: TransportBus, StopTime: 1100, StopID: 2, DelayProbability: 0.1, DelayParameter: 0.01},
	}, nil)
	require.NoError(t, e.Find(1, 2, 1100, 0))

	arrival := e.result.stations[2]
	require.Len(t, arrival.Entries, 1)
	sentinel := arrival.Entries[0]
	assert.Equal(t, 1.0, sentinel.ArrivalProbability)
	assert.Equal(t, int32(1100), sentinel.Connection.StartTime)
	assert.Equal(t, "", sentinel.Connection.LineID)
	assert.Equal(t, SentinelIndex, sentinel.NextIndex)
	assert.Equal(t, SentinelStationID, sentinel.Connection.StopID)
}

func TestBestPAndFirmDepTimeInvariants(t *testing.T) {
	e := buildEngine(t, []Connection{
		{StartID: 1, StartTime: 1000, LineID: "L1", TransportType: TransportBus, StopTime: 1100, StopID: 2, DelayProbability: 0.0, DelayParameter: 0.01},
		{StartID: 1, StartTime: 900, LineID: "L1", TransportType: TransportBus, StopTime: 950, StopID: 2, DelayProbability: 0.5, DelayParameter: 0.01},
	}, nil)
	require.NoError(t, e.Find(1, 2, 1100, 0, WithMaxProbability(0.999999)))

	sp := e.result.stations[1]
	maxP := 0.0
	for _, entry := range sp.Entries {
		if entry.ArrivalProbability > maxP {
			maxP = entry.ArrivalProbability
		}
	}
	assert.InDelta(t, sp.BestP, maxP, eps)

	maxFirmStart := int32(-1)
	for _, entry := range sp.Entries {
		if entry.ArrivalProbability >= 0.999999 && entry.Connection.StartTime > maxFirmStart {
			maxFirmStart = entry.Connection.StartTime
		}
	}
	assert.Equal(t, maxFirmStart, sp.FirmDepTime)
}

func TestOutputFrontierMonotone(t *testing.T) {
	e := buildEngine(t, []Connection{
		{StartID: 1, StartTime: 1000, LineID: "L1", TransportType: TransportBus, StopTime: 1050, StopID: 3, DelayProbability: 0.3, DelayParameter: 0.01},
		{StartID: 1, StartTime: 900, LineID: "L1", TransportType: TransportBus, StopTime: 950, StopID: 3, DelayProbability: 0.05, DelayParameter: 0.02},
		{StartID: 3, StartTime: 1100, LineID: "L2", TransportType: TransportBus, StopTime: 1150, StopID: 2, DelayProbability: 0.1, DelayParameter: 0.01},
		{StartID: 3, StartTime: 1000, LineID: "L2", TransportType: TransportBus, StopTime: 1050, StopID: 2, DelayProbability: 0.1, DelayParameter: 0.01},
	}, nil)

	require.NoError(t, e.Find(1, 2, 1200, 0, WithTransferTime(60)))
	journeys := e.BestJourneys()
	require.NotEmpty(t, journeys)

	for i := 1; i < len(journeys); i++ {
		prevDep := journeys[i-1].Legs[0].Connection.StartTime
		curDep := journeys[i].Legs[0].Connection.StartTime
		assert.GreaterOrEqual(t, prevDep, curDep, "departure times must be non-increasing")

		prevP := journeys[i-1].Legs[0].ArrivalProbability
		curP := journeys[i].Legs[0].ArrivalProbability
		assert.Less(t, prevP, curP, "arrival probabilities must strictly increase")
	}
}

func TestRecomputingProbabilityMatchesReported(t *testing.T) {
	e := buildEngine(t, []Connection{
		{StartID: 1, StartTime: 1000, LineID: "L1", TransportType: TransportBus, StopTime: 1100, StopID: 3, DelayProbability: 0.1, DelayParameter: 0.01},
		{StartID: 3, StartTime: 1300, LineID: "L2", TransportType: TransportBus, StopTime: 1400, StopID: 2, DelayProbability: 0.2, DelayParameter: 0.02},
	}, nil)
	require.NoError(t, e.Find(1, 2, 1400, 0, WithTransferTime(120)))
	journeys := e.BestJourneys()
	require.Len(t, journeys, 1)

	// Recompute leg 2's probability (sentinel transfer) from scratch.
	leg2 := journeys[0].Legs[1]
	expectedLeg2 := 1 - leg2.Connection.DelayProbability*math.Exp(-leg2.Connection.DelayParameter*float64(1400-leg2.Connection.StopTime))
	assert.InDelta(t, expectedLeg2, leg2.ArrivalProbability, eps)

	leg1 := journeys[0].Legs[0]
	slack := float64(leg2.Connection.StartTime - leg1.Connection.StopTime - 120)
	expectedLeg1 := leg2.ArrivalProbability * (1 - leg1.Connection.DelayProbability*math.Exp(-leg1.Connection.DelayParameter*slack))
	assert.InDelta(t, expectedLeg1, leg1.ArrivalProbability, eps)
}

func TestRepeatedFindIsDeterministic(t *testing.T) {
	conns := []Connection{
		{StartID: 1, StartTime: 1000, LineID: "L1", TransportType: TransportBus, StopTime: 1100, StopID: 3, DelayProbability: 0.1, DelayParameter: 0.01},
		{StartID: 3, StartTime: 1300, LineID: "L2", TransportType: TransportBus, StopTime: 1400, StopID: 2, DelayProbability: 0.2, DelayParameter: 0.02},
	}

	e1 := buildEngine(t, conns, nil)
	require.NoError(t, e1.Find(1, 2, 1400, 0.5))
	r1 := e1.BestJourneys()

	e2 := buildEngine(t, conns, nil)
	require.NoError(t, e2.Find(1, 2, 1400, 0.5))
	r2 := e2.BestJourneys()

	require.Equal(t, len(r1), len(r2))
	for i := range r1 {
		assert.Equal(t, r1[i], r2[i])
	}
}

func TestLateConnectionsAfterArrivalAreIgnored(t *testing.T) {
	without := buildEngine(t, []Connection{
		{StartID: 1, StartTime: 1000, LineID: "L1", TransportType: TransportBus, StopTime: 1100, StopID: 2, DelayProbability: 0.1, DelayParameter: 0.01},
	}, nil)
	require.NoError(t, without.Find(1, 2, 1100, 0))

	with := buildEngine(t, []Connection{
		{StartID: 1, StartTime: 1000, LineID: "L1", TransportType: TransportBus, StopTime: 1100, StopID: 2, DelayProbability: 0.1, DelayParameter: 0.01},
		{StartID: 2, StartTime: 1150, LineID: "L3", TransportType: TransportBus, StopTime: 1250, StopID: 4, DelayProbability: 0.1, DelayParameter: 0.01},
	}, nil)
	require.NoError(t, with.Find(1, 2, 1100, 0))

	assert.Equal(t, without.BestJourneys(), with.BestJourneys())
}

func TestEmptyFootpathsMatchNoRelaxation(t *testing.T) {
	conns := []Connection{
		{StartID: 1, StartTime: 1000, LineID: "L1", TransportType: TransportBus, StopTime: 1100, StopID: 2, DelayProbability: 0.1, DelayParameter: 0.01},
	}
	withNil := buildEngine(t, conns, nil)
	require.NoError(t, withNil.Find(1, 2, 1100, 0))

	withEmpty := buildEngine(t, conns, Footpaths{})
	require.NoError(t, withEmpty.Find(1, 2, 1100, 0))

	assert.Equal(t, withNil.BestJourneys(), withEmpty.BestJourneys())
}

func TestMinProbabilityOneIsUnreachableWithDelayRisk(t *testing.T) {
	e := buildEngine(t, []Connection{
		{StartID: 1, StartTime: 1000, LineID: "L1", TransportType: TransportBus, StopTime: 1100, StopID: 2, DelayProbability: 0.01, DelayParameter: 0.01},
	}, nil)
	require.NoError(t, e.Find(1, 2, 1100, 1.0, WithMaxProbability(1.0)))
	assert.Empty(t, e.BestJourneys())
}

func TestMinProbabilityZeroFindsAnyChain(t *testing.T) {
	e := buildEngine(t, []Connection{
		{StartID: 1, StartTime: 1000, LineID: "L1", TransportType: TransportBus, StopTime: 1100, StopID: 2, DelayProbability: 0.99, DelayParameter: 5},
	}, nil)
	require.NoError(t, e.Find(1, 2, 1100, 0))
	assert.NotEmpty(t, e.BestJourneys())
}

func TestUnknownStationRejected(t *testing.T) {
	e := buildEngine(t, []Connection{
		{StartID: 1, StartTime: 1000, LineID: "L1", TransportType: TransportBus, StopTime: 1100, StopID: 2, DelayProbability: 0.1, DelayParameter: 0.01},
	}, nil)
	err := e.Find(99, 2, 1100, 0.5)
	assert.ErrorIs(t, err, ErrUnknownStation)
}

func TestInvalidProbabilityRejected(t *testing.T) {
	e := buildEngine(t, []Connection{
		{StartID: 1, StartTime: 1000, LineID: "L1", TransportType: TransportBus, StopTime: 1100, StopID: 2, DelayProbability: 0.1, DelayParameter: 0.01},
	}, nil)
	err := e.Find(1, 2, 1100, 0.95, WithMaxProbability(0.9))
	assert.ErrorIs(t, err, ErrInvalidProbability)
}

func TestMalformedConnectionRejectedAtConstruction(t *testing.T) {
	_, err := New([]Connection{
		{StartID: 1, StartTime: 1100, StopTime: 1000, StopID: 2},
	}, nil)
	assert.ErrorIs(t, err, ErrMalformedConnection)

	_, err = New([]Connection{
		{StartID: 1, StartTime: 1000, StopTime: 1100, StopID: 2, DelayProbability: 1.5},
	}, nil)
	assert.ErrorIs(t, err, ErrMalformedConnection)
}

func TestFlattenJourneysTransferCount(t *testing.T) {
	e := buildEngine(t, []Connection{
		{StartID: 1, StartTime: 1000, LineID: "L1", TransportType: TransportBus, StopTime: 1100, StopID: 3, DelayProbability: 0.1, DelayParameter: 0.01},
		{StartID: 3, StartTime: 1300, LineID: "L2", TransportType: TransportBus, StopTime: 1400, StopID: 2, DelayProbability: 0.2, DelayParameter: 0.02},
	}, nil)
	require.NoError(t, e.Find(1, 2, 1400, 0, WithTransferTime(120)))
	journeys := e.BestJourneys()
	require.Len(t, journeys, 1)

	rows := FlattenJourneys(journeys)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Transfers)
	assert.Equal(t, 2, rows[1].Transfers)
	assert.Equal(t, 0, rows[0].Path)
	assert.Equal(t, 0, rows[1].Path)
}

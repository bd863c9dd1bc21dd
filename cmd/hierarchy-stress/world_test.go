package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWorldRunKeepsHierarchyAcyclic(t *testing.T) {
	w, err := newWorld(WorldOptions{
		Seed:        42,
		Entities:    50,
		Scenes:      2,
		OpsPerFrame: 20,
		Frames:      30,
	}, zap.NewNop())
	require.NoError(t, err)

	res, err := w.run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(30), res.Frames)
	assert.Len(t, res.FrameTime.Samples, 30)
	assert.Positive(t, res.Reparents)
	assert.Equal(t, 50+res.Destroys, res.Spawns, "every destroy is replaced")
	assert.Equal(t, 50, res.FinalCount)
	assert.LessOrEqual(t, res.FrameTime.Min, res.FrameTime.Max)
}

func TestRunWorldsFillsReport(t *testing.T) {
	report := &Report{
		Duration:    time.Minute,
		Worlds:      3,
		Entities:    20,
		Scenes:      1,
		OpsPerFrame: 5,
		Seed:        7,
		Results:     make([]*WorldResult, 3),
	}

	require.NoError(t, runWorlds(context.Background(), report, 10, zap.NewNop()))

	for i, res := range report.Results {
		require.NotNil(t, res)
		assert.Equal(t, i, res.Index)
		assert.Equal(t, int64(10), res.Frames)
	}
	assert.Equal(t, int64(30), report.Totals().Frames)

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	assert.Contains(t, buf.String(), "# Hierarchy Stress Test Report")
	assert.Contains(t, buf.String(), "**Frames:** 30")
}

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDisabled(t *testing.T) {
	m, err := New(Config{})
	require.NoError(t, err)
	assert.Nil(t, m)

	// nil receiver is a no-op everywhere
	m.RecordOperation(OpFreeze, OutcomeApplied)
	m.CacheHit()
	m.CacheMiss()
	m.CacheReclaim()
	m.SetCacheEntries(3)
	m.ObserveTraversal(10)
	assert.Nil(t, m.Registry())
	assert.NoError(t, m.WriteTextfile(filepath.Join(t.TempDir(), "none.prom")))
}

func TestRecordOperation(t *testing.T) {
	m, err := New(Config{Enabled: true, Namespace: "test"})
	require.NoError(t, err)

	m.RecordOperation(OpFreeze, OutcomeApplied)
	m.RecordOperation(OpFreeze, OutcomeApplied)
	m.RecordOperation(OpFreeze, OutcomeNoop)
	m.RecordOperation(OpThaw, OutcomeApplied)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues(OpFreeze, OutcomeApplied)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues(OpFreeze, OutcomeNoop)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues(OpThaw, OutcomeApplied)))
}

func TestCacheCollectors(t *testing.T) {
	m, err := New(Config{Enabled: true})
	require.NoError(t, err)

	m.CacheMiss()
	m.CacheHit()
	m.CacheHit()
	m.CacheReclaim()
	m.SetCacheEntries(4)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reclaims))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.entries))
}

func TestRegistryIsolation(t *testing.T) {
	a, err := New(Config{Enabled: true})
	require.NoError(t, err)
	b, err := New(Config{Enabled: true})
	require.NoError(t, err)

	a.CacheHit()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.cacheLookups.WithLabelValues("hit")))
}

func TestWriteTextfile(t *testing.T) {
	m, err := New(Config{Enabled: true, Namespace: "cryo"})
	require.NoError(t, err)
	m.RecordOperation(OpDeepFreeze, OutcomeApplied)
	m.ObserveTraversal(5)

	path := filepath.Join(t.TempDir(), "cryo.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, `cryo_engine_operations_total{op="deepfreeze",outcome="applied"} 1`), text)
	assert.Contains(t, text, "cryo_engine_traversal_nodes_count 1")
}

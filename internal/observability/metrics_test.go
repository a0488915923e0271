package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_Snapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/content", "POST", 201, 5*time.Millisecond)
	m.RecordRequest("/content", "POST", 201, 3*time.Millisecond)
	m.RecordError("/content", "POST", "FORBIDDEN")

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/content|POST|201"])
	assert.Equal(t, int64(1), snap.Errors["/content|POST|FORBIDDEN"])
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	assert.Empty(t, m.Snapshot().Requests)
}

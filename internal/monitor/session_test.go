package monitor

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	s := NewSession("http://localhost:8081", 10)

	_, err := uuid.Parse(s.ID)
	assert.NoError(t, err)
	assert.Equal(t, StatusConnecting, s.Status())
	assert.Nil(t, s.Display())
	assert.Equal(t, 10, s.History().Cap())
}

func TestSession_NextSeqIsMonotonic(t *testing.T) {
	s := NewSession("", 1)
	assert.Equal(t, uint64(1), s.NextSeq())
	assert.Equal(t, uint64(2), s.NextSeq())
	assert.Equal(t, uint64(3), s.NextSeq())
}

func TestSession_ApplySuccess(t *testing.T) {
	s := NewSession("", 5)

	res := s.Apply(s.NextSeq(), "request_count\t3\t1.5\n", nil, baseTime)

	require.NotNil(t, res.Display)
	assert.False(t, res.Stale)
	assert.Nil(t, res.Err)
	assert.Equal(t, StatusConnected, s.Status())
	assert.Equal(t, baseTime, s.LastSuccess())
	assert.Equal(t, []float64{1.5}, s.History().Values())
}

func TestSession_FailureKeepsDisplayAndHistory(t *testing.T) {
	s := NewSession("", 5)
	s.Apply(s.NextSeq(), "request_count\t3\t1.5\n", nil, baseTime)
	shown := s.Display()

	res := s.Apply(s.NextSeq(), "", NewStatusError(500), baseTime.Add(time.Second))

	assert.Nil(t, res.Display)
	require.NotNil(t, res.Err)
	assert.Equal(t, StatusError, s.Status())
	assert.Same(t, shown, s.Display())
	assert.Equal(t, 1, s.History().Len())
	assert.Equal(t, "HTTP 500: Internal Server Error", s.LastError().Error())

	s.Apply(s.NextSeq(), "uptime\t1\n", nil, baseTime.Add(2*time.Second))
	assert.Nil(t, s.LastError(), "success clears the error")
	assert.NotSame(t, shown, s.Display())
}

func TestSession_StaleResultsDiscarded(t *testing.T) {
	s := NewSession("", 5)
	older := s.NextSeq()
	newer := s.NextSeq()

	res := s.Apply(newer, "request_count\t1\t2\n", nil, baseTime.Add(time.Second))
	require.False(t, res.Stale)

	stale := s.Apply(older, "request_count\t1\t9\n", nil, baseTime)
	assert.True(t, stale.Stale)
	assert.Nil(t, stale.Display)
	assert.Equal(t, []float64{2}, s.History().Values())
	assert.Same(t, res.Display, s.Display())

	staleErr := s.Apply(older, "", NewStatusError(502), baseTime)
	assert.True(t, staleErr.Stale)
	assert.Equal(t, StatusConnected, s.Status())
	assert.Nil(t, s.LastError())
}

func TestSession_Snapshot(t *testing.T) {
	s := NewSession("http://bot:8081", 3)
	s.Apply(s.NextSeq(), "", NewStatusError(503), baseTime)

	snap := s.Snapshot()
	assert.Equal(t, s.ID, snap.SessionID)
	assert.Equal(t, "http://bot:8081", snap.Endpoint)
	assert.Equal(t, StatusError, snap.Status)
	assert.Equal(t, "HTTP 503: Service Unavailable", snap.Error)
	assert.Equal(t, 3, snap.Capacity)
	assert.Equal(t, uint64(1), snap.AppliedSeq)
}

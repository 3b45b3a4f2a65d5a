package server

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rileyhilliard/botstat/internal/monitor"
)

// historyResponse is the body of GET /api/history.
type historyResponse struct {
	Metric   string                `json:"metric"`
	Capacity int                   `json:"capacity"`
	Max      float64               `json:"max"`
	Latest   *monitor.SamplePoint  `json:"latest"`
	Samples  []monitor.SamplePoint `json:"samples"`
}

// handleDisplay returns the latest display model, or 503 before the first success.
func (s *Server) handleDisplay(c *gin.Context) {
	session := s.poller.Session()
	display := session.Display()
	if display == nil {
		body := gin.H{"error": "no stats received yet", "status": session.Status()}
		if pe := session.LastError(); pe != nil {
			body["error"] = pe.Error()
		}
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	c.JSON(http.StatusOK, display)
}

func (s *Server) handleHistory(c *gin.Context) {
	h := s.poller.Session().History()
	samples := h.Snapshot()
	if samples == nil {
		samples = []monitor.SamplePoint{}
	}
	resp := historyResponse{
		Metric:   monitor.TrackedMetric,
		Capacity: h.Cap(),
		Max:      h.Max(),
		Samples:  samples,
	}
	if latest, ok := h.Latest(); ok {
		resp.Latest = &latest
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleStatus(c *gin.Context) {
	snap := s.poller.Session().Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"session":  snap,
		"clients":  s.hub.Clients(),
		"running":  s.poller.Running(),
		"interval": s.poller.Interval().String(),
	})
}

// handleChart renders the current window as an HTML page.
func (s *Server) handleChart(c *gin.Context) {
	var buf bytes.Buffer
	if err := monitor.WriteChart(&buf, s.poller.Session()); err != nil {
		s.log.Error("render chart: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "chart render failed"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

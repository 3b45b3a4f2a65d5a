package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModel_renderDetailView_NoBot(t *testing.T) {
	m := newTestModel(t, modelReport)
	assert.Contains(t, m.renderDetailView(), "No bot selected")
}

func TestModel_renderDetailView(t *testing.T) {
	m := withResult(t, newTestModel(t, modelReport))
	m = sized(m, 100, 60)
	m, _ = press(m, "enter")

	out := stripANSI(m.View())

	assert.Contains(t, out, "Bot #1  @alpha_bot")
	assert.Contains(t, out, "Identity")
	assert.Contains(t, out, "Activity")
	assert.Contains(t, out, "Updates")
	assert.Contains(t, out, "backlog")
	assert.Contains(t, out, "Esc back")
}

func TestModel_renderDetailView_WithoutViewport(t *testing.T) {
	m := withResult(t, newTestModel(t, modelReport))
	m.viewMode = ViewDetail
	m.selected = 1

	out := stripANSI(m.renderDetailView())

	assert.Contains(t, out, "Bot #2  @beta_bot")
	assert.Contains(t, out, "idle")
	assert.NotContains(t, out, "backlog")
}

func TestModel_renderDetailHeader(t *testing.T) {
	m := Model{}
	active := stripANSI(m.renderDetailHeader(WorkerDisplay{Index: 2, Username: "x", Active: true}))
	assert.Equal(t, "Bot #3  @x  ● active", active)
}

func TestModel_updateDetailViewportContent_NotReady(t *testing.T) {
	m := newTestModel(t, modelReport)
	assert.NotPanics(t, func() { m.updateDetailViewportContent() })
}

package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"scroll-map/config"
	"scroll-map/log"
	"scroll-map/scrollmap"
	"scroll-map/viewport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.Discard()
	os.Exit(m.Run())
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Width, cfg.Height = 200, 160
	cfg.NodesFile = filepath.Join(dir, "nodes.txt")
	cfg.StateFile = filepath.Join(dir, "view.yaml")
	cfg.FontFile = ""
	require.NoError(t, os.WriteFile(cfg.NodesFile, []byte("51.5,-0.12\n48.85,2.35\n52.52,13.4\n"), 0644))
	return cfg
}

func TestSnapshotEvents(t *testing.T) {
	vp, err := viewport.New(800, 600, 100)
	require.NoError(t, err)

	events, err := snapshotEvents(vp, []float64{10, -5}, -2, nil)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, viewport.Drag{Delta: viewport.Pt(10, -5)}, events[0])
	assert.Equal(t, viewport.Scroll{Direction: -1, Cursor: viewport.Pt(400, 300)}, events[1])

	events, err = snapshotEvents(vp, nil, 1, []float64{5, 6})
	require.NoError(t, err)
	assert.Equal(t, []viewport.Event{viewport.Scroll{Direction: 1, Cursor: viewport.Pt(5, 6)}}, events)

	_, err = snapshotEvents(vp, []float64{1}, 0, nil)
	assert.Error(t, err)
	_, err = snapshotEvents(vp, nil, 0, []float64{1, 2, 3})
	assert.Error(t, err)
}

func TestRenderSnapshot(t *testing.T) {
	cfg := testConfig(t)
	sm, err := scrollmap.New(cfg, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	events := []viewport.Event{viewport.Scroll{Direction: 1, Cursor: sm.Viewport.ScreenCenter()}}
	scale := sm.Viewport.Scale()
	require.NoError(t, renderSnapshot(cfg, sm, events, &buf))

	assert.InDelta(t, scale*viewport.ZoomInFactor, sm.Viewport.Scale(), 1e-12)
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 160, img.Bounds().Dy())
}

func TestGameHostActions(t *testing.T) {
	cfg := testConfig(t)
	sm, err := scrollmap.New(cfg, nil)
	require.NoError(t, err)
	g := NewGame(cfg, sm, nil)

	// loading before any save reports an error on the debug panel
	assert.Error(t, g.LoadState())
	assert.NotEmpty(t, g.ui.Debug.Error)

	sm.Apply([]viewport.Event{viewport.Drag{Delta: viewport.Pt(20, 20)}})
	saved := *sm.Viewport
	require.NoError(t, g.SaveState())
	assert.Empty(t, g.ui.Debug.Error)

	g.Refit()
	assert.NotEqual(t, saved, *sm.Viewport)
	require.NoError(t, g.LoadState())
	assert.Equal(t, saved.Focus(), sm.Viewport.Focus())

	g.zoomButton(1)
	require.Len(t, g.pending, 1)

	w, h := g.Layout(300, 240)
	assert.Equal(t, 300, w)
	assert.Equal(t, 240, h)
	assert.Equal(t, 300, sm.Viewport.Width())
	sw, sh := g.ScreenSize()
	assert.Equal(t, 300, sw)
	assert.Equal(t, 240, sh)
}

func TestConfigWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scrollmap.yaml")
	oldConfig, oldNodes, oldWrite := configFlag, nodesFlag, writeFlag
	defer func() { configFlag, nodesFlag, writeFlag = oldConfig, oldNodes, oldWrite }()

	configFlag, nodesFlag, writeFlag = path, "route.star", true
	require.NoError(t, configCmd.RunE(configCmd, nil))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	want := config.Default()
	want.NodesFile = "route.star"
	assert.Equal(t, want, cfg)
}

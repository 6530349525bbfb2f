package interactive

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwcargobay/fairing-go/internal/sim"
	"github.com/kwcargobay/fairing-go/pkg/persistence"
	"github.com/kwcargobay/fairing-go/pkg/vessel"
)

const craftYAML = `
id: v1
name: Shell Test
parts:
  - id: fairing
    name: fairingBase
    nodes: [{label: bottom, attached: dec}]
    fairing: {}
  - id: dec
    name: decoupler
    nodes:
      - {label: bottom, attached: fairing}
      - {label: top, attached: probe}
  - id: probe
    name: probeCore
    nodes: [{label: bottom, attached: dec}]
`

// newTestShell builds a shell without a terminal.
func newTestShell(t *testing.T, store *persistence.ReportStore) (*Shell, *bytes.Buffer) {
	t.Helper()
	craft, err := vessel.ParseCraft([]byte(craftYAML))
	require.NoError(t, err)
	sm, err := sim.New(craft, sim.DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, sm.StartAll())

	var buf bytes.Buffer
	s := &Shell{store: store, out: &buf}
	s.Attach(sm)
	return s, &buf
}

func TestShellStatusAndParts(t *testing.T) {
	s, buf := newTestShell(t, nil)

	assert.False(t, s.Exec("status"))
	assert.Contains(t, buf.String(), "Vessel Shell Test (v1): 3 parts, 1 shielded")
	assert.Contains(t, buf.String(), "SHIELDING")

	buf.Reset()
	assert.False(t, s.Exec("parts"))
	assert.Regexp(t, `probe\s+probeCore\s+shielded`, buf.String())
}

func TestShellDecouple(t *testing.T) {
	s, buf := newTestShell(t, nil)

	assert.False(t, s.Exec("decouple fairing"))
	out := buf.String()
	assert.Contains(t, out, "[fairing] SHIELDING -> IDLE")
	assert.Contains(t, out, "decouple fairing: ok")

	buf.Reset()
	s.Exec("status")
	assert.Contains(t, buf.String(), "0 shielded")
}

func TestShellErrors(t *testing.T) {
	s, buf := newTestShell(t, nil)

	s.Exec("destroy nothing")
	assert.Contains(t, buf.String(), "part not found")

	buf.Reset()
	s.Exec("decouple")
	assert.Contains(t, buf.String(), "Usage: decouple")

	buf.Reset()
	s.Exec("report")
	assert.Contains(t, buf.String(), "no -report path configured")

	buf.Reset()
	s.Exec("launch")
	assert.Contains(t, buf.String(), "Unknown command: launch")
}

func TestShellReport(t *testing.T) {
	dir := t.TempDir()
	store := persistence.NewReportStore(filepath.Join(dir, "default.json"))
	s, buf := newTestShell(t, store)

	s.Exec("report")
	assert.Contains(t, buf.String(), "default.json")
	got, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.ShieldedCount())

	other := filepath.Join(dir, "other.json")
	s.Exec("report " + other)
	got, err = persistence.NewReportStore(other).Load()
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestShellDiffAndClear(t *testing.T) {
	store := persistence.NewReportStore(filepath.Join(t.TempDir(), "default.json"))
	s, buf := newTestShell(t, store)

	s.Exec("diff")
	assert.Contains(t, buf.String(), "No report at")

	s.Exec("report")
	buf.Reset()
	s.Exec("diff")
	assert.Contains(t, buf.String(), "no shielding changes")

	s.Exec("decouple fairing")
	buf.Reset()
	s.Exec("diff")
	assert.Regexp(t, `probe\s+probeCore\s+shielded -> unshielded`, buf.String())

	buf.Reset()
	s.Exec("report clear")
	assert.Contains(t, buf.String(), "default.json removed")
	got, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestShellDiffIncompatibleReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": "2.0", "vessel_id": "v1"}`), 0o644))
	s, buf := newTestShell(t, nil)

	s.Exec("diff " + path)
	assert.Contains(t, buf.String(), "Error:")
	assert.Contains(t, buf.String(), "incompatible")
}

func TestShellQuit(t *testing.T) {
	s, _ := newTestShell(t, nil)
	for _, cmd := range []string{"quit", "EXIT", " q "} {
		assert.True(t, s.Exec(cmd), cmd)
	}
	assert.False(t, s.Exec("   "))
}

func TestShellHelp(t *testing.T) {
	s, buf := newTestShell(t, nil)
	s.Exec("help")
	for _, cmd := range []string{"status", "parts", "decouple", "destroy", "report", "diff", "quit"} {
		assert.True(t, strings.Contains(buf.String(), cmd), cmd)
	}
}

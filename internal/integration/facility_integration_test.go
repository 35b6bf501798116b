package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/bms-sim/internal/config"
	"github.com/oshokin/bms-sim/internal/report"
	repository "github.com/oshokin/bms-sim/internal/repository/snapshot"
	"github.com/oshokin/bms-sim/internal/service/client"
	"github.com/oshokin/bms-sim/internal/service/server"
)

const layoutYAML = `
building:
  name: Campus
  floors:
    - number: 1
      width: 20
      length: 25
      rooms:
        - number: 1
          type: study
          area: 40
          sensors:
            - type: noise
              readings: [55, 82]
              frequency: 1
            - type: temperature
              readings: [21, 22]
        - number: 2
          type: laboratory
          area: 60
    - number: 2
      width: 20
      length: 20
      rooms:
        - number: 1
          type: office
          area: 50
          sensors:
            - type: occupancy
              readings: [3, 9]
              frequency: 1
              capacity: 10
`

// freeAddress reserves a loopback port and releases it for the server.
func freeAddress(t *testing.T) string {
	t.Helper()

	lc := net.ListenConfig{}

	lis, err := lc.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := lis.Addr().String()
	require.NoError(t, lis.Close())

	return addr
}

// ctl runs one bms-ctl action and decodes the printed snapshot.
func ctl(t *testing.T, cfgPath string, opts *client.Options) (*report.Snapshot, error) {
	t.Helper()

	var out bytes.Buffer

	opts.ConfigPath = cfgPath
	opts.JSON = true
	opts.Out = &out

	if err := client.Run(context.Background(), opts); err != nil {
		return nil, err
	}

	snap := new(report.Snapshot)
	require.NoError(t, json.Unmarshal(out.Bytes(), snap))

	return snap, nil
}

// TestFacility_Roundtrip starts the real server and drives it with the control client.
func TestFacility_Roundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	addr := freeAddress(t)

	layoutPath := filepath.Join(dir, "layout.yaml")
	require.NoError(t, os.WriteFile(layoutPath, []byte(layoutYAML), 0o600))

	snapshotPath := filepath.Join(dir, "final.json")
	cfgPath := filepath.Join(dir, "settings.yaml")
	require.NoError(t, config.Save(cfgPath, &config.Config{
		ServerAddress: addr,
		LayoutFile:    layoutPath,
		TickInterval:  time.Hour,
		Timeout:       2 * time.Second,
		LogLevel:      "warn",
		SnapshotFile:  snapshotPath,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- server.Run(ctx, &server.Options{ConfigPath: cfgPath, ListenAddress: addr})
	}()

	require.Eventually(t, func() bool {
		_, err := ctl(t, cfgPath, &client.Options{Action: client.ActionStatus})
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	snap, err := ctl(t, cfgPath, &client.Options{Action: client.ActionAdvance, Units: 1})
	require.NoError(t, err)
	require.Equal(t, 1, snap.Elapsed)
	require.Equal(t, 100, snap.MaxHazardLevel)
	require.Len(t, snap.Alerts(50), 2)

	snap, err = ctl(t, cfgPath, &client.Options{Action: client.ActionDrill, RoomType: "laboratory"})
	require.NoError(t, err)
	require.True(t, snap.Floors[0].Rooms[1].FireDrill)
	require.False(t, snap.Floors[0].Rooms[0].FireDrill)

	snap, err = ctl(t, cfgPath, &client.Options{Action: client.ActionCancelDrill})
	require.NoError(t, err)
	require.False(t, snap.FireDrill)

	cancel()
	require.NoError(t, <-done)

	record, err := repository.NewFileRepository(snapshotPath).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, record.Snapshot.Elapsed)
	require.Equal(t, "Campus", record.Snapshot.Building)
}

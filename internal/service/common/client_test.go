//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	api "github.com/oshokin/bms-sim/internal/api/grpc/facility"
	"github.com/oshokin/bms-sim/internal/layout"
	"github.com/oshokin/bms-sim/internal/service/simulation"
)

const clientTestLayout = `
building:
  name: Depot
  floors:
    - number: 1
      width: 8
      length: 8
      rooms:
        - number: 1
          type: study
          area: 16
          sensors:
            - type: co2
              readings: [400, 2500]
              frequency: 1
              ideal_value: 600
              variation_limit: 100
`

// newBufconnClient starts a real simulation behind an in-memory gRPC server.
func newBufconnClient(t *testing.T, layoutYAML string) *Client {
	t.Helper()

	l, err := layout.Parse([]byte(layoutYAML))
	require.NoError(t, err)

	sim, err := simulation.New(context.Background(), l, nil)
	require.NoError(t, err)

	listener := bufconn.Listen(1 << 20)
	grpcServer := grpc.NewServer()
	api.RegisterFacilityServiceServer(grpcServer, api.NewServer(sim))

	go func() {
		_ = grpcServer.Serve(listener)
	}()

	t.Cleanup(grpcServer.Stop)

	client, err := Dial(context.Background(), "passthrough:///bufnet",
		WithCallTimeout(time.Second),
		WithOperator(&api.Operator{Hostname: "desk", Username: "ops"}),
		WithDialOptions(grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		})))
	require.NoError(t, err)

	t.Cleanup(func() { _ = client.Close() })

	return client
}

// TestDial_ValidatesAddress verifies that Dial rejects empty addresses.
func TestDial_ValidatesAddress(t *testing.T) {
	t.Parallel()

	c, err := Dial(context.Background(), "")
	require.Error(t, err)
	require.Nil(t, c)
}

// TestClient_callContext checks timeout vs cancel-only behavior of callContext.
func TestClient_callContext(t *testing.T) {
	t.Parallel()

	c := &Client{
		callTimeout: 0,
	}

	ctx, cancel := c.callContext(context.Background())
	cancel()

	require.NotNil(t, ctx)

	c.callTimeout = 10 * time.Millisecond

	ctx, cancel = c.callContext(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	require.WithinDuration(t, time.Now().Add(10*time.Millisecond), deadline, 30*time.Millisecond)
}

// TestClient_Roundtrip drives a real simulation through every client call.
func TestClient_Roundtrip(t *testing.T) {
	t.Parallel()

	client := newBufconnClient(t, clientTestLayout)
	ctx := context.Background()

	snap, err := client.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, "Depot", snap.Building)
	require.Zero(t, snap.MaxHazardLevel)

	snap, err = client.Advance(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 1, snap.Elapsed)
	require.Equal(t, 50, snap.MaxHazardLevel)

	require.NoError(t, client.StartFireDrill(ctx, "STUDY"))

	snap, err = client.Snapshot(ctx)
	require.NoError(t, err)
	require.True(t, snap.FireDrill)

	require.NoError(t, client.CancelFireDrill(ctx))

	snap, err = client.Snapshot(ctx)
	require.NoError(t, err)
	require.False(t, snap.FireDrill)

	err = client.StartFireDrill(ctx, "garage")
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.Advance(ctx, simulation.MaxAdvanceUnits+1)
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

// TestClient_FireDrillWithoutRooms surfaces FailedPrecondition.
func TestClient_FireDrillWithoutRooms(t *testing.T) {
	t.Parallel()

	client := newBufconnClient(t, "building:\n  name: Shell\n")

	err := client.StartFireDrill(context.Background(), "")
	require.Equal(t, codes.FailedPrecondition, status.Code(err))
}

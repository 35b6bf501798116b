package facility

import (
	"context"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	domain "github.com/oshokin/bms-sim/internal/domain/facility"
	"github.com/oshokin/bms-sim/internal/report"
)

// fakeService implements the Service interface for unit testing the transport.
type fakeService struct {
	// elapsed is the simulated time reported in snapshots.
	elapsed int
	// drill is the last room type a drill was started for.
	drill *domain.RoomType
	// drillErr is returned from StartFireDrill when set.
	drillErr error
	// cancelled counts CancelFireDrill calls.
	cancelled int
}

func (f *fakeService) Snapshot(context.Context) *report.Snapshot {
	return &report.Snapshot{Building: "Fake", Elapsed: f.elapsed, Floors: []report.FloorSnapshot{}}
}

func (f *fakeService) Advance(ctx context.Context, n int) (*report.Snapshot, error) {
	if n > 10 {
		return nil, fmt.Errorf("%w: too far", domain.ErrIllegalArgument)
	}

	f.elapsed += n

	return f.Snapshot(ctx), nil
}

func (f *fakeService) StartFireDrill(_ context.Context, roomType domain.RoomType) error {
	if f.drillErr != nil {
		return f.drillErr
	}

	f.drill = &roomType

	return nil
}

func (f *fakeService) CancelFireDrill(context.Context) {
	f.cancelled++
}

// TestServer_Validation ensures malformed requests return InvalidArgument errors.
func TestServer_Validation(t *testing.T) {
	t.Parallel()

	s := NewServer(new(fakeService))

	_, err := s.Advance(context.Background(), nil)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.Advance(context.Background(), wrapperspb.UInt32(11))
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.StartFireDrill(context.Background(), wrapperspb.String("kitchen"))
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

// TestServer_FireDrill maps room types and domain errors.
func TestServer_FireDrill(t *testing.T) {
	t.Parallel()

	svc := new(fakeService)
	s := NewServer(svc)

	_, err := s.StartFireDrill(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, domain.AnyRoomType, *svc.drill)

	_, err = s.StartFireDrill(context.Background(), wrapperspb.String("lab"))
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.StartFireDrill(context.Background(), wrapperspb.String("laboratory"))
	require.NoError(t, err)
	require.Equal(t, domain.RoomTypeLaboratory, *svc.drill)

	svc.drillErr = fmt.Errorf("%w: no rooms", domain.ErrFireDrill)

	_, err = s.StartFireDrill(context.Background(), wrapperspb.String(""))
	require.Equal(t, codes.FailedPrecondition, status.Code(err))

	_, err = s.CancelFireDrill(context.Background(), new(emptypb.Empty))
	require.NoError(t, err)
	require.Equal(t, 1, svc.cancelled)
}

// TestToStatus maps every domain sentinel to a status code.
func TestToStatus(t *testing.T) {
	t.Parallel()

	cases := map[error]codes.Code{
		domain.ErrIllegalArgument: codes.InvalidArgument,
		domain.ErrFireDrill:       codes.FailedPrecondition,
		domain.ErrDuplicateFloor:  codes.AlreadyExists,
		domain.ErrDuplicateRoom:   codes.AlreadyExists,
		domain.ErrDuplicateSensor: codes.AlreadyExists,
		domain.ErrNoFloorBelow:    codes.Internal,
	}

	for err, code := range cases {
		require.Equal(t, code, status.Code(toStatus(fmt.Errorf("wrapped: %w", err))), err.Error())
	}
}

// TestServer_OverBufconn exercises the hand-written descriptor and client end to end.
func TestServer_OverBufconn(t *testing.T) {
	t.Parallel()

	listener := bufconn.Listen(1 << 20)
	grpcServer := grpc.NewServer()
	RegisterFacilityServiceServer(grpcServer, NewServer(new(fakeService)))

	go func() {
		_ = grpcServer.Serve(listener)
	}()

	t.Cleanup(grpcServer.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	t.Cleanup(func() { _ = conn.Close() })

	client := NewFacilityServiceClient(conn)
	ctx := AppendOperator(context.Background(), &Operator{Hostname: "desk", Username: "ops"})

	st, err := client.Advance(ctx, wrapperspb.UInt32(3))
	require.NoError(t, err)

	snap, err := report.FromStruct(st)
	require.NoError(t, err)
	require.Equal(t, 3, snap.Elapsed)

	st, err = client.GetSnapshot(ctx, new(emptypb.Empty))
	require.NoError(t, err)
	require.Equal(t, "Fake", st.GetFields()["building"].GetStringValue())

	_, err = client.StartFireDrill(ctx, wrapperspb.String("office"))
	require.NoError(t, err)

	_, err = client.CancelFireDrill(ctx, new(emptypb.Empty))
	require.NoError(t, err)

	_, err = client.Advance(ctx, wrapperspb.UInt32(100))
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

package facility

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	domain "github.com/oshokin/bms-sim/internal/domain/facility"
	"github.com/oshokin/bms-sim/internal/logger"
	"github.com/oshokin/bms-sim/internal/report"
)

// Service abstracts the simulation operations the transport layer depends on.
type Service interface {
	Snapshot(ctx context.Context) *report.Snapshot
	Advance(ctx context.Context, n int) (*report.Snapshot, error)
	StartFireDrill(ctx context.Context, roomType domain.RoomType) error
	CancelFireDrill(ctx context.Context)
}

// Server implements the FacilityService gRPC API.
type Server struct {
	// service provides the simulation operations.
	service Service
}

var _ FacilityServiceServer = (*Server)(nil)

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// GetSnapshot returns the current state of the facility.
func (s *Server) GetSnapshot(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return toProtoSnapshot(s.service.Snapshot(withOperator(ctx)))
}

// Advance moves the simulated clock forward.
func (s *Server) Advance(ctx context.Context, req *wrapperspb.UInt32Value) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	snap, err := s.service.Advance(withOperator(ctx), int(req.GetValue()))
	if err != nil {
		return nil, toStatus(err)
	}

	return toProtoSnapshot(snap)
}

// StartFireDrill starts a drill in rooms of the requested type. A missing or
// empty type targets every room.
func (s *Server) StartFireDrill(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	roomType := domain.AnyRoomType

	if value := req.GetValue(); value != "" {
		parsed, err := domain.ParseRoomType(value)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}

		roomType = parsed
	}

	if err := s.service.StartFireDrill(withOperator(ctx), roomType); err != nil {
		return nil, toStatus(err)
	}

	return new(emptypb.Empty), nil
}

// CancelFireDrill ends every drill in the building.
func (s *Server) CancelFireDrill(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	s.service.CancelFireDrill(withOperator(ctx))

	return new(emptypb.Empty), nil
}

// withOperator tags the context logger with the caller identity, if any.
func withOperator(ctx context.Context) context.Context {
	if op, ok := OperatorFromContext(ctx); ok {
		return logger.WithKV(ctx, "operator", op.String())
	}

	return ctx
}

// toProtoSnapshot converts a snapshot to its wire form.
func toProtoSnapshot(snap *report.Snapshot) (*structpb.Struct, error) {
	if snap == nil {
		return nil, status.Error(codes.Internal, "snapshot is not available")
	}

	result, err := snap.ToStruct()
	if err != nil {
		return nil, status.Error(codes.Internal, "unable to encode snapshot")
	}

	return result, nil
}

// toStatus maps domain errors to gRPC status codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, domain.ErrIllegalArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrFireDrill):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, domain.ErrDuplicateFloor),
		errors.Is(err, domain.ErrDuplicateRoom),
		errors.Is(err, domain.ErrDuplicateSensor):
		return status.Error(codes.AlreadyExists, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

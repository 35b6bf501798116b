package facility

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "bms.v1.FacilityService"

// Full method names.
const (
	GetSnapshotMethod     = "/" + ServiceName + "/GetSnapshot"
	AdvanceMethod         = "/" + ServiceName + "/Advance"
	StartFireDrillMethod  = "/" + ServiceName + "/StartFireDrill"
	CancelFireDrillMethod = "/" + ServiceName + "/CancelFireDrill"
)

// FacilityServiceServer is the server API for the FacilityService.
type FacilityServiceServer interface {
	// GetSnapshot returns the current state of the facility.
	GetSnapshot(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	// Advance moves the clock forward by the given number of units.
	Advance(ctx context.Context, req *wrapperspb.UInt32Value) (*structpb.Struct, error)
	// StartFireDrill starts a drill in rooms of the given type; empty means every room.
	StartFireDrill(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error)
	// CancelFireDrill ends every drill.
	CancelFireDrill(ctx context.Context, req *emptypb.Empty) (*emptypb.Empty, error)
}

// FacilityServiceDesc describes the FacilityService for grpc.Server.
//
//nolint:gochecknoglobals // Service descriptors are package-level by convention.
var FacilityServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FacilityServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetSnapshot",
			Handler:    unaryHandler(GetSnapshotMethod, FacilityServiceServer.GetSnapshot),
		},
		{
			MethodName: "Advance",
			Handler:    unaryHandler(AdvanceMethod, FacilityServiceServer.Advance),
		},
		{
			MethodName: "StartFireDrill",
			Handler:    unaryHandler(StartFireDrillMethod, FacilityServiceServer.StartFireDrill),
		},
		{
			MethodName: "CancelFireDrill",
			Handler:    unaryHandler(CancelFireDrillMethod, FacilityServiceServer.CancelFireDrill),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bms/v1/facility.proto",
}

// RegisterFacilityServiceServer registers srv on the given registrar.
func RegisterFacilityServiceServer(registrar grpc.ServiceRegistrar, srv FacilityServiceServer) {
	registrar.RegisterService(&FacilityServiceDesc, srv)
}

// unaryHandler adapts a typed server method to grpc.MethodHandler, honoring interceptors.
func unaryHandler[Req, Resp any](
	fullMethod string,
	call func(FacilityServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}

		server, _ := srv.(FacilityServiceServer)
		if interceptor == nil {
			return call(server, ctx, in)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}

		handler := func(ctx context.Context, req any) (any, error) {
			typed, _ := req.(*Req)

			return call(server, ctx, typed)
		}

		return interceptor(ctx, in, info, handler)
	}
}

// FacilityServiceClient is the client API for the FacilityService.
type FacilityServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewFacilityServiceClient creates a client on top of an established connection.
func NewFacilityServiceClient(cc grpc.ClientConnInterface) *FacilityServiceClient {
	return &FacilityServiceClient{cc: cc}
}

// GetSnapshot calls FacilityService.GetSnapshot.
func (c *FacilityServiceClient) GetSnapshot(
	ctx context.Context,
	in *emptypb.Empty,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetSnapshotMethod, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

// Advance calls FacilityService.Advance.
func (c *FacilityServiceClient) Advance(
	ctx context.Context,
	in *wrapperspb.UInt32Value,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, AdvanceMethod, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

// StartFireDrill calls FacilityService.StartFireDrill.
func (c *FacilityServiceClient) StartFireDrill(
	ctx context.Context,
	in *wrapperspb.StringValue,
	opts ...grpc.CallOption,
) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, StartFireDrillMethod, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

// CancelFireDrill calls FacilityService.CancelFireDrill.
func (c *FacilityServiceClient) CancelFireDrill(
	ctx context.Context,
	in *emptypb.Empty,
	opts ...grpc.CallOption,
) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, CancelFireDrillMethod, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

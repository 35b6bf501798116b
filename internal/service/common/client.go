//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	api "github.com/oshokin/bms-sim/internal/api/grpc/facility"
	"github.com/oshokin/bms-sim/internal/config"
	"github.com/oshokin/bms-sim/internal/report"
)

// Client wraps the FacilityService gRPC client with convenience helpers.
type Client struct {
	// conn is the underlying gRPC connection to the simulation server.
	conn *grpc.ClientConn
	// api is the FacilityService client.
	api *api.FacilityServiceClient
	// operator is attached to every call when set.
	operator *api.Operator
	// dialOptions are appended to the defaults when dialing.
	dialOptions []grpc.DialOption

	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithOperator identifies the caller in the server logs.
func WithOperator(op *api.Operator) Option {
	return func(c *Client) {
		c.operator = op
	}
}

// WithDialOptions passes extra options to grpc.NewClient, e.g. a custom dialer.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(c *Client) {
		c.dialOptions = append(c.dialOptions, opts...)
	}
}

// errAddressRequired is returned when a required address value is missing.
var errAddressRequired = errors.New("address must be provided")

// Dial establishes a gRPC connection to the simulation server.
// Note: this uses insecure transport credentials; run on a trusted network.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	client := &Client{
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	dialOptions := append(
		[]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())},
		client.dialOptions...,
	)

	// Use the non-context NewClient API recommended by grpc-go
	// (DialContext is deprecated as of grpc-go v1.60+).
	conn, err := grpc.NewClient(address, dialOptions...)
	if err != nil {
		return nil, fmt.Errorf("dial simulation server: %w", err)
	}

	client.conn = conn
	client.api = api.NewFacilityServiceClient(conn)

	return client, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// Snapshot retrieves the current facility state.
func (c *Client) Snapshot(ctx context.Context) (*report.Snapshot, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.GetSnapshot(callCtx, new(emptypb.Empty))
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	return report.FromStruct(resp)
}

// Advance moves the remote clock forward by units.
func (c *Client) Advance(ctx context.Context, units uint32) (*report.Snapshot, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.Advance(callCtx, wrapperspb.UInt32(units))
	if err != nil {
		return nil, fmt.Errorf("advance clock: %w", err)
	}

	return report.FromStruct(resp)
}

// StartFireDrill starts a drill in rooms of roomType, or everywhere when empty.
func (c *Client) StartFireDrill(ctx context.Context, roomType string) error {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	if _, err := c.api.StartFireDrill(callCtx, wrapperspb.String(roomType)); err != nil {
		return fmt.Errorf("start fire drill: %w", err)
	}

	return nil
}

// CancelFireDrill ends every drill.
func (c *Client) CancelFireDrill(ctx context.Context) error {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	if _, err := c.api.CancelFireDrill(callCtx, new(emptypb.Empty)); err != nil {
		return fmt.Errorf("cancel fire drill: %w", err)
	}

	return nil
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline. The operator, if
// any, is attached as call metadata.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = api.AppendOperator(ctx, c.operator)

	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}

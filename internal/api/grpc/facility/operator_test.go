package facility

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/metadata"
)

// TestOperatorFromContext reads the identity written by AppendOperator.
func TestOperatorFromContext(t *testing.T) {
	t.Parallel()

	_, ok := OperatorFromContext(context.Background())
	require.False(t, ok)

	outgoing := AppendOperator(context.Background(), &Operator{Hostname: "desk", Username: "ops"})
	md, ok := metadata.FromOutgoingContext(outgoing)
	require.True(t, ok)

	incoming := metadata.NewIncomingContext(context.Background(), md)

	op, ok := OperatorFromContext(incoming)
	require.True(t, ok)
	require.Equal(t, "ops@desk", op.String())

	require.Equal(t, context.Background(), AppendOperator(context.Background(), nil))

	_, ok = OperatorFromContext(metadata.NewIncomingContext(context.Background(), metadata.MD{}))
	require.False(t, ok)
}

package facility

import (
	"context"

	"google.golang.org/grpc/metadata"
)

// Metadata keys carrying the operator identity.
const (
	hostnameMetadataKey = "x-bms-hostname"
	usernameMetadataKey = "x-bms-username"
)

// Operator identifies who issued a command, for the audit trail in server logs.
type Operator struct {
	Hostname string
	Username string
}

// String returns "username@hostname".
func (o *Operator) String() string {
	return o.Username + "@" + o.Hostname
}

// AppendOperator attaches the operator to outgoing call metadata.
func AppendOperator(ctx context.Context, op *Operator) context.Context {
	if op == nil {
		return ctx
	}

	return metadata.AppendToOutgoingContext(ctx,
		hostnameMetadataKey, op.Hostname,
		usernameMetadataKey, op.Username)
}

// OperatorFromContext extracts the operator from incoming call metadata.
func OperatorFromContext(ctx context.Context) (*Operator, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, false
	}

	op := &Operator{
		Hostname: first(md.Get(hostnameMetadataKey)),
		Username: first(md.Get(usernameMetadataKey)),
	}

	if op.Hostname == "" && op.Username == "" {
		return nil, false
	}

	return op, true
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}

	return values[0]
}

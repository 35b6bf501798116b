//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"
	"os"
	"os/user"

	api "github.com/oshokin/bms-sim/internal/api/grpc/facility"
)

// DetectOperator gathers host and user information for the server audit log.
func DetectOperator() (*api.Operator, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}

	currentUser, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}

	return &api.Operator{
		Hostname: hostname,
		Username: currentUser.Username,
	}, nil
}

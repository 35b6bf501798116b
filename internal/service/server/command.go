package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	api "github.com/oshokin/bms-sim/internal/api/grpc/facility"
	"github.com/oshokin/bms-sim/internal/config"
	"github.com/oshokin/bms-sim/internal/layout"
	"github.com/oshokin/bms-sim/internal/logger"
	repository "github.com/oshokin/bms-sim/internal/repository/snapshot"
	"github.com/oshokin/bms-sim/internal/service/simulation"
)

// Options controls the bms-server process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the gRPC server.
	ListenAddress string
	// LayoutFile overrides the facility layout from settings.
	LayoutFile string
	// SnapshotFile overrides where the last snapshot is written on shutdown.
	SnapshotFile string
	// TickInterval overrides the wall-clock length of one simulated unit.
	TickInterval time.Duration
}

// ErrNoServerAddress indicates missing server configuration.
var ErrNoServerAddress = errors.New("no server address configured")

// Run starts the gRPC server and the simulation clock and blocks until the
// context is canceled or the server stops.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "bms-server")

	// Load configuration first to get server settings.
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	settings.ApplyLogLevel()
	applyOverrides(settings, opts)

	// Determine listen address: CLI argument overrides config port extraction.
	listenAddress, err := resolveListenAddress(settings.ServerAddress, opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("resolve listen address: %w", err)
	}

	// Build the facility from the layout file.
	facilityLayout, err := layout.Load(settings.LayoutFile)
	if err != nil {
		return fmt.Errorf("load layout: %w", err)
	}

	sim, err := simulation.New(ctx, facilityLayout, &simulation.Options{AlertLevel: settings.AlertLevel})
	if err != nil {
		return fmt.Errorf("initialise simulation: %w", err)
	}

	// Setup TCP listener for gRPC server.
	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	grpcServer := grpc.NewServer()
	api.RegisterFacilityServiceServer(grpcServer, api.NewServer(sim))

	logger.InfoKV(ctx, "Simulation server listening",
		"listen_address", listenAddress,
		"layout_file", settings.LayoutFile,
		"tick_interval", settings.TickInterval)

	if err = serve(ctx, grpcServer, lis, sim, settings.TickInterval); err != nil {
		return err
	}

	return saveSnapshot(ctx, settings.SnapshotFile, sim)
}

// serve runs the gRPC server and the clock until ctx is canceled or either fails.
func serve(
	ctx context.Context,
	grpcServer *grpc.Server,
	lis net.Listener,
	sim *simulation.Simulation,
	tickInterval time.Duration,
) error {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return sim.Run(groupCtx, tickInterval)
	})

	group.Go(func() error {
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("serve gRPC: %w", err)
		}

		return nil
	})

	// GracefulStop unblocks Serve once the context ends for any reason.
	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info(ctx, "Shutting down gRPC server")
		grpcServer.GracefulStop()

		return nil
	})

	if err := group.Wait(); err != nil {
		return err
	}

	logger.Info(ctx, "GRPC server stopped")

	return nil
}

// saveSnapshot writes the final state if a snapshot file is configured.
func saveSnapshot(ctx context.Context, path string, sim *simulation.Simulation) error {
	if path == "" {
		return nil
	}

	repo := repository.NewFileRepository(path)
	record := &repository.Record{
		SavedAt:  time.Now(),
		Snapshot: sim.Snapshot(ctx),
	}

	// The run context is already canceled here; the file write does not depend on it.
	if err := repo.Save(context.WithoutCancel(ctx), record); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	logger.InfoKV(ctx, "Snapshot saved", "snapshot_file", repo.Path(), "elapsed", record.Snapshot.Elapsed)

	return nil
}

// applyOverrides copies non-empty command line values over the settings.
func applyOverrides(settings *config.Config, opts *Options) {
	if opts.LayoutFile != "" {
		settings.LayoutFile = opts.LayoutFile
	}

	if opts.SnapshotFile != "" {
		settings.SnapshotFile = opts.SnapshotFile
	}

	if opts.TickInterval > 0 {
		settings.TickInterval = opts.TickInterval
	}
}

// resolveListenAddress determines the listen address for the gRPC server.
// If override is provided, uses it directly. Otherwise extracts port from configAddr.
// Returns appropriate listen address (e.g., ":8080" for port-only binding).
func resolveListenAddress(configAddr, override string) (string, error) {
	// Use override address if provided (e.g., ":9090", "0.0.0.0:8080").
	if override != "" {
		return override, nil
	}

	// Extract port from config address (e.g., "server.example.com:8080" -> ":8080").
	if configAddr == "" {
		return "", ErrNoServerAddress
	}

	// Parse the address to extract port.
	_, port, err := net.SplitHostPort(configAddr)
	if err != nil {
		return "", fmt.Errorf("invalid server address format %q: %w", configAddr, err)
	}

	// Return port-only listen address to bind on all interfaces.
	return ":" + port, nil
}

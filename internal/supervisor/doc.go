// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package supervisor provides process supervision for CineMatch using suture v4.

The tree separates services into two layers so that a crash in one layer is
restarted without touching the other:

	RootSupervisor ("cinematch")
	├── CacheSupervisor ("cache-layer")
	│   └── CacheMaintenanceService (poster cache stats and Badger GC)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

The dataset is not supervised. It is loaded once before the tree starts and
is immutable afterwards, so there is nothing to restart.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddCacheService(services.NewCacheMaintenanceService(posterCache, services.CacheMaintenanceConfig{}, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, logger))

	errCh := tree.ServeBackground(ctx)

# Failure Handling

Each supervisor counts failures with exponential decay (FailureDecay
seconds). Once the count exceeds FailureThreshold, restarts wait for
FailureBackoff. Supervisor events are logged through sutureslog, which
forwards to the zerolog-backed slog logger from the logging package.

A service returning nil is not restarted. A service returning an error is.
On context cancellation services must return promptly; any that miss
ShutdownTimeout appear in UnstoppedServiceReport.
*/
package supervisor

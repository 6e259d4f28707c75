// Package services implements the business logic layer between the
// HTTP handlers and the dataset. It centralizes query execution,
// logging and metrics so handlers stay thin.
//
// # Architecture
//
// Services follow these architectural principles:
//
//	1. Context propagation for cancellation and tracing
//	2. Dependency injection for loose coupling
//	3. Cross-cutting concerns (logging, metrics) handled once here
//	4. Query semantics delegated to the pure functions in internal/stats
//
// # Available Services
//
// The package provides these core services:
//
//	- DataService: answers standings, leaderboard, trend and metadata queries
//	- HealthService: reports server, dataset and runtime health
//
// # Common Service Pattern
//
// Services typically follow this structure:
//
//	type ServiceName struct {
//	    ds     *dataset.Dataset
//	    logger *slog.Logger
//	}
//
//	func NewServiceName(ds *dataset.Dataset, logger *slog.Logger) *ServiceName {
//	    return &ServiceName{ds: ds, logger: logger}
//	}
//
//	func (s *ServiceName) Operation(ctx context.Context, input Input) (*Output, error) {
//	    if s.ds == nil {
//	        return nil, apierrors.ErrDatasetMissing
//	    }
//	    result, err := stats.Operation(s.ds, input)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return result, nil
//	}
//
// # Error Handling
//
// Services return the sentinel errors from internal/errors unchanged
// so handlers can map them to RFC 7807 responses with errors.Is:
//
//	- ErrUnknownTable, ErrUnknownMetric, ErrUnknownMode for bad query input
//	- ErrUnknownEntity when a player or team has no rows
//	- ErrInvalidLimit for non-positive result limits
//	- ErrDatasetMissing when the server runs without cleaned data
//
// A season with no rows is not an error; those queries return empty
// result sets.
//
// # Testing
//
// Services are tested against real datasets loaded from the fixtures
// in internal/shared/testutil, not mocks; the dataset is an in-memory
// value and cheap to construct.
package services

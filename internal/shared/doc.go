// Package shared provides common utilities and test helpers used across the
// almanac codebase. It serves as a central location for shared functionality
// that doesn't belong to any specific domain or architectural layer.
//
// # Structure
//
// The package is organized into the following components:
//
// - testutil: Testing utilities including fixtures and log assertions
//
// # Usage Guidelines
//
// This package should only contain:
//
// 1. Test utilities used by multiple packages
// 2. Generic helper functions with no domain-specific logic
// 3. Common constants or types used across packages
//
// It should NOT contain:
//
// 1. Business logic or domain-specific code
// 2. Circular dependencies with other internal packages
//
// # Test Utilities
//
// The testutil subpackage provides:
//
//	- Raw and cleaned CSV fixtures for the three season tables
//	- A buffered slog handler with record and attribute assertions
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    fixtures := testutil.NewSeasonFixtures(t.TempDir())
//	    require.NoError(t, fixtures.WriteCleanFiles())
//
//	    // Load and query the fixture dataset
//	}
package shared

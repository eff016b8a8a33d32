// Package ciutil detects CI environments and locates the test database.
// Integration test helpers use it to decide whether a missing database is
// a skip (local runs) or a failure (CI).
package ciutil

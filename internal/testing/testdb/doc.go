// Package testdb provides isolated SurrealDB databases for integration tests.
//
// Each call to New connects to the server named by TEST_DB_HOST, TEST_DB_PORT,
// TEST_DB_USER and TEST_DB_PASSWORD (defaults localhost:8000, root/root),
// creates a unique namespace and applies migrations/*.surql in file order.
// seed.surql is never applied. The namespace is removed by t.Cleanup; Close
// may also be called directly.
//
//	func TestVenueRepository_Create(t *testing.T) {
//	    tdb := testdb.New(t)
//
//	    venues := repository.NewVenueRepository(tdb.DB)
//	    ...
//	}
//
// Tests are skipped when no server answers, unless TEST_DB_REQUIRED is set,
// in which case a failed connection fails the test. Migrations are found by
// walking up from the test's working directory, or under BACKOFFICE_ROOT.
//
// Use NewShared with SetupSubtest when several subtests can share a schema
// and only need their rows cleared between runs.
package testdb

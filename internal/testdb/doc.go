// Package testdb provides utilities for database integration tests.
//
// Tests obtain a migrated connection with GetTestDBWithT, which skips the
// test when DATABASE_URL is not set, and run their statements inside WithTx
// so every change is rolled back when the test function returns:
//
//	func TestVideoStore(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        videos := postgres.NewPostgresVideoStore(tx, nil)
//	        ...
//	    })
//	}
package testdb

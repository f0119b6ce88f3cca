// Package repository implements the data access layer over SurrealDB.
//
// Most entities are served by Table[T], a generic repository configured
// with a TableConfig naming the table, its searchable columns, sort
// whitelist, filter schema and datetime fields. Entity repositories embed
// a Table and add the queries that do not fit the generic shape, such as
// booking statistics, ledger balances and question reordering.
//
// # Conventions
//
//   - Parameterized queries with $variable syntax; record IDs go through type::record()
//   - time::now() stamps created_on and updated_on
//   - Get returns nil, nil for a missing row so services choose their own not-found error
//   - Unique index violations surface as database.ErrDuplicate
//   - Updates are partial: a Patch lists only the columns to merge, and a nil
//     value clears a column
//
// # Example Usage
//
//	venues := NewVenueRepository(db)
//	page, total, err := venues.List(ctx, model.ListQuery{Search: "harbor"}.Normalize())
//	v, err := venues.Get(ctx, "venue:abc123")
//	if err == nil && v == nil {
//	    // not found
//	}
package repository

// Package fluentpg provides a fluent PostgreSQL query builder for Go.
//
// go-fluent-pg offers a Laravel-inspired API for building SQL queries and
// a lightweight schema layer (create/drop tables, add/edit/drop columns)
// on top of database/sql and the lib/pq driver. The connection layer is
// self-healing: if the configured database does not exist yet, the first
// executed statement creates it and retries once.
//
// # Quick Start
//
// Open a connection from environment variables (a .env file is honored)
// and start building queries:
//
//	db, err := fluentpg.OpenFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	rows, err := db.Table("users").
//	    Select("id", "name", "email").
//	    Where("status", "=", "active").
//	    OrderBy("created_at", "DESC").
//	    Limit(10).
//	    Get(ctx)
//
// # Where Clauses
//
// Conditions are accumulated in call order. The default combinator is AND;
// Or() switches the combinator for exactly one following condition:
//
//	qb.Where("age", ">", 18)
//	qb.OrWhere("role", "=", "admin")
//	qb.WhereIn("status", []any{"active", "pending"})
//	qb.WhereBetween("age", []any{18, 65})
//	qb.WhereNull("deleted_at")
//	qb.WhereGroup(func(c *fluentpg.Conditions) {
//	    c.Where("a", "=", 1).OrWhere("b", "=", 2)
//	})
//
// # Insert, Update, Delete
//
// Write operations return the affected rows via RETURNING:
//
//	inserted, err := db.Table("users").Insert(ctx, []fluentpg.Row{
//	    {"name": "John", "email": "john@example.com"},
//	})
//
//	updated, err := db.Table("users").
//	    Where("id", "=", 1).
//	    Update(ctx, fluentpg.Row{"status": "inactive"})
//
// Update and Delete refuse to run without at least one WHERE condition.
//
// # Schema Operations
//
// Tables and columns are described with FieldSpec values:
//
//	err := db.Table("users").Create(ctx, []fluentpg.FieldSpec{
//	    {Name: "id", Type: "INT", Options: []string{"primary", "autoincrement"}},
//	    {Name: "name", Type: "VARCHAR", Length: 255},
//	})
//
//	cols, err := db.Table("users").Columns().Get(ctx)
//
// # Raw Queries
//
// Raw executes a semicolon-separated script sequentially and always returns
// a structured result instead of an error:
//
//	res := db.Raw(ctx, "SELECT 1; SELECT 2")
//	if res.Status == fluentpg.StatusError {
//	    log.Println(res.Message)
//	}
//
// # Security
//
// Unlike its sibling project go-fluent-sql, this library inlines values as
// SQL literals: strings are single-quoted without escaping and identifiers
// are not validated. It is built for trusted, programmatic input only.
// Never pass untrusted user input as column names or values.
//
// # Thread Safety
//
// Builder instances are NOT thread-safe. Create a new builder per query.
// The DB handle may be shared; during missing-database recovery the pool
// is replaced without mutual exclusion, so concurrent first calls against
// a missing database are a known hazard.
package fluentpg

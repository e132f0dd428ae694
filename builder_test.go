package fluentpg

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestBuilder_DefaultQuery(t *testing.T) {
	got := New().Table("users").BuildQuery()
	want := `SELECT * FROM "users"`
	if got != want {
		t.Errorf("BuildQuery() = %q, want %q", got, want)
	}
}

func TestBuilder_Select(t *testing.T) {
	got := New().Table("users").Select("id", "name").BuildQuery()
	want := `SELECT id, name FROM "users"`
	if got != want {
		t.Errorf("BuildQuery() = %q, want %q", got, want)
	}
}

func TestBuilder_SelectWithoutFieldsKeepsDefault(t *testing.T) {
	got := New().Table("users").Select().BuildQuery()
	want := `SELECT * FROM "users"`
	if got != want {
		t.Errorf("BuildQuery() = %q, want %q", got, want)
	}
}

func TestBuilder_DistinctSelect(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Builder
		want  string
	}{
		{
			"distinct then select",
			func() *Builder { return New().Table("t").Distinct().Select("name") },
			`SELECT DISTINCT name FROM "t"`,
		},
		{
			"select then distinct",
			func() *Builder { return New().Table("t").Select("name").Distinct() },
			`SELECT DISTINCT name FROM "t"`,
		},
		{
			"distinct is idempotent",
			func() *Builder { return New().Table("t").Distinct().Distinct() },
			`SELECT DISTINCT * FROM "t"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.build().BuildQuery(); got != tt.want {
				t.Errorf("BuildQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuilder_Aggregates(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Builder
		want  string
	}{
		{"count", func() *Builder { return New().Table("users").Count("id") }, `SELECT COUNT(id) AS count FROM "users"`},
		{"count star", func() *Builder { return New().Table("users").Count("") }, `SELECT COUNT(*) AS count FROM "users"`},
		{"sum", func() *Builder { return New().Table("orders").Sum("total") }, `SELECT SUM(total) AS sum FROM "orders"`},
		{"avg", func() *Builder { return New().Table("users").Avg("age") }, `SELECT AVG(age) AS avg FROM "users"`},
		{"max", func() *Builder { return New().Table("users").Max("age") }, `SELECT MAX(age) AS max FROM "users"`},
		{"min", func() *Builder { return New().Table("users").Min("age") }, `SELECT MIN(age) AS min FROM "users"`},
		{"last aggregate wins", func() *Builder { return New().Table("users").Count("id").Sum("age") }, `SELECT SUM(age) AS sum FROM "users"`},
		{"select after aggregate wins", func() *Builder { return New().Table("users").Count("id").Select("name") }, `SELECT name FROM "users"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.build().BuildQuery(); got != tt.want {
				t.Errorf("BuildQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuilder_DistinctAfterAggregateIsIgnored(t *testing.T) {
	b := New().Table("users").Count("id").Distinct().OrderBy("id", "ASC")

	got := b.BuildQuery()
	want := `SELECT COUNT(id) AS count FROM "users"`
	if got != want {
		t.Errorf("BuildQuery() = %q, want %q", got, want)
	}
	if strings.Contains(got, "ORDER BY") {
		t.Errorf("BuildQuery() = %q, ORDER BY suppression must survive Distinct()", got)
	}
}

func TestBuilder_OrderBySuppressedForAggregates(t *testing.T) {
	got := New().Table("users").Count("id").OrderBy("id", "ASC").BuildQuery()
	if strings.Contains(got, "ORDER BY") {
		t.Errorf("BuildQuery() = %q, aggregate queries must not carry ORDER BY", got)
	}
}

func TestBuilder_OrderBy(t *testing.T) {
	got := New().Table("users").
		OrderBy("created_at", "desc").
		OrderBy("id", "ASC").
		BuildQuery()
	want := `SELECT * FROM "users" ORDER BY created_at DESC, id ASC`
	if got != want {
		t.Errorf("BuildQuery() = %q, want %q", got, want)
	}
}

func TestBuilder_InvalidOrderDirection(t *testing.T) {
	b := New().Table("users").OrderBy("id", "sideways")
	if b.Err() == nil {
		t.Fatal("Err() = nil, want accumulated direction error")
	}
	if _, err := b.Get(context.Background()); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("Get() error = %v, want ErrInvalidDirection", err)
	}
}

func TestBuilder_LimitAndPage(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Builder
		want  string
	}{
		{
			"limit only",
			func() *Builder { return New().Table("t").Limit(10) },
			`SELECT * FROM "t" LIMIT 10`,
		},
		{
			"limit with page",
			func() *Builder { return New().Table("t").Limit(10).Page(3) },
			`SELECT * FROM "t" LIMIT 10 OFFSET 20`,
		},
		{
			"first page has zero offset",
			func() *Builder { return New().Table("t").Limit(10).Page(1) },
			`SELECT * FROM "t" LIMIT 10 OFFSET 0`,
		},
		{
			"page without limit emits no offset",
			func() *Builder { return New().Table("t").Page(3) },
			`SELECT * FROM "t"`,
		},
		{
			"page zero clamps to first page",
			func() *Builder { return New().Table("t").Limit(10).Page(0) },
			`SELECT * FROM "t" LIMIT 10 OFFSET 0`,
		},
		{
			"negative page clamps to first page",
			func() *Builder { return New().Table("t").Limit(10).Page(-2) },
			`SELECT * FROM "t" LIMIT 10 OFFSET 0`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.build().BuildQuery(); got != tt.want {
				t.Errorf("BuildQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuilder_Joins(t *testing.T) {
	got := New().Table("users").
		Select("users.id", "orders.total").
		Join("orders", "users.id", "=", "orders.user_id").
		LeftJoin("addresses", "users.id", "=", "addresses.user_id").
		BuildQuery()
	want := `SELECT users.id, orders.total FROM "users"` +
		` JOIN "orders" ON users.id = orders.user_id` +
		` LEFT JOIN "addresses" ON users.id = addresses.user_id`
	if got != want {
		t.Errorf("BuildQuery() = %q, want %q", got, want)
	}
}

func TestBuilder_WhereAndGroupBy(t *testing.T) {
	got := New().Table("orders").
		Select("user_id").
		Where("status", "=", "paid").
		GroupBy("user_id").
		BuildQuery()
	want := `SELECT user_id FROM "orders" WHERE status = 'paid' GROUP BY user_id`
	if got != want {
		t.Errorf("BuildQuery() = %q, want %q", got, want)
	}
}

func TestBuilder_WhereGroup(t *testing.T) {
	got := New().Table("users").
		Where("status", "=", "active").
		Or().
		WhereGroup(func(c *Conditions) {
			c.Where("age", ">", 18).Where("age", "<", 65)
		}).
		BuildQuery()
	want := `SELECT * FROM "users" WHERE status = 'active' OR (age > 18 AND age < 65)`
	if got != want {
		t.Errorf("BuildQuery() = %q, want %q", got, want)
	}
}

func TestBuilder_RenderOrderIsFixed(t *testing.T) {
	got := New().Table("t").
		OrderBy("id", "ASC").
		Limit(5).
		Page(2).
		GroupBy("id").
		Where("a", "=", 1).
		Join("u", "t.id", "=", "u.t_id").
		BuildQuery()
	want := `SELECT * FROM "t" JOIN "u" ON t.id = u.t_id WHERE a = 1 GROUP BY id LIMIT 5 OFFSET 5 ORDER BY id ASC`
	if got != want {
		t.Errorf("BuildQuery() = %q, want %q", got, want)
	}
}

func TestBuilder_When(t *testing.T) {
	got := New().Table("users").
		When(true, func(b *Builder) { b.Where("a", "=", 1) }).
		When(false, func(b *Builder) { b.Where("b", "=", 2) }).
		BuildQuery()
	want := `SELECT * FROM "users" WHERE a = 1`
	if got != want {
		t.Errorf("BuildQuery() = %q, want %q", got, want)
	}
}

func TestBuilder_UpdateRequiresWhere(t *testing.T) {
	ctx := context.Background()

	if _, err := New().Table("users").Update(ctx, Row{"age": 1}); !errors.Is(err, ErrNoWhere) {
		t.Errorf("Update() without where: error = %v, want ErrNoWhere", err)
	}
	if _, err := New().Table("users").Update(ctx, Row{}); !errors.Is(err, ErrNoColumns) {
		t.Errorf("Update() with empty data: error = %v, want ErrNoColumns", err)
	}
	// Koşul varken guard geçilir; bağlantısız builder bu kez bağlantı hatası verir.
	if _, err := New().Table("users").Where("id", "=", 1).Update(ctx, Row{"age": 1}); !errors.Is(err, ErrNoConnection) {
		t.Errorf("Update() with where but no connection: error = %v, want ErrNoConnection", err)
	}
}

func TestBuilder_DeleteRequiresWhere(t *testing.T) {
	ctx := context.Background()

	if _, err := New().Table("users").Delete(ctx); !errors.Is(err, ErrNoWhere) {
		t.Errorf("Delete() without where: error = %v, want ErrNoWhere", err)
	}
	if _, err := New().Table("users").Where("id", "=", 1).Delete(ctx); !errors.Is(err, ErrNoConnection) {
		t.Errorf("Delete() with where but no connection: error = %v, want ErrNoConnection", err)
	}
}

func TestBuilder_InsertValidation(t *testing.T) {
	ctx := context.Background()

	if _, err := New().Table("users").Insert(ctx, nil); !errors.Is(err, ErrEmptyInsert) {
		t.Errorf("Insert(nil): error = %v, want ErrEmptyInsert", err)
	}
	if _, err := New().Table("users").Insert(ctx, []Row{}); !errors.Is(err, ErrEmptyInsert) {
		t.Errorf("Insert(empty): error = %v, want ErrEmptyInsert", err)
	}
	if _, err := New().Table("users").Insert(ctx, []Row{{}}); !errors.Is(err, ErrEmptyInsert) {
		t.Errorf("Insert(row without columns): error = %v, want ErrEmptyInsert", err)
	}
}

func TestBuilder_TerminalGuards(t *testing.T) {
	ctx := context.Background()

	if _, err := New().Get(ctx); !errors.Is(err, ErrNoTable) {
		t.Errorf("Get() without table: error = %v, want ErrNoTable", err)
	}
	if _, err := New().Table("users").Get(ctx); !errors.Is(err, ErrNoConnection) {
		t.Errorf("Get() without connection: error = %v, want ErrNoConnection", err)
	}
}

func TestBuilder_BuildConditions(t *testing.T) {
	b := New().Table("users").Where("a", "=", 1).OrWhere("b", "=", 2)
	want := "a = 1 OR b = 2"
	if got := b.BuildConditions(); got != want {
		t.Errorf("BuildConditions() = %q, want %q", got, want)
	}
}

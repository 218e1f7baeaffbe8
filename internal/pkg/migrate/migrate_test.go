package migrate

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/dealmarket-service/migrations"
)

func TestSplitStatements(t *testing.T) {
	content := `
-- leading comment
CREATE TABLE a (
  id INT64 NOT NULL,
) PRIMARY KEY (id);

  -- indented comment
CREATE INDEX a_by_id ON a(id);
`
	stmts := SplitStatements(content)
	require.Len(t, stmts, 2)
	assert.Equal(t, "CREATE TABLE a (\nid INT64 NOT NULL,\n) PRIMARY KEY (id)", stmts[0])
	assert.Equal(t, "CREATE INDEX a_by_id ON a(id)", stmts[1])
}

func TestObjectKey(t *testing.T) {
	tests := map[string]string{
		"CREATE TABLE users (\n id INT64,\n) PRIMARY KEY (id)":          "TABLE users",
		"CREATE UNIQUE INDEX users_by_email ON users(email)":            "INDEX users_by_email",
		"CREATE NULL_FILTERED INDEX x ON t(c)":                          "INDEX x",
		"CREATE SEQUENCE users_id_seq OPTIONS (sequence_kind = 'x')":    "SEQUENCE users_id_seq",
		"create table `products`(id INT64) PRIMARY KEY (id)":            "TABLE products",
		"ALTER TABLE users ADD COLUMN nickname STRING(20)":              "",
		"CREATE":                                                        "",
	}
	for stmt, want := range tests {
		assert.Equal(t, want, ObjectKey(stmt), stmt)
	}
}

func TestPending(t *testing.T) {
	existing := []string{
		"CREATE TABLE users (\n  id INT64 NOT NULL,\n) PRIMARY KEY(id)",
		"CREATE UNIQUE INDEX users_by_username ON users(username)",
	}
	statements := []string{
		"CREATE TABLE users (id INT64 NOT NULL) PRIMARY KEY (id)",
		"CREATE UNIQUE INDEX users_by_username ON users(username)",
		"CREATE UNIQUE INDEX users_by_email ON users(email)",
		"ALTER TABLE users ADD COLUMN x INT64",
	}

	assert.Equal(t, statements[2:], Pending(existing, statements))
	assert.Equal(t, statements, Pending(nil, statements))
}

func TestLoad_OrdersByName(t *testing.T) {
	fsys := fstest.MapFS{
		"002_more.sql":    {Data: []byte("CREATE INDEX b ON t(c);")},
		"001_initial.sql": {Data: []byte("CREATE TABLE t (c INT64) PRIMARY KEY (c);")},
		"README.md":       {Data: []byte("not ddl")},
	}

	ms, err := Load(fsys)
	require.NoError(t, err)
	require.Len(t, ms, 2)
	assert.Equal(t, "001_initial.sql", ms[0].Name)
	assert.Equal(t, "002_more.sql", ms[1].Name)
}

func TestLoad_EmbeddedSchema(t *testing.T) {
	ms, err := Load(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, ms)

	keys := make(map[string]bool)
	for _, stmt := range ms[0].Statements {
		keys[ObjectKey(stmt)] = true
	}
	for _, want := range []string{
		"SEQUENCE users_id_seq", "SEQUENCE businesses_id_seq", "SEQUENCE products_id_seq",
		"TABLE users", "TABLE businesses", "TABLE products",
		"INDEX users_by_username", "INDEX users_by_email", "INDEX businesses_by_name",
		"INDEX businesses_by_owner", "INDEX products_by_name", "INDEX products_by_category",
		"INDEX products_by_business",
	} {
		assert.True(t, keys[want], want)
	}
}

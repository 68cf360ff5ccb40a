// Package migrations holds the schema files applied by `seeder -install`.
package migrations

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed postgres/*.sql clickhouse/*.sql
var files embed.FS

// Postgres returns the PostgreSQL schema files in apply order.
func Postgres() ([]File, error) {
	return load("postgres")
}

// ClickHouse returns the ClickHouse schema files in apply order.
func ClickHouse() ([]File, error) {
	return load("clickhouse")
}

// File is one schema file.
type File struct {
	Name string
	SQL  string
}

// Statements splits the file on semicolons that end a line. ClickHouse only
// accepts one statement per Exec.
func (f File) Statements() []string {
	var stmts []string
	var cur strings.Builder
	for _, line := range strings.Split(f.SQL, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		cur.WriteString(line)
		cur.WriteByte('\n')
		if strings.HasSuffix(trimmed, ";") {
			stmt := strings.TrimSuffix(strings.TrimSpace(cur.String()), ";")
			stmts = append(stmts, stmt)
			cur.Reset()
		}
	}
	if rest := strings.TrimSpace(cur.String()); rest != "" {
		stmts = append(stmts, rest)
	}
	return stmts
}

func load(dir string) ([]File, error) {
	names, err := fs.Glob(files, dir+"/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	out := make([]File, 0, len(names))
	for _, name := range names {
		data, err := files.ReadFile(name)
		if err != nil {
			return nil, err
		}
		out = append(out, File{Name: name, SQL: string(data)})
	}
	return out, nil
}

package database

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const migrationsDir = "../../migrations"

func readMigration(t *testing.T, name string) string {
	t.Helper()
	body, err := os.ReadFile(filepath.Join(migrationsDir, name))
	require.NoError(t, err)
	return string(body)
}

func TestMigrationsComeInPairs(t *testing.T) {
	ups, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, ups)
	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		_, err := os.Stat(down)
		assert.NoError(t, err, "missing down migration for %s", filepath.Base(up))
	}
}

func searchProcedureOrderBy(t *testing.T) []string {
	t.Helper()
	body := readMigration(t, "000001_search_schema.up.sql")
	start := strings.Index(body, "FUNCTION search_documents")
	require.NotEqual(t, -1, start)
	fn := body[start:]
	orderAt := strings.Index(fn, "ORDER BY")
	limitAt := strings.Index(fn, "LIMIT p_limit")
	require.True(t, orderAt != -1 && limitAt > orderAt)

	var keys []string
	for _, line := range strings.Split(fn[orderAt+len("ORDER BY"):limitAt], "\n") {
		if key := strings.TrimSuffix(strings.TrimSpace(line), ","); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

func TestSearchProcedureHonoursRequestedSortBeforeRelevance(t *testing.T) {
	keys := searchProcedureOrderBy(t)
	require.Len(t, keys, 7)

	for i, sort := range []string{"newest", "downloads", "upvotes", "title-asc", "title-desc"} {
		assert.Contains(t, keys[i], "p_sort = '"+sort+"'", "sort key %d", i)
	}
	assert.Contains(t, keys[5], "ts_rank")
	assert.Equal(t, "d.id ASC", keys[6])
}

func TestSearchProcedureMatchesTitlesLiterally(t *testing.T) {
	body := readMigration(t, "000001_search_schema.up.sql")
	ilike := regexp.MustCompile(`d\.title ILIKE .*`).FindString(body)
	require.NotEmpty(t, ilike)

	for _, escape := range []string{`'\', '\\'`, `'%', '\%'`, `'_', '\_'`} {
		assert.Contains(t, ilike, escape)
	}
	assert.Contains(t, ilike, `ESCAPE '\'`)
	// backslash must be escaped before the wildcards it is used to escape
	assert.Less(t, strings.Index(ilike, `'\', '\\'`), strings.Index(ilike, `'%', '\%'`))
}

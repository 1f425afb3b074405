package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateSQLMigrationSanitizesName(t *testing.T) {
	dir := t.TempDir()

	path, err := CreateSQLMigration(dir, "Add Wishlist Index!")
	require.NoError(t, err)

	base := filepath.Base(path)
	require.Regexp(t, `^\d{14}_add_wishlist_index\.sql$`, base)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), "-- +goose Up")
	require.Contains(t, string(b), "-- +goose Down")
}

func TestCreateSQLMigrationRejectsEmptyName(t *testing.T) {
	_, err := CreateSQLMigration(t.TempDir(), "!!!")
	require.Error(t, err)
}

func TestValidateDirAcceptsGeneratedMigration(t *testing.T) {
	dir := t.TempDir()
	_, err := CreateSQLMigration(dir, "init schema")
	require.NoError(t, err)

	require.NoError(t, ValidateDir(dir))
}

func TestValidateDirRejectsBadFilename(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_init.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))

	err := ValidateDir(dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid migration filename")
}

func TestValidateDirRejectsMissingGooseHeaders(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20250901000000_init.sql"), []byte("CREATE TABLE t (id int);"), 0o644))

	err := ValidateDir(dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "+goose Up")
}

func TestValidateDirRejectsDuplicateVersions(t *testing.T) {
	dir := t.TempDir()
	body := "-- +goose Up\n-- +goose Down\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20250901000000_one.sql"), []byte(body), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20250901000000_two.sql"), []byte(body), 0o644))

	err := ValidateDir(dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate migration version")
}

func TestValidateDirIgnoresNonSQLFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("notes"), 0o644))
	require.NoError(t, ValidateDir(dir))
}

func TestShippedMigrationsValidate(t *testing.T) {
	// guards the real migrations directory against filename drift
	if _, err := os.Stat("migrations"); err != nil {
		t.Skip("migrations directory not present")
	}
	require.NoError(t, ValidateDir("migrations"))

	entries, err := os.ReadDir("migrations")
	require.NoError(t, err)
	found := false
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".sql") {
			found = true
		}
	}
	require.True(t, found, "expected at least one shipped migration")
}

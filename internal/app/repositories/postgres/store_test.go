package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/admissions/internal/app/repositories"
	"github.com/yigit/admissions/internal/app/repositories/storetest"
	"github.com/yigit/admissions/internal/db"
)

// testDSNEnv names a disposable database. Its course and applicant tables are
// truncated by every test.
const testDSNEnv = "ADMISSIONS_TEST_POSTGRES_DSN"

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv(testDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", testDSNEnv)
	}

	database, err := db.NewPostgresDBFromDSN(dsn)
	require.NoError(t, err)
	store := NewStore(database)
	t.Cleanup(store.Close)

	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Audit().EnsureInfrastructure(ctx))
	_, err = database.Pool.Exec(ctx, `TRUNCATE course, applicant, deleted_courses, deleted_applicants RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return store
}

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) repositories.Store {
		return openTestStore(t)
	})
}

func TestEnsureInfrastructureCreatesOneTriggerEach(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Audit().EnsureInfrastructure(ctx))
	require.NoError(t, store.Audit().EnsureInfrastructure(ctx))

	for _, name := range []string{"trg_backup_applicant_delete", "trg_backup_course_delete"} {
		var count int
		err := store.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM pg_trigger WHERE tgname = $1`, name).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, name)
	}
}

func TestEnsureInfrastructureIgnoresSameNamedTriggerElsewhere(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	pool := store.db.Pool

	_, err := pool.Exec(ctx, `DROP TABLE IF EXISTS applicant_decoy`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `CREATE TABLE applicant_decoy (id BIGINT)`)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DROP TABLE IF EXISTS applicant_decoy`)
	})
	_, err = pool.Exec(ctx, `
		CREATE TRIGGER trg_backup_applicant_delete
		AFTER DELETE ON applicant_decoy
		FOR EACH ROW EXECUTE FUNCTION backup_applicant_delete()`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `DROP TRIGGER trg_backup_applicant_delete ON applicant`)
	require.NoError(t, err)

	require.NoError(t, store.Audit().EnsureInfrastructure(ctx))

	var count int
	err = pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM pg_trigger
		WHERE tgname = 'trg_backup_applicant_delete' AND tgrelid = 'applicant'::regclass`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMigrateIsRepeatable(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Migrate(context.Background()))
	require.NoError(t, store.Ping(context.Background()))
	assert.Equal(t, "postgres", store.Driver())
}

package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestMigration_Embedded(t *testing.T) {
	v, err := latestMigration(migrationsFS)
	require.NoError(t, err)
	assert.Equal(t, uint(1), v)
}

func TestSchemaCheck_Ping(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   string
	}{
		{
			name: "current",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT version, dirty FROM schema_migrations`).
					WillReturnRows(pgxmock.NewRows([]string{"version", "dirty"}).AddRow(int64(1), false))
			},
		},
		{
			name: "dirty",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT version, dirty FROM schema_migrations`).
					WillReturnRows(pgxmock.NewRows([]string{"version", "dirty"}).AddRow(int64(1), true))
			},
			wantErr: "dirty",
		},
		{
			name: "never migrated",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT version, dirty FROM schema_migrations`).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: "no migrations applied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setupMock(mock)

			check, err := NewSchemaCheck(mock)
			require.NoError(t, err)

			err = check.Ping(context.Background())
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

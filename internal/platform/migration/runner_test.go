// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/condominio/condoadmin/internal/platform/migration"
)

/*
TestToPgx5DSN rewrites URL schemes for the migrate driver.
*/
func TestToPgx5DSN(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/condo", migration.ToPgx5DSN("postgres://u:p@db:5432/condo"))
	assert.Equal(t, "pgx5://db/condo", migration.ToPgx5DSN("postgresql://db/condo"))
	assert.Equal(t, "pgx5://db/condo", migration.ToPgx5DSN("pgx5://db/condo"))
	assert.Equal(t, "host=db dbname=condo", migration.ToPgx5DSN("host=db dbname=condo"))
}

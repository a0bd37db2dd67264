// Package repomanager defines the RepositoryManager seam: it vends
// repositories bound to a DBTX (either the pool or a transaction) so
// services can run multi-statement operations atomically.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/inkwell-blog/inkwell/internal/dbx"
	"github.com/inkwell-blog/inkwell/internal/server/repositories/posts"
	"github.com/inkwell-blog/inkwell/internal/server/repositories/stories"
	"github.com/inkwell-blog/inkwell/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Posts(db dbx.DBTX) posts.Repository
	Stories(db dbx.DBTX) stories.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}

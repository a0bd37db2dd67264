package stories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/inkwell-blog/inkwell/internal/common"
	"github.com/inkwell-blog/inkwell/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func storyRow(id string, published bool) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "title", "content", "description", "author_id", "cover_image",
		"tags", "read_time", "views", "published", "created_at", "updated_at", "username", "email",
	}).AddRow(id, "title", "content", "", "u-1", "", "", 1, int64(0), published, now, now, "alice", "a@x.com")
}

func expectLikes(mock sqlmock.Sqlmock, storyID string, userIDs ...string) {
	rows := sqlmock.NewRows([]string{"user_id"})
	for _, id := range userIDs {
		rows.AddRow(id)
	}
	mock.ExpectQuery(`SELECT\s+user_id\s+FROM\s+story_likes`).
		WithArgs(storyID).
		WillReturnRows(rows)
}

func TestCreate_PersistsPublishedFlag(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Now()
	mock.ExpectQuery(`INSERT\s+INTO\s+stories`).
		WithArgs("u-1", "title", "content", "", "", "", 1, false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("s-1", created, created))

	story := &models.Story{AuthorID: "u-1", Title: "title", Content: "content", ReadTime: 1, Published: false}
	got, err := repo.Create(context.Background(), story)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "s-1" || got.Likes == nil {
		t.Fatalf("unexpected story: %+v", got)
	}
}

func TestGetByID_PopulatesAuthorAndLikes(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+stories\s+s\s+JOIN\s+users\s+u`).
		WithArgs("s-1").
		WillReturnRows(storyRow("s-1", true))
	expectLikes(mock, "s-1", "u-2")

	got, err := repo.GetByID(context.Background(), "s-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Author == nil || got.Author.ID != "u-1" || got.Author.Username != "alice" {
		t.Fatalf("author not populated: %+v", got.Author)
	}
	if len(got.Likes) != 1 || got.Likes[0] != "u-2" {
		t.Fatalf("likes not populated: %v", got.Likes)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+stories\s+s\s+JOIN\s+users\s+u`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected common.ErrNotFound, got %v", err)
	}
}

func TestList_PublishedFilterAddsWhereClause(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	published := true
	mock.ExpectQuery(`(?s)FROM\s+stories\s+s.*WHERE\s+s\.published\s*=\s*\$1.*ORDER\s+BY\s+s\.created_at\s+DESC`).
		WithArgs(true).
		WillReturnRows(storyRow("s-1", true))
	expectLikes(mock, "s-1")

	stories, err := repo.List(context.Background(), &published)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(stories) != 1 || !stories[0].Published {
		t.Fatalf("unexpected stories: %+v", stories)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestList_NoFilterSelectsAll(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)FROM\s+stories\s+s\s+JOIN\s+users\s+u\s+ON\s+u\.id\s*=\s*s\.author_id\s+ORDER\s+BY`).
		WillReturnRows(storyRow("s-1", false))
	expectLikes(mock, "s-1")

	stories, err := repo.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(stories) != 1 {
		t.Fatalf("unexpected stories: %+v", stories)
	}
}

func TestListByAuthor_FiltersOnAuthor(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)FROM\s+stories\s+s.*WHERE\s+s\.author_id\s*=\s*\$1`).
		WithArgs("u-1").
		WillReturnRows(storyRow("s-1", false))
	expectLikes(mock, "s-1")

	stories, err := repo.ListByAuthor(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListByAuthor error: %v", err)
	}
	if len(stories) != 1 || stories[0].AuthorID != "u-1" {
		t.Fatalf("unexpected stories: %+v", stories)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE\s+stories\s+SET`).
		WillReturnError(sql.ErrNoRows)

	err := repo.Update(context.Background(), &models.Story{ID: "ghost"})
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected common.ErrNotFound, got %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+stories\s+WHERE\s+id`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "ghost"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected common.ErrNotFound, got %v", err)
	}
}

func TestIncrementViews(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE\s+stories\s+SET\s+views\s*=\s*views\s*\+\s*1`).
		WithArgs("s-1").
		WillReturnRows(sqlmock.NewRows([]string{"views"}).AddRow(int64(3)))

	views, err := repo.IncrementViews(context.Background(), "s-1")
	if err != nil || views != 3 {
		t.Fatalf("views=%d err=%v", views, err)
	}
}

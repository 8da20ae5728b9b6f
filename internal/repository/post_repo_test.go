package repository

import (
	"Inkwell/internal/model"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.PublicFile{},
		&model.PrivateFile{},
		&model.Post{},
		&model.Category{},
	))

	return db
}

func seedPostData(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	require.NoError(t, db.Create(&model.User{
		ID: 1, Email: "author@example.com", Name: "author", Password: "hashed",
	}).Error)
	for i := 1; i <= n; i++ {
		require.NoError(t, db.Create(&model.Post{
			ID:         uint64(i),
			UserID:     1,
			Title:      fmt.Sprintf("title %d", i),
			Paragraphs: model.Paragraphs{fmt.Sprintf("body %d", i)},
		}).Error)
	}
}

func TestFindPageCountIgnoresStartID(t *testing.T) {
	db := newTestDB(t)
	seedPostData(t, db, 5)
	repo := NewPostRepository(db)

	posts, total, err := repo.FindPage(context.Background(), 0, 0, 3)
	require.NoError(t, err)

	require.Equal(t, int64(5), total)
	require.Len(t, posts, 2)
	require.Equal(t, uint64(4), posts[0].ID)
	require.Equal(t, uint64(5), posts[1].ID)
}

func TestFindPageOffsetLimitAfterBound(t *testing.T) {
	db := newTestDB(t)
	seedPostData(t, db, 10)
	repo := NewPostRepository(db)

	// 先用下界收缩，再在剩余集合上做 offset/limit
	posts, total, err := repo.FindPage(context.Background(), 1, 2, 5)
	require.NoError(t, err)

	require.Equal(t, int64(10), total)
	require.Len(t, posts, 2)
	require.Equal(t, uint64(7), posts[0].ID)
	require.Equal(t, uint64(8), posts[1].ID)
}

func TestFindPagePreloadsAuthor(t *testing.T) {
	db := newTestDB(t)
	seedPostData(t, db, 1)
	repo := NewPostRepository(db)

	posts, _, err := repo.FindPage(context.Background(), 0, 0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "author", posts[0].User.Name)
}

func TestGetPostNotFoundReturnsNil(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	post, err := repo.GetPost(context.Background(), 42)
	require.NoError(t, err)
	require.Nil(t, post)
}

func TestParagraphsRoundTrip(t *testing.T) {
	db := newTestDB(t)
	seedPostData(t, db, 0)
	repo := NewPostRepository(db)

	original := &model.Post{
		UserID:     1,
		Title:      "multi paragraph",
		Paragraphs: model.Paragraphs{"first", "second", "third"},
	}
	require.NoError(t, repo.CreatePost(context.Background(), original))

	loaded, err := repo.GetPost(context.Background(), original.ID)
	require.NoError(t, err)
	require.Equal(t, model.Paragraphs{"first", "second", "third"}, loaded.Paragraphs)
}

func TestFindBatchAfter(t *testing.T) {
	db := newTestDB(t)
	seedPostData(t, db, 5)
	repo := NewPostRepository(db)

	posts, err := repo.FindBatchAfter(context.Background(), 2, 2)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.Equal(t, uint64(3), posts[0].ID)
	require.Equal(t, uint64(4), posts[1].ID)
}

func TestDeletePostReportsRowsAffected(t *testing.T) {
	db := newTestDB(t)
	seedPostData(t, db, 1)
	repo := NewPostRepository(db)

	rows, err := repo.DeletePost(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	rows, err = repo.DeletePost(context.Background(), 1)
	require.NoError(t, err)
	require.Zero(t, rows)
}

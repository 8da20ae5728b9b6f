package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/es"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, id uint64) *model.User {
	t.Helper()
	user := &model.User{
		ID:       id,
		Email:    fmt.Sprintf("user%d@example.com", id),
		Name:     fmt.Sprintf("user%d", id),
		Password: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPosts(t *testing.T, db *gorm.DB, userID uint64, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		post := &model.Post{
			ID:         uint64(i),
			UserID:     userID,
			Title:      fmt.Sprintf("title %d", i),
			Paragraphs: model.Paragraphs{fmt.Sprintf("paragraph %d", i)},
		}
		require.NoError(t, db.Create(post).Error)
	}
}

func newPostServiceForTest(t *testing.T) (PostService, *fakeSearchRepo, *gorm.DB) {
	db := newTestDB(t)
	search := &fakeSearchRepo{}
	return NewPostService(repository.NewPostRepository(db), search), search, db
}

func TestCreatePostIndexesDocument(t *testing.T) {
	svc, search, db := newPostServiceForTest(t)
	seedUser(t, db, 1)

	post, err := svc.CreatePost(context.Background(), 1, &dto.CreatePostReq{
		Title:      "hello",
		Paragraphs: []string{"first", "second"},
	})
	require.NoError(t, err)
	require.NotZero(t, post.ID)

	require.Len(t, search.indexed, 1)
	require.Equal(t, post.ID, search.indexed[0].ID)
	require.Equal(t, "hello", search.indexed[0].Title)
	require.Equal(t, uint64(1), search.indexed[0].AuthorID)
}

func TestCreatePostSurvivesIndexFailure(t *testing.T) {
	svc, search, db := newPostServiceForTest(t)
	seedUser(t, db, 1)
	search.failWrite = errors.New("index unavailable")

	post, err := svc.CreatePost(context.Background(), 1, &dto.CreatePostReq{
		Title:      "hello",
		Paragraphs: []string{"body"},
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.Post{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
	require.NotZero(t, post.ID)
}

func TestListPostsStartIDRestrictsItemsNotCount(t *testing.T) {
	svc, _, db := newPostServiceForTest(t)
	seedUser(t, db, 1)
	seedPosts(t, db, 1, 5)

	page, err := svc.ListPosts(context.Background(), &dto.PageQuery{StartID: util.PtrUint64(2)})
	require.NoError(t, err)

	require.Equal(t, int64(5), page.Count, "count must ignore the id lower bound")
	require.Len(t, page.Items, 3)
	require.Equal(t, uint64(3), page.Items[0].ID)
	require.Equal(t, uint64(5), page.Items[2].ID)
}

func TestListPostsOffsetLimit(t *testing.T) {
	svc, _, db := newPostServiceForTest(t)
	seedUser(t, db, 1)
	seedPosts(t, db, 1, 5)

	page, err := svc.ListPosts(context.Background(), &dto.PageQuery{
		Offset: util.PtrInt(1),
		Limit:  util.PtrInt(2),
	})
	require.NoError(t, err)

	require.Equal(t, int64(5), page.Count)
	require.Len(t, page.Items, 2)
	require.Equal(t, uint64(2), page.Items[0].ID)
	require.Equal(t, uint64(3), page.Items[1].ID)
}

func TestSearchPostsUsesWindowTotalWithoutStartID(t *testing.T) {
	svc, search, db := newPostServiceForTest(t)
	seedUser(t, db, 1)
	seedPosts(t, db, 1, 3)
	search.searchPage = &es.SearchPage{IDs: []uint64{2, 1}, Total: 2}

	page, err := svc.SearchPosts(context.Background(), "title", &dto.PageQuery{})
	require.NoError(t, err)

	require.Equal(t, int64(2), page.Count)
	require.Zero(t, search.countCalls, "no separate count without a lower bound")
}

func TestSearchPostsCountsUnboundedWithStartID(t *testing.T) {
	svc, search, db := newPostServiceForTest(t)
	seedUser(t, db, 1)
	seedPosts(t, db, 1, 3)
	search.searchPage = &es.SearchPage{IDs: []uint64{3}, Total: 1}
	search.countTotal = 3

	page, err := svc.SearchPosts(context.Background(), "title", &dto.PageQuery{StartID: util.PtrUint64(2)})
	require.NoError(t, err)

	require.Equal(t, int64(3), page.Count, "count must come from the unbounded query")
	require.Equal(t, 1, search.countCalls)
	require.Len(t, page.Items, 1)
	require.Equal(t, uint64(3), page.Items[0].ID)
}

func TestSearchPostsKeepsHitOrderAndDropsGhosts(t *testing.T) {
	svc, search, db := newPostServiceForTest(t)
	seedUser(t, db, 1)
	seedPosts(t, db, 1, 3)
	// 999 只在索引里，主库没有
	search.searchPage = &es.SearchPage{IDs: []uint64{3, 999, 1}, Total: 3}

	page, err := svc.SearchPosts(context.Background(), "title", &dto.PageQuery{})
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	require.Equal(t, uint64(3), page.Items[0].ID)
	require.Equal(t, uint64(1), page.Items[1].ID)
}

func TestSearchPostsEmptyHitsShortCircuits(t *testing.T) {
	svc, search, db := newPostServiceForTest(t)
	seedUser(t, db, 1)
	search.searchPage = &es.SearchPage{IDs: []uint64{}, Total: 0}

	page, err := svc.SearchPosts(context.Background(), "nothing", &dto.PageQuery{})
	require.NoError(t, err)
	require.Empty(t, page.Items)
	require.Zero(t, page.Count)
}

func TestUpdatePostRejectsNonOwner(t *testing.T) {
	svc, _, db := newPostServiceForTest(t)
	seedUser(t, db, 1)
	seedUser(t, db, 2)
	seedPosts(t, db, 1, 1)

	_, err := svc.UpdatePost(context.Background(), 2, 1, &dto.UpdatePostReq{
		Title:      "hijack",
		Paragraphs: []string{"x"},
	})
	require.ErrorIs(t, err, UnauthorizedError)
}

func TestUpdatePostSyncsIndex(t *testing.T) {
	svc, search, db := newPostServiceForTest(t)
	seedUser(t, db, 1)
	seedPosts(t, db, 1, 1)

	post, err := svc.UpdatePost(context.Background(), 1, 1, &dto.UpdatePostReq{
		Title:      "updated",
		Paragraphs: []string{"new body"},
	})
	require.NoError(t, err)
	require.Equal(t, "updated", post.Title)

	require.Len(t, search.updated, 1)
	require.Equal(t, "updated", search.updated[0].Title)
}

func TestDeletePostRemovesFromIndex(t *testing.T) {
	svc, search, db := newPostServiceForTest(t)
	seedUser(t, db, 1)
	seedPosts(t, db, 1, 1)

	require.NoError(t, svc.DeletePost(context.Background(), 1, 1))
	require.Equal(t, []uint64{1}, search.deleted)

	_, err := svc.GetPost(context.Background(), 1)
	require.ErrorIs(t, err, ErrPostNotFound)
}

func TestDeletePostNotFound(t *testing.T) {
	svc, _, db := newPostServiceForTest(t)
	seedUser(t, db, 1)

	err := svc.DeletePost(context.Background(), 1, 404)
	require.ErrorIs(t, err, ErrPostNotFound)
}

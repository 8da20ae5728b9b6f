package service

import (
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/es"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
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

// fakeSearchRepo 记录调用并返回预设结果的搜索仓储
type fakeSearchRepo struct {
	indexed   []*es.PostDocument
	updated   []*es.PostDocument
	deleted   []uint64
	failWrite error

	searchPage *es.SearchPage
	searchErr  error
	countTotal int64
	countErr   error
	countCalls int
}

func (f *fakeSearchRepo) IndexPost(_ context.Context, doc *es.PostDocument) error {
	if f.failWrite != nil {
		return f.failWrite
	}
	f.indexed = append(f.indexed, doc)
	return nil
}

func (f *fakeSearchRepo) UpdatePost(_ context.Context, doc *es.PostDocument) error {
	if f.failWrite != nil {
		return f.failWrite
	}
	f.updated = append(f.updated, doc)
	return nil
}

func (f *fakeSearchRepo) DeletePost(_ context.Context, id uint64) error {
	if f.failWrite != nil {
		return f.failWrite
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeSearchRepo) SearchPosts(_ context.Context, _ string, _, _ int, _ uint64) (*es.SearchPage, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if f.searchPage == nil {
		return &es.SearchPage{IDs: []uint64{}}, nil
	}
	return f.searchPage, nil
}

func (f *fakeSearchRepo) CountPosts(_ context.Context, _ string) (int64, error) {
	f.countCalls++
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.countTotal, nil
}

// fakeStorage 内存对象存储
type fakeStorage struct {
	objects    map[string][]byte
	deleteErr  error
	uploadErr  error
	presignErr error
	deletes    []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (f *fakeStorage) Upload(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.objects[objectName] = data
	return f.PublicURL(objectName), nil
}

func (f *fakeStorage) Delete(_ context.Context, objectName string) error {
	f.deletes = append(f.deletes, objectName)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, objectName)
	return nil
}

func (f *fakeStorage) OpenStream(_ context.Context, objectName string) (io.ReadCloser, error) {
	data, ok := f.objects[objectName]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStorage) PresignURL(_ context.Context, objectName string) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return "https://storage.test/presigned/" + objectName, nil
}

func (f *fakeStorage) PublicURL(objectName string) string {
	return "https://storage.test/public/" + objectName
}

package service

import (
	"Inkwell/internal/model"
	"Inkwell/internal/repository"
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFileServiceForTest(t *testing.T) (FileService, *fakeStorage, *fakeStorage, *gorm.DB) {
	db := newTestDB(t)
	public := newFakeStorage()
	private := newFakeStorage()
	return NewFileService(repository.NewFileRepo(db), public, private), public, private, db
}

func TestUploadPrivateFile(t *testing.T) {
	svc, _, private, db := newFileServiceForTest(t)
	seedUser(t, db, 1)

	result, err := svc.UploadPrivateFile(context.Background(), 1, "notes.txt",
		bytes.NewReader([]byte("content")), 7, "text/plain")
	require.NoError(t, err)
	require.NotZero(t, result.ID)
	require.Contains(t, result.Key, "notes.txt")
	require.Contains(t, result.URL, "presigned")

	require.Len(t, private.objects, 1)

	var count int64
	require.NoError(t, db.Model(&model.PrivateFile{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestDeletePrivateFileTwoPhase(t *testing.T) {
	svc, _, private, db := newFileServiceForTest(t)
	seedUser(t, db, 1)

	result, err := svc.UploadPrivateFile(context.Background(), 1, "doc.pdf",
		bytes.NewReader([]byte("pdf")), 3, "application/pdf")
	require.NoError(t, err)

	require.NoError(t, svc.DeletePrivateFile(context.Background(), 1, result.ID))

	require.Empty(t, private.objects, "object must be gone after commit")
	var count int64
	require.NoError(t, db.Model(&model.PrivateFile{}).Count(&count).Error)
	require.Zero(t, count, "record must be gone after commit")
}

func TestDeletePrivateFileBlobFailureRollsBack(t *testing.T) {
	svc, _, private, db := newFileServiceForTest(t)
	seedUser(t, db, 1)

	result, err := svc.UploadPrivateFile(context.Background(), 1, "doc.pdf",
		bytes.NewReader([]byte("pdf")), 3, "application/pdf")
	require.NoError(t, err)

	private.deleteErr = errors.New("storage unavailable")

	err = svc.DeletePrivateFile(context.Background(), 1, result.ID)
	require.ErrorIs(t, err, UnExpectedError)

	// 元数据删除必须随回滚撤销，引用不能先于对象消失
	var count int64
	require.NoError(t, db.Model(&model.PrivateFile{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
	require.Len(t, private.objects, 1)

	// 对象存储恢复后重试同一删除，两边一起清空
	private.deleteErr = nil
	require.NoError(t, svc.DeletePrivateFile(context.Background(), 1, result.ID))
	require.NoError(t, db.Model(&model.PrivateFile{}).Count(&count).Error)
	require.Zero(t, count)
	require.Empty(t, private.objects)
}

func TestDeletePrivateFileRejectsNonOwner(t *testing.T) {
	svc, _, private, db := newFileServiceForTest(t)
	seedUser(t, db, 1)
	seedUser(t, db, 2)

	result, err := svc.UploadPrivateFile(context.Background(), 1, "doc.pdf",
		bytes.NewReader([]byte("pdf")), 3, "application/pdf")
	require.NoError(t, err)

	err = svc.DeletePrivateFile(context.Background(), 2, result.ID)
	require.ErrorIs(t, err, UnauthorizedError)
	require.Empty(t, private.deletes, "storage must not be touched")
}

func TestGetPrivateFileStream(t *testing.T) {
	svc, _, _, db := newFileServiceForTest(t)
	seedUser(t, db, 1)

	result, err := svc.UploadPrivateFile(context.Background(), 1, "doc.txt",
		bytes.NewReader([]byte("secret")), 6, "text/plain")
	require.NoError(t, err)

	stream, key, err := svc.GetPrivateFileStream(context.Background(), 1, result.ID)
	require.NoError(t, err)
	defer stream.Close()

	require.Equal(t, result.Key, key)
	data, err := io.ReadAll(stream)
	require.NoError(t, err)
	require.Equal(t, []byte("secret"), data)
}

func TestGetPrivateFileStreamRejectsNonOwner(t *testing.T) {
	svc, _, _, db := newFileServiceForTest(t)
	seedUser(t, db, 1)
	seedUser(t, db, 2)

	result, err := svc.UploadPrivateFile(context.Background(), 1, "doc.txt",
		bytes.NewReader([]byte("secret")), 6, "text/plain")
	require.NoError(t, err)

	_, _, err = svc.GetPrivateFileStream(context.Background(), 2, result.ID)
	require.ErrorIs(t, err, UnauthorizedError)
}

func TestListPrivateFilesPresignsURLs(t *testing.T) {
	svc, _, _, db := newFileServiceForTest(t)
	seedUser(t, db, 1)
	seedUser(t, db, 2)

	_, err := svc.UploadPrivateFile(context.Background(), 1, "a.txt",
		bytes.NewReader([]byte("a")), 1, "text/plain")
	require.NoError(t, err)
	_, err = svc.UploadPrivateFile(context.Background(), 2, "b.txt",
		bytes.NewReader([]byte("b")), 1, "text/plain")
	require.NoError(t, err)

	files, err := svc.ListPrivateFiles(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Contains(t, files[0].URL, "presigned")
}

func TestDeletePublicFileTwoPhase(t *testing.T) {
	svc, public, _, db := newFileServiceForTest(t)

	result, err := svc.UploadPublicFile(context.Background(), "banner.png",
		bytes.NewReader([]byte("png")), 3, "image/png")
	require.NoError(t, err)

	require.NoError(t, svc.DeletePublicFile(context.Background(), result.ID))
	require.Empty(t, public.objects)

	var count int64
	require.NoError(t, db.Model(&model.PublicFile{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestDeletePublicFileBlobFailureRollsBack(t *testing.T) {
	svc, public, _, db := newFileServiceForTest(t)

	result, err := svc.UploadPublicFile(context.Background(), "banner.png",
		bytes.NewReader([]byte("png")), 3, "image/png")
	require.NoError(t, err)

	public.deleteErr = errors.New("storage unavailable")
	err = svc.DeletePublicFile(context.Background(), result.ID)
	require.ErrorIs(t, err, UnExpectedError)

	var count int64
	require.NoError(t, db.Model(&model.PublicFile{}).Count(&count).Error)
	require.Equal(t, int64(1), count)

	// 恢复后重试成功
	public.deleteErr = nil
	require.NoError(t, svc.DeletePublicFile(context.Background(), result.ID))
	require.NoError(t, db.Model(&model.PublicFile{}).Count(&count).Error)
	require.Zero(t, count)
	require.Empty(t, public.objects)
}

func TestDeletePublicFileNotFound(t *testing.T) {
	svc, _, _, _ := newFileServiceForTest(t)
	err := svc.DeletePublicFile(context.Background(), 404)
	require.ErrorIs(t, err, ErrFileNotFound)
}

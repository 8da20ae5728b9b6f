package service

import (
	"Inkwell/internal/model"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFinishTwoPhaseRollbackFailureIsInconsistent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&model.PublicFile{ID: 1, Key: "k", URL: "u"}).Error)

	storage := newFakeStorage()
	storage.deleteErr = errors.New("storage unavailable")

	tx := db.Begin()
	require.NoError(t, tx.Error)
	require.NoError(t, tx.Delete(&model.PublicFile{}, 1).Error)
	// 事务已提交，后续回滚必然失败
	require.NoError(t, tx.Commit().Error)

	err := finishTwoPhase(context.Background(), tx, storage, "k")
	require.ErrorIs(t, err, ErrStateInconsistent)
}

func TestFinishTwoPhaseCommitFailureIsInconsistent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&model.PublicFile{ID: 1, Key: "k", URL: "u"}).Error)

	storage := newFakeStorage()
	storage.objects["k"] = []byte("data")

	tx := db.Begin()
	require.NoError(t, tx.Error)
	require.NoError(t, tx.Delete(&model.PublicFile{}, 1).Error)
	// 事务已回滚，对象删除成功后的提交必然失败
	require.NoError(t, tx.Rollback().Error)

	err := finishTwoPhase(context.Background(), tx, storage, "k")
	require.ErrorIs(t, err, ErrStateInconsistent)
}

package service

import (
	"context"
	"log/slog"

	"gorm.io/gorm"
)

// finishTwoPhase 完成两阶段删除的第二阶段：元数据删除已在事务内，
// 对象删除成功才提交。对象删除失败回滚事务；回滚也失败，或对象已删
// 而提交失败，则两边已经不一致，向上抛一致性错误。
func finishTwoPhase(ctx context.Context, tx *gorm.DB, storage ObjectStorage, key string) error {
	if err := storage.Delete(ctx, key); err != nil {
		slog.ErrorContext(ctx, "delete object failed",
			slog.String("key", key), slog.Any("error", err))
		if rbErr := tx.Rollback().Error; rbErr != nil {
			slog.ErrorContext(ctx, "rollback failed after object delete failure",
				slog.String("key", key), slog.Any("error", rbErr))
			return ErrStateInconsistent
		}
		return UnExpectedError
	}

	if err := tx.Commit().Error; err != nil {
		slog.ErrorContext(ctx, "commit failed after object delete",
			slog.String("key", key), slog.Any("error", err))
		return ErrStateInconsistent
	}

	return nil
}

package service

import (
	"context"
	"log/slog"
)

// applyWrite 协调跨存储写入：先落主存储，成功后再同步副存储。
// 副存储失败只记告警，不影响本次操作结果，索引滞后由重建任务兜底。
func applyWrite[T any](
	ctx context.Context,
	op string,
	primary func(ctx context.Context) (T, error),
	secondary func(ctx context.Context, result T) error,
) (T, error) {
	result, err := primary(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if err := secondary(ctx, result); err != nil {
		slog.WarnContext(ctx, "secondary store sync failed",
			slog.String("op", op),
			slog.Any("error", err))
	}

	return result, nil
}

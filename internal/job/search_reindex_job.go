package job

import (
	"Inkwell/internal/pkg/es"
	"Inkwell/internal/repository"
	"context"
	"log/slog"
	"time"
)

const defaultBatchSize = 500

// SearchReindexJob 周期性把主库帖子全量刷进搜索索引。
// 写路径的索引同步是尽力而为，丢掉的更新靠这里补平。
type SearchReindexJob struct {
	postRepo   repository.PostRepo
	searchRepo es.PostSearchRepo
	batchSize  int
}

func NewSearchReindexJob(postRepo repository.PostRepo, searchRepo es.PostSearchRepo, batchSize int) *SearchReindexJob {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &SearchReindexJob{
		postRepo:   postRepo,
		searchRepo: searchRepo,
		batchSize:  batchSize,
	}
}

func (j *SearchReindexJob) Run() {
	ctx := context.Background()
	start := time.Now()
	var indexed, failed int

	var afterID uint64
	for {
		posts, err := j.postRepo.FindBatchAfter(ctx, afterID, j.batchSize)
		if err != nil {
			slog.ErrorContext(ctx, "reindex: load batch failed",
				slog.Uint64("after_id", afterID), slog.Any("error", err))
			return
		}
		if len(posts) == 0 {
			break
		}

		for _, post := range posts {
			if err := j.searchRepo.IndexPost(ctx, es.NewPostDocument(post)); err != nil {
				slog.WarnContext(ctx, "reindex: index post failed",
					slog.Uint64("post_id", post.ID), slog.Any("error", err))
				failed++
				continue
			}
			indexed++
		}

		afterID = posts[len(posts)-1].ID
	}

	slog.InfoContext(ctx, "reindex finished",
		slog.Int("indexed", indexed),
		slog.Int("failed", failed),
		slog.Duration("elapsed", time.Since(start)))
}

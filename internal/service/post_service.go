package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/es"
	"Inkwell/internal/repository"
	"context"
	"log/slog"

	"github.com/jinzhu/copier"
)

type PostService interface {
	CreatePost(ctx context.Context, userID uint64, req *dto.CreatePostReq) (*dto.PostDTO, error)
	GetPost(ctx context.Context, id uint64) (*dto.PostDTO, error)
	// ListPosts 按 id 升序分页。startID 只收缩条目，总数始终是全量
	ListPosts(ctx context.Context, page *dto.PageQuery) (*dto.PostPageDTO, error)
	// SearchPosts 全文检索后回源主库，条目按相关度排序
	SearchPosts(ctx context.Context, text string, page *dto.PageQuery) (*dto.PostPageDTO, error)
	UpdatePost(ctx context.Context, userID, id uint64, req *dto.UpdatePostReq) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, userID, id uint64) error
}

type PostServiceImpl struct {
	postRepo   repository.PostRepo
	searchRepo es.PostSearchRepo
}

func NewPostService(postRepo repository.PostRepo, searchRepo es.PostSearchRepo) PostService {
	return &PostServiceImpl{
		postRepo:   postRepo,
		searchRepo: searchRepo,
	}
}

func (s *PostServiceImpl) CreatePost(ctx context.Context, userID uint64, req *dto.CreatePostReq) (*dto.PostDTO, error) {
	post, err := applyWrite(ctx, "post.create",
		func(ctx context.Context) (*model.Post, error) {
			post := &model.Post{
				UserID:     userID,
				Title:      req.Title,
				Paragraphs: req.Paragraphs,
			}
			if err := s.postRepo.CreatePost(ctx, post); err != nil {
				slog.ErrorContext(ctx, "create post failed", slog.Any("error", err))
				return nil, UnExpectedError
			}
			return post, nil
		},
		func(ctx context.Context, post *model.Post) error {
			return s.searchRepo.IndexPost(ctx, es.NewPostDocument(post))
		})
	if err != nil {
		return nil, err
	}

	return toPostDTO(post), nil
}

func (s *PostServiceImpl) GetPost(ctx context.Context, id uint64) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPost(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "get post failed", slog.Any("error", err))
		return nil, UnExpectedError
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	return toPostDTO(post), nil
}

func (s *PostServiceImpl) ListPosts(ctx context.Context, page *dto.PageQuery) (*dto.PostPageDTO, error) {
	posts, total, err := s.postRepo.FindPage(ctx, page.OffsetValue(), page.LimitValue(), page.StartIDValue())
	if err != nil {
		slog.ErrorContext(ctx, "list posts failed", slog.Any("error", err))
		return nil, UnExpectedError
	}

	return &dto.PostPageDTO{
		Items: toPostDTOs(posts),
		Count: total,
	}, nil
}

func (s *PostServiceImpl) SearchPosts(ctx context.Context, text string, page *dto.PageQuery) (*dto.PostPageDTO, error) {
	startID := page.StartIDValue()

	hits, err := s.searchRepo.SearchPosts(ctx, text, page.OffsetValue(), page.LimitValue(), startID)
	if err != nil {
		slog.ErrorContext(ctx, "search posts failed", slog.Any("error", err))
		return nil, UnExpectedError
	}

	count := hits.Total
	if startID > 0 {
		// 下界收缩了命中集，总数要单独按无下界口径再数一次
		count, err = s.searchRepo.CountPosts(ctx, text)
		if err != nil {
			slog.ErrorContext(ctx, "count posts failed", slog.Any("error", err))
			return nil, UnExpectedError
		}
	}

	if len(hits.IDs) == 0 {
		return &dto.PostPageDTO{Items: []*dto.PostDTO{}, Count: count}, nil
	}

	posts, err := s.postRepo.GetPostByIds(ctx, hits.IDs)
	if err != nil {
		slog.ErrorContext(ctx, "fetch posts by ids failed", slog.Any("error", err))
		return nil, UnExpectedError
	}

	// 主库返回顺序不保证与命中序一致，按命中序重排；
	// 索引里残留但主库已删的幽灵命中直接丢弃
	byID := make(map[uint64]*model.Post, len(posts))
	for _, post := range posts {
		byID[post.ID] = post
	}

	ordered := make([]*model.Post, 0, len(hits.IDs))
	for _, id := range hits.IDs {
		if post, ok := byID[id]; ok {
			ordered = append(ordered, post)
		}
	}

	return &dto.PostPageDTO{
		Items: toPostDTOs(ordered),
		Count: count,
	}, nil
}

func (s *PostServiceImpl) UpdatePost(ctx context.Context, userID, id uint64, req *dto.UpdatePostReq) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPost(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "get post failed", slog.Any("error", err))
		return nil, UnExpectedError
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.UserID != userID {
		return nil, UnauthorizedError
	}

	post, err = applyWrite(ctx, "post.update",
		func(ctx context.Context) (*model.Post, error) {
			post.Title = req.Title
			post.Paragraphs = req.Paragraphs
			if err := s.postRepo.UpdatePost(ctx, post); err != nil {
				slog.ErrorContext(ctx, "update post failed", slog.Any("error", err))
				return nil, UnExpectedError
			}
			return post, nil
		},
		func(ctx context.Context, post *model.Post) error {
			return s.searchRepo.UpdatePost(ctx, es.NewPostDocument(post))
		})
	if err != nil {
		return nil, err
	}

	return toPostDTO(post), nil
}

func (s *PostServiceImpl) DeletePost(ctx context.Context, userID, id uint64) error {
	post, err := s.postRepo.GetPost(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "get post failed", slog.Any("error", err))
		return UnExpectedError
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.UserID != userID {
		return UnauthorizedError
	}

	_, err = applyWrite(ctx, "post.delete",
		func(ctx context.Context) (uint64, error) {
			rows, err := s.postRepo.DeletePost(ctx, id)
			if err != nil {
				slog.ErrorContext(ctx, "delete post failed", slog.Any("error", err))
				return 0, UnExpectedError
			}
			if rows == 0 {
				return 0, ErrPostNotFound
			}
			return id, nil
		},
		func(ctx context.Context, id uint64) error {
			return s.searchRepo.DeletePost(ctx, id)
		})

	return err
}

func toPostDTO(post *model.Post) *dto.PostDTO {
	result := &dto.PostDTO{}
	_ = copier.Copy(result, post)
	if post.User.ID != 0 {
		result.Author = toUserDTO(&post.User)
	}
	return result
}

func toPostDTOs(posts []*model.Post) []*dto.PostDTO {
	result := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		result = append(result, toPostDTO(post))
	}
	return result
}

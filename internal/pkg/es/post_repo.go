package es

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/conflicts"
	"github.com/goccy/go-json"
)

// MaxSearchWindow Elastic 深分页限制
const MaxSearchWindow = 10000

type PostSearchRepo interface {
	IndexPost(ctx context.Context, doc *PostDocument) error
	UpdatePost(ctx context.Context, doc *PostDocument) error
	DeletePost(ctx context.Context, id uint64) error
	SearchPosts(ctx context.Context, text string, from, size int, startID uint64) (*SearchPage, error)
	CountPosts(ctx context.Context, text string) (int64, error)
}

type PostSearchRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewPostSearchRepo(client *elasticsearch.TypedClient) PostSearchRepo {
	return &PostSearchRepoImpl{client: client}
}

// IndexPost 全量写入文档，文档 id 与主库 id 一致
func (s *PostSearchRepoImpl) IndexPost(ctx context.Context, doc *PostDocument) error {
	docID := strconv.FormatUint(doc.ID, 10)

	_, err := s.client.Index(PostIndex).
		Id(docID).
		Document(doc).
		Do(ctx)

	return err
}

// UpdatePost 按 id 覆盖文档字段。
// 字段值只进 params，不拼进脚本文本，脚本体是固定的。
func (s *PostSearchRepoImpl) UpdatePost(ctx context.Context, doc *PostDocument) error {
	titleJSON, _ := json.Marshal(doc.Title)
	paragraphsJSON, _ := json.Marshal(doc.Paragraphs)
	authorJSON, _ := json.Marshal(doc.AuthorID)

	params := map[string]json.RawMessage{
		"title":      json.RawMessage(titleJSON),
		"paragraphs": json.RawMessage(paragraphsJSON),
		"author_id":  json.RawMessage(authorJSON),
	}

	scriptSource := "ctx._source.title = params.title; ctx._source.paragraphs = params.paragraphs; ctx._source.author_id = params.author_id;"

	req := s.client.UpdateByQuery(PostIndex).
		Query(&types.Query{
			Term: map[string]types.TermQuery{
				"id": {Value: doc.ID},
			},
		}).
		Script(&types.Script{
			Source: &scriptSource,
			Params: params,
		}).
		Conflicts(conflicts.Proceed)

	resp, err := req.Do(ctx)
	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) && e.Status == NotFoundCode {
			return nil
		}
		return err
	}

	if len(resp.Failures) != 0 {
		return fmt.Errorf("post index: update has failures, count: %d", len(resp.Failures))
	}

	return nil
}

// DeletePost 按 id 删除文档，文档不存在不视为错误
func (s *PostSearchRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	_, err := s.client.DeleteByQuery(PostIndex).
		Query(&types.Query{
			Term: map[string]types.TermQuery{
				"id": {Value: id},
			},
		}).
		Conflicts(conflicts.Proceed).
		Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) && e.Status == NotFoundCode {
			return nil
		}
		return err
	}

	return nil
}

// SearchPosts 全文检索，startID 为 id 的排他下界，返回命中 id（相关度序）与窗口内总命中数
func (s *PostSearchRepoImpl) SearchPosts(ctx context.Context, text string, from, size int, startID uint64) (*SearchPage, error) {
	if from >= MaxSearchWindow {
		return &SearchPage{IDs: []uint64{}}, nil
	}
	if size <= 0 || from+size > MaxSearchWindow {
		size = MaxSearchWindow - from
	}

	gt := types.Float64(startID)
	query := &types.Query{
		Bool: &types.BoolQuery{
			Should: []types.Query{
				{
					MultiMatch: &types.MultiMatchQuery{
						Query:  text,
						Fields: SearchFields,
					},
				},
			},
			Filter: []types.Query{
				{
					Range: map[string]types.RangeQuery{
						"id": types.NumberRangeQuery{Gt: &gt},
					},
				},
			},
		},
	}

	resp, err := s.client.Search().
		Index(PostIndex).
		Query(query).
		From(from).
		Size(size).
		TrackTotalHits(true).
		Do(ctx)
	if err != nil {
		return nil, err
	}

	page := &SearchPage{IDs: make([]uint64, 0, len(resp.Hits.Hits))}
	if resp.Hits.Total != nil {
		page.Total = resp.Hits.Total.Value
	}

	for _, hit := range resp.Hits.Hits {
		if hit.Source_ == nil {
			continue
		}
		var doc PostDocument
		if err = json.Unmarshal(hit.Source_, &doc); err != nil {
			continue
		}
		page.IDs = append(page.IDs, doc.ID)
	}

	return page, nil
}

// CountPosts 统计不带 id 下界的命中总数
func (s *PostSearchRepoImpl) CountPosts(ctx context.Context, text string) (int64, error) {
	resp, err := s.client.Count().
		Index(PostIndex).
		Query(&types.Query{
			MultiMatch: &types.MultiMatchQuery{
				Query:  text,
				Fields: SearchFields,
			},
		}).
		Do(ctx)
	if err != nil {
		return 0, err
	}

	return resp.Count, nil
}

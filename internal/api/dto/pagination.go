package dto

// PageQuery 通用分页参数。StartID 是 id 的排他下界，
// 带上它时 count 仍然统计全量，不随下界收缩。
type PageQuery struct {
	Offset  *int    `form:"offset" binding:"omitempty,min=0"`
	Limit   *int    `form:"limit" binding:"omitempty,min=0"`
	StartID *uint64 `form:"startId" binding:"omitempty,min=1"`
}

func (q *PageQuery) OffsetValue() int {
	if q.Offset == nil {
		return 0
	}
	return *q.Offset
}

func (q *PageQuery) LimitValue() int {
	if q.Limit == nil {
		return 0
	}
	return *q.Limit
}

func (q *PageQuery) StartIDValue() uint64 {
	if q.StartID == nil {
		return 0
	}
	return *q.StartID
}

package repository

// ページング設定。リクエストごとに作り直す（動的なクラス生成はしない）。
type PageQuery struct {
	Page        int
	PageSize    int
	MaxPageSize int
}

const defaultMaxPageSize = 100

// Normalize は不正値を安全な範囲へ丸める。
func (p PageQuery) Normalize() PageQuery {
	if p.MaxPageSize <= 0 {
		p.MaxPageSize = defaultMaxPageSize
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 10
	}
	if p.PageSize > p.MaxPageSize {
		p.PageSize = p.MaxPageSize
	}
	return p
}

func (p PageQuery) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Package pagination 实现页码解析与分页计算：页码从 1 开始，越界页码收敛到合法范围，
// 空结果集仍返回一个空的第 1 页。
package pagination

import (
	"strconv"
	"strings"
)

// DefaultPageSize 列表页固定页长
const DefaultPageSize = 10

// Page 一页结果及其分页元信息
type Page[T any] struct {
	Items       []T   `json:"items"`
	Number      int   `json:"number"`
	PageSize    int   `json:"page_size"`
	TotalCount  int64 `json:"total_count"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// Pager 由总数和请求页码计算出的分页窗口
type Pager struct {
	Number     int
	Size       int
	TotalCount int64
	TotalPages int
}

// ParsePage 解析查询参数中的页码，缺失或非法时返回 1
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// NewPager 计算分页窗口：requested < 1 视为 1，超过末页视为末页
func NewPager(total int64, requested, size int) Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	if totalPages < 1 {
		totalPages = 1
	}

	number := requested
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	return Pager{
		Number:     number,
		Size:       size,
		TotalCount: total,
		TotalPages: totalPages,
	}
}

func (p Pager) Offset() int {
	return (p.Number - 1) * p.Size
}

func (p Pager) Limit() int {
	return p.Size
}

func (p Pager) HasNext() bool {
	return p.Number < p.TotalPages
}

func (p Pager) HasPrevious() bool {
	return p.Number > 1
}

// Wrap 用当前窗口包装一页数据
func Wrap[T any](p Pager, items []T) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:       items,
		Number:      p.Number,
		PageSize:    p.Size,
		TotalCount:  p.TotalCount,
		TotalPages:  p.TotalPages,
		HasNext:     p.HasNext(),
		HasPrevious: p.HasPrevious(),
	}
}

// Map 转换一页中的元素，保留分页元信息
func Map[T, U any](page *Page[T], fn func(T) (U, error)) (*Page[U], error) {
	out := make([]U, 0, len(page.Items))
	for _, item := range page.Items {
		u, err := fn(item)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return &Page[U]{
		Items:       out,
		Number:      page.Number,
		PageSize:    page.PageSize,
		TotalCount:  page.TotalCount,
		TotalPages:  page.TotalPages,
		HasNext:     page.HasNext,
		HasPrevious: page.HasPrevious,
	}, nil
}

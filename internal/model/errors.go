package model

import "github.com/rotisserie/eris"

var (
	// ErrSourceUnavailable 源数据表无法获取（文件缺失或为空指针）
	ErrSourceUnavailable = eris.New("source unavailable")
	// ErrInvalidLookup 映射表配置不合法（重复键等）
	ErrInvalidLookup = eris.New("invalid lookup tables")
	// ErrInvalidMonth 月份不在 1-12
	ErrInvalidMonth = eris.New("month must be between 1 and 12")
)

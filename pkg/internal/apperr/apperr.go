// Package apperr 定义摄取流水线对外暴露的错误分类.
//
// 每个错误都是 *Error，可以用 errors.Is 与 ErrCodec 等哨兵比较，
// 也可以用 errors.As 取出 Kind、Op 与底层原因.
package apperr

import (
	"errors"
	"fmt"
)

// Kind 错误分类.
type Kind uint8

const (
	KindUnknown Kind = iota
	// KindCodec 种子容器格式错误.
	KindCodec
	// KindValidation 字段缺失或取值不合法.
	KindValidation
	// KindStorage 文件/对象写入失败.
	KindStorage
	// KindPersistence 数据库失败，包括约束冲突与连接丢失.
	KindPersistence
	// KindNotFound 引用的已有 id 不存在.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindCodec:
		return "codec"
	case KindValidation:
		return "validation"
	case KindStorage:
		return "storage"
	case KindPersistence:
		return "persistence"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// 哨兵错误，仅用于 errors.Is 比较.
var (
	ErrCodec       = &Error{Kind: KindCodec}
	ErrValidation  = &Error{Kind: KindValidation}
	ErrStorage     = &Error{Kind: KindStorage}
	ErrPersistence = &Error{Kind: KindPersistence}
	ErrNotFound    = &Error{Kind: KindNotFound}
)

// Error 流水线错误.
type Error struct {
	Kind Kind
	// Op 出错的操作，例如 "torrent.decode".
	Op string
	// Msg 面向调用方的说明.
	Msg string
	// Err 底层原因，可为 nil.
	Err error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	if e.Op == "" {
		return fmt.Sprintf("%s error: %s", e.Kind, msg)
	}

	return fmt.Sprintf("%s: %s error: %s", e.Op, e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is 按 Kind 比较，使 errors.Is(err, ErrValidation) 对任意校验错误成立.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == e.Kind
}

func newf(kind Kind, op string, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Codec 构造 CodecError.
func Codec(op string, err error, format string, args ...any) *Error {
	return newf(KindCodec, op, err, format, args...)
}

// Validation 构造 ValidationError，msg 通常为 schema 的错误提示.
func Validation(op, msg string) *Error {
	return &Error{Kind: KindValidation, Op: op, Msg: msg}
}

// Storage 构造 StorageError.
func Storage(op string, err error) *Error {
	return &Error{Kind: KindStorage, Op: op, Err: err}
}

// Persistence 构造 PersistenceError.
func Persistence(op string, err error) *Error {
	return &Error{Kind: KindPersistence, Op: op, Err: err}
}

// NotFound 构造 NotFoundError.
func NotFound(op, format string, args ...any) *Error {
	return newf(KindNotFound, op, nil, format, args...)
}

// KindOf 返回 err 链上第一个 *Error 的分类.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindUnknown
}

// Ensure 已分类的错误原样返回，否则按 kind 包装.
func Ensure(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return err
	}

	return &Error{Kind: kind, Op: op, Err: err}
}

// Package rule 提供结构体和字段验证功能的封装，基于 go-playground/validator 实现.
//
// 除内置规则外额外注册：
//   - release_year: 数值年份，范围 [MinReleaseYear, 当前年份+MaxYearsAhead]
package rule

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	// TagName 结构体标签名.
	TagName = "rule"

	// MinReleaseYear 最早允许的发行年份.
	MinReleaseYear = 1650
	// MaxYearsAhead 允许的未来年份跨度（预发行）.
	MaxYearsAhead = 5
)

var (
	inst *validator.Validate
	once sync.Once

	// now 便于测试替换.
	now = time.Now
)

// initValidator 尝试复用 gin 的 validator 引擎；若不可用则新建，并注册自定义规则.
func initValidator() {
	if engine := binding.Validator.Engine(); engine != nil {
		if v, ok := engine.(*validator.Validate); ok {
			inst = v
		}
	}

	if inst == nil {
		inst = validator.New()
	}

	inst.SetTagName(TagName)

	if err := inst.RegisterValidation("release_year", releaseYear); err != nil {
		panic(fmt.Sprintf("register release_year: %v", err))
	}
}

// lazyInit 初始化全局 validator（幂等）.
func lazyInit() {
	once.Do(initValidator)
}

// Engine 返回全局 *validator.Validate，若未初始化则先初始化.
func Engine() *validator.Validate {
	lazyInit()

	return inst
}

// RegisterValidation 代理 RegisterValidation，确保已初始化.
func RegisterValidation(tag string, fn validator.Func, opts ...bool) error {
	lazyInit()

	return inst.RegisterValidation(tag, fn, opts...)
}

// ValidateStruct 对结构体执行完整校验，返回原始 error（可用 Explain 格式化）.
func ValidateStruct(s any) error {
	lazyInit()

	return inst.Struct(s)
}

// ValidateVar 按规则对单个变量校验，例如: ValidateVar("abc", "required,email").
func ValidateVar(field any, tag string) error {
	lazyInit()

	return inst.Var(field, tag)
}

// RegisterAlias 包装 RegisterAlias，便于注册别名规则.
func RegisterAlias(alias, rules string) {
	lazyInit()

	inst.RegisterAlias(alias, rules)
}

// ValidationErrors 是格式化后的验证错误字典，键为字段名，值为失败的规则.
type ValidationErrors map[string]string

// Errors 将 validator 的错误展开为字段 -> 规则. 非校验错误返回 nil.
func Errors(err error) ValidationErrors {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(ValidationErrors, len(verrs))
	for _, fe := range verrs {
		tag := fe.Tag()
		if fe.Param() != "" {
			tag += "=" + fe.Param()
		}

		out[fe.Namespace()] = tag
	}

	return out
}

// Explain 生成稳定排序的可读错误描述，例如 "AppConfig.Blob.Type: oneof=local s3".
func Explain(err error) string {
	errs := Errors(err)
	if errs == nil {
		if err == nil {
			return ""
		}

		return err.Error()
	}

	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+errs[k])
	}

	return strings.Join(parts, "; ")
}

// releaseYear 接受整数或整值浮点（JSON 数字解码为 float64）.
func releaseYear(fl validator.FieldLevel) bool {
	var year float64

	f := fl.Field()
	switch f.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		year = float64(f.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		year = float64(f.Uint())
	case reflect.Float32, reflect.Float64:
		year = f.Float()
		if year != math.Trunc(year) {
			return false
		}
	default:
		return false
	}

	return year >= MinReleaseYear && year <= float64(now().Year()+MaxYearsAhead)
}

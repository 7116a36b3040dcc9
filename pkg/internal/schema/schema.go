// Package schema 把各实体的字段约束描述为数据，并用同一个过滤函数执行.
//
// 过滤分两步：先只保留 Allowed 中的键（未知键静默丢弃），再检查 Required 是否都在结果中.
// Required 必须是 Allowed 的子集，否则该字段永远无法满足.
package schema

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/yeisme/torrentvault/pkg/internal/apperr"
	"github.com/yeisme/torrentvault/pkg/rule"
)

// ValueKind 字段取值的基础类型.
type ValueKind uint8

const (
	// Any 不检查类型.
	Any ValueKind = iota
	String
	Number
	Bool
)

func (k ValueKind) String() string {
	switch k {
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "bool"
	default:
		return "any"
	}
}

// Rule 单个字段的取值规则. 先检查 Kind，再用 rule 包执行 Tag.
type Rule struct {
	Kind ValueKind
	Tag  string
}

// Descriptor 描述一种实体的字段约束.
type Descriptor struct {
	Name     string
	Required []string
	Allowed  []string
	Rules    map[string]Rule
	// Aliases 列名 -> 表单中的驼峰写法，例如 music_release_type -> musicReleaseType.
	Aliases map[string]string
	// References 列名 -> 参照集合名，取值必须出现在该集合中.
	References   map[string]string
	ErrorMessage string
}

// Field 过滤后的一个键值对.
type Field struct {
	Key   string
	Value any
}

// Fields 过滤后的有序映射，顺序与 Descriptor.Allowed 一致.
type Fields []Field

// Get 按键取值.
func (f Fields) Get(key string) (any, bool) {
	for _, kv := range f {
		if kv.Key == key {
			return kv.Value, true
		}
	}

	return nil, false
}

// String 按键取字符串值.
func (f Fields) String(key string) (string, bool) {
	v, ok := f.Get(key)
	if !ok {
		return "", false
	}

	s, ok := v.(string)

	return s, ok
}

// Map 转为列名到值的映射，整值浮点（JSON 数字）转为 int64.
func (f Fields) Map() map[string]any {
	m := make(map[string]any, len(f))
	for _, kv := range f {
		m[kv.Key] = normalize(kv.Value)
	}

	return m
}

// Filter 执行过滤与必填检查，并校验字段规则.
func (d *Descriptor) Filter(input map[string]any) (Fields, error) {
	op := "schema." + d.Name

	out := make(Fields, 0, len(d.Allowed))

	for _, key := range d.Allowed {
		v, ok := input[key]
		if !ok {
			if alias, has := d.Aliases[key]; has {
				v, ok = input[alias]
			}
		}

		if !ok || v == nil {
			continue
		}

		out = append(out, Field{Key: key, Value: v})
	}

	for _, key := range d.Required {
		if _, ok := out.Get(key); !ok {
			return nil, apperr.Validation(op, d.ErrorMessage)
		}
	}

	for _, kv := range out {
		r, ok := d.Rules[kv.Key]
		if !ok {
			continue
		}

		if err := r.check(kv.Value); err != nil {
			return nil, apperr.Validation(op, fmt.Sprintf("%s: %s", kv.Key, err.Error()))
		}
	}

	return out, nil
}

func (r Rule) check(v any) error {
	switch r.Kind {
	case String:
		if _, ok := v.(string); !ok {
			return errors.New("must be a string")
		}
	case Number:
		if !isNumber(v) {
			return errors.New("must be a number")
		}
	case Bool:
		if _, ok := v.(bool); !ok {
			return errors.New("must be a boolean")
		}
	case Any:
	}

	if r.Tag == "" {
		return nil
	}

	if err := rule.ValidateVar(v, r.Tag); err != nil {
		return fmt.Errorf("violates %q", r.Tag)
	}

	return nil
}

func isNumber(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func normalize(v any) any {
	f, ok := v.(float64)
	if !ok {
		return v
	}

	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int64(f)
	}

	return f
}

// RefSets 参照集合名 -> 合法 id 集合.
type RefSets map[string]map[string]struct{}

// CheckReferences 检查 References 中的字段取值是否存在于对应参照集合.
func (d *Descriptor) CheckReferences(fields Fields, sets RefSets) error {
	for key, set := range d.References {
		v, ok := fields.String(key)
		if !ok {
			continue
		}

		if _, found := sets[set][v]; !found {
			return apperr.Validation("schema."+d.Name, fmt.Sprintf("%s: unknown %s %q", key, set, v))
		}
	}

	return nil
}

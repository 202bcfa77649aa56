package typejson

import (
	"reflect"
	"sort"
	"strings"
	"sync"
)

// NullTypeName JSON null 解码后的展示名
const NullTypeName = "(null)"

// Registry 可被 $type 指令实例化的类型集合
// 注册后对所有请求可见，读多写少
type Registry struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
}

func NewRegistry() *Registry {
	return &Registry{types: make(map[string]reflect.Type)}
}

// Register 注册 sample 的类型 (指针会被剥离)
// 规范名为 "包路径.类型名"，aliases 为额外可用的名称
// 返回规范名
func (r *Registry) Register(sample any, aliases ...string) string {
	t := reflect.TypeOf(sample)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := FullName(t)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.types[name] = t
	for _, alias := range aliases {
		r.types[alias] = t
	}
	return name
}

// Lookup 按名称查找类型
// 先精确匹配；失败时去掉 ", Assembly" 形式的限定部分再试一次
func (r *Registry) Lookup(name string) (reflect.Type, bool) {
	name = strings.TrimSpace(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if t, ok := r.types[name]; ok {
		return t, true
	}
	if i := strings.Index(name, ","); i >= 0 {
		t, ok := r.types[strings.TrimSpace(name[:i])]
		return t, ok
	}
	return nil, false
}

// Names 已注册的全部名称 (含别名)，按字典序
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FullName 类型的完全限定名
// 具名类型为 "包路径.类型名"，其余 (map、slice、内置类型) 使用 reflect 的字符串形式
func FullName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// TypeName 值的运行时类型名，nil 返回 NullTypeName
func TypeName(v any) string {
	if v == nil {
		return NullTypeName
	}
	return FullName(reflect.TypeOf(v))
}

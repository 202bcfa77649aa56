package typejson

import (
	"fmt"
	"strings"
)

// TypeNameHandling 控制解码器是否响应数据中的类型指令
type TypeNameHandling int

const (
	// None 忽略 $type，始终返回通用结构 (map / slice / 基础类型)
	None TypeNameHandling = iota
	// Auto 根对象及所有接口类型成员上的 $type 都会被解析并实例化
	Auto
)

func (h TypeNameHandling) String() string {
	switch h {
	case None:
		return "none"
	case Auto:
		return "auto"
	default:
		return fmt.Sprintf("TypeNameHandling(%d)", int(h))
	}
}

// ParseTypeNameHandling 解析配置中的字符串
// objects / all 与 auto 等价：对于 interface{} 根对象，三者行为一致
func ParseTypeNameHandling(s string) (TypeNameHandling, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return None, nil
	case "auto", "objects", "all":
		return Auto, nil
	default:
		return None, fmt.Errorf("unknown type name handling %q", s)
	}
}

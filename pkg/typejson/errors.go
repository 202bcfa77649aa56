package typejson

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// TypeResolutionError $type 无法解析为已注册类型，或与成员声明类型不兼容
type TypeResolutionError struct {
	Name   string
	Reason string
}

func (e *TypeResolutionError) Error() string {
	return fmt.Sprintf("could not resolve type '%s': %s", e.Name, e.Reason)
}

// MemberBindingError 成员按名称绑定到目标类型时失败
type MemberBindingError struct {
	Type string
	Err  error
}

func (e *MemberBindingError) Error() string {
	return fmt.Sprintf("error binding members of '%s': %v", e.Type, e.Err)
}

func (e *MemberBindingError) Unwrap() error { return e.Err }

// PanicError 实例化或回调过程中发生的 panic
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("deserialization panicked: %v", e.Value)
}

// ErrorKind 返回错误的类型名 (去掉指针)，用于展示给调用方
// fmt.Errorf("%w") 产生的包装会被穿透，errors.New 统一记为 Error
func ErrorKind(err error) string {
	for err != nil {
		t := reflect.TypeOf(err)
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}

		switch {
		case t.PkgPath() == "fmt" && strings.HasPrefix(t.Name(), "wrapError"):
			next := errors.Unwrap(err)
			if next == nil {
				return "Error"
			}
			err = next
			continue
		case t.PkgPath() == "errors" && t.Name() == "errorString":
			return "Error"
		}

		if t.Name() != "" {
			return t.Name()
		}
		return t.String()
	}
	return ""
}

package model

import (
	"context"
	"fmt"
	"reflect"

	"typejson_demo/pkg/typejson"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// ObjectDataProvider 在 ObjectInstance 上按名称调用 MethodName
// 反序列化完成即触发调用，这是 $type 反序列化漏洞的经典利用链
type ObjectDataProvider struct {
	ObjectInstance   any    `json:"ObjectInstance"`
	MethodName       string `json:"MethodName"`
	MethodParameters []any  `json:"MethodParameters"`

	data any
}

func (p *ObjectDataProvider) OnDeserialized(ctx context.Context) error {
	return p.Refresh(ctx)
}

// Data 最近一次调用的返回值 (不含 error)
func (p *ObjectDataProvider) Data() any { return p.data }

// Refresh 执行调用
// 目标或方法名为空时什么也不做
// 方法首个参数为 context.Context 时自动传入 ctx，不占用 MethodParameters
func (p *ObjectDataProvider) Refresh(ctx context.Context) error {
	if p.ObjectInstance == nil || p.MethodName == "" {
		return nil
	}

	method := reflect.ValueOf(p.ObjectInstance).MethodByName(p.MethodName)
	if !method.IsValid() {
		return &MissingMethodError{Type: typejson.TypeName(p.ObjectInstance), Method: p.MethodName}
	}

	args, err := p.arguments(ctx, method.Type())
	if err != nil {
		return err
	}

	p.data = nil
	for _, out := range method.Call(args) {
		if out.Type() == errorType {
			if !out.IsNil() {
				return &TargetInvocationError{Method: p.MethodName, Err: out.Interface().(error)}
			}
			continue
		}
		if p.data == nil {
			p.data = out.Interface()
		}
	}
	return nil
}

// arguments 把 MethodParameters 转换为方法签名要求的类型
func (p *ObjectDataProvider) arguments(ctx context.Context, mt reflect.Type) ([]reflect.Value, error) {
	args := make([]reflect.Value, 0, mt.NumIn())
	offset := 0
	if mt.NumIn() > 0 && mt.In(0) == contextType {
		args = append(args, reflect.ValueOf(ctx))
		offset = 1
	}

	if mt.IsVariadic() || mt.NumIn()-offset != len(p.MethodParameters) {
		return nil, &TargetParameterCountError{
			Method: p.MethodName,
			Want:   mt.NumIn() - offset,
			Got:    len(p.MethodParameters),
		}
	}

	for i, param := range p.MethodParameters {
		v, err := convertParameter(param, mt.In(i+offset))
		if err != nil {
			return nil, &ArgumentError{Param: fmt.Sprintf("MethodParameters[%d]", i), Message: err.Error()}
		}
		args = append(args, v)
	}
	return args, nil
}

func convertParameter(param any, want reflect.Type) (reflect.Value, error) {
	if param == nil {
		switch want.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(want), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot pass null as %s", want)
	}

	v := reflect.ValueOf(param)
	if v.Type().AssignableTo(want) {
		return v, nil
	}
	// JSON 数字统一为 float64；禁止数字转字符串 (reflect 会按 rune 转换)
	if want.Kind() == reflect.String && v.Kind() != reflect.String {
		return reflect.Value{}, fmt.Errorf("cannot convert %s to %s", v.Type(), want)
	}
	if v.Type().ConvertibleTo(want) {
		return v.Convert(want), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot convert %s to %s", v.Type(), want)
}

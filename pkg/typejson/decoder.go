package typejson

import (
	"context"
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-json"
)

// TypeKey 类型指令的保留键
const TypeKey = "$type"

// Deserialized 成员绑定完成后的回调
// 相当于构造函数：返回的错误原样交给调用方
type Deserialized interface {
	OnDeserialized(ctx context.Context) error
}

// Decoder 多态 JSON 解码器
// Auto 模式下，$type 指向 Registry 中的任意类型都会被实例化，不做额外限制
type Decoder struct {
	registry *Registry
	handling TypeNameHandling
}

func NewDecoder(registry *Registry, handling TypeNameHandling) *Decoder {
	return &Decoder{registry: registry, handling: handling}
}

func (d *Decoder) Handling() TypeNameHandling { return d.handling }

// Decode 解析 text 并按类型指令实例化
// 语法错误原样返回；实例化过程中的 panic 转为 *PanicError
func (d *Decoder) Decode(ctx context.Context, text string) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &PanicError{Value: r}
		}
	}()

	var tree any
	if err := json.Unmarshal([]byte(text), &tree); err != nil {
		return nil, err
	}

	if d.handling == None {
		return tree, nil
	}
	return d.resolve(ctx, tree)
}

// resolve 带 $type 的对象实例化为注册类型，其余原样返回
func (d *Decoder) resolve(ctx context.Context, node any) (any, error) {
	obj, ok := node.(map[string]any)
	if !ok {
		return node, nil
	}
	directive, ok := obj[TypeKey]
	if !ok {
		return node, nil
	}

	name, ok := directive.(string)
	if !ok {
		return nil, &TypeResolutionError{
			Name:   fmt.Sprint(directive),
			Reason: "type directive must be a string",
		}
	}
	t, ok := d.registry.Lookup(name)
	if !ok {
		return nil, &TypeResolutionError{Name: name, Reason: "type is not registered"}
	}

	return d.instantiate(ctx, t, obj)
}

// instantiate 创建 t 的实例，按名称绑定其余成员，再执行回调
func (d *Decoder) instantiate(ctx context.Context, t reflect.Type, obj map[string]any) (any, error) {
	members := make(map[string]any, len(obj))
	for k, v := range obj {
		if k == TypeKey {
			continue
		}
		members[k] = v
	}

	target := reflect.New(t)

	// 嵌套解析的错误在 mapstructure 中会被再包装一层，这里保留原始错误
	var cause error
	hook := func(from reflect.Value, to reflect.Value) (any, error) {
		if !from.IsValid() {
			return nil, nil
		}
		data := from.Interface()
		if to.Kind() != reflect.Interface {
			return data, nil
		}
		m, ok := data.(map[string]any)
		if !ok {
			return data, nil
		}
		if _, ok := m[TypeKey]; !ok {
			return data, nil
		}

		v, err := d.resolve(ctx, m)
		if err != nil {
			if cause == nil {
				cause = err
			}
			return nil, err
		}
		if !reflect.TypeOf(v).AssignableTo(to.Type()) {
			err := &TypeResolutionError{
				Name:   TypeName(v),
				Reason: fmt.Sprintf("type is not compatible with member type '%s'", to.Type()),
			}
			if cause == nil {
				cause = err
			}
			return nil, err
		}
		return v, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncValue(hook),
		Result:           target.Interface(),
		TagName:          "json",
		WeaklyTypedInput: true,
		Squash:           true,
	})
	if err != nil {
		return nil, &MemberBindingError{Type: FullName(t), Err: err}
	}
	if err := dec.Decode(members); err != nil {
		if cause != nil {
			return nil, cause
		}
		return nil, &MemberBindingError{Type: FullName(t), Err: err}
	}

	value := target.Interface()
	if cb, ok := value.(Deserialized); ok {
		if err := cb.OnDeserialized(ctx); err != nil {
			return nil, err
		}
	}
	return value, nil
}

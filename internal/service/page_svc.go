package service

import (
	"context"
	"time"

	"typejson_demo/internal/api/dto"
	"typejson_demo/pkg/typejson"
)

// SamplePayload 页面初始载荷
// $type 指向进程启动描述，演示类型指令如何决定实例化的类型
const SamplePayload = `{
  "$type": "System.Diagnostics.ProcessStartInfo, System.Diagnostics.Process",
  "FileName": "echo",
  "Arguments": "Vulnerable: TypeNameHandling.Auto allows arbitrary types!"
}`

// PageService 演示页业务
// 每次提交相互独立，不保存任何状态
type PageService struct {
	decoder       *typejson.Decoder
	invokeTimeout time.Duration
}

func NewPageService(decoder *typejson.Decoder, invokeTimeout time.Duration) *PageService {
	return &PageService{decoder: decoder, invokeTimeout: invokeTimeout}
}

// Show 初始页面：预填示例载荷，无输出
func (s *PageService) Show() dto.PageView {
	return dto.PageView{JsonInput: SamplePayload}
}

// Submit 反序列化 input 并报告结果类型或错误
// input 为空时不做任何事
// 被实例化类型的副作用 (包括启动外部进程) 不做任何拦截
func (s *PageService) Submit(ctx context.Context, input string) dto.PageView {
	view := dto.PageView{JsonInput: input}
	if input == "" {
		return view
	}

	if s.invokeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.invokeTimeout)
		defer cancel()
	}

	obj, err := s.decoder.Decode(ctx, input)
	if err != nil {
		view.ErrorKind = typejson.ErrorKind(err)
		view.ErrorMessage = err.Error()
		return view
	}

	view.ResultTypeName = typejson.TypeName(obj)
	return view
}

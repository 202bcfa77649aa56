package model

import (
	"net/url"
	"os/exec"

	"typejson_demo/pkg/typejson"
)

// RegisterReachableTypes 把本程序可被 $type 实例化的类型全部登记到 reg
// 别名沿用 .NET 的类型名，便于直接粘贴常见的利用载荷
func RegisterReachableTypes(reg *typejson.Registry) {
	reg.Register((*ProcessStartInfo)(nil), "System.Diagnostics.ProcessStartInfo")
	reg.Register((*Process)(nil), "System.Diagnostics.Process")
	reg.Register((*ObjectDataProvider)(nil), "System.Windows.Data.ObjectDataProvider")
	reg.Register((*Uri)(nil), "System.Uri")
	reg.Register((*url.URL)(nil))
	reg.Register((*exec.Cmd)(nil))
}

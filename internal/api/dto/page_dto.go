package dto

// Request DTO

// SubmitPageReq 表单提交
// 表单字段名与页面 textarea 的 name 一致
type SubmitPageReq struct {
	JsonInput string `form:"JsonInput" json:"JsonInput"`
}

// Response DTO

// PageView 页面渲染数据
// ResultTypeName 与 ErrorKind/ErrorMessage 至多一组有值
type PageView struct {
	JsonInput      string `json:"JsonInput"`
	ResultTypeName string `json:"ResultTypeName,omitempty"`
	ErrorKind      string `json:"ErrorKind,omitempty"`
	ErrorMessage   string `json:"ErrorMessage,omitempty"`
}

// HasError 是否有错误输出
func (v PageView) HasError() bool {
	return v.ErrorKind != "" || v.ErrorMessage != ""
}

// ErrorLine 错误展示文本 "Kind: message"
func (v PageView) ErrorLine() string {
	if !v.HasError() {
		return ""
	}
	return v.ErrorKind + ": " + v.ErrorMessage
}

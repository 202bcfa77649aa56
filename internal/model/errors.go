package model

import "fmt"

// ==================== 构造/调用错误 ====================

// InvalidOperationError 对象状态不允许当前操作
type InvalidOperationError struct {
	Message string
}

func (e *InvalidOperationError) Error() string { return e.Message }

// ArgumentError 参数不合法
type ArgumentError struct {
	Param   string
	Message string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument '%s': %s", e.Param, e.Message)
}

// UriFormatError URI 格式错误
type UriFormatError struct {
	Input  string
	Reason string
}

func (e *UriFormatError) Error() string {
	return fmt.Sprintf("invalid URI %q: %s", e.Input, e.Reason)
}

// MissingMethodError 目标对象上不存在指定方法
type MissingMethodError struct {
	Type   string
	Method string
}

func (e *MissingMethodError) Error() string {
	return fmt.Sprintf("method '%s.%s' not found", e.Type, e.Method)
}

// TargetParameterCountError 参数个数与方法签名不一致
type TargetParameterCountError struct {
	Method string
	Want   int
	Got    int
}

func (e *TargetParameterCountError) Error() string {
	return fmt.Sprintf("method '%s' expects %d parameter(s), got %d", e.Method, e.Want, e.Got)
}

// TargetInvocationError 被调用方法返回了错误
type TargetInvocationError struct {
	Method string
	Err    error
}

func (e *TargetInvocationError) Error() string {
	return fmt.Sprintf("exception has been thrown by the target of an invocation '%s': %v", e.Method, e.Err)
}

func (e *TargetInvocationError) Unwrap() error { return e.Err }

package model

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/google/shlex"
)

// ==================== ProcessStartInfo ====================

// ProcessStartInfo 进程启动描述
// 仅承载数据，反序列化本身不会产生副作用
type ProcessStartInfo struct {
	FileName         string            `json:"FileName"`
	Arguments        string            `json:"Arguments"`
	ArgumentList     []string          `json:"ArgumentList"`
	WorkingDirectory string            `json:"WorkingDirectory"`
	Environment      map[string]string `json:"Environment"`
}

// Args 实际传给进程的参数
// ArgumentList 非空时优先；否则按 shell 分词规则拆分 Arguments
func (s *ProcessStartInfo) Args() ([]string, error) {
	if len(s.ArgumentList) > 0 {
		return s.ArgumentList, nil
	}
	if strings.TrimSpace(s.Arguments) == "" {
		return nil, nil
	}
	return shlex.Split(s.Arguments)
}

// env 当前进程环境 + Environment (按 key 排序追加，同名覆盖)
func (s *ProcessStartInfo) env() []string {
	if len(s.Environment) == 0 {
		return nil
	}
	keys := make([]string, 0, len(s.Environment))
	for k := range s.Environment {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := os.Environ()
	for _, k := range keys {
		env = append(env, k+"="+s.Environment[k])
	}
	return env
}

// ==================== Process ====================

// Process 进程句柄
// 反序列化只填充字段；调用 Start 才会真正启动
type Process struct {
	StartInfo      *ProcessStartInfo `json:"StartInfo"`
	ExitCode       int               `json:"ExitCode"`
	StandardOutput string            `json:"StandardOutput"`
}

// Start 按 StartInfo 启动进程并等待其结束
// 标准输出写入 StandardOutput；非零退出码以 *exec.ExitError 返回
func (p *Process) Start(ctx context.Context) (bool, error) {
	if p.StartInfo == nil || p.StartInfo.FileName == "" {
		return false, &InvalidOperationError{Message: "cannot start process because a file name has not been provided"}
	}

	args, err := p.StartInfo.Args()
	if err != nil {
		return false, &ArgumentError{Param: "Arguments", Message: err.Error()}
	}

	cmd := exec.CommandContext(ctx, p.StartInfo.FileName, args...)
	cmd.Dir = p.StartInfo.WorkingDirectory
	cmd.Env = p.StartInfo.env()

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err = cmd.Run()
	p.StandardOutput = stdout.String()
	if cmd.ProcessState != nil {
		p.ExitCode = cmd.ProcessState.ExitCode()
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

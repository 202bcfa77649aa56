package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"typejson_demo/pkg/typejson"
)

// EnvPrefix 环境变量前缀，例如 DESERDEMO_SERVER_PORT
const EnvPrefix = "DESERDEMO"

// Config 应用配置
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Log          LogConfig          `mapstructure:"log"`
	Deserializer DeserializerConfig `mapstructure:"deserializer"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxInputBytes   int64         `mapstructure:"max_input_bytes"`
}

// Addr 监听地址
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DeserializerConfig 反序列化配置
type DeserializerConfig struct {
	TypeNameHandling string        `mapstructure:"type_name_handling"`
	InvokeTimeout    time.Duration `mapstructure:"invoke_timeout"`
}

// Handling 解析后的 TypeNameHandling，调用前需先通过 Validate
func (d DeserializerConfig) Handling() typejson.TypeNameHandling {
	h, _ := typejson.ParseTypeNameHandling(d.TypeNameHandling)
	return h
}

// ==================== 加载 ====================

func setDefaults(v *viper.Viper) {
	// 默认只监听本机：表单会按输入实例化任意已注册类型
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", gin.ReleaseMode)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_input_bytes", 64<<10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("deserializer.type_name_handling", "auto")
	v.SetDefault("deserializer.invoke_timeout", 10*time.Second)
}

// Load 读取配置：默认值 < config.yaml < 环境变量
// 配置文件路径可由 DESERDEMO_CONFIG 指定；未指定时在当前目录查找 config.yaml，找不到不报错
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := os.Getenv(EnvPrefix + "_CONFIG")
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	switch c.Server.Mode {
	case gin.ReleaseMode, gin.DebugMode, gin.TestMode:
	default:
		return fmt.Errorf("invalid server.mode %q", c.Server.Mode)
	}
	if c.Server.MaxInputBytes <= 0 {
		return fmt.Errorf("server.max_input_bytes must be positive, got %d", c.Server.MaxInputBytes)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive, got %s", c.Server.ShutdownTimeout)
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log.format %q", c.Log.Format)
	}

	if _, err := typejson.ParseTypeNameHandling(c.Deserializer.TypeNameHandling); err != nil {
		return fmt.Errorf("deserializer.type_name_handling: %w", err)
	}
	if c.Deserializer.InvokeTimeout <= 0 {
		return fmt.Errorf("deserializer.invoke_timeout must be positive, got %s", c.Deserializer.InvokeTimeout)
	}
	return nil
}

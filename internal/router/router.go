package router

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"typejson_demo/internal/config"
	"typejson_demo/internal/controller"
	"typejson_demo/internal/middleware"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Controllers 控制器集合
type Controllers struct {
	Page *controller.PageController
}

// SetupRouter 创建 gin 引擎，注册中间件、模板与路由
func SetupRouter(ctls *Controllers, logger *zap.Logger, cfg config.ServerConfig) *gin.Engine {
	r := gin.New()

	// 1. 中间件
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(logger),
		middleware.Recovery(logger),
		middleware.BodyLimit(cfg.MaxInputBytes),
	)

	// 2. 页面模板
	r.SetHTMLTemplate(template.Must(template.New("").ParseFS(templateFS, "templates/*.tmpl")))

	// 3. 路由
	InitRoutes(r, ctls)

	return r
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctls *Controllers) {
	// 演示页，/ 与 /Index 等价
	for _, path := range []string{"/", "/Index"} {
		// GET 渲染表单
		r.GET(path, ctls.Page.Show)
		// POST 提交载荷
		r.POST(path, ctls.Page.Submit)
	}
}

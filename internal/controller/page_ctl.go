package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"typejson_demo/internal/api/dto"
	"typejson_demo/internal/service"
	"typejson_demo/pkg/typejson"
)

// PageTemplate 页面模板名
const PageTemplate = "index.tmpl"

type PageController struct {
	pageService *service.PageService
}

func NewPageController(pageService *service.PageService) *PageController {
	return &PageController{pageService: pageService}
}

// Show 展示表单
// @Summary 演示页
// @Description 渲染表单，预填带 $type 的示例载荷
// @Produce html,json
// @Success 200 {object} dto.PageView
// @Router / [get]
func (h *PageController) Show(c *gin.Context) {
	h.render(c, http.StatusOK, h.pageService.Show())
}

// Submit 提交载荷
// @Summary 反序列化载荷
// @Description 以 $type 指令反序列化 JsonInput，返回实例类型名或错误
// @Accept x-www-form-urlencoded,json
// @Produce html,json
// @Param JsonInput formData string false "序列化文本"
// @Success 200 {object} dto.PageView
// @Failure 400 {object} dto.PageView "表单解析失败"
// @Router / [post]
func (h *PageController) Submit(c *gin.Context) {
	var req dto.SubmitPageReq
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(err)
		h.render(c, http.StatusBadRequest, dto.PageView{
			ErrorKind:    typejson.ErrorKind(err),
			ErrorMessage: err.Error(),
		})
		return
	}

	h.render(c, http.StatusOK, h.pageService.Submit(c.Request.Context(), req.JsonInput))
}

// render 默认 HTML；Accept: application/json 时返回 JSON
func (h *PageController) render(c *gin.Context, status int, view dto.PageView) {
	c.Negotiate(status, gin.Negotiate{
		Offered:  []string{gin.MIMEHTML, gin.MIMEJSON},
		HTMLName: PageTemplate,
		HTMLData: view,
		JSONData: view,
	})
}

package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 通用返回结构里的 data 使用 map
type Response map[string]interface{}

// Business codes, one per error kind the service distinguishes.
const (
	CodeOK           = 0
	CodeInvalidParam = 40001 // malformed numeric/form input
	CodeAuth         = 40101 // unknown email, missing or expired session
	CodeNotFound     = 40401 // unknown record id
	CodeServerErr    = 50001
)

// Success 统一成功返回
func Success(c *gin.Context, data Response) {
	c.JSON(http.StatusOK, gin.H{
		"code": CodeOK,
		"data": data,
	})
}

// Error 统一错误返回
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
	})
}

package code

import (
	"fmt"
	"net/http"
)

// Code is a coded business error or success marker carried through the service layer
// and rendered by the response helpers.
// Code 业务状态码，在服务层中传递并由响应工具输出
type Code struct {
	// 状态码
	code int
	// HTTP 状态码
	httpStatus int
	// 状态
	status bool
	// 消息
	Lang lang
	// 数据
	data     interface{}
	haveData bool
	// 错误详细信息
	details     []string
	haveDetails bool
}

var codes = map[int]string{}
var sussCodes = map[int]string{}

// NewError registers an error code with the HTTP status it maps to
// NewError 注册错误码及其对应的 HTTP 状态码
func NewError(code int, httpStatus int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("错误码 %d 已经存在，请更换一个", code))
	}
	codes[code] = l.en
	return &Code{code: code, httpStatus: httpStatus, status: false, Lang: l}
}

// NewSuss registers a success code
// NewSuss 注册成功码
func NewSuss(code int, l lang) *Code {
	if _, ok := sussCodes[code]; ok {
		panic(fmt.Sprintf("成功码 %d 已经存在，请更换一个", code))
	}
	sussCodes[code] = l.en
	return &Code{code: code, httpStatus: http.StatusOK, status: true, Lang: l}
}

// Clone creates an independent copy without data or details.
// Registered codes are package level singletons, so every With* call works on a clone.
// Clone 创建一个不含数据与详情的副本
func (e *Code) Clone() *Code {
	return &Code{
		code:       e.code,
		httpStatus: e.httpStatus,
		status:     e.status,
		Lang:       e.Lang,
	}
}

func (e *Code) Error() string {
	if e.haveDetails && len(e.details) > 0 {
		return e.Msg() + ": " + e.details[0]
	}
	return e.Msg()
}

// Is reports whether target carries the same code, so that errors.Is works across clones
// Is 判断目标是否为同一错误码，使 errors.Is 在副本之间同样有效
func (e *Code) Is(target error) bool {
	t, ok := target.(*Code)
	if !ok {
		return false
	}
	return t.code == e.code && t.status == e.status
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

// MsgIn returns the message in the given language, falling back to English
// MsgIn 返回指定语言的消息，缺失时回退到英文
func (e *Code) MsgIn(language string) string {
	if language == "" {
		return e.Msg()
	}
	return e.Lang.message(language)
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

func (e *Code) HaveData() bool {
	return e.haveData
}

func (e *Code) WithData(data interface{}) *Code {
	c := e.clone()
	c.haveData = true
	c.data = data
	return c
}

func (e *Code) WithDetails(details ...string) *Code {
	c := e.clone()
	c.haveDetails = true
	c.details = append([]string{}, details...)
	return c
}

// clone keeps data and details, unlike Clone
func (e *Code) clone() *Code {
	c := *e
	return &c
}

// StatusCode HTTP status used when the code is written to the client
// StatusCode 输出给客户端时使用的 HTTP 状态码
func (e *Code) StatusCode() int {
	if e.httpStatus == 0 {
		return http.StatusOK
	}
	return e.httpStatus
}

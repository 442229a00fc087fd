package http

import (
	"net/http"

	"github.com/challengegit/chatbot"
)

// User-facing error messages. Internal detail is only ever logged.
const (
	MsgQuestionMissing = "質問が入力されていません。"
	MsgCorpusFailed    = "申し訳ありません。内部情報の読み込みに失敗しました。"
	MsgUpstreamFailed  = "AIとの通信中にエラーが発生しました。"
	MsgTooLarge        = "リクエストが大きすぎます。"
	MsgInternal        = "内部エラーが発生しました。"
)

type errorResponse struct {
	Error string `json:"error"`
}

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	chatbot.EINVALID:  http.StatusBadRequest,
	chatbot.ENOTFOUND: http.StatusNotFound,
	chatbot.ECORPUS:   http.StatusInternalServerError,
	chatbot.ETOOLARGE: http.StatusInternalServerError,
	chatbot.EUPSTREAM: http.StatusInternalServerError,
	chatbot.EINTERNAL: http.StatusInternalServerError,
}

var messages = map[string]string{
	chatbot.EINVALID:  MsgQuestionMissing,
	chatbot.ECORPUS:   MsgCorpusFailed,
	chatbot.ETOOLARGE: MsgCorpusFailed,
	chatbot.EUPSTREAM: MsgUpstreamFailed,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// ErrorUserMessage returns the message shown to employees for an error code.
func ErrorUserMessage(code string) string {
	if v, ok := messages[code]; ok {
		return v
	}
	return MsgInternal
}

// Error writes the error envelope for err. Server-side failures are logged
// with their full detail while the response carries only a generic message.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code := chatbot.ErrorCode(err)
	status := ErrorStatusCode(code)

	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"code", code,
			"err", err,
		)
	}

	writeJSON(w, status, errorResponse{Error: ErrorUserMessage(code)})
}

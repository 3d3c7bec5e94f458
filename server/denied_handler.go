package server

import (
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"
)

const (
	// Denial text shown to the user: only the checked email or the generic
	// phrase, never tokens or provider internals.
	deniedReasonPrefix  = "不在允許名單："
	deniedReasonGeneric = "不在允許名單"
)

var accessDeniedTmpl = template.Must(template.New("access-denied").Parse(`<!DOCTYPE html>
<html lang="zh-Hant">
<head>
<meta charset="utf-8">
<title>拒絕登入</title>
</head>
<body style="padding:40px;text-align:center;font-family:sans-serif">
<h1 style="color:red">拒絕登入</h1>
<p style="margin-top:12px">你的帳號不在允許名單中，請聯絡系統管理員。</p>
{{if .Reason}}<pre style="margin-top:20px;color:#555;white-space:pre-wrap">{{.Reason}}</pre>{{end}}
<a href="/" style="display:inline-block;margin-top:24px;color:#2563eb">回首頁</a>
</body>
</html>
`))

// AccessDeniedHandler renders the denial surface (GET /access-denied). The
// reason travels in a short-lived cookie set by the callback and is consumed
// on display.
func (s *Server) AccessDeniedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reason := readDeniedReasonCookie(r)
		clearDeniedReasonCookie(w)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := accessDeniedTmpl.Execute(w, struct{ Reason string }{Reason: reason}); err != nil {
			log.Err(err).Msg("failed to render access-denied page")
		}
	}
}

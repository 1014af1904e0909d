package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/purp-rup/esports-management-tool-sub000/config"
)

// Mailer 邮件发送接口
// Service 层仅依赖此接口，测试时以内存实现替换
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer 基于 net/smtp 的 Mailer 实现
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	logger   *zap.Logger
}

// NewSMTPMailer 创建 SMTPMailer
func NewSMTPMailer(cfg *config.MailConfig, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		logger:   logger,
	}
}

// Send 发送一封 HTML 邮件
func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := buildMessage(m.from, to, subject, htmlBody)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}
	return nil
}

// buildMessage 组装带头部的 MIME 消息
func buildMessage(from, to, subject, body string) string {
	var msg strings.Builder
	msg.WriteString("From: " + from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)
	return msg.String()
}

// ── 事件通知邮件正文 ──

var eventBodyTmpl = template.Must(template.New("event_email").Parse(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto;">
    <h2>{{.Name}}</h2>
    <table cellpadding="4">
      <tr><td><b>日期</b></td><td>{{.Date}}</td></tr>
      <tr><td><b>时间</b></td><td>{{.StartTime}} - {{.EndTime}}</td></tr>
      {{if .Location}}<tr><td><b>地点</b></td><td>{{.Location}}</td></tr>{{end}}
    </table>
    {{if .Description}}<p>{{.Description}}</p>{{end}}
    <p style="font-size: 12px; color: #888;">此邮件由系统自动发送，可在通知设置中调整偏好。</p>
  </div>
</body>
</html>
`))

// EventBodyData 事件通知邮件模板数据
type EventBodyData struct {
	Name        string
	Date        string
	StartTime   string
	EndTime     string
	Location    string
	Description string
}

// RenderEventBody 渲染事件通知邮件正文
func RenderEventBody(data EventBodyData) (string, error) {
	var buf bytes.Buffer
	if err := eventBodyTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("渲染邮件模板失败: %w", err)
	}
	return buf.String(), nil
}

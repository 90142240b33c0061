package notifier

import (
	"fmt"
	"html"
	"net/smtp"
	"strings"

	"github.com/eunsoo8606/texaspapa/config"
)

// Mailer sends notification emails over SMTP.
type Mailer struct {
	cfg config.Mail
}

func NewMailer(cfg config.Mail) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) NotifyNewPost(n PostNotice) error {
	subject := fmt.Sprintf("[Texas Papa] 새로운 %s 등록", n.BoardTitle)
	body := buildBody("새로운 문의가 등록되었습니다", []section{
		{"게시판", n.BoardTitle},
		{"제목", n.Title},
		{"작성자", fmt.Sprintf("%s / %s / %s", n.AuthorName, n.AuthorEmail, n.AuthorPhone)},
		{"문의 내용", n.Content},
	})
	return m.send(m.cfg.AdminTo, subject, body)
}

func (m *Mailer) NotifyNewReply(n ReplyNotice) error {
	if n.AuthorEmail == "" {
		return nil
	}
	subject := fmt.Sprintf("[Texas Papa] %s 문의에 대한 답변이 등록되었습니다", n.BoardTitle)
	body := buildBody("문의하신 내용에 답변이 등록되었습니다", []section{
		{"게시판", n.BoardTitle},
		{"문의 제목", n.PostTitle},
		{"받는 분", n.AuthorName},
		{"답변 내용", n.ReplyContent},
	})
	return m.send(n.AuthorEmail, subject, body)
}

func (m *Mailer) NotifyNewLead(n LeadNotice) error {
	body := buildBody("새로운 창업 상담 신청이 접수되었습니다", []section{
		{"이름", n.Name},
		{"연락처", n.Phone},
		{"이메일", n.Email},
		{"희망 지역", n.Region},
		{"창업 예산", n.Budget},
		{"외식업 경험", n.Experience},
		{"유입 경로", n.Path},
		{"문의 내용", n.Message},
	})
	return m.send(m.cfg.AdminTo, "[Texas Papa] 새로운 창업 상담 신청", body)
}

type section struct {
	label string
	value string
}

func buildBody(heading string, sections []section) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family:'Noto Sans KR',sans-serif;max-width:600px;margin:0 auto;">`)
	fmt.Fprintf(&b, `<h1 style="font-size:20px;">%s</h1>`, html.EscapeString(heading))
	for _, s := range sections {
		if s.value == "" {
			continue
		}
		fmt.Fprintf(&b, `<p><strong>%s:</strong> %s</p>`,
			html.EscapeString(s.label), html.EscapeString(s.value))
	}
	b.WriteString(`</div>`)
	return b.String()
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	if to == "" {
		return fmt.Errorf("no recipient configured")
	}

	from := m.cfg.User
	msg := strings.Join([]string{
		"From: \"Texas Papa 알림\" <" + from + ">",
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		htmlBody,
	}, "\r\n")

	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	if err := smtp.SendMail(addr, auth, from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

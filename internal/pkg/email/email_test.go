package email

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu    sync.Mutex
	sent  []Message
	fail  bool
	block chan struct{}
}

func (n *recordingNotifier) Notify(ctx context.Context, recipient, subject, body string) error {
	if n.block != nil {
		<-n.block
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, Message{Recipient: recipient, Subject: subject, Body: body})
	if n.fail {
		return errors.New("relay down")
	}
	return nil
}

func (n *recordingNotifier) messages() []Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Message(nil), n.sent...)
}

func TestDispatcher_DeliversAndDrainsOnClose(t *testing.T) {
	n := &recordingNotifier{}
	d := NewDispatcher(n, 4, zerolog.Nop())
	go d.Run()

	assert.True(t, d.Enqueue(Message{Recipient: "a@x.test", Subject: "one"}))
	assert.True(t, d.Enqueue(Message{Recipient: "b@x.test", Subject: "two"}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	sent := n.messages()
	require.Len(t, sent, 2)
	assert.Equal(t, "one", sent[0].Subject)
	assert.Equal(t, "two", sent[1].Subject)

	assert.False(t, d.Enqueue(Message{Recipient: "c@x.test"}), "closed dispatcher must drop")
}

func TestDispatcher_FailureIsSwallowed(t *testing.T) {
	n := &recordingNotifier{fail: true}
	d := NewDispatcher(n, 1, zerolog.Nop())
	go d.Run()

	assert.True(t, d.Enqueue(Message{Recipient: "a@x.test"}))
	require.NoError(t, d.Close(context.Background()))
	assert.Len(t, n.messages(), 1)
}

func TestDispatcher_FullQueueDropsWithoutBlocking(t *testing.T) {
	n := &recordingNotifier{block: make(chan struct{})}
	d := NewDispatcher(n, 1, zerolog.Nop())

	// Not running yet: the single slot fills and the next message is dropped.
	assert.True(t, d.Enqueue(Message{Recipient: "a@x.test"}))
	assert.False(t, d.Enqueue(Message{Recipient: "b@x.test"}))

	go d.Run()
	close(n.block)
	require.NoError(t, d.Close(context.Background()))
	assert.Len(t, n.messages(), 1)
}

func TestSMTPNotifier_WithoutHostOnlyLogs(t *testing.T) {
	s := NewSMTPNotifier(SMTPConfig{}, zerolog.Nop())
	assert.NoError(t, s.Notify(context.Background(), "a@x.test", "hi", "body"))
}

func TestSMTPNotifier_Compose(t *testing.T) {
	s := NewSMTPNotifier(SMTPConfig{FromName: "GradNexus", FromEmail: "noreply@x.test"}, zerolog.Nop())
	msg := string(s.compose("a@x.test", "Subject line", "line1\nline2"))

	assert.True(t, strings.HasPrefix(msg, "From: GradNexus <noreply@x.test>\r\n"))
	assert.Contains(t, msg, "To: a@x.test\r\n")
	assert.Contains(t, msg, "Subject: Subject line\r\n")
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\nline1\r\nline2"))
}

func TestSMTPNotifier_ComposeKeepsSubjectOnOneLine(t *testing.T) {
	s := NewSMTPNotifier(SMTPConfig{FromEmail: "noreply@x.test"}, zerolog.Nop())
	out := ScheduledSession{StudentFirstName: "Asha", MentorFullName: "Ravi", Title: "Intro\r\nBcc: attacker@evil.example"}.
		Message("a@x.test")
	msg := string(s.compose(out.Recipient, out.Subject, out.Body))

	headers, _, found := strings.Cut(msg, "\r\n\r\n")
	require.True(t, found)
	for _, line := range strings.Split(headers, "\r\n") {
		assert.False(t, strings.HasPrefix(line, "Bcc:"), line)
	}
	assert.Contains(t, headers, "Subject: New Mentorship Session Scheduled: Intro Bcc: attacker@evil.example\r\n")
}

func TestSMTPNotifier_ComposeEncodesNonASCIISubject(t *testing.T) {
	s := NewSMTPNotifier(SMTPConfig{FromEmail: "noreply@x.test"}, zerolog.Nop())
	msg := string(s.compose("a@x.test", "Caf\u00e9 meetup", "body"))
	assert.Contains(t, msg, "Subject: =?utf-8?q?Caf=C3=A9_meetup?=\r\n")
}

func TestScheduledSessionMessage(t *testing.T) {
	date := time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC)
	link := "https://meet.example.com/abc"
	desc := "Bring your resume."

	msg := ScheduledSession{
		StudentFirstName: "Asha",
		MentorFullName:   "Ravi Kumar",
		Title:            "Resume review",
		Date:             &date,
		MeetingLink:      &link,
		Description:      &desc,
	}.Message("asha@x.test")

	assert.Equal(t, "asha@x.test", msg.Recipient)
	assert.Equal(t, "New Mentorship Session Scheduled: Resume review", msg.Subject)
	assert.Equal(t, `Hello Asha,

Your mentor, Ravi Kumar, has scheduled a new mentorship session for you.

Details:
- Title: Resume review
- Date/Time: 2025-06-01 18:30 UTC
- Meeting Link: https://meet.example.com/abc

Message from your mentor:
Bring your resume.

Please make sure to attend the session on time.

Best regards,
GradNexus Team
`, msg.Body)
}

func TestScheduledSessionMessage_MissingFields(t *testing.T) {
	msg := ScheduledSession{StudentFirstName: "Asha", MentorFullName: "Ravi", Title: "Intro"}.Message("a@x.test")

	assert.Contains(t, msg.Body, "- Date/Time: Not specified\n")
	assert.Contains(t, msg.Body, "- Meeting Link: Not specified\n")
}

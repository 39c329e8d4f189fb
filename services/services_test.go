package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mdsajjadhossain25/portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

func TestResendMailerPostsPayload(t *testing.T) {
	var got ResendEmailRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"email_1"}`))
	}))
	defer server.Close()

	mailer := NewResendMailer("re_test", "Site <site@example.com>")
	mailer.endpoint = server.URL

	err := mailer.SendEmail(context.Background(), "Hi", "<p>body</p>", "visitor@example.com", []string{"owner@example.com"})
	require.NoError(t, err)
	assert.Equal(t, []string{"owner@example.com"}, got.To)
	assert.Equal(t, "visitor@example.com", got.ReplyTo)
	assert.Equal(t, "Site <site@example.com>", got.From)
}

func TestResendMailerSurfacesAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from"}`))
	}))
	defer server.Close()

	mailer := NewResendMailer("re_test", "bad")
	mailer.endpoint = server.URL

	err := mailer.SendEmail(context.Background(), "Hi", "body", "", []string{"owner@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid from")

	assert.Error(t, mailer.SendEmail(context.Background(), "Hi", "body", "", nil))
}

type recordingEmail struct {
	subject, body, replyTo string
	to                     []string
}

func (r *recordingEmail) SendEmail(_ context.Context, subject, body, replyTo string, to []string) error {
	r.subject, r.body, r.replyTo, r.to = subject, body, replyTo, to
	return nil
}

type failingSMS struct{}

func (failingSMS) SendSMS(context.Context, string, string) error {
	return errors.New("twilio down")
}

func TestMultiNotifierContinuesPastFailures(t *testing.T) {
	email := &recordingEmail{}
	notifier := MultiNotifier{
		NewSMSNotifier(failingSMS{}, "+15550000"),
		NewEmailNotifier(email, "owner@example.com"),
	}

	err := notifier.NotifyContact(context.Background(), models.ContactMessage{
		Name: "<Eve>", Email: "eve@example.com", Subject: "Quote", Message: "line1\nline2",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "twilio down")

	assert.Equal(t, "New contact message: Quote", email.subject)
	assert.Equal(t, "eve@example.com", email.replyTo)
	assert.Contains(t, email.body, "&lt;Eve&gt;")
	assert.Contains(t, email.body, "line1<br>line2")

	assert.NoError(t, MultiNotifier(nil).NotifyContact(context.Background(), models.ContactMessage{}))
}

type fakeMessages struct {
	params *twilioApi.CreateMessageParams
}

func (f *fakeMessages) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.params = params
	sid := "SM123"
	return &twilioApi.ApiV2010Message{Sid: &sid}, nil
}

func TestSMSNotifierTruncatesPreview(t *testing.T) {
	api := &fakeMessages{}
	sender := &TwilioSender{api: api, from: "+15551111"}
	n := NewSMSNotifier(sender, "+15552222")

	require.NoError(t, n.NotifyContact(context.Background(), models.ContactMessage{
		Name: "Sam", Email: "sam@example.com", Message: strings.Repeat("a", 300),
	}))
	require.NotNil(t, api.params.Body)
	assert.Equal(t, "+15552222", *api.params.To)
	assert.Equal(t, "+15551111", *api.params.From)
	assert.True(t, strings.HasSuffix(*api.params.Body, "…"))
	assert.Less(t, len([]rune(*api.params.Body)), 200)
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("# Title\n\nSome *text* and ~~old~~.\n\n<script>alert(1)</script>")
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Title</h1>")
	assert.Contains(t, out, "<em>text</em>")
	assert.Contains(t, out, "<del>old</del>")
	assert.NotContains(t, out, "<script>")
}

func TestReadingTimeMinutes(t *testing.T) {
	assert.Equal(t, 1, ReadingTimeMinutes(""))
	assert.Equal(t, 1, ReadingTimeMinutes(strings.Repeat("word ", 200)))
	assert.Equal(t, 2, ReadingTimeMinutes(strings.Repeat("word ", 201)))
}

func TestSiteURLs(t *testing.T) {
	assert.Equal(t, "https://example.com/blog/hello-world", BuildBlogPostURL("https://example.com/", "hello-world"))
	assert.Equal(t, "https://example.com/projects/shop", BuildProjectURL("https://example.com", "shop"))
	assert.Equal(t, "", BuildServiceURL("", "web"))
}

package campaign

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ryan-gang/outreach-send/internal/config"
	"github.com/ryan-gang/outreach-send/internal/contacts"
	"github.com/ryan-gang/outreach-send/internal/logger"
	"github.com/ryan-gang/outreach-send/internal/mail"
	"github.com/ryan-gang/outreach-send/internal/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConfig struct {
	delay time.Duration
}

func (s stubConfig) GetFilePath() string       { return "contacts.xlsx" }
func (s stubConfig) GetSheetName() string      { return "Sheet1" }
func (s stubConfig) GetServer() string         { return "smtp.example.com" }
func (s stubConfig) GetPort() int              { return 587 }
func (s stubConfig) GetSender() string         { return "me@example.com" }
func (s stubConfig) GetPassword() string       { return "secret" }
func (s stubConfig) GetSenderName() string     { return "Jane Doe" }
func (s stubConfig) GetDelay() time.Duration   { return s.delay }
func (s stubConfig) GetSecurity() string       { return "starttls" }
func (s stubConfig) GetTimeout() time.Duration { return time.Second }
func (s stubConfig) GetLogPath() string        { return "" }

type staticSource []contacts.Contact

func (s staticSource) Extract(context.Context) []contacts.Contact {
	return s
}

type sent struct {
	to  contacts.Contact
	msg message.Message
}

// fakeSender fails for recipients listed in failOn.
type fakeSender struct {
	failOn map[string]bool
	calls  []sent
}

func (f *fakeSender) Send(_ context.Context, to contacts.Contact, msg message.Message) error {
	f.calls = append(f.calls, sent{to: to, msg: msg})
	if f.failOn[to.Address] {
		return &mail.DeliveryError{Kind: mail.KindAuthentication, Recipient: to.Address, Err: errors.New("535 bad credentials")}
	}
	return nil
}

type recordedSleep struct {
	calls []time.Duration
	err   error
}

func (r *recordedSleep) sleep(_ context.Context, d time.Duration) error {
	r.calls = append(r.calls, d)
	return r.err
}

func loaderFor(cfg config.ConfigProvider) ConfigLoader {
	return func() (config.ConfigProvider, error) { return cfg, nil }
}

func newTestCampaign(buf *bytes.Buffer, src contacts.ContactSource, sender mail.MailSender, sleeper *recordedSleep) *Campaign {
	return New(logger.New(buf),
		WithContactSource(func(config.ConfigProvider, logger.LoggerInterface) contacts.ContactSource { return src }),
		WithSender(func(config.ConfigProvider) mail.MailSender { return sender }),
		WithSleep(sleeper.sleep),
	)
}

var three = staticSource{
	{Name: "Acme", Address: "a@x.com"},
	{Name: "Globex", Address: "g@x.com"},
	{Name: "Initech", Address: "i@x.com"},
}

func TestRunAllSucceed(t *testing.T) {
	var buf bytes.Buffer
	sender := &fakeSender{}
	sleeper := &recordedSleep{}

	result, err := newTestCampaign(&buf, three, sender, sleeper).Run(context.Background(), loaderFor(stubConfig{delay: 2 * time.Second}))

	require.NoError(t, err)
	assert.Equal(t, Result{Succeeded: 3, Failed: 0}, result)
	require.Len(t, sender.calls, 3)
	for i, c := range three {
		assert.Equal(t, c, sender.calls[i].to)
		assert.Equal(t, message.Compose(c.Name, "Jane Doe"), sender.calls[i].msg)
	}
	assert.Contains(t, buf.String(), "Email sent successfully to Acme (a@x.com)")
	assert.Contains(t, buf.String(), "Campaign completed: 3 successful, 0 failed")
}

func TestRunDelayAfterEverySend(t *testing.T) {
	sleeper := &recordedSleep{}

	_, err := newTestCampaign(&bytes.Buffer{}, three, &fakeSender{}, sleeper).Run(context.Background(), loaderFor(stubConfig{delay: 2 * time.Second}))

	require.NoError(t, err)
	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second, 2 * time.Second}, sleeper.calls)
}

func TestRunContinuesAfterFailure(t *testing.T) {
	for k := range three {
		t.Run(three[k].Name, func(t *testing.T) {
			var buf bytes.Buffer
			sender := &fakeSender{failOn: map[string]bool{three[k].Address: true}}

			result, err := newTestCampaign(&buf, three, sender, &recordedSleep{}).Run(context.Background(), loaderFor(stubConfig{}))

			require.NoError(t, err)
			assert.Equal(t, Result{Succeeded: 2, Failed: 1}, result)
			assert.Len(t, sender.calls, 3)
			assert.Contains(t, buf.String(), "authentication failure sending to "+three[k].Address)
			assert.Contains(t, buf.String(), `"recipient":"`+three[k].Address+`"`)
			assert.Contains(t, buf.String(), "Campaign completed: 2 successful, 1 failed")
		})
	}
}

func TestRunNoContacts(t *testing.T) {
	var buf bytes.Buffer
	sender := &fakeSender{}
	sleeper := &recordedSleep{}

	result, err := newTestCampaign(&buf, staticSource{}, sender, sleeper).Run(context.Background(), loaderFor(stubConfig{}))

	assert.ErrorIs(t, err, ErrNoContacts)
	assert.Equal(t, Result{}, result)
	assert.Empty(t, sender.calls)
	assert.Empty(t, sleeper.calls)
	assert.Contains(t, buf.String(), "no valid contacts found")
	assert.Contains(t, buf.String(), "Campaign completed: 0 successful, 0 failed")
}

func TestRunMissingConfiguration(t *testing.T) {
	input := filepath.Join(t.TempDir(), "contacts.xlsx")
	require.NoError(t, os.WriteFile(input, []byte("x"), 0644))

	t.Setenv("EXCEL_FILE_PATH", input)
	t.Setenv("SENDER_EMAIL", "")
	t.Setenv("SENDER_PASSWORD", "")

	var buf bytes.Buffer
	sender := &fakeSender{}
	load := func() (config.ConfigProvider, error) {
		return config.Load(filepath.Join(t.TempDir(), "absent.env"))
	}

	result, err := newTestCampaign(&buf, three, sender, &recordedSleep{}).Run(context.Background(), load)

	var cfgErr *config.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, Result{}, result)
	assert.Empty(t, sender.calls)

	var missingLine string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "Missing required configuration") {
			missingLine = line
		}
	}
	assert.Contains(t, missingLine, "Missing required configuration: SENDER_EMAIL, SENDER_PASSWORD\"")
	assert.NotContains(t, missingLine, "EXCEL_FILE_PATH")
}

func TestRunMissingInputFile(t *testing.T) {
	var buf bytes.Buffer
	sender := &fakeSender{}
	load := func() (config.ConfigProvider, error) {
		return nil, &config.ConfigError{Types: []config.ErrorType{config.ErrFileNotFound}, Path: "leads.xlsx"}
	}

	_, err := newTestCampaign(&buf, three, sender, &recordedSleep{}).Run(context.Background(), load)

	assert.Error(t, err)
	assert.Empty(t, sender.calls)
	assert.Contains(t, buf.String(), "Excel file not found: leads.xlsx")
}

func TestRunCancelledDuringDelay(t *testing.T) {
	var buf bytes.Buffer
	sender := &fakeSender{}
	sleeper := &recordedSleep{err: context.Canceled}

	result, err := newTestCampaign(&buf, three, sender, sleeper).Run(context.Background(), loaderFor(stubConfig{delay: time.Second}))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Result{Succeeded: 1}, result)
	assert.Len(t, sender.calls, 1)
	assert.Contains(t, buf.String(), "Campaign interrupted after contact 1/3")
	assert.Contains(t, buf.String(), "Campaign completed: 1 successful, 0 failed")
}

func TestRunCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sender := &fakeSender{}

	_, err := newTestCampaign(&bytes.Buffer{}, three, sender, &recordedSleep{}).Run(ctx, loaderFor(stubConfig{}))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sender.calls)
}

func TestSleepContext(t *testing.T) {
	assert.NoError(t, sleepContext(context.Background(), 0))
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
	assert.ErrorIs(t, sleepContext(ctx, 0), context.Canceled)
}

package campaign

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ryan-gang/outreach-send/internal/config"
	"github.com/ryan-gang/outreach-send/internal/contacts"
	"github.com/ryan-gang/outreach-send/internal/logger"
	"github.com/ryan-gang/outreach-send/internal/mail"
	"github.com/ryan-gang/outreach-send/internal/message"
	"github.com/ryan-gang/outreach-send/internal/util"
)

// ErrNoContacts is returned when the spreadsheet yields no eligible rows.
var ErrNoContacts = errors.New("no valid contacts found")

// Result tallies one campaign run
type Result struct {
	Succeeded int
	Failed    int
}

// ConfigLoader produces the validated configuration for a run
type ConfigLoader func() (config.ConfigProvider, error)

type Campaign struct {
	logger    logger.LoggerInterface
	newSource func(config.ConfigProvider, logger.LoggerInterface) contacts.ContactSource
	newSender func(config.ConfigProvider) mail.MailSender
	sleep     func(context.Context, time.Duration) error
}

type Option func(*Campaign)

// WithContactSource replaces the spreadsheet extractor
func WithContactSource(fn func(config.ConfigProvider, logger.LoggerInterface) contacts.ContactSource) Option {
	return func(c *Campaign) {
		c.newSource = fn
	}
}

// WithSender replaces the SMTP sender
func WithSender(fn func(config.ConfigProvider) mail.MailSender) Option {
	return func(c *Campaign) {
		c.newSender = fn
	}
}

// WithSleep replaces the pause taken after each send
func WithSleep(fn func(context.Context, time.Duration) error) Option {
	return func(c *Campaign) {
		c.sleep = fn
	}
}

func New(log logger.LoggerInterface, opts ...Option) *Campaign {
	c := &Campaign{
		logger: log,
		newSource: func(cfg config.ConfigProvider, log logger.LoggerInterface) contacts.ContactSource {
			return contacts.NewExtractor(cfg, log)
		},
		newSender: func(cfg config.ConfigProvider) mail.MailSender {
			return mail.NewSMTPMailSender(cfg)
		},
		sleep: sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run validates the configuration, extracts contacts and sends one email per
// contact in order, pausing after every send. Individual delivery failures
// are logged and counted without stopping the run. The summary is always
// logged.
func (c *Campaign) Run(ctx context.Context, load ConfigLoader) (Result, error) {
	log := c.logger.With("run_id", uuid.NewString())

	var result Result
	defer func() {
		log.Infof("Campaign completed: %d successful, %d failed", result.Succeeded, result.Failed)
	}()

	cfg, err := load()
	if err != nil {
		logConfigError(log, err)
		return result, err
	}

	list := c.newSource(cfg, log).Extract(ctx)
	if len(list) == 0 {
		log.Error(util.FormatError(util.CampaignError, "extracting contacts", ErrNoContacts))
		return result, ErrNoContacts
	}

	sender := c.newSender(cfg)
	log.Infof("Starting campaign: %d contacts, %s between emails", len(list), cfg.GetDelay())

	for i, contact := range list {
		if err := ctx.Err(); err != nil {
			log.Warnf("Campaign interrupted before contact %d/%d", i+1, len(list))
			return result, err
		}

		msg := message.Compose(contact.Name, cfg.GetSenderName())
		if err := sender.Send(ctx, contact, msg); err != nil {
			result.Failed++
			log.With("recipient", contact.Address).Error(
				util.FormatError(util.MailError, fmt.Sprintf("sending to %s (%s)", contact.Name, contact.Address), err))
		} else {
			result.Succeeded++
			log.Infof("Email sent successfully to %s (%s)", contact.Name, contact.Address)
		}

		if err := c.sleep(ctx, cfg.GetDelay()); err != nil {
			log.Warnf("Campaign interrupted after contact %d/%d", i+1, len(list))
			return result, err
		}
	}

	return result, nil
}

func logConfigError(log logger.LoggerInterface, err error) {
	var cfgErr *config.ConfigError
	if !errors.As(err, &cfgErr) {
		log.Error(util.FormatError(util.ConfigError, "loading configuration", err))
		return
	}
	if len(cfgErr.Missing) > 0 {
		log.Errorf("Missing required configuration: %s", strings.Join(cfgErr.Missing, ", "))
	}
	if cfgErr.Path != "" {
		log.Errorf("Excel file not found: %s", cfgErr.Path)
	}
	if cfgErr.Err != nil {
		log.Error(util.FormatError(util.ConfigError, "loading configuration", cfgErr.Err))
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

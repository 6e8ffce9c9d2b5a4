// Package fixtures provides shared recorders for command registration tests.
package fixtures

import (
	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-lingo/commands"
)

// RecordingRegistry captures handlers registered through the container.
type RecordingRegistry struct {
	Handlers []any
}

// NewRecordingRegistry constructs an empty registry recorder.
func NewRecordingRegistry() *RecordingRegistry {
	return &RecordingRegistry{}
}

// RegisterCommand satisfies commands.CommandRegistry.
func (r *RecordingRegistry) RegisterCommand(handler any) error {
	r.Handlers = append(r.Handlers, handler)
	return nil
}

// CronRegistration captures one cron wiring invocation. Handler is nil when
// the registered callable was not the func() error shape cron handlers expose.
type CronRegistration struct {
	Config  command.HandlerConfig
	Handler func() error
}

// CronRecorder records CronRegistrar invocations and can be armed to fail.
type CronRecorder struct {
	Registrations []CronRegistration
	err           error
}

// NewCronRecorder constructs a cron recorder.
func NewCronRecorder() *CronRecorder {
	return &CronRecorder{}
}

// Fail arms the recorder to reject subsequent registrations with err.
func (c *CronRecorder) Fail(err error) {
	c.err = err
}

// Registrar returns a commands.CronRegistrar backed by this recorder.
func (c *CronRecorder) Registrar() commands.CronRegistrar {
	return func(cfg command.HandlerConfig, handler any) error {
		if c.err != nil {
			return c.err
		}
		fn, _ := handler.(func() error)
		c.Registrations = append(c.Registrations, CronRegistration{Config: cfg, Handler: fn})
		return nil
	}
}

// RecordingDispatcher captures handlers subscribed to a dispatcher.
type RecordingDispatcher struct {
	Handlers      []any
	Subscriptions []*RecordingSubscription
	Err           error
}

// NewRecordingDispatcher constructs a dispatcher recorder.
func NewRecordingDispatcher() *RecordingDispatcher {
	return &RecordingDispatcher{}
}

// RegisterCommand satisfies commands.CommandDispatcher.
func (d *RecordingDispatcher) RegisterCommand(handler any) (commands.CommandSubscription, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	sub := &RecordingSubscription{Handler: handler}
	d.Handlers = append(d.Handlers, handler)
	d.Subscriptions = append(d.Subscriptions, sub)
	return sub, nil
}

// RecordingSubscription tracks unsubscribe calls.
type RecordingSubscription struct {
	Handler      any
	Unsubscribed bool
}

// Unsubscribe marks the subscription released.
func (s *RecordingSubscription) Unsubscribe() {
	s.Unsubscribed = true
}

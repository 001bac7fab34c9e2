package interview

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-pizzabot/pkg/order"
)

// Option configures an Engine or a Corrector.
type Option func(*settings)

type settings struct {
	logger logrus.FieldLogger
	fields []order.Definition
}

// WithLogger routes diagnostic logging (rejections, corrections) to logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFields overrides the field catalog walked by the Engine. Intended for
// tests; the order must still be a subset of order.Fields().
func WithFields(fields []order.Definition) Option {
	return func(s *settings) {
		if len(fields) > 0 {
			s.fields = append([]order.Definition(nil), fields...)
		}
	}
}

func newSettings(options []Option) settings {
	s := settings{
		fields: order.Fields(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&s)
	}
	if s.logger == nil {
		s.logger = discardLogger()
	}
	return s
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

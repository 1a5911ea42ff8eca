package logging

import "github.com/sirupsen/logrus"

var (
	logger *logrus.Entry
)

type Fields = logrus.Fields

func SetLevel(l logrus.Level) {
	logger.Logger.SetLevel(l)
}

func init() {
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}
}

func WithError(e error) *logrus.Entry {
	return logger.WithError(e)
}

// Component tags every entry with the emitting subsystem
func Component(name string) *logrus.Entry {
	return logger.WithField("component", name)
}

func Entry() *logrus.Entry {
	return logger
}

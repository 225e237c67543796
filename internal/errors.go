package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

type ErrorFormat struct {
	ID       string       `json:"id,omitempty"`
	Message  string       `json:"message,omitempty"`
	Error    error        `json:"-"`
	Function string       `json:"function,omitempty"`
	Level    logrus.Level `json:"level,omitempty"`
	Package  string       `json:"package,omitempty"`
}

func (e ErrorFormat) String() string {
	out := struct {
		ErrorFormat
		Cause string `json:"error,omitempty"`
	}{ErrorFormat: e}
	if e.Error != nil {
		out.Cause = e.Error.Error()
	}

	marshal, err := json.Marshal(out)
	if err != nil {
		return ""
	}

	return string(marshal)
}

// ToError prints the error and returns it, wrapping the cause when there is one.
func (e ErrorFormat) ToError() error {
	e.Print()
	if e.Error != nil {
		return fmt.Errorf("%s: %w", e.Message, e.Error)
	}
	return errors.New(e.Message)
}

func (e ErrorFormat) Print() {
	if os.Getenv("DEBUG") == "true" {
		switch e.Level {
		case logrus.WarnLevel:
			logrus.Warn(e.String())
		case logrus.ErrorLevel:
			logrus.Error(e.String())
		default:
			logrus.Info(e.String())
		}
	}
}

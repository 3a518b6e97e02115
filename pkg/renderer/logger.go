package renderer

import (
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/golang/glog"
)

// DefaultLogger implements core.Logger by writing through glog
type DefaultLogger struct {
	prefix string
}

// Printf logs at INFO level
func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	glog.InfoDepthf(1, dl.prefix+strings.TrimSuffix(format, "\n"), args...)
}

// NewTaggedLogger creates a logger that prefixes every line with tag, such as a render id
func NewTaggedLogger(tag string) core.Logger {
	return &DefaultLogger{prefix: "[" + tag + "] "}
}

// NopLogger discards everything
type NopLogger struct{}

// Printf implements core.Logger
func (NopLogger) Printf(format string, args ...interface{}) {}

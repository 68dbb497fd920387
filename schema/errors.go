package schema

import "github.com/256dpi/xo"

func xoErrf(format string, args ...interface{}) error {
	return xo.F(format, args...)
}

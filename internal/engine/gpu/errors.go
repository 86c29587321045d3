package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/campfire/internal/logger"
)

// maxErrorsPerCheck bounds the drain loop; a lost context can report
// errors forever.
const maxErrorsPerCheck = 16

// CheckError drains the GL error queue, logging each error with site and the
// caller's file:line. It returns the number of errors seen.
func CheckError(site string) int {
	return drainErrors(site, gl.GetError)
}

func drainErrors(site string, next func() uint32) int {
	log := logger.Named("gl").WithOptions(zap.AddCallerSkip(2))
	n := 0
	for n < maxErrorsPerCheck {
		code := next()
		if code == gl.NO_ERROR {
			break
		}
		log.Warn("GL error", zap.String("error", ErrorName(code)), zap.String("site", site))
		n++
	}
	return n
}

// ErrorName returns the GL enum name of an error code.
func ErrorName(code uint32) string {
	switch code {
	case gl.NO_ERROR:
		return "NO_ERROR"
	case gl.INVALID_ENUM:
		return "INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "INVALID_OPERATION"
	case gl.STACK_OVERFLOW:
		return "STACK_OVERFLOW"
	case gl.STACK_UNDERFLOW:
		return "STACK_UNDERFLOW"
	case gl.OUT_OF_MEMORY:
		return "OUT_OF_MEMORY"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "INVALID_FRAMEBUFFER_OPERATION"
	default:
		return fmt.Sprintf("0x%04X", code)
	}
}

package tinymalloc

import (
	"sync/atomic"

	log "github.com/bnclabs/golog"
)

// logok gates all logging below; disabled by default, since nothing
// in tinymalloc requires logging to function correctly.
var logok = int64(0)

// LogComponents enables logging. Recognized names are "bootstrap",
// "arena", "self" and "all"; any one of them turns on all of
// tinymalloc's logging through a single flag, and any other name is
// ignored. By default tinymalloc logs nothing.
func LogComponents(components ...string) {
	for _, comp := range components {
		switch comp {
		case "bootstrap", "arena", "self", "all":
			atomic.StoreInt64(&logok, 1)
		}
	}
}

func debugf(format string, v ...interface{}) {
	if atomic.LoadInt64(&logok) > 0 {
		log.Debugf(format, v...)
	}
}

func infof(format string, v ...interface{}) {
	if atomic.LoadInt64(&logok) > 0 {
		log.Infof(format, v...)
	}
}

func warnf(format string, v ...interface{}) {
	if atomic.LoadInt64(&logok) > 0 {
		log.Warnf(format, v...)
	}
}

func errorf(format string, v ...interface{}) {
	if atomic.LoadInt64(&logok) > 0 {
		log.Errorf(format, v...)
	}
}

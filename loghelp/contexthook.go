package loghelp

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

// ProjectDir is the directory name the hook trims source paths down to.
const ProjectDir = "prosper-roi"

// ContextHook tags error and fatal entries with the file:line that logged them.
type ContextHook struct{}

// Levels ...
func (hook ContextHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.ErrorLevel, logrus.FatalLevel}
}

// Fire ...
func (hook ContextHook) Fire(entry *logrus.Entry) error {
	// Skip the logrus frames, the first project frame outside of this
	// package is the caller.
	for i := 4; i < 12; i++ {
		_, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		if strings.Contains(file, "sirupsen/logrus") || strings.HasSuffix(file, "loghelp/contexthook.go") {
			continue
		}
		entry.Data["source"] = fmt.Sprintf("%s:%d", ShortenFilePath(file, ""), line)
		break
	}

	return nil
}

// ShortenFilePath trims a path down to the project directory:
//	"/home/billy/go/src/github.com/FactomWyomingEntity/prosper-roi/simulation/batch.go" -> "prosper-roi/simulation/batch.go"
// Paths outside the project come back whole.
//
// 		!! Only use for error printing !!
//
func ShortenFilePath(path, acc string) (trimmed string) {
	return shorten(filepath.ToSlash(path), acc, 0)
}

func shorten(path, acc string, depth int) string {
	if depth > 6 || path == "." || path == "/" || path == "" {
		// If depth > 6 probably no project dir exists
		return filepath.ToSlash(filepath.Join(path, acc))
	}
	dir, base := filepath.Split(path)
	if strings.EqualFold(base, ProjectDir) {
		return filepath.ToSlash(filepath.Join(base, acc))
	}

	return shorten(filepath.Clean(dir), filepath.Join(base, acc), depth+1)
}

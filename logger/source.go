package logger

import "fmt"

// Source is a Logger bound to one source name, so callers that always log
// under the same tag do not repeat it.
type Source struct {
	l    *Logger
	name string
}

func (s *Source) Name() string { return s.name }

func (s *Source) Verbosef(format string, args ...any) {
	s.l.Log(s.name, fmt.Sprintf(format, args...), Verbose)
}

func (s *Source) Infof(format string, args ...any) {
	s.l.Log(s.name, fmt.Sprintf(format, args...), Info)
}

func (s *Source) Warningf(format string, args ...any) {
	s.l.Log(s.name, fmt.Sprintf(format, args...), Warning)
}

func (s *Source) Errorf(format string, args ...any) {
	s.l.Log(s.name, fmt.Sprintf(format, args...), Error)
}

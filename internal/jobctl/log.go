package jobctl

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func jobField(j *Job) zap.Field {
	return zap.Inline(jobFields(j))
}

// jobFields is an inlined group of a Job's log fields: its command text
// and its TraceID, the correlation key tying together the zap lines an
// Engine emits for that Job (spawn, continue, termination by signal, and
// the warnings of the foreground/background transitions).
func jobFields(j *Job) zapcore.ObjectMarshalerFunc {
	return func(enc zapcore.ObjectEncoder) error {
		enc.AddString("job", j.Command)
		enc.AddString("trace_id", j.TraceID.String())
		return nil
	}
}

func errField(err error) zap.Field {
	return zap.Error(err)
}

package logsvc

import (
	"context"
	"fmt"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"
	"go.uber.org/zap"

	"github.com/trezcool/autolearn/core"
)

// RollbarLogger reports to rollbar (when enabled) and always writes through a zap logger.
type RollbarLogger struct {
	sugar *zap.SugaredLogger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(sugar *zap.SugaredLogger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{sugar: sugar}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// Close flushes pending rollbar items and zap buffers.
func (l RollbarLogger) Close() {
	rollbar.Close()
	_ = l.sugar.Sync()
}

// item is a log entry ready for rollbar and zap.
type item struct {
	ctx    context.Context // carries the rollbar person
	err    error
	extras map[string]interface{}
	zapKVs []interface{}
}

// expected fmt: msg | error, map[string]interface{}, core.Person
func (l RollbarLogger) prepare(args []interface{}) item {
	it := item{
		ctx:    context.Background(),
		extras: make(map[string]interface{}),
		zapKVs: make([]interface{}, 0, len(args)*2),
	}
	var personSet bool
	for i, arg := range args {
		switch v := arg.(type) {
		case core.Person:
			// only set one Person
			if !personSet && v.Session != "" {
				it.ctx = rollbar.NewPersonContext(it.ctx, &rollbar.Person{Id: v.Session})
				personSet = true
				it.zapKVs = append(it.zapKVs, "session", v.Session)
			}
		case error:
			if it.err == nil {
				it.err = v
			} else {
				it.extras[fmt.Sprintf("error%d", i)] = v.Error()
			}
			it.zapKVs = append(it.zapKVs, "error", fmt.Sprintf("%+v", v))
		case map[string]interface{}:
			for k, val := range v {
				it.extras[k] = val
				it.zapKVs = append(it.zapKVs, k, val)
			}
		default:
			key := fmt.Sprintf("arg%d", i)
			it.extras[key] = v
			it.zapKVs = append(it.zapKVs, key, v)
		}
	}
	return it
}

// report sends msg to rollbar. The person travels in the item context, never in the shared client.
func (l RollbarLogger) report(level, msg string, it item) {
	if it.err == nil {
		rollbar.MessageWithExtrasAndContext(it.ctx, level, msg, it.extras)
		return
	}
	it.extras["message"] = msg
	rollbar.ErrorWithExtrasAndContext(it.ctx, level, it.err, it.extras)
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	it := l.prepare(args)
	l.report(rollbar.DEBUG, msg, it)
	l.sugar.Debugw(msg, it.zapKVs...)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	it := l.prepare(args)
	l.report(rollbar.INFO, msg, it)
	l.sugar.Infow(msg, it.zapKVs...)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	it := l.prepare(args)
	l.report(rollbar.WARN, msg, it)
	l.sugar.Warnw(msg, it.zapKVs...)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	it := l.prepare(args)
	l.report(rollbar.ERR, msg, it)
	l.sugar.Errorw(msg, it.zapKVs...)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	it := l.prepare(args)
	l.report(rollbar.CRIT, msg, it)
	rollbar.Wait()
	l.sugar.Fatalw(msg, it.zapKVs...)
}

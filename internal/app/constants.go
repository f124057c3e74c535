package app

import "github.com/heroiclabs/nakama-common/runtime"

// EngineIDField is the logger field carrying the engine or match id.
const EngineIDField = "match_id"

// nopLogger is used when the caller does not provide a runtime.Logger.
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (n nopLogger) WithField(string, interface{}) runtime.Logger {
	return n
}
func (n nopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return n
}
func (nopLogger) Fields() map[string]interface{} {
	return nil
}

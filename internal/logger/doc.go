// Package logger wraps zap for the simulation binaries:
//   - a global sugared logger writing a console format to stdout,
//   - an atomic level that settings and flags can change at runtime,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - leveled helpers (Info, InfoKV, Warnf, ErrorKV, ...).
//
// Services carry the logger in their context and name it after themselves,
// so every line shows which part of the simulation produced it.
package logger

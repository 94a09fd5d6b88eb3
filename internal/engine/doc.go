// Package engine runs batches of file encryptions and decryptions against a vault.
//
// A batch resolves its patterns into a flat worklist of Results, runs one worker
// per Result and forwards the workers' progress messages to a single sink.
// Failures are isolated per file and recorded on the Result that owns them.
package engine

// Package history persists every successful generation, newest first.
package history

import "french_vocab_trainer/generator"

// Record is one generation event.
type Record struct {
	Topic   string            `json:"tema"`
	Level   generator.Level   `json:"nivel"`
	Entries []generator.Entry `json:"contenido"`
}

// Log is the full history, most recent first.
type Log []Record

// Store loads and prepends history records. Implementations never report
// failures to the caller: an unreadable log loads as empty and a failed write
// is only logged.
type Store interface {
	LoadAll() Log
	Prepend(topic string, level generator.Level, entries []generator.Entry)
}

func newRecord(topic string, level generator.Level, entries []generator.Entry) Record {
	if entries == nil {
		entries = []generator.Entry{}
	}
	return Record{Topic: topic, Level: level, Entries: entries}
}

func prepend(log Log, rec Record) Log {
	out := make(Log, 0, len(log)+1)
	out = append(out, rec)
	return append(out, log...)
}

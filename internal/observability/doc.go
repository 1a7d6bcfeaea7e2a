// Package observability provides event logging, metrics calculation, and
// outbound contact notifications for the task board. It uses structured
// JSON Lines (JSONL) for event persistence and derives metrics on-demand
// from the event log.
package observability

// Package dictionary looks words up in the Korean Basic Dictionary
// (krdict) search API and keeps the answers in a SQLite cache so each
// word is only requested once.
package dictionary

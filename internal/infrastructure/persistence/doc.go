// Package persistence holds the in-memory public-key directory. Entries live
// in a go-cache store without expiration and vanish with the process.
package persistence

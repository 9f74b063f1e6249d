// Package parallel splits a frame into horizontal strips and evaluates the
// strips concurrently.
//
// Strips are disjoint row ranges of the same grid, so the tracers that own
// them never touch the same pixel and need no locking. The driver joins on
// all strips before returning; a frame is never observed half-written by the
// caller that started it.
package parallel

// Package clock abstracts wall-clock reads and one-shot scheduling so that
// timer bookkeeping can be driven deterministically in tests.
//
// System is backed by time.AfterFunc. Fake holds a manually advanced time and
// fires due callbacks synchronously from Advance, in deadline order.
package clock

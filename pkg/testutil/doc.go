// Package testutil provides helpers for tests that build KiCad profiles
// and library directories on a types.FS, usually the in-memory one from
// filesystem.NewMemory.
//
// Helpers fail the test immediately on filesystem errors, so test bodies
// only deal with the behavior under test.
package testutil

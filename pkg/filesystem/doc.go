// Package filesystem provides filesystem implementations for kilm.
//
// Both the real filesystem and the in-memory one used by tests are served by
// spf13/afero behind the types.FS interface, so the engine's atomic
// temp-file-then-rename writes behave the same way in both.
package filesystem

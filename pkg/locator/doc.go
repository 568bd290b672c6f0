// Package locator finds the artifacts kilm edits.
//
// A KiCad profile is found by trying an ordered list of strategies, each
// naming a candidate root directory. A root qualifies when it, or its
// newest version directory, holds at least one library table.
//
// A repository's hook file is found by walking up to the .git entry and
// resolving the hooks directory through core.hooksPath, linked worktree
// indirection, or the conventional .git/hooks.
package locator

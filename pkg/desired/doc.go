// Package desired builds the DesiredState the merge engine reconciles
// against.
//
// Two sources exist. BuildSetup scans a library directory
// (symbols/*.kicad_sym and footprints/*.pretty) and asks for every library
// found, its path variables and optionally its pins. LoadDeclaration reads
// a YAML declaration file listing ensure, remove, pin, env and hook
// requests explicitly.
package desired

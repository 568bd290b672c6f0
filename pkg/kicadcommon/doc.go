// Package kicadcommon edits KiCad's kicad_common.json.
//
// Only the keys kilm owns are touched: the pinned symbol and footprint
// library lists under "session" and the path variables under
// "environment.vars". Everything else, including key order, survives a
// rewrite. Comments and trailing commas are tolerated on read.
package kicadcommon

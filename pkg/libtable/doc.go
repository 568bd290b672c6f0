// Package libtable reads and writes KiCad library tables (sym-lib-table
// and fp-lib-table).
//
// A table is an s-expression:
//
//	(sym_lib_table
//	  (version 7)
//	  (lib (name "Device")(type "KiCad")(uri "${KICAD8_SYMBOL_DIR}/Device.kicad_sym")(options "")(descr ""))
//	)
//
// Decoding keeps every top-level block together with its exact source
// bytes. (lib ...) blocks become library entries; everything else, including
// lib records that cannot be understood, is carried through untouched.
// Encoding re-emits untouched blocks byte for byte and only renders the
// entries that were added or changed, in a fixed field order.
package libtable

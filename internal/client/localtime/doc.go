// Package localtime renders fixture kick-off times and account timestamps in
// the viewer's locale and time zone.
//
// The locale only selects a date-time layout (see layouts); it is resolved
// with golang.org/x/text/language matching, so "en-AU" falls back to the
// closest supported variant and unknown tags fall back to en-US.
//
// Match times arrive from the backend as separate date, time and timezone
// strings. FormatMatchTime never returns an empty string: input it cannot
// understand is returned trimmed, as typed.
package localtime

// Package datefmt formats times using date-fns style patterns, such as
// "yyyyMMdd" or "yyyy-MM-dd'T'HH:mm".
//
// Rule documents written for the desktop application store date patterns in
// this syntax, so it is kept as-is instead of translating documents to Go
// reference layouts.
//
// Supported fields:
//
//	y, yyyy  year            yy    two digit year
//	M, MM    month number    MMM   short month name   MMMM  full month name
//	d, dd    day of month    D, DDD day of year
//	E..EEE   short weekday   EEEE  full weekday
//	H, HH    hour (0-23)     h, hh hour (1-12)        a     AM/PM
//	m, mm    minute          s, ss second             S..SSS fraction of second
//
// Text between single quotes is copied verbatim, and two single quotes produce
// one literal quote. Other letters are copied unchanged.
package datefmt

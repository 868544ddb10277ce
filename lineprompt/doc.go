// Package lineprompt is a line-oriented terminal backend. Every question is
// one prompt line read from an io.Reader; nothing is redrawn, so it works
// over pipes, in CI logs and on dumb terminals.
//
// # Transcript
//
//	? Name [Ada]: Grace
//	? Age: abc
//	! Enter a whole number
//	? Age: 36
//	? Role
//	  1) Guest
//	  2) Administrator
//	Choose one [1]: 2
//
// An empty line accepts the value in brackets. Menus are numbered from 1;
// multiple choices take several numbers separated by commas or spaces, and
// "-" chooses nothing. End of input or a line reading ":q" cancels the
// interview.
//
//	answers, err := lineprompt.NewBackend().Collect(ctx, def, nil)
package lineprompt

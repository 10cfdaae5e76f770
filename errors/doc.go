/*
Package errors implements the error taxonomy shared by all htlc packages.

Every failure returned by this module wraps one of the root errors declared
with Register. A root error carries a numeric code that is unique across the
whole program, so a client can tell outcomes apart without parsing messages.
Extensions declare their own root errors in an errors.go file, using a code
range reserved for them.

Create instances at the point of failure using Wrap, Wrapf or ErrXyz.Newf so
that a stack trace is attached. Only the innermost wrap records the stack.
Do not declare wrapped errors as package level variables, the recorded
stack trace would be useless.

Once you have an error, you can use fmt to get more context
	%s is just the error message
	%+v is the message followed by the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors

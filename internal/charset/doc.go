// Package charset provides the character class alphabets shared by the
// strength estimator and the password generator, together with the
// classification and alphabet-sizing helpers used for entropy estimates.
//
// A Profile records which classes occur in a string. Size converts a
// Profile into an upper-bound alphabet size using a set of Weights; the
// default weights assume 26 lowercase, 26 uppercase, 10 digit and 33
// symbol characters, plus a flat bump of 1000 when any rune lies outside
// the ASCII range.
package charset

// Package diagnostic collects the warnings and errors found while loading a
// configuration and generating its object.
//
// Library packages never log. They record findings here and the command
// decides how to report them.
package diagnostic

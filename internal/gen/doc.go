// Package gen renders options as one Kotlin object declaration.
//
// Generation validates every name first, converts every value to its literal
// through text/template, and only then touches the output directory, which is
// replaced as a whole. A failed run leaves the previous output in place.
//
// The generated file looks like:
//
//	package com.example
//
//	object BuildMark
//	{
//	    val VERSION = "1.0.2"
//	}
package gen

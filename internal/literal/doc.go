// Package literal converts typed values to Kotlin source literals and back.
//
// Format renders a value.Value as an expression that, compiled by kotlinc,
// evaluates to an equal value. Conversion is a structural match over the
// closed value.Value type; Convert additionally accepts native Go values and
// adapts them with value.FromGo first.
//
// Literal forms:
//   - scalars use Kotlin literal syntax with the suffix the type needs
//     (42, 42L, 7u, 7uL, 2.5f, 'x', "text")
//   - Byte and Short are widened to Int, UByte and UShort are narrowed back
//     with toUByte()/toUShort()
//   - values with no literal spelling use the stdlib constant
//     (Int.MIN_VALUE, Double.NaN, Float.POSITIVE_INFINITY)
//   - collections use the stdlib builders (listOf, setOf, mapOf, arrayOf,
//     intArrayOf, ...) with elements in input order
//   - pairs use the infix form (first to second)
//
// Parse reads the same subset back, which makes the conversion testable
// without a Kotlin toolchain.
package literal

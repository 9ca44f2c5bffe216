// Package value models the typed values that can be embedded in a generated
// Kotlin object.
//
// Value is a closed sum type: each Kotlin type with a literal form has exactly
// one Go type here (Int32 for Int, Uint64 for ULong, List for listOf, ...).
// Callers build values directly:
//
//	value.Map{
//		{Key: value.String("retries"), Value: value.Int32(3)},
//		{Key: value.String("ratio"), Value: value.Float32(0.5)},
//	}
//
// or adapt native Go values with FromGo.
package value

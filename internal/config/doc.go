// Package config loads the buildmark project file.
//
// The file is YAML, JSON or TOML, chosen by extension. Option values keep
// their document order and are typed by the YAML core schema, with local tags
// selecting any other kind:
//
//	options:
//	  VERSION: 1.0.2            # String
//	  BUILD_NUMBER: 42          # Int
//	  MASK: !ulong 0xFFFF       # ULong
//	  TAGS: !set [x, y]         # Set<String>
//	  PIXELS: !intArray [1, 2]  # IntArray
//
// JSON and TOML spell a tag as a single member object: {"$ulong": 65535}.
package config

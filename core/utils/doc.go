// Package utils holds small conversion helpers for loosely typed values,
// such as catalog payloads decoded into maps and settings stored as text.
package utils

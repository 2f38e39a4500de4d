// Package rules holds the per-field checkers that decide how a document field is
// validated and folded into a target record.
//
// A Checker receives the resolution Scope, the field name, the value found in the
// document being merged (absent during the defaulting pass) and the value merged so
// far (absent if no earlier document set it). It returns the new merged value.
package rules

// Package caret implements the caret/mark model of the hex view.
//
// State transitions are pure functions (TryCaret, TryMark, NormalizeShift)
// that either return the next State or a *VetoError; Model applies them to a
// window.Window, turning pages when the caret leaves the loaded page. A vetoed
// transition leaves the Model and its window exactly as they were.
//
// Addresses are absolute byte addresses in the source. The bit shift is the
// sub-byte read offset applied when the window is decoded.
package caret

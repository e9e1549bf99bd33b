//go:build !debug

package engine

func debugLog(string, ...any) {}

// Package mmap provides read-only memory-mapped file access.
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) via golang.org/x/sys/unix
//   - Windows: CreateFileMapping/MapViewOfFile
//
// Callers must not touch the slice returned by Bytes after Close.
package mmap

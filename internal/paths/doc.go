// Package paths provides platform-appropriate default paths for imgshrink.
//
// The cache directory follows XDG conventions on Linux and platform-native
// conventions on macOS and Windows; the output directory defaults to a
// subdirectory of the project root being optimized.
package paths

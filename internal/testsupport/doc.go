// Package testsupport holds fixtures shared by package tests: temp-dir
// configs, stub binaries, file writers, and sample commentary.
package testsupport

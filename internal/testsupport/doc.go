// Package testsupport builds throwaway configurations, stub media tools and
// fixture files for package tests.
package testsupport

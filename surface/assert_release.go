//go:build !navdebug

package surface

const debugAssertions = false

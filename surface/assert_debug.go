//go:build navdebug

package surface

const debugAssertions = true

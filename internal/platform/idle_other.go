//go:build !linux && !windows && !darwin

package platform

func newIdleProvider() IdleProvider {
	return unsupportedIdleProvider{}
}

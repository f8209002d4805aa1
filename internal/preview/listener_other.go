//go:build !unix

package preview

import "syscall"

// The runtime already arranges for restart-friendly binds on these platforms.
func reuseAddrControl(network, address string, conn syscall.RawConn) error {
	return nil
}

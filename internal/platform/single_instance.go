package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"sync"
	"time"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const activationTimeout = time.Second

// InstanceGuard holds the single-instance lock. A second launch connects to
// the guard's port, which is reported on Activations.
type InstanceGuard struct {
	listener    net.Listener
	address     string
	activations chan struct{}
	done        chan struct{}
	closeOnce   sync.Once
}

// AcquireSingleInstance binds a localhost port derived from appName. When the
// port is taken the running instance is pinged and an error wrapping
// ErrAlreadyRunning is returned.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		notifyRunning(address)
		return nil, fmt.Errorf("%w on %s", ErrAlreadyRunning, address)
	}

	guard := &InstanceGuard{
		listener:    listener,
		address:     address,
		activations: make(chan struct{}, 1),
		done:        make(chan struct{}),
	}
	go guard.accept()
	return guard, nil
}

// Activations fires when another launch found this instance running.
func (guard *InstanceGuard) Activations() <-chan struct{} {
	return guard.activations
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	var err error
	guard.closeOnce.Do(func() {
		err = guard.listener.Close()
		<-guard.done
	})
	return err
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

func (guard *InstanceGuard) accept() {
	defer close(guard.done)
	for {
		conn, err := guard.listener.Accept()
		if err != nil {
			return
		}
		_ = conn.Close()
		select {
		case guard.activations <- struct{}{}:
		default:
		}
	}
}

func notifyRunning(address string) {
	conn, err := net.DialTimeout("tcp", address, activationTimeout)
	if err != nil {
		return
	}
	_ = conn.Close()
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}

package s3

import (
	"net/http"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jmgilman/vfs/errors"
)

type initState int

const (
	stateUninitialized initState = iota
	stateInitializing
	stateReady
)

// subsystem is the process-wide S3 state shared by every client created
// without an explicit minio.Client.
var subsystem = struct {
	mu        sync.Mutex
	cond      *sync.Cond
	state     initState
	transport *http.Transport
	creds     *credentials.Credentials
}{}

func init() {
	subsystem.cond = sync.NewCond(&subsystem.mu)
}

// newTransport builds the shared HTTP transport. Replaced in tests.
var newTransport = minio.DefaultTransport

// EnsureInitialized initializes the S3 subsystem if it is not ready yet.
// Concurrent callers block until a single initialization finishes. A failed
// initialization leaves the subsystem uninitialized so a later call can
// retry.
func EnsureInitialized() error {
	subsystem.mu.Lock()
	for subsystem.state == stateInitializing {
		subsystem.cond.Wait()
	}
	if subsystem.state == stateReady {
		subsystem.mu.Unlock()
		return nil
	}
	subsystem.state = stateInitializing
	subsystem.mu.Unlock()

	transport, err := newTransport(true)

	subsystem.mu.Lock()
	defer subsystem.mu.Unlock()
	defer subsystem.cond.Broadcast()

	if err != nil {
		subsystem.state = stateUninitialized
		return errors.Wrap(err, errors.CodeInternal, "failed to initialize S3 subsystem")
	}
	subsystem.transport = transport
	subsystem.creds = credentials.NewChainCredentials([]credentials.Provider{
		&credentials.EnvAWS{},
		&credentials.EnvMinio{},
		&credentials.FileAWSCredentials{},
		&credentials.IAM{Client: &http.Client{Transport: transport}},
	})
	subsystem.state = stateReady
	return nil
}

// IsInitialized reports whether the S3 subsystem is ready.
func IsInitialized() bool {
	subsystem.mu.Lock()
	defer subsystem.mu.Unlock()
	return subsystem.state == stateReady
}

// Finalize releases the shared transport. Filesystems created before the
// call keep working on their own clients; new ones require another
// EnsureInitialized.
func Finalize() {
	subsystem.mu.Lock()
	defer subsystem.mu.Unlock()
	for subsystem.state == stateInitializing {
		subsystem.cond.Wait()
	}
	if subsystem.state != stateReady {
		return
	}
	subsystem.transport.CloseIdleConnections()
	subsystem.transport = nil
	subsystem.creds = nil
	subsystem.state = stateUninitialized
}

// shared returns the process-wide transport and default credentials.
func shared() (*http.Transport, *credentials.Credentials, error) {
	subsystem.mu.Lock()
	defer subsystem.mu.Unlock()
	if subsystem.state != stateReady {
		return nil, nil, errors.New(errors.CodeInvalidConfig, "S3 subsystem is not initialized, call s3.EnsureInitialized first")
	}
	return subsystem.transport, subsystem.creds, nil
}

// Package hdfs provides a core.FileSystem backed by the Hadoop Distributed
// File System through the native colinmarc/hdfs client.
//
// The filesystem itself is only compiled with the "hdfs" build tag. Options
// and URI parsing are always available so callers can validate HDFS URIs
// in any build.
package hdfs

import (
	"net"
	"net/url"
	"strconv"

	"github.com/jmgilman/vfs/errors"
)

// DefaultPort is the namenode RPC port used when a URI does not carry one.
const DefaultPort = 8020

const defaultReplication = 3

// Options holds HDFS connection configuration.
type Options struct {
	// Host is the namenode host. ViewFS URIs keep their "viewfs://" prefix.
	Host string

	// Port is the namenode RPC port. Default: 8020.
	Port int

	// User is the HDFS user to act as. Empty uses the client default.
	User string

	// Replication is the replication factor of created files. Default: 3.
	Replication int

	// BufferSize is the client buffer size hint in bytes. Zero uses the
	// client default.
	BufferSize int

	// BlockSize is the block size of created files in bytes. Zero uses the
	// cluster default.
	BlockSize int64

	// KerberosTicket is the path of a Kerberos credential cache. When set
	// the client authenticates with Kerberos.
	KerberosTicket string
}

// validate checks if the options are usable.
func (o *Options) validate() error {
	if o.Host == "" {
		return errors.New(errors.CodeInvalidConfig, "namenode host is required")
	}
	if o.Port < 0 || o.Port > 65535 {
		return errors.Newf(errors.CodeInvalidConfig, "invalid namenode port %d", o.Port)
	}
	if o.Replication < 0 {
		return errors.New(errors.CodeInvalidConfig, "replication must not be negative")
	}
	if o.BufferSize < 0 || o.BlockSize < 0 {
		return errors.New(errors.CodeInvalidConfig, "buffer and block sizes must not be negative")
	}
	return nil
}

// Address returns the namenode address in host:port form.
func (o *Options) Address() string {
	port := o.Port
	if port == 0 {
		port = DefaultPort
	}
	return net.JoinHostPort(o.Host, strconv.Itoa(port))
}

func (o *Options) replication() int {
	if o.Replication == 0 {
		return defaultReplication
	}
	return o.Replication
}

// OptionsFromURI builds Options from an hdfs:// or viewfs:// URI.
//
// The recognized query keys are "user", "replication", "buffer_size",
// "default_block_size" and "kerb_ticket". User info, when present, names
// the user; a "user" query key overrides it.
func OptionsFromURI(u *url.URL) (Options, error) {
	opts := Options{Port: DefaultPort}

	switch u.Scheme {
	case "hdfs":
		opts.Host = u.Hostname()
	case "viewfs":
		opts.Host = "viewfs://" + u.Hostname()
	default:
		return Options{}, errors.Newf(errors.CodeInvalidInput, "expected an hdfs or viewfs URI, got '%s'", u.Redacted())
	}

	if port := u.Port(); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			return Options{}, errors.Wrapf(err, errors.CodeInvalidInput, "invalid port in HDFS URI '%s'", u.Redacted())
		}
		opts.Port = n
	}
	if u.User != nil {
		opts.User = u.User.Username()
	}

	for key, values := range u.Query() {
		value := ""
		if len(values) > 0 {
			value = values[len(values)-1]
		}

		var err error
		switch key {
		case "user":
			opts.User = value
		case "kerb_ticket":
			opts.KerberosTicket = value
		case "replication":
			opts.Replication, err = strconv.Atoi(value)
		case "buffer_size":
			opts.BufferSize, err = strconv.Atoi(value)
		case "default_block_size":
			opts.BlockSize, err = strconv.ParseInt(value, 10, 64)
		default:
			return Options{}, errors.WithContext(
				errors.Newf(errors.CodeInvalidInput, "Unexpected query parameter in HDFS URI: '%s'", key),
				"uri", u.Redacted(),
			)
		}
		if err != nil {
			return Options{}, errors.Wrapf(err, errors.CodeInvalidInput, "invalid value for '%s' in HDFS URI", key)
		}
	}

	if err := opts.validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

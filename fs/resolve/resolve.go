// Package resolve maps filesystem URIs to core.FileSystem instances.
//
// The URI scheme selects the backend and the rest of the URI is turned into
// the path inside it:
//
//	file:///tmp/data        local disk, path "/tmp/data"
//	mock:///a/b             fresh in-memory filesystem, path "a/b"
//	s3://bucket/key         S3, path "bucket/key"
//	hdfs://namenode/data    HDFS (build tag "hdfs"), path "/data"
//
// Scheme matching is exact and case-sensitive. Backends that were compiled
// out report errors.CodeNotImplemented; unknown schemes report
// errors.CodeInvalidInput.
package resolve

import (
	"log/slog"
	"net/url"
	"runtime"
	"time"

	"github.com/jmgilman/vfs/errors"
	"github.com/jmgilman/vfs/fs/billy"
	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/hdfs"
	"github.com/jmgilman/vfs/fs/internal/pathutil"
)

// S3Defaults fills in S3 connection settings a URI leaves unset.
type S3Defaults struct {
	Endpoint     string `yaml:"endpoint"`
	Region       string `yaml:"region"`
	Scheme       string `yaml:"scheme"`
	AccessKey    string `yaml:"access_key"`
	SecretKey    string `yaml:"secret_key"`
	SessionToken string `yaml:"session_token"`
}

// Resolver resolves URIs to filesystems.
type Resolver struct {
	logger     *slog.Logger
	now        func() time.Time
	s3Defaults S3Defaults
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used to report resolutions.
// Default: discard.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClock sets the clock stamping mock filesystems with their creation
// time. Default: time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

// WithS3Defaults sets connection settings applied to s3:// URIs that do
// not specify them.
func WithS3Defaults(d S3Defaults) Option {
	return func(r *Resolver) {
		r.s3Defaults = d
	}
}

// New creates a Resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultResolver = New()

// FromURI resolves uri with the default resolver.
func FromURI(uri string) (core.FileSystem, string, error) {
	return defaultResolver.FromURI(uri)
}

// FromURIOrPath resolves uriOrPath with the default resolver.
func FromURIOrPath(uriOrPath string) (core.FileSystem, string, error) {
	return defaultResolver.FromURIOrPath(uriOrPath)
}

// FromURI returns a new filesystem for uri and the path the URI addresses
// inside it.
func (r *Resolver) FromURI(uri string) (core.FileSystem, string, error) {
	u, err := parseURI(uri)
	if err != nil {
		return nil, "", err
	}
	return r.fromParsed(u, uri)
}

// FromURIOrPath is FromURI that also accepts absolute local paths, which
// resolve to the local filesystem. Input that does not parse as a URI is
// reported as is; a URI that names no usable filesystem is reported as
// errors.CodeInvalidInput.
func (r *Resolver) FromURIOrPath(uriOrPath string) (core.FileSystem, string, error) {
	if pathutil.IsAbsolute(uriOrPath) {
		p := pathutil.ToSlashes(uriOrPath)
		r.logger.Debug("resolved filesystem", "scheme", "file", "type", core.FSTypeLocal.String(), "path", p)
		return billy.NewLocal(), p, nil
	}

	u, err := parseURI(uriOrPath)
	if err != nil {
		return nil, "", err
	}
	fsys, p, err := r.fromParsed(u, uriOrPath)
	if err != nil {
		return nil, "", errors.Wrapf(err, errors.CodeInvalidInput,
			"Expected URI or absolute local path, got '%s'", uriOrPath)
	}
	return fsys, p, nil
}

func (r *Resolver) fromParsed(u *url.URL, uri string) (core.FileSystem, string, error) {
	fsys, p, err := r.resolve(u, uri)
	if err != nil {
		r.logger.Debug("filesystem resolution failed", "uri", uri, "error", err)
		return nil, "", err
	}
	r.logger.Debug("resolved filesystem", "scheme", u.Scheme, "type", fsys.Type().String(), "path", p)
	return fsys, p, nil
}

func (r *Resolver) resolve(u *url.URL, uri string) (core.FileSystem, string, error) {
	switch u.Scheme {
	case "file":
		return billy.NewLocal(), localPath(u.Path), nil

	case "hdfs", "viewfs":
		if !hdfs.Enabled {
			return nil, "", errors.New(errors.CodeNotImplemented, "Got HDFS URI but compiled without HDFS support")
		}
		opts, err := hdfs.OptionsFromURI(u)
		if err != nil {
			return nil, "", err
		}
		fsys, err := hdfs.New(opts)
		if err != nil {
			return nil, "", err
		}
		return fsys, u.Path, nil

	case "s3":
		return r.resolveS3(u)

	case "mock":
		return billy.NewMemory(billy.WithEpoch(r.now())), pathutil.RemoveLeadingSlash(u.Path), nil
	}

	return nil, "", errors.WithContext(
		errors.Newf(errors.CodeInvalidInput, "Unrecognized filesystem type '%s' in URI: %s", u.Scheme, uri),
		"scheme", u.Scheme,
	)
}

// parseURI parses uri keeping the scheme exactly as written. On Windows a
// "file:" URI written with backslashes is accepted too.
func parseURI(uri string) (*url.URL, error) {
	u, err := url.Parse(uri)
	if err != nil && runtime.GOOS == "windows" {
		if retry, retryErr := url.Parse(pathutil.ToSlashes(uri)); retryErr == nil && rawScheme(uri) == "file" {
			u, err = retry, nil
		}
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeInvalidInput, "Cannot parse URI: '%s'", uri)
	}

	// url.Parse lowercases the scheme; dispatch is case-sensitive.
	u.Scheme = rawScheme(uri)
	return u, nil
}

// rawScheme returns the scheme of uri as written, or "" when uri has none.
func rawScheme(uri string) string {
	for i, c := range uri {
		switch {
		case 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' || c == '+' || c == '-' || c == '.':
			if i == 0 {
				return ""
			}
		case c == ':':
			return uri[:i]
		default:
			return ""
		}
	}
	return ""
}

// localPath converts the path of a file: URI to a local path. On Windows
// the slash in front of a drive letter is dropped.
func localPath(p string) string {
	p = pathutil.ToSlashes(p)
	if runtime.GOOS == "windows" && len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		return p[1:]
	}
	return p
}

// Capability describes whether a URI scheme can be resolved.
type Capability struct {
	Scheme  string
	Type    core.FSType
	Enabled bool
}

// Capabilities lists the schemes the resolver knows and whether their
// backend was compiled in.
func Capabilities() []Capability {
	return []Capability{
		{Scheme: "file", Type: core.FSTypeLocal, Enabled: true},
		{Scheme: "mock", Type: core.FSTypeMemory, Enabled: true},
		{Scheme: "s3", Type: core.FSTypeObjectStore, Enabled: s3Enabled},
		{Scheme: "hdfs", Type: core.FSTypeDistributed, Enabled: hdfs.Enabled},
		{Scheme: "viewfs", Type: core.FSTypeDistributed, Enabled: hdfs.Enabled},
	}
}

// Supports reports whether scheme is known and compiled in.
func Supports(scheme string) bool {
	for _, c := range Capabilities() {
		if c.Scheme == scheme {
			return c.Enabled
		}
	}
	return false
}

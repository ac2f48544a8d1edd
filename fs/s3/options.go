package s3

import (
	"net/url"

	"github.com/minio/minio-go/v7"

	"github.com/jmgilman/vfs/errors"
	"github.com/jmgilman/vfs/fs/internal/pathutil"
)

const (
	defaultEndpoint           = "s3.amazonaws.com"
	defaultScheme             = "https"
	defaultMultipartThreshold = 5 * 1024 * 1024
	defaultMoveConcurrency    = 10
)

// Options holds S3 filesystem configuration.
type Options struct {
	// Endpoint is the host[:port] of the S3 service. Empty means AWS.
	Endpoint string

	// Region is the bucket region. Empty lets the client discover it.
	Region string

	// Scheme is "https" (default) or "http".
	Scheme string

	// AccessKey, SecretKey and SessionToken are static credentials.
	// When AccessKey is empty the default credential chain is used.
	AccessKey    string
	SecretKey    string
	SessionToken string

	// Client is an optional pre-configured client.
	// If provided, the connection fields above are ignored.
	Client *minio.Client

	// MultipartThreshold is the number of buffered bytes after which an
	// output stream switches to a streaming upload. Default: 5MB.
	MultipartThreshold int64

	// MaxMoveConcurrency limits concurrent object operations during
	// directory moves and batch deletes. Default: 10.
	MaxMoveConcurrency int
}

// validate checks if the options are usable.
func (o *Options) validate() error {
	if o.MultipartThreshold < 0 {
		return errors.New(errors.CodeInvalidConfig, "multipart threshold must not be negative")
	}
	if o.MaxMoveConcurrency < 0 {
		return errors.New(errors.CodeInvalidConfig, "move concurrency must not be negative")
	}
	if o.Client != nil {
		return nil
	}

	switch o.Scheme {
	case "", "http", "https":
	default:
		return errors.Newf(errors.CodeInvalidConfig, "invalid S3 connection scheme '%s'", o.Scheme)
	}
	if (o.AccessKey == "") != (o.SecretKey == "") {
		return errors.New(errors.CodeInvalidConfig, "access key and secret key must be set together")
	}
	if o.SessionToken != "" && o.AccessKey == "" {
		return errors.New(errors.CodeInvalidConfig, "session token requires an access key")
	}
	return nil
}

func (o *Options) endpoint() string {
	if o.Endpoint == "" {
		return defaultEndpoint
	}
	return o.Endpoint
}

func (o *Options) secure() bool {
	return o.Scheme != "http"
}

func (o *Options) multipartThreshold() int64 {
	if o.MultipartThreshold == 0 {
		return defaultMultipartThreshold
	}
	return o.MultipartThreshold
}

func (o *Options) moveConcurrency() int {
	if o.MaxMoveConcurrency == 0 {
		return defaultMoveConcurrency
	}
	return o.MaxMoveConcurrency
}

// OptionsFromURI builds Options from an s3:// URI and returns the path the
// URI addresses, in "bucket/key" form without a trailing slash.
//
// The URI host is the bucket. User info becomes static credentials. The
// query keys "region", "scheme" and "endpoint_override" are recognized;
// any other key is rejected.
func OptionsFromURI(u *url.URL) (Options, string, error) {
	bucket := u.Host
	p := u.Path

	if bucket == "" {
		if p != "" {
			return Options{}, "", errors.Newf(errors.CodeInvalidInput, "Missing bucket name in S3 URI '%s'", u.Redacted())
		}
	} else {
		if p == "" {
			p = bucket
		} else {
			if p[0] != '/' {
				return Options{}, "", errors.Newf(errors.CodeInvalidInput, "S3 URI should be absolute, not relative: '%s'", u.Redacted())
			}
			p = bucket + p
		}
	}

	opts := Options{Scheme: defaultScheme}
	if u.User != nil {
		opts.AccessKey = u.User.Username()
		opts.SecretKey, _ = u.User.Password()
	}

	for key, values := range u.Query() {
		value := ""
		if len(values) > 0 {
			value = values[len(values)-1]
		}
		switch key {
		case "region":
			opts.Region = value
		case "scheme":
			opts.Scheme = value
		case "endpoint_override":
			opts.Endpoint = value
		default:
			return Options{}, "", errors.WithContext(
				errors.Newf(errors.CodeInvalidInput, "Unexpected query parameter in S3 URI: '%s'", key),
				"uri", u.Redacted(),
			)
		}
	}

	if err := opts.validate(); err != nil {
		return Options{}, "", err
	}
	return opts, pathutil.RemoveTrailingSlash(p), nil
}

//go:build !nos3

package resolve

import (
	"net/url"

	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/s3"
)

const s3Enabled = true

func (r *Resolver) resolveS3(u *url.URL) (core.FileSystem, string, error) {
	if err := s3.EnsureInitialized(); err != nil {
		return nil, "", err
	}

	opts, p, err := s3.OptionsFromURI(u)
	if err != nil {
		return nil, "", err
	}
	r.applyS3Defaults(&opts, u)

	fsys, err := s3.New(opts)
	if err != nil {
		return nil, "", err
	}
	return fsys, p, nil
}

// applyS3Defaults copies the resolver defaults into settings the URI left
// unset.
func (r *Resolver) applyS3Defaults(opts *s3.Options, u *url.URL) {
	d := r.s3Defaults
	query := u.Query()

	if opts.Endpoint == "" {
		opts.Endpoint = d.Endpoint
	}
	if opts.Region == "" {
		opts.Region = d.Region
	}
	if !query.Has("scheme") && d.Scheme != "" {
		opts.Scheme = d.Scheme
	}
	if u.User == nil && d.AccessKey != "" {
		opts.AccessKey = d.AccessKey
		opts.SecretKey = d.SecretKey
		opts.SessionToken = d.SessionToken
	}
}

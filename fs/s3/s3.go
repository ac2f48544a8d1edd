// Package s3 provides an S3-compatible implementation of core.FileSystem
// on top of minio-go.
//
// Paths have the form "bucket/key". The root "" lists buckets, buckets are
// top-level directories, and directories inside a bucket are virtual: a
// key prefix is a directory when any object lives below it. CreateDir
// writes empty "key/" marker objects so empty directories survive.
//
// Clients created from Options share a process-wide HTTP transport and
// credential chain, set up by EnsureInitialized.
package s3

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/sync/errgroup"

	"github.com/jmgilman/vfs/errors"
	"github.com/jmgilman/vfs/fs/core"
)

// FileSystem implements core.FileSystem for S3-compatible object storage.
type FileSystem struct {
	client             *minio.Client
	region             string
	multipartThreshold int64
	concurrency        int
}

var _ core.FileSystem = (*FileSystem)(nil)

// New creates an S3-backed filesystem.
// Unless opts.Client is set the S3 subsystem must be initialized.
func New(opts Options) (*FileSystem, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	client := opts.Client
	if client == nil {
		transport, creds, err := shared()
		if err != nil {
			return nil, err
		}
		if opts.AccessKey != "" {
			creds = credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, opts.SessionToken)
		}

		client, err = minio.New(opts.endpoint(), &minio.Options{
			Creds:     creds,
			Secure:    opts.secure(),
			Transport: transport,
			Region:    opts.Region,
		})
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInvalidConfig, "failed to create S3 client")
		}
	}

	return &FileSystem{
		client:             client,
		region:             opts.Region,
		multipartThreshold: opts.multipartThreshold(),
		concurrency:        opts.moveConcurrency(),
	}, nil
}

// Client returns the underlying minio client.
func (f *FileSystem) Client() *minio.Client {
	return f.client
}

// Type returns FSTypeObjectStore.
func (f *FileSystem) Type() core.FSType {
	return core.FSTypeObjectStore
}

// NormalizePath validates p and removes trailing slashes.
func (f *FileSystem) NormalizePath(p string) (string, error) {
	loc, err := parseLocation(p)
	if err != nil {
		return "", err
	}
	return loc.String(), nil
}

// GetInfo returns the metadata of p.
func (f *FileSystem) GetInfo(p string) (core.FileInfo, error) {
	loc, err := parseLocation(p)
	if err != nil {
		return core.FileInfo{}, err
	}
	return f.stat(context.Background(), loc)
}

func (f *FileSystem) stat(ctx context.Context, loc location) (core.FileInfo, error) {
	p := loc.String()

	switch {
	case loc.isRoot():
		return core.NewFileInfo("", core.FileTypeDirectory), nil
	case loc.isBucket():
		ok, err := f.client.BucketExists(ctx, loc.bucket)
		if err != nil {
			return core.FileInfo{}, pathError("stat", p, err)
		}
		if !ok {
			return core.NewFileInfo(p, core.FileTypeNotFound), nil
		}
		return core.NewFileInfo(p, core.FileTypeDirectory), nil
	}

	obj, err := f.client.StatObject(ctx, loc.bucket, loc.key, minio.StatObjectOptions{})
	if err == nil {
		return core.FileInfo{
			Path:    p,
			Type:    core.FileTypeFile,
			Size:    obj.Size,
			ModTime: obj.LastModified,
		}, nil
	}
	if !isNotFound(err) {
		return core.FileInfo{}, pathError("stat", p, err)
	}

	ok, err := f.dirExists(ctx, loc)
	if err != nil {
		return core.FileInfo{}, err
	}
	if !ok {
		return core.NewFileInfo(p, core.FileTypeNotFound), nil
	}
	return core.NewFileInfo(p, core.FileTypeDirectory), nil
}

// dirExists reports whether any object, marker included, lives below loc.
func (f *FileSystem) dirExists(ctx context.Context, loc location) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for object := range f.client.ListObjects(ctx, loc.bucket, minio.ListObjectsOptions{
		Prefix:  loc.prefix(),
		MaxKeys: 1,
	}) {
		if object.Err != nil {
			if isNotFound(object.Err) {
				return false, nil
			}
			return false, pathError("stat", loc.String(), object.Err)
		}
		return true, nil
	}
	return false, nil
}

// GetInfos lists the entries selected by sel in lexical order, depth first.
func (f *FileSystem) GetInfos(sel core.FileSelector) ([]core.FileInfo, error) {
	loc, err := parseLocation(sel.BaseDir)
	if err != nil {
		return nil, err
	}
	ctx := context.Background()

	info, err := f.stat(ctx, loc)
	if err != nil {
		return nil, err
	}
	switch info.Type {
	case core.FileTypeNotFound:
		if sel.AllowNotFound {
			return []core.FileInfo{}, nil
		}
		return nil, core.PathError("list", sel.BaseDir, core.ErrNotExist)
	case core.FileTypeFile:
		return nil, core.PathError("list", sel.BaseDir, core.ErrInvalid)
	}

	out := []core.FileInfo{}
	if loc.isRoot() {
		err = f.listBuckets(ctx, sel, &out)
	} else {
		err = f.list(ctx, loc, sel, 1, &out)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (f *FileSystem) listBuckets(ctx context.Context, sel core.FileSelector, out *[]core.FileInfo) error {
	buckets, err := f.client.ListBuckets(ctx)
	if err != nil {
		return pathError("list", "", err)
	}
	slices.SortFunc(buckets, func(a, b minio.BucketInfo) int {
		return strings.Compare(a.Name, b.Name)
	})

	for _, bucket := range buckets {
		loc := location{bucket: bucket.Name}
		info := core.NewFileInfo(loc.String(), core.FileTypeDirectory)
		info.ModTime = bucket.CreationDate
		*out = append(*out, info)

		if sel.Descend(1) {
			if err := f.list(ctx, loc, sel, 2, out); err != nil {
				return err
			}
		}
	}
	return nil
}

// list appends the children of dir, using delimiter listings so common
// prefixes come back as directories.
func (f *FileSystem) list(ctx context.Context, dir location, sel core.FileSelector, depth int, out *[]core.FileInfo) error {
	prefix := dir.prefix()

	var objects []minio.ObjectInfo
	for object := range f.client.ListObjects(ctx, dir.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	}) {
		if object.Err != nil {
			return pathError("list", dir.String(), object.Err)
		}
		// Skip the directory marker itself
		if object.Key == prefix {
			continue
		}
		objects = append(objects, object)
	}

	name := func(o minio.ObjectInfo) string {
		return strings.TrimSuffix(strings.TrimPrefix(o.Key, prefix), "/")
	}
	slices.SortFunc(objects, func(a, b minio.ObjectInfo) int {
		return strings.Compare(name(a), name(b))
	})

	for _, object := range objects {
		child := dir.child(name(object))

		if strings.HasSuffix(object.Key, "/") {
			*out = append(*out, core.NewFileInfo(child.String(), core.FileTypeDirectory))
			if sel.Descend(depth) {
				if err := f.list(ctx, child, sel, depth+1, out); err != nil {
					return err
				}
			}
			continue
		}

		*out = append(*out, core.FileInfo{
			Path:    child.String(),
			Type:    core.FileTypeFile,
			Size:    object.Size,
			ModTime: object.LastModified,
		})
	}
	return nil
}

// GetInfosForPaths returns the metadata of each path, stopping at the first
// failure.
func (f *FileSystem) GetInfosForPaths(paths []string) ([]core.FileInfo, error) {
	return core.GetInfosForPaths(f, paths)
}

// CreateDir creates a bucket or writes directory markers. Directories are
// virtual, so a missing parent inside a bucket is not an error; recursive
// also marks every ancestor and creates the bucket when needed.
func (f *FileSystem) CreateDir(p string, recursive bool) error {
	loc, err := parseLocation(p)
	if err != nil {
		return err
	}
	ctx := context.Background()

	if loc.isRoot() {
		return nil
	}
	if loc.isBucket() {
		return f.createBucket(ctx, loc.bucket)
	}

	info, err := f.stat(ctx, loc)
	if err != nil {
		return err
	}
	switch info.Type {
	case core.FileTypeDirectory:
		return nil
	case core.FileTypeFile:
		return core.PathError("mkdir", p, core.ErrExist)
	}

	if !recursive {
		ok, err := f.client.BucketExists(ctx, loc.bucket)
		if err != nil {
			return pathError("mkdir", p, err)
		}
		if !ok {
			return core.PathError("mkdir", p, core.ErrNotExist)
		}
		return f.putMarker(ctx, loc)
	}

	if err := f.createBucket(ctx, loc.bucket); err != nil {
		return err
	}
	parts := strings.Split(loc.key, "/")
	for i := range parts {
		ancestor := location{bucket: loc.bucket, key: strings.Join(parts[:i+1], "/")}
		if err := f.putMarker(ctx, ancestor); err != nil {
			return err
		}
	}
	return nil
}

func (f *FileSystem) createBucket(ctx context.Context, bucket string) error {
	ok, err := f.client.BucketExists(ctx, bucket)
	if err != nil {
		return pathError("mkdir", bucket, err)
	}
	if ok {
		return nil
	}

	err = f.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: f.region})
	if err != nil && minio.ToErrorResponse(err).Code != "BucketAlreadyOwnedByYou" {
		return pathError("mkdir", bucket, err)
	}
	return nil
}

// putMarker writes the empty "key/" object marking loc as a directory.
func (f *FileSystem) putMarker(ctx context.Context, loc location) error {
	_, err := f.client.PutObject(ctx, loc.bucket, loc.prefix(), bytes.NewReader(nil), 0, minio.PutObjectOptions{
		ContentType: "application/x-directory",
	})
	return pathError("mkdir", loc.String(), err)
}

// ensureParent keeps the parent of loc alive as a directory after loc is
// removed from it.
func (f *FileSystem) ensureParent(ctx context.Context, loc location) error {
	parent := loc.parent()
	if parent.key == "" {
		return nil
	}
	ok, err := f.dirExists(ctx, parent)
	if err != nil || ok {
		return err
	}
	return f.putMarker(ctx, parent)
}

// requireDir fails unless loc is an existing directory.
func (f *FileSystem) requireDir(ctx context.Context, op string, loc location) error {
	info, err := f.stat(ctx, loc)
	if err != nil {
		return err
	}
	switch info.Type {
	case core.FileTypeNotFound:
		return core.PathError(op, loc.String(), core.ErrNotExist)
	case core.FileTypeDirectory:
		return nil
	default:
		return core.PathError(op, loc.String(), core.ErrInvalid)
	}
}

// requireFile fails unless loc is an existing object.
func (f *FileSystem) requireFile(ctx context.Context, op string, loc location) (core.FileInfo, error) {
	if loc.key == "" {
		return core.FileInfo{}, core.PathError(op, loc.String(), core.ErrInvalid)
	}
	info, err := f.stat(ctx, loc)
	if err != nil {
		return core.FileInfo{}, err
	}
	switch info.Type {
	case core.FileTypeNotFound:
		return core.FileInfo{}, core.PathError(op, loc.String(), core.ErrNotExist)
	case core.FileTypeFile:
		return info, nil
	default:
		return core.FileInfo{}, core.PathError(op, loc.String(), core.ErrInvalid)
	}
}

// DeleteDir deletes a directory and every object below it. Deleting a
// bucket removes its objects first. The root cannot be deleted.
func (f *FileSystem) DeleteDir(p string) error {
	loc, err := parseLocation(p)
	if err != nil {
		return err
	}
	if loc.isRoot() {
		return core.PathError("rmdir", p, core.ErrInvalid)
	}
	ctx := context.Background()

	if err := f.requireDir(ctx, "rmdir", loc); err != nil {
		return err
	}
	if err := f.removePrefix(ctx, loc, ""); err != nil {
		return err
	}
	if loc.isBucket() {
		return pathError("rmdir", p, f.client.RemoveBucket(ctx, loc.bucket))
	}
	return f.ensureParent(ctx, loc)
}

// DeleteDirContents deletes every object below a directory and keeps the
// directory itself. Buckets cannot be deleted wholesale from the root.
func (f *FileSystem) DeleteDirContents(p string) error {
	loc, err := parseLocation(p)
	if err != nil {
		return err
	}
	if loc.isRoot() {
		return errors.New(errors.CodeNotImplemented, "cannot delete all S3 buckets")
	}
	ctx := context.Background()

	if err := f.requireDir(ctx, "rmdir", loc); err != nil {
		return err
	}
	if err := f.removePrefix(ctx, loc, loc.prefix()); err != nil {
		return err
	}
	if loc.isBucket() {
		return nil
	}
	return f.putMarker(ctx, loc)
}

// removePrefix batch-deletes every object below loc except keep.
func (f *FileSystem) removePrefix(ctx context.Context, loc location, keep string) error {
	objectsCh := make(chan minio.ObjectInfo, 100)

	var listErr error
	go func() {
		defer close(objectsCh)
		for object := range f.client.ListObjects(ctx, loc.bucket, minio.ListObjectsOptions{
			Prefix:    loc.prefix(),
			Recursive: true,
		}) {
			if object.Err != nil {
				listErr = object.Err
				return
			}
			if keep != "" && object.Key == keep {
				continue
			}
			objectsCh <- object
		}
	}()

	var first error
	for result := range f.client.RemoveObjects(ctx, loc.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if result.Err != nil && first == nil {
			first = result.Err
		}
	}

	if listErr != nil {
		return pathError("rmdir", loc.String(), listErr)
	}
	return pathError("rmdir", loc.String(), first)
}

// DeleteFile deletes a single object.
func (f *FileSystem) DeleteFile(p string) error {
	loc, err := parseLocation(p)
	if err != nil {
		return err
	}
	ctx := context.Background()

	if _, err := f.requireFile(ctx, "remove", loc); err != nil {
		return err
	}
	if err := f.client.RemoveObject(ctx, loc.bucket, loc.key, minio.RemoveObjectOptions{}); err != nil {
		return pathError("remove", p, err)
	}
	return f.ensureParent(ctx, loc)
}

// DeleteFiles deletes every path concurrently. All deletions are attempted;
// the error of the earliest failing path is returned.
func (f *FileSystem) DeleteFiles(paths []string) error {
	results := make([]error, len(paths))

	var g errgroup.Group
	g.SetLimit(f.concurrency)
	for i, p := range paths {
		g.Go(func() error {
			results[i] = f.DeleteFile(p)
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range results {
		if err != nil {
			return err
		}
	}
	return nil
}

// Move renames an object or a directory tree. Directory moves copy every
// object in parallel and delete the sources once all copies succeeded.
func (f *FileSystem) Move(src, dest string) error {
	from, err := parseLocation(src)
	if err != nil {
		return err
	}
	to, err := parseLocation(dest)
	if err != nil {
		return err
	}
	if from.key == "" || to.key == "" {
		return errors.Newf(errors.CodeNotImplemented, "cannot move buckets: '%s' -> '%s'", src, dest)
	}
	if from == to {
		return nil
	}
	ctx := context.Background()

	info, err := f.stat(ctx, from)
	if err != nil {
		return err
	}
	target, err := f.stat(ctx, to)
	if err != nil {
		return err
	}

	switch info.Type {
	case core.FileTypeNotFound:
		return core.PathError("move", src, core.ErrNotExist)
	case core.FileTypeFile:
		if target.IsDir() {
			return core.PathError("move", dest, core.ErrExist)
		}
		if err := f.copyObject(ctx, from, to); err != nil {
			return pathError("move", src, err)
		}
		if err := f.client.RemoveObject(ctx, from.bucket, from.key, minio.RemoveObjectOptions{}); err != nil {
			return pathError("move", src, err)
		}
		return f.ensureParent(ctx, from)
	}

	if to.within(from) {
		return core.PathError("move", dest, core.ErrInvalid)
	}
	if target.IsFile() {
		return core.PathError("move", dest, core.ErrExist)
	}

	copied, err := f.parallelCopy(ctx, from, to)
	if err != nil {
		return pathError("move", src, err)
	}
	if err := f.removeKeys(ctx, from.bucket, copied); err != nil {
		return pathError("move", src, err)
	}
	return f.ensureParent(ctx, from)
}

func (f *FileSystem) copyObject(ctx context.Context, from, to location) error {
	_, err := f.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: to.bucket, Object: to.key},
		minio.CopySrcOptions{Bucket: from.bucket, Object: from.key},
	)
	return err
}

// parallelCopy copies every object below from to the same relative key
// below to, bounded by the configured concurrency, and returns the copied
// source keys.
func (f *FileSystem) parallelCopy(ctx context.Context, from, to location) ([]string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(f.concurrency)

	var copiedMu sync.Mutex
	var copied []string

	oldPrefix, newPrefix := from.prefix(), to.prefix()
	for object := range f.client.ListObjects(egCtx, from.bucket, minio.ListObjectsOptions{
		Prefix:    oldPrefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			_ = eg.Wait()
			return copied, object.Err
		}

		objectKey := object.Key
		eg.Go(func() error {
			newKey := newPrefix + strings.TrimPrefix(objectKey, oldPrefix)
			_, err := f.client.CopyObject(egCtx,
				minio.CopyDestOptions{Bucket: to.bucket, Object: newKey},
				minio.CopySrcOptions{Bucket: from.bucket, Object: objectKey},
			)
			if err != nil {
				return err
			}

			copiedMu.Lock()
			copied = append(copied, objectKey)
			copiedMu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return copied, err
	}
	return copied, nil
}

// removeKeys batch-deletes keys from bucket and returns the first failure.
func (f *FileSystem) removeKeys(ctx context.Context, bucket string, keys []string) error {
	toDelete := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		toDelete <- minio.ObjectInfo{Key: key}
	}
	close(toDelete)

	var first error
	for result := range f.client.RemoveObjects(ctx, bucket, toDelete, minio.RemoveObjectsOptions{}) {
		if result.Err != nil && first == nil {
			first = result.Err
		}
	}
	return first
}

// CopyFile copies a single object with a server-side copy.
func (f *FileSystem) CopyFile(src, dest string) error {
	from, err := parseLocation(src)
	if err != nil {
		return err
	}
	to, err := parseLocation(dest)
	if err != nil {
		return err
	}
	ctx := context.Background()

	if _, err := f.requireFile(ctx, "copy", from); err != nil {
		return err
	}
	if to.key == "" {
		return core.PathError("copy", dest, core.ErrInvalid)
	}
	return pathError("copy", src, f.copyObject(ctx, from, to))
}

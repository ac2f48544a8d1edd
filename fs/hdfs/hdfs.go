//go:build hdfs

package hdfs

import (
	"errors"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/colinmarc/hdfs/v2"
	krb "github.com/jcmturner/gokrb5/v8/client"
	krbconfig "github.com/jcmturner/gokrb5/v8/config"
	"github.com/jcmturner/gokrb5/v8/credentials"

	vfserrors "github.com/jmgilman/vfs/errors"
	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/internal/pathutil"
)

// Enabled reports whether HDFS support is compiled in.
const Enabled = true

// FileSystem implements core.FileSystem on top of an HDFS client.
// Paths are absolute HDFS paths; a missing leading slash is implied.
type FileSystem struct {
	client      *hdfs.Client
	replication int
	blockSize   int64
}

var _ core.FileSystem = (*FileSystem)(nil)

// New connects to the namenode described by opts.
func New(opts Options) (*FileSystem, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if strings.HasPrefix(opts.Host, "viewfs://") {
		return nil, vfserrors.Newf(vfserrors.CodeNotImplemented, "viewfs mount tables are not supported: '%s'", opts.Host)
	}

	clientOpts := hdfs.ClientOptions{
		Addresses: []string{opts.Address()},
		User:      opts.User,
	}
	if opts.KerberosTicket != "" {
		kc, err := kerberosClient(opts.KerberosTicket)
		if err != nil {
			return nil, err
		}
		clientOpts.KerberosClient = kc
		clientOpts.KerberosServicePrincipleName = "nn/_HOST"
	}

	client, err := hdfs.NewClient(clientOpts)
	if err != nil {
		return nil, vfserrors.WithContext(
			vfserrors.Wrap(err, vfserrors.CodeIO, "failed to connect to namenode"),
			"address", opts.Address(),
		)
	}

	return &FileSystem{
		client:      client,
		replication: opts.replication(),
		blockSize:   opts.BlockSize,
	}, nil
}

// kerberosClient builds a Kerberos client from a credential cache, using
// KRB5_CONFIG or /etc/krb5.conf for the realm configuration.
func kerberosClient(ticket string) (*krb.Client, error) {
	confPath := os.Getenv("KRB5_CONFIG")
	if confPath == "" {
		confPath = "/etc/krb5.conf"
	}
	cfg, err := krbconfig.Load(confPath)
	if err != nil {
		return nil, vfserrors.Wrapf(err, vfserrors.CodeInvalidConfig, "failed to load kerberos config %s", confPath)
	}
	ccache, err := credentials.LoadCCache(ticket)
	if err != nil {
		return nil, vfserrors.Wrapf(err, vfserrors.CodeInvalidConfig, "failed to load kerberos ticket %s", ticket)
	}
	kc, err := krb.NewFromCCache(ccache, cfg)
	if err != nil {
		return nil, vfserrors.Wrap(err, vfserrors.CodeInvalidConfig, "failed to create kerberos client")
	}
	return kc, nil
}

// Close closes the connection to the namenode.
func (f *FileSystem) Close() error {
	return f.client.Close()
}

// Type returns FSTypeDistributed.
func (f *FileSystem) Type() core.FSType {
	return core.FSTypeDistributed
}

// hdfsPath converts an abstract path to an absolute HDFS path.
func hdfsPath(p string) string {
	return "/" + pathutil.RemoveLeadingSlash(pathutil.Normalize(p))
}

// stat returns the metadata of p, or nil when p does not exist.
func (f *FileSystem) stat(p string) (os.FileInfo, error) {
	info, err := f.client.Stat(hdfsPath(p))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return info, err
}

func toInfo(p string, info os.FileInfo) core.FileInfo {
	out := core.FileInfo{Path: p, Size: core.NoSize, ModTime: info.ModTime()}
	if info.IsDir() {
		out.Type = core.FileTypeDirectory
	} else {
		out.Type = core.FileTypeFile
		out.Size = info.Size()
	}
	return out
}

// NormalizePath cleans p.
func (f *FileSystem) NormalizePath(p string) (string, error) {
	return pathutil.Normalize(p), nil
}

// GetInfo returns the metadata of p.
func (f *FileSystem) GetInfo(p string) (core.FileInfo, error) {
	info, err := f.stat(p)
	if err != nil {
		return core.FileInfo{}, err
	}
	if info == nil {
		return core.NewFileInfo(pathutil.Normalize(p), core.FileTypeNotFound), nil
	}
	return toInfo(pathutil.Normalize(p), info), nil
}

// GetInfos lists the entries selected by sel in lexical order, depth first.
func (f *FileSystem) GetInfos(sel core.FileSelector) ([]core.FileInfo, error) {
	info, err := f.stat(sel.BaseDir)
	if err != nil {
		return nil, err
	}
	if info == nil {
		if sel.AllowNotFound {
			return []core.FileInfo{}, nil
		}
		return nil, core.PathError("list", sel.BaseDir, core.ErrNotExist)
	}
	if !info.IsDir() {
		return nil, core.PathError("list", sel.BaseDir, core.ErrInvalid)
	}

	out := []core.FileInfo{}
	if err := f.list(pathutil.Normalize(sel.BaseDir), sel, 1, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (f *FileSystem) list(dir string, sel core.FileSelector, depth int, out *[]core.FileInfo) error {
	entries, err := f.client.ReadDir(hdfsPath(dir))
	if err != nil {
		return err
	}
	slices.SortFunc(entries, func(a, b os.FileInfo) int {
		return strings.Compare(a.Name(), b.Name())
	})

	for _, entry := range entries {
		p := pathutil.JoinKey(strings.TrimSuffix(dir, "/"), entry.Name())
		*out = append(*out, toInfo(p, entry))
		if entry.IsDir() && sel.Descend(depth) {
			if err := f.list(p, sel, depth+1, out); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetInfosForPaths returns the metadata of each path, stopping at the first
// failure.
func (f *FileSystem) GetInfosForPaths(paths []string) ([]core.FileInfo, error) {
	return core.GetInfosForPaths(f, paths)
}

// CreateDir creates the directory p. Without recursive the parent must
// already exist.
func (f *FileSystem) CreateDir(p string, recursive bool) error {
	info, err := f.stat(p)
	if err != nil {
		return err
	}
	if info != nil {
		if info.IsDir() {
			return nil
		}
		return core.PathError("mkdir", p, core.ErrExist)
	}
	if recursive {
		return f.client.MkdirAll(hdfsPath(p), 0o755)
	}
	return f.client.Mkdir(hdfsPath(p), 0o755)
}

func (f *FileSystem) require(op, p string, dir bool) error {
	info, err := f.stat(p)
	if err != nil {
		return err
	}
	if info == nil {
		return core.PathError(op, p, core.ErrNotExist)
	}
	if info.IsDir() != dir {
		return core.PathError(op, p, core.ErrInvalid)
	}
	return nil
}

// DeleteDir deletes the directory p and its contents. The root cannot be
// deleted.
func (f *FileSystem) DeleteDir(p string) error {
	if hdfsPath(p) == "/" {
		return core.PathError("rmdir", p, core.ErrInvalid)
	}
	if err := f.require("rmdir", p, true); err != nil {
		return err
	}
	return f.client.RemoveAll(hdfsPath(p))
}

// DeleteDirContents deletes everything below the directory p.
func (f *FileSystem) DeleteDirContents(p string) error {
	if err := f.require("rmdir", p, true); err != nil {
		return err
	}
	dir := hdfsPath(p)
	entries, err := f.client.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := f.client.RemoveAll(pathutil.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// DeleteFile deletes the file p.
func (f *FileSystem) DeleteFile(p string) error {
	if err := f.require("remove", p, false); err != nil {
		return err
	}
	return f.client.Remove(hdfsPath(p))
}

// DeleteFiles deletes every path and returns the first error.
func (f *FileSystem) DeleteFiles(paths []string) error {
	return core.DeleteFiles(f, paths)
}

// Move renames src to dest, replacing dest if it is a file.
func (f *FileSystem) Move(src, dest string) error {
	info, err := f.stat(src)
	if err != nil {
		return err
	}
	if info == nil {
		return core.PathError("move", src, core.ErrNotExist)
	}
	return f.client.Rename(hdfsPath(src), hdfsPath(dest))
}

// CopyFile copies the file src to dest by streaming it through the client.
func (f *FileSystem) CopyFile(src, dest string) error {
	if err := f.require("copy", src, false); err != nil {
		return err
	}
	in, err := f.client.Open(hdfsPath(src))
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := f.create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// OpenInputStream opens the file p for sequential reading.
func (f *FileSystem) OpenInputStream(p string) (core.InputStream, error) {
	return f.OpenInputFile(p)
}

// OpenInputFile opens the file p for random-access reading.
func (f *FileSystem) OpenInputFile(p string) (core.InputFile, error) {
	if err := f.require("open", p, false); err != nil {
		return nil, err
	}
	r, err := f.client.Open(hdfsPath(p))
	if err != nil {
		return nil, err
	}
	return &inputFile{FileReader: r}, nil
}

// OpenOutputStream creates or truncates the file p.
func (f *FileSystem) OpenOutputStream(p string) (core.OutputStream, error) {
	info, err := f.stat(p)
	if err != nil {
		return nil, err
	}
	if info != nil && info.IsDir() {
		return nil, core.PathError("create", p, core.ErrInvalid)
	}
	w, err := f.create(p)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// OpenAppendStream opens the file p for appending, creating it if needed.
func (f *FileSystem) OpenAppendStream(p string) (core.OutputStream, error) {
	info, err := f.stat(p)
	if err != nil {
		return nil, err
	}
	if info != nil && info.IsDir() {
		return nil, core.PathError("append", p, core.ErrInvalid)
	}

	var w *hdfs.FileWriter
	if info == nil {
		w, err = f.create(p)
	} else {
		w, err = f.client.Append(hdfsPath(p))
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

// create writes a new file at p, replacing any existing file.
func (f *FileSystem) create(p string) (*hdfs.FileWriter, error) {
	name := hdfsPath(p)
	if err := f.client.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if parent := pathutil.Parent(name); parent != "" {
		if err := f.client.MkdirAll(parent, 0o755); err != nil {
			return nil, err
		}
	}
	if f.blockSize > 0 {
		return f.client.CreateFile(name, f.replication, f.blockSize, 0o644)
	}
	return f.client.Create(name)
}

// inputFile adds Size to *hdfs.FileReader.
type inputFile struct {
	*hdfs.FileReader
}

// Size returns the file size recorded when the file was opened.
func (i *inputFile) Size() (int64, error) {
	return i.Stat().Size(), nil
}

var _ core.InputFile = (*inputFile)(nil)

package s3

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"

	"github.com/jmgilman/vfs/fs/core"
)

// OpenInputStream opens an object for sequential reading.
func (f *FileSystem) OpenInputStream(p string) (core.InputStream, error) {
	return f.OpenInputFile(p)
}

// OpenInputFile opens an object for random-access reading. Reads are served
// by ranged GET requests.
func (f *FileSystem) OpenInputFile(p string) (core.InputFile, error) {
	loc, err := parseLocation(p)
	if err != nil {
		return nil, err
	}
	ctx := context.Background()

	info, err := f.requireFile(ctx, "open", loc)
	if err != nil {
		return nil, err
	}
	object, err := f.client.GetObject(ctx, loc.bucket, loc.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, pathError("open", p, err)
	}
	return &inputFile{object: object, name: p, size: info.Size}, nil
}

// OpenOutputStream creates or replaces an object. The object becomes
// visible when the stream is closed.
func (f *FileSystem) OpenOutputStream(p string) (core.OutputStream, error) {
	loc, err := parseLocation(p)
	if err != nil {
		return nil, err
	}
	if loc.key == "" {
		return nil, core.PathError("create", p, core.ErrInvalid)
	}

	ok, err := f.dirExists(context.Background(), loc)
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, core.PathError("create", p, core.ErrInvalid)
	}
	return newOutputStream(f, loc), nil
}

// OpenAppendStream is not supported by object storage.
func (f *FileSystem) OpenAppendStream(p string) (core.OutputStream, error) {
	return nil, core.PathError("append", p, core.ErrUnsupported)
}

// inputFile adapts *minio.Object to core.InputFile.
type inputFile struct {
	object *minio.Object
	name   string
	size   int64
}

// Read implements io.Reader.
func (i *inputFile) Read(p []byte) (int, error) {
	n, err := i.object.Read(p)
	if err == nil || err == io.EOF {
		return n, err
	}
	return n, pathError("read", i.name, err)
}

// ReadAt implements io.ReaderAt.
func (i *inputFile) ReadAt(p []byte, off int64) (int, error) {
	n, err := i.object.ReadAt(p, off)
	if err == nil || err == io.EOF {
		return n, err
	}
	return n, pathError("readat", i.name, err)
}

// Seek implements io.Seeker.
func (i *inputFile) Seek(offset int64, whence int) (int64, error) {
	pos, err := i.object.Seek(offset, whence)
	if err != nil {
		return pos, pathError("seek", i.name, err)
	}
	return pos, nil
}

// Close implements io.Closer.
func (i *inputFile) Close() error {
	return i.object.Close()
}

// Size returns the object size observed when the file was opened.
func (i *inputFile) Size() (int64, error) {
	return i.size, nil
}

// outputStream buffers writes until the multipart threshold is exceeded,
// then streams the remainder through a pipe into a background PutObject.
type outputStream struct {
	fs   *FileSystem
	loc  location
	name string

	buffer *bytes.Buffer
	pipeW  *io.PipeWriter
	putRes chan error
	closed bool
}

func newOutputStream(f *FileSystem, loc location) *outputStream {
	return &outputStream{
		fs:     f,
		loc:    loc,
		name:   loc.String(),
		buffer: new(bytes.Buffer),
	}
}

// Write implements io.Writer.
func (o *outputStream) Write(p []byte) (int, error) {
	if o.closed {
		return 0, core.PathError("write", o.name, core.ErrClosed)
	}

	if o.pipeW != nil {
		n, err := o.pipeW.Write(p)
		if err != nil {
			return n, core.PathError("write", o.name, err)
		}
		return n, nil
	}

	if int64(o.buffer.Len()+len(p)) <= o.fs.multipartThreshold {
		return o.buffer.Write(p)
	}
	return o.startStreaming(p)
}

// startStreaming starts a background upload fed by a pipe and flushes the
// buffered bytes into it.
//
//nolint:contextcheck // io.Writer.Write cannot accept a context
func (o *outputStream) startStreaming(p []byte) (int, error) {
	pr, pw := io.Pipe()
	o.pipeW = pw
	o.putRes = make(chan error, 1)

	go func() {
		_, err := o.fs.client.PutObject(context.Background(), o.loc.bucket, o.loc.key, pr, -1,
			minio.PutObjectOptions{ContentType: "application/octet-stream"})
		_ = pr.CloseWithError(err)
		o.putRes <- err
		close(o.putRes)
	}()

	if o.buffer.Len() > 0 {
		if _, err := pw.Write(o.buffer.Bytes()); err != nil {
			return 0, core.PathError("write", o.name, err)
		}
	}
	o.buffer = nil

	n, err := pw.Write(p)
	if err != nil {
		return n, core.PathError("write", o.name, err)
	}
	return n, nil
}

// Close uploads buffered data or waits for the streaming upload to finish.
// Closing twice is a no-op.
func (o *outputStream) Close() error {
	if o.closed {
		return nil
	}
	o.closed = true

	if o.pipeW != nil {
		_ = o.pipeW.Close()
		return pathError("close", o.name, <-o.putRes)
	}

	_, err := o.fs.client.PutObject(context.Background(), o.loc.bucket, o.loc.key,
		bytes.NewReader(o.buffer.Bytes()), int64(o.buffer.Len()),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	return pathError("close", o.name, err)
}

// Compile-time interface checks.
var (
	_ core.InputFile    = (*inputFile)(nil)
	_ core.OutputStream = (*outputStream)(nil)
)

// memfs implements an in-memory fs.FS
// Used to feed fragment sources to the loader without touching disk.
package memfs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"time"
)

type file struct {
	name    string
	content []byte
	modTime time.Time
	isDir   bool
}

// FS is a read-only in-memory file system keyed by slash separated paths.
type FS struct {
	files map[string]*file
}

var _ fs.FS = &FS{}

// New builds an FS from a map of path to contents. Parent directories are created
// implicitly.
func New(m map[string]string) (*FS, error) {
	mfs := &FS{files: make(map[string]*file)}
	mfs.files["."] = &file{name: ".", isDir: true}

	now := time.Now()
	for p, s := range m {
		p = path.Clean(p)
		if !fs.ValidPath(p) {
			return nil, fmt.Errorf("invalid memfs path %q", p)
		}
		for d := path.Dir(p); d != "."; d = path.Dir(d) {
			mfs.files[d] = &file{name: path.Base(d), modTime: now, isDir: true}
		}
		mfs.files[p] = &file{name: path.Base(p), content: []byte(s), modTime: now}
	}
	return mfs, nil
}

func (mfs *FS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	f, ok := mfs.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return &handle{file: f}, nil
}

type handle struct {
	*file
	offset int
}

func (h *handle) Stat() (fs.FileInfo, error) { return h.file, nil }

func (h *handle) Read(b []byte) (int, error) {
	if h.isDir {
		return 0, errors.New("cannot read a directory")
	}
	if h.offset >= len(h.content) {
		return 0, io.EOF
	}
	n := copy(b, h.content[h.offset:])
	h.offset += n
	return n, nil
}

func (h *handle) Close() error { return nil }

func (f *file) Name() string       { return f.name }
func (f *file) Size() int64        { return int64(len(f.content)) }
func (f *file) ModTime() time.Time { return f.modTime }
func (f *file) IsDir() bool        { return f.isDir }
func (f *file) Sys() interface{}   { return nil }

func (f *file) Mode() fs.FileMode {
	if f.isDir {
		return fs.ModeDir | 0755
	}
	return 0644
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmgilman/vfs/errors"
	"github.com/jmgilman/vfs/fs/core"
)

// entry is the JSON form of a core.FileInfo.
type entry struct {
	Path    string     `json:"path"`
	Type    string     `json:"type"`
	Size    *int64     `json:"size,omitempty"`
	ModTime *time.Time `json:"mtime,omitempty"`
}

func newEntry(info core.FileInfo) entry {
	e := entry{Path: info.Path, Type: info.Type.String()}
	if info.Size != core.NoSize {
		size := info.Size
		e.Size = &size
	}
	if !info.ModTime.IsZero() {
		mtime := info.ModTime.UTC()
		e.ModTime = &mtime
	}
	return e
}

// printInfos writes infos as a JSON array or as one tab-separated line per
// entry.
func (a *app) printInfos(w io.Writer, infos []core.FileInfo) error {
	if a.opts.json {
		entries := make([]entry, 0, len(infos))
		for _, info := range infos {
			entries = append(entries, newEntry(info))
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	for _, info := range infos {
		size := "-"
		if info.Size != core.NoSize {
			size = fmt.Sprintf("%d", info.Size)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", info.Type, size, info.Path); err != nil {
			return err
		}
	}
	return nil
}

func newLsCommand(a *app) *cobra.Command {
	var (
		recursive     bool
		depth         int
		allowNotFound bool
	)

	cmd := &cobra.Command{
		Use:   "ls URI",
		Short: "List the entries of a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys, p, err := a.open(args[0])
			if err != nil {
				return err
			}
			infos, err := fsys.GetInfos(core.FileSelector{
				BaseDir:       p,
				AllowNotFound: allowNotFound,
				Recursive:     recursive,
				MaxRecursion:  depth,
			})
			if err != nil {
				return err
			}
			a.logger.Debug("listed directory", "path", p, "entries", len(infos))
			return a.printInfos(cmd.OutOrStdout(), infos)
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "list the whole tree")
	cmd.Flags().IntVar(&depth, "max-depth", 0, "limit recursion depth (0 means unlimited)")
	cmd.Flags().BoolVar(&allowNotFound, "allow-missing", false, "print nothing instead of failing when the directory does not exist")
	return cmd
}

func newStatCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stat URI...",
		Short: "Show the type, size and modification time of paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys, paths, err := a.openMany(args)
			if err != nil {
				return err
			}
			infos, err := fsys.GetInfosForPaths(paths)
			if err != nil {
				return err
			}
			return a.printInfos(cmd.OutOrStdout(), infos)
		},
	}
}

func newCatCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cat URI",
		Short: "Write the contents of a file to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys, p, err := a.open(args[0])
			if err != nil {
				return err
			}
			in, err := fsys.OpenInputStream(p)
			if err != nil {
				return err
			}
			defer in.Close()

			n, err := io.Copy(cmd.OutOrStdout(), in)
			if err != nil {
				return errors.Wrapf(err, errors.CodeIO, "failed to read %s", args[0])
			}
			a.logger.Debug("read file", "path", p, "bytes", n)
			return nil
		},
	}
}

func newPutCommand(a *app) *cobra.Command {
	var appendMode bool

	cmd := &cobra.Command{
		Use:   "put URI",
		Short: "Write stdin to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys, p, err := a.open(args[0])
			if err != nil {
				return err
			}

			var out core.OutputStream
			if appendMode {
				out, err = fsys.OpenAppendStream(p)
			} else {
				out, err = fsys.OpenOutputStream(p)
			}
			if err != nil {
				return err
			}

			n, err := io.Copy(out, cmd.InOrStdin())
			if err != nil {
				_ = out.Close()
				return errors.Wrapf(err, errors.CodeIO, "failed to write %s", args[0])
			}
			if err := out.Close(); err != nil {
				return err
			}
			a.logger.Debug("wrote file", "path", p, "bytes", n, "append", appendMode)
			return nil
		},
	}

	cmd.Flags().BoolVar(&appendMode, "append", false, "append to the file instead of replacing it")
	return cmd
}

func newMkdirCommand(a *app) *cobra.Command {
	var parents bool

	cmd := &cobra.Command{
		Use:   "mkdir URI",
		Short: "Create a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			fsys, p, err := a.open(args[0])
			if err != nil {
				return err
			}
			return fsys.CreateDir(p, parents)
		},
	}

	cmd.Flags().BoolVarP(&parents, "parents", "p", false, "create missing parent directories")
	return cmd
}

func newRmCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm URI...",
		Short: "Delete files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			fsys, paths, err := a.openMany(args)
			if err != nil {
				return err
			}
			return fsys.DeleteFiles(paths)
		},
	}
}

func newRmdirCommand(a *app) *cobra.Command {
	var contents bool

	cmd := &cobra.Command{
		Use:   "rmdir URI",
		Short: "Delete a directory and everything below it",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			fsys, p, err := a.open(args[0])
			if err != nil {
				return err
			}
			if contents {
				return fsys.DeleteDirContents(p)
			}
			return fsys.DeleteDir(p)
		},
	}

	cmd.Flags().BoolVar(&contents, "contents", false, "delete only the contents, keeping the directory")
	return cmd
}

func newMvCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mv SRC DST",
		Short: "Move a file or directory",
		Long: `Move a file or directory. Within one filesystem the backend's own
rename is used. Across filesystems only files can be moved: the data is
streamed to the destination and the source is deleted afterwards.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if sameFileSystem(args[0], args[1]) {
				fsys, paths, err := a.openMany(args)
				if err != nil {
					return err
				}
				return fsys.Move(paths[0], paths[1])
			}

			src, srcPath, err := a.open(args[0])
			if err != nil {
				return err
			}
			if err := a.transfer(src, srcPath, args[1]); err != nil {
				return err
			}
			return src.DeleteFile(srcPath)
		},
	}
}

func newCpCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cp SRC DST",
		Short: "Copy a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if sameFileSystem(args[0], args[1]) {
				fsys, paths, err := a.openMany(args)
				if err != nil {
					return err
				}
				return fsys.CopyFile(paths[0], paths[1])
			}

			src, srcPath, err := a.open(args[0])
			if err != nil {
				return err
			}
			return a.transfer(src, srcPath, args[1])
		},
	}
}

// transfer streams the file at srcPath in src to the location dst, which
// lives on another filesystem.
func (a *app) transfer(src core.FileSystem, srcPath, dst string) error {
	info, err := src.GetInfo(srcPath)
	if err != nil {
		return err
	}
	switch info.Type {
	case core.FileTypeNotFound:
		return core.PathError("transfer", srcPath, core.ErrNotExist)
	case core.FileTypeDirectory:
		return errors.Newf(errors.CodeNotImplemented,
			"cannot transfer directory '%s' between filesystems", srcPath)
	}

	dest, destPath, err := a.open(dst)
	if err != nil {
		return err
	}

	in, err := src.OpenInputStream(srcPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := dest.OpenOutputStream(destPath)
	if err != nil {
		return err
	}
	n, err := io.Copy(out, in)
	if err != nil {
		_ = out.Close()
		return errors.Wrapf(err, errors.CodeIO, "failed to copy %s to %s", srcPath, dst)
	}
	if err := out.Close(); err != nil {
		return err
	}

	a.logger.Info("transferred file", "src", srcPath, "dst", destPath, "bytes", n)
	return nil
}

package commands

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	fcolor "github.com/fatih/color"
	"github.com/josephlewis42/pipesh/core/vos"
	"github.com/spf13/afero"
)

const (
	dirUse   = "dir [-alh] [DIRECTORY]"
	dirShort = "List the contents of DIRECTORY, the working directory by default."
)

// Dir lists a directory of the shell's file system.
func Dir(s *Shell, stdio vos.Stdio, args []string) int {
	cmd := &SimpleCommand{
		Use:   dirUse,
		Short: dirShort,
	}
	opts := cmd.Flags()
	listAll := opts.Bool('a', "don't ignore entries starting with .")
	longListing := opts.Bool('l', "use a long listing format")
	humanSize := opts.BoolLong("human-readable", 'h', "print human readable sizes")
	cmd.ShowHelp = opts.BoolLong("help", '?', "show help and exit")

	return cmd.Run(stdio, args, func() int {
		directory := s.State.Getwd()
		switch operands := opts.Args(); len(operands) {
		case 0:
		case 1:
			directory = s.State.Abs(operands[0])
		default:
			fmt.Fprintf(stdio.Stderr, "%s: too many arguments\n", args[0])
			return 1
		}

		// ReadDir returns entries sorted by name.
		allPaths, err := afero.ReadDir(s.State.Fs(), directory)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %v\n", args[0], err)
			return 1
		}

		var paths []os.FileInfo
		for _, path := range allPaths {
			if !*listAll && strings.HasPrefix(path.Name(), ".") {
				continue
			}
			paths = append(paths, path)
		}

		if !*longListing {
			for _, f := range paths {
				fmt.Fprintln(stdio.Stdout, s.color.Sprintf(Dircolor(f), "%s", f.Name()))
			}
			return 0
		}

		sizeFmt := func(bytes int64) string {
			return fmt.Sprintf("%d", bytes)
		}
		if *humanSize {
			sizeFmt = BytesToHuman
		}

		tw := tabwriter.NewWriter(stdio.Stdout, 0, 0, 1, ' ', 0)
		currentYear := time.Now().Year()
		for _, f := range paths {
			// Include time if current year.
			modTime := f.ModTime().Format("Jan _2  2006")
			if f.ModTime().Year() >= currentYear {
				modTime = f.ModTime().Format("Jan _2 15:04")
			}

			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				f.Mode().String(),
				sizeFmt(f.Size()),
				modTime,
				s.color.Sprintf(Dircolor(f), "%s", f.Name()))
		}
		tw.Flush()
		return 0
	})
}

// BytesToHuman formats a size with a binary unit suffix.
func BytesToHuman(bytes int64) string {
	const units = "KMGTP"

	if bytes < 1024 {
		return fmt.Sprintf("%d", bytes)
	}

	size := float64(bytes)
	unit := -1
	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}
	if size >= 10 {
		return fmt.Sprintf("%d%c", int64(size), units[unit])
	}
	return fmt.Sprintf("%0.1f%c", size, units[unit])
}

// Dircolor picks the color of an entry in a listing.
func Dircolor(fileInfo os.FileInfo) *fcolor.Color {
	switch mode := fileInfo.Mode(); {
	case mode.IsDir():
		return ColorBoldBlue
	case mode&fs.ModeSymlink != 0:
		return ColorBoldCyan
	case mode.Perm()&0111 != 0:
		return ColorBoldGreen
	default:
		return ColorPlain
	}
}

func init() {
	addBuiltin("dir", &Builtin{Use: dirUse, Short: dirShort, Main: Dir})
}

package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/cozy/cozy-avatar/pkg/avatar"
	"github.com/cozy/cozy-avatar/pkg/cache"
	"github.com/cozy/cozy-avatar/pkg/config/config"
	"github.com/cozy/cozy-avatar/pkg/initials"
	"github.com/cozy/cozy-avatar/pkg/logger"
	"github.com/cozy/cozy-avatar/pkg/utils"
	"github.com/dustin/go-humanize"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

var flagListDir string
var flagListFormat string
var flagListSize int
var flagListJobs int
var flagListInitials bool
var listFlags avatarFlags

var listCmd = &cobra.Command{
	Use:   "list <file>",
	Short: "Render an avatar for each line of a file",
	Long: `List reads a file with one name per line, and writes an avatar for each
non empty line in the directory given with --dir. The files are named after
the line numbers, like 001.png.

By default, the avatars show the first character of the line on a background
picked in the palette. Identical lines share the same image.`,
	Example: `$ cozy-avatar list contacts.txt --dir avatars --shape circle`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := afero.ReadFile(OutFS, args[0])
		if err != nil {
			return err
		}
		lines, err := readLines(raw)
		if err != nil {
			return err
		}

		cfg := config.GetConfig()
		a := cfg.Avatar
		a.Random = true
		a.FirstCharOnly = true
		listFlags.apply(cmd.Flags(), &a)
		if flagListInitials && !cmd.Flags().Changed("first") {
			a.FirstCharOnly = false
		}
		format := strings.ToLower(flagListFormat)
		if format != "png" && format != "svg" {
			return fmt.Errorf("unknown format %q, expected png or svg", flagListFormat)
		}
		b, err := a.Builder()
		if err != nil {
			return err
		}

		if err := OutFS.MkdirAll(flagListDir, 0755); err != nil {
			return err
		}
		l := &lister{
			builder: b,
			cache:   cache.New(cfg.CacheSize),
			dir:     flagListDir,
			format:  format,
			size:    flagListSize,
			jobs:    flagListJobs,
		}
		return l.render(lines)
	},
}

// lister writes the avatars of the list command. The avatars are built one
// after the other, as the builder is not safe for concurrent use, and they
// are drawn and encoded concurrently. Identical lines share one avatar, and
// one encoding.
type lister struct {
	builder  *avatar.Builder
	cache    cache.Cache
	encoding singleflight.Group
	dir      string
	format   string
	size     int
	jobs     int
}

type line struct {
	number int
	text   string
}

type encoded struct {
	data   []byte
	cached bool
}

func (l *lister) render(lines []line) error {
	var mu sync.Mutex
	var errm error
	fail := func(n int, err error) {
		mu.Lock()
		defer mu.Unlock()
		errm = multierror.Append(errm, fmt.Errorf("line %d: %w", n, err))
	}

	var g errgroup.Group
	if l.jobs > 0 {
		g.SetLimit(l.jobs)
	}
	built := make(map[string]*avatar.Avatar)
	for _, ln := range lines {
		ln := ln // per-iteration copy (go directive < 1.22)
		av, ok := built[ln.text]
		if !ok {
			text := ln.text
			if flagListInitials {
				text = initials.FromName(text)
			}
			var err error
			av, err = l.builder.SetText(text).Build()
			if err != nil {
				fail(ln.number, err)
				continue
			}
			built[ln.text] = av
		}
		g.Go(func() error {
			if err := l.write(ln, av); err != nil {
				fail(ln.number, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	logger.WithNamespace("cmd").
		Debugf("%d avatars for %d lines, %d encoded avatars in cache", len(built), len(lines), l.cache.Len())
	return errm
}

func (l *lister) write(ln line, av *avatar.Avatar) error {
	filename := path.Join(l.dir, fmt.Sprintf("%03d.%s", ln.number, l.format))
	width, height := av.Size(l.size)

	key := cache.Key(l.format, strconv.Itoa(width)+"x"+strconv.Itoa(height), ln.text)
	v, err, _ := l.encoding.Do(key, func() (interface{}, error) {
		if data, ok := l.lookup(key); ok {
			return encoded{data: data, cached: true}, nil
		}
		data, err := encodeAvatar(av, filename, width, height)
		if err != nil {
			return nil, err
		}
		l.store(key, data)
		return encoded{data: data}, nil
	})
	if err != nil {
		return err
	}
	enc := v.(encoded)
	if err := writeFile(filename, enc.data); err != nil {
		return err
	}

	logger.WithNamespace("cmd").
		WithFields(logger.Fields{"file": filename, "cached": enc.cached}).
		Debugf("Avatar %q written in %s (%s)", av.Text(), filename, humanize.Bytes(uint64(len(enc.data))))
	return nil
}

// lookup returns the encoded avatar from the cache. The SVG documents are
// kept compressed.
func (l *lister) lookup(key string) ([]byte, bool) {
	if l.format != "svg" {
		return l.cache.Get(key)
	}
	r, ok := l.cache.GetCompressed(key)
	if !ok {
		return nil, false
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, false
	}
	return data, true
}

func (l *lister) store(key string, data []byte) {
	if l.format != "svg" {
		l.cache.Set(key, data)
		return
	}
	l.cache.SetCompressed(key, data)
}

func readLines(raw []byte) ([]line, error) {
	var lines []line
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	n := 0
	for scanner.Scan() {
		n++
		if text := strings.TrimSpace(utils.CleanUTF8(scanner.Text())); text != "" {
			lines = append(lines, line{number: n, text: text})
		}
	}
	return lines, scanner.Err()
}

func init() {
	flags := listCmd.Flags()
	flags.StringVarP(&flagListDir, "dir", "d", ".", "directory where the avatars are written")
	flags.StringVar(&flagListFormat, "format", "png", "format of the avatars: png or svg")
	flags.IntVar(&flagListSize, "size", 64, "size in pixels of the images when the avatars have no width or height")
	flags.IntVar(&flagListJobs, "jobs", runtime.NumCPU(), "number of avatars drawn concurrently")
	flags.BoolVar(&flagListInitials, "initials", false, "draw the initials of the first and last words of each line")
	listFlags.register(flags)
	RootCmd.AddCommand(listCmd)
}

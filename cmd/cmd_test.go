package cmd

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/cozy/cozy-avatar/pkg/avatar"
	"github.com/cozy/cozy-avatar/pkg/config/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFS afero.Fs

func TestMain(m *testing.M) {
	testFS = afero.NewMemMapFs()
	OutFS = testFS
	config.FS = testFS
	os.Exit(m.Run())
}

// execute runs the root command with the given arguments, after resetting
// the flags parsed by the previous runs.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(RootCmd)
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(io.Discard)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func readPNG(t *testing.T, filename string) image.Image {
	t.Helper()
	raw, err := afero.ReadFile(testFS, filename)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "dev"))
}

func TestRender(t *testing.T) {
	t.Run("PNG", func(t *testing.T) {
		_, err := execute(t, "render", "jane doe", "--upper", "--first",
			"--width", "32", "--height", "24", "--bg", "#102030", "-o", "/out/jd.png")
		require.NoError(t, err)

		img := readPNG(t, "/out/jd.png")
		assert.Equal(t, image.Rect(0, 0, 32, 24), img.Bounds())
		assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, nrgbaAt(img, 0, 0))
		assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, nrgbaAt(img, 31, 23))
	})

	t.Run("DefaultSize", func(t *testing.T) {
		_, err := execute(t, "render", "A", "--size", "20", "-o", "/out/a.png")
		require.NoError(t, err)
		img := readPNG(t, "/out/a.png")
		assert.Equal(t, image.Rect(0, 0, 20, 20), img.Bounds())
	})

	t.Run("DeviceUnits", func(t *testing.T) {
		_, err := execute(t, "render", "A", "--width", "10", "--height", "12",
			"--density", "2", "-o", "/out/dp.png")
		require.NoError(t, err)
		img := readPNG(t, "/out/dp.png")
		assert.Equal(t, image.Rect(0, 0, 20, 24), img.Bounds())
	})

	t.Run("SVGWithNames", func(t *testing.T) {
		_, err := execute(t, "render", "--first-name", "jane", "--last-name", "doe",
			"--first", "--upper", "--shape", "circle", "-o", "/out/jd.svg")
		require.NoError(t, err)

		raw, err := afero.ReadFile(testFS, "/out/jd.svg")
		require.NoError(t, err)
		assert.Contains(t, string(raw), "<ellipse")
		assert.Contains(t, string(raw), ">JD</text>")
	})

	t.Run("RandomPalette", func(t *testing.T) {
		_, err := execute(t, "render", "x", "--random", "--palette", "#AA0000, #AA0000",
			"--width", "8", "--height", "8", "-o", "/out/x.png")
		require.NoError(t, err)
		img := readPNG(t, "/out/x.png")
		assert.Equal(t, color.NRGBA{R: 0xaa, A: 0xff}, nrgbaAt(img, 0, 0))
	})

	t.Run("Usage", func(t *testing.T) {
		_, err := execute(t, "render")
		assert.Equal(t, ErrUsage, err)
	})

	t.Run("InvalidShape", func(t *testing.T) {
		_, err := execute(t, "render", "A", "--shape", "hexagon", "-o", "/out/h.png")
		assert.ErrorIs(t, err, config.ErrInvalidShape)
	})

	t.Run("InvalidColor", func(t *testing.T) {
		_, err := execute(t, "render", "A", "--fg", "#12", "-o", "/out/c.png")
		assert.ErrorIs(t, err, avatar.ErrInvalidColor)
	})
}

func TestList(t *testing.T) {
	require.NoError(t, afero.WriteFile(testFS, "/in/names.txt",
		[]byte("Alice\nbob\n\nAlice\n   \n42 things\n"), 0644))

	t.Run("PNG", func(t *testing.T) {
		_, err := execute(t, "list", "/in/names.txt", "-d", "/avatars",
			"--width", "16", "--height", "16", "--jobs", "1")
		require.NoError(t, err)

		for _, name := range []string{"001.png", "002.png", "004.png", "006.png"} {
			img := readPNG(t, "/avatars/"+name)
			assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())
			assert.Contains(t, avatar.DefaultPalette, nrgbaAt(img, 0, 0))
		}
		for _, name := range []string{"003.png", "005.png"} {
			ok, err := afero.Exists(testFS, "/avatars/"+name)
			require.NoError(t, err)
			assert.False(t, ok)
		}

		first, err := afero.ReadFile(testFS, "/avatars/001.png")
		require.NoError(t, err)
		again, err := afero.ReadFile(testFS, "/avatars/004.png")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	})

	t.Run("SVGInitials", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(testFS, "/in/people.txt",
			[]byte("Jane Doe\nJohn Ronald Reuel Tolkien\n"), 0644))
		_, err := execute(t, "list", "/in/people.txt", "-d", "/people",
			"--format", "svg", "--initials", "--shape", "round", "--radius", "4")
		require.NoError(t, err)

		raw, err := afero.ReadFile(testFS, "/people/001.svg")
		require.NoError(t, err)
		assert.Contains(t, string(raw), ">JD</text>")
		raw, err = afero.ReadFile(testFS, "/people/002.svg")
		require.NoError(t, err)
		assert.Contains(t, string(raw), ">JT</text>")
	})

	t.Run("FirstChar", func(t *testing.T) {
		_, err := execute(t, "list", "/in/names.txt", "-d", "/svg", "--format", "SVG")
		require.NoError(t, err)
		raw, err := afero.ReadFile(testFS, "/svg/006.svg")
		require.NoError(t, err)
		assert.Contains(t, string(raw), ">4</text>")
	})

	t.Run("IdenticalLinesConcurrently", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(testFS, "/in/alices.txt",
			[]byte(strings.Repeat("Alice\n", 40)), 0644))

		for _, test := range []struct {
			name string
			args []string
		}{
			{"PNG", []string{"-d", "/alices/png"}},
			{"SVG", []string{"-d", "/alices/svg", "--format", "svg"}},
			{"NoCache", []string{"-d", "/alices/nocache", "--cache-size", "0"}},
		} {
			t.Run(test.name, func(t *testing.T) {
				args := append([]string{"list", "/in/alices.txt", "--jobs", "8",
					"--width", "200", "--height", "200"}, test.args...)
				_, err := execute(t, args...)
				require.NoError(t, err)

				dir := test.args[1]
				ext := "png"
				if test.name == "SVG" {
					ext = "svg"
				}
				first, err := afero.ReadFile(testFS, dir+"/001."+ext)
				require.NoError(t, err)
				require.NotEmpty(t, first)
				for i := 2; i <= 40; i++ {
					name := fmt.Sprintf("%s/%03d.%s", dir, i, ext)
					data, err := afero.ReadFile(testFS, name)
					require.NoError(t, err)
					assert.Equal(t, first, data, name)
				}
			})
		}
	})

	t.Run("Errors", func(t *testing.T) {
		_, err := execute(t, "list", "/in/missing.txt")
		assert.Error(t, err)

		_, err = execute(t, "list", "/in/names.txt", "--format", "gif")
		assert.ErrorContains(t, err, "unknown format")

		_, err = execute(t, "list")
		assert.Error(t, err)
	})
}

func TestReadLines(t *testing.T) {
	lines, err := readLines([]byte(" a \r\n\nb"))
	require.NoError(t, err)
	assert.Equal(t, []line{{number: 1, text: "a"}, {number: 3, text: "b"}}, lines)
}

func TestPalette(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		out, err := execute(t, "palette")
		require.NoError(t, err)
		colors := strings.Fields(out)
		require.Len(t, colors, len(avatar.DefaultPalette))
		assert.Equal(t, avatar.FormatColor(avatar.DefaultPalette[0]), colors[0])
	})

	t.Run("Generate", func(t *testing.T) {
		out, err := execute(t, "palette", "--generate", "3", "--saturation", "1", "--lightness", "0.5")
		require.NoError(t, err)
		assert.Equal(t, "#FF0000\n#00FF00\n#0000FF\n", out)
	})
}

// This test merges a configuration file in the global viper instance, and
// must stay the last one of the file.
func TestPaletteFromConfig(t *testing.T) {
	require.NoError(t, afero.WriteFile(testFS, "/etc/avatars.yaml",
		[]byte("avatar:\n  palette:\n    - teal\n    - \"#80FF0000\"\n"), 0644))
	out, err := execute(t, "palette", "-c", "/etc/avatars.yaml")
	require.NoError(t, err)
	assert.Equal(t, "#008080\n#80FF0000\n", out)
}

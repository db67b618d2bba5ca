package config

import (
	"image"
	"image/color"
	"testing"

	"github.com/cozy/cozy-avatar/pkg/avatar"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
)

func useMemFS(t *testing.T) afero.Fs {
	t.Helper()
	prev := FS
	FS = afero.NewMemMapFs()
	viper.Reset()
	t.Cleanup(func() {
		FS = prev
		viper.Reset()
		config = nil
	})
	return FS
}

func TestUseTestConfig(t *testing.T) {
	cfg := UseTestConfig()
	assert.Same(t, cfg, GetConfig())
	assert.Equal(t, float64(avatar.Auto), cfg.Avatar.Width)
	assert.Equal(t, float64(avatar.Auto), cfg.Avatar.Height)
	assert.Equal(t, float64(avatar.Auto), cfg.Avatar.TextSize)
	assert.Equal(t, "rect", cfg.Avatar.Shape)
	assert.Equal(t, "#888888", cfg.Avatar.Background)
	assert.Equal(t, "#FFFFFF", cfg.Avatar.TextColor)
	assert.Equal(t, avatar.DefaultShadeFactor, cfg.Avatar.ShadeFactor)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 256, cfg.CacheSize)
}

func TestSetupWithoutFile(t *testing.T) {
	useMemFS(t)
	require.NoError(t, Setup(""))
	assert.Equal(t, "rect", GetConfig().Avatar.Shape)
}

func TestSetupWithFiles(t *testing.T) {
	fs := useMemFS(t)
	t.Setenv("AVATAR_TEST_BG", "#123456")

	require.NoError(t, afero.WriteFile(fs, "/etc/cozy/cozy-avatar.yaml", []byte(`
avatar:
  width: {{ mul 2 24 }}
  height: {{ mulf 1.5 32 }}
  shape: circle
  background: "{{ .Env.AVATAR_TEST_BG }}"
  text_color: "{{ default "#000000" .Env.AVATAR_TEST_UNSET }}"
  palette:
    - "#112233"
    - "#445566"
  random: true
  first_char_only: true
log:
  level: debug
`), 0644))
	require.NoError(t, afero.WriteFile(fs, "/etc/cozy/cozy-avatar.yaml.local", []byte(`
avatar:
  border: 3
`), 0644))

	require.NoError(t, Setup(""))
	cfg := GetConfig()
	assert.Equal(t, 48.0, cfg.Avatar.Width)
	assert.Equal(t, 48.0, cfg.Avatar.Height)
	assert.Equal(t, "circle", cfg.Avatar.Shape)
	assert.Equal(t, "#123456", cfg.Avatar.Background)
	assert.Equal(t, "#000000", cfg.Avatar.TextColor)
	assert.Equal(t, []string{"#112233", "#445566"}, cfg.Avatar.Palette)
	assert.True(t, cfg.Avatar.Random)
	assert.True(t, cfg.Avatar.FirstCharOnly)
	assert.Equal(t, 3.0, cfg.Avatar.Border)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestSetupWithEnv(t *testing.T) {
	useMemFS(t)
	t.Setenv("COZY_AVATAR_AVATAR_TEXT_SIZE", "20")
	t.Setenv("COZY_AVATAR_AVATAR_SHAPE", "round")

	require.NoError(t, Setup(""))
	assert.Equal(t, 20.0, GetConfig().Avatar.TextSize)
	assert.Equal(t, "round", GetConfig().Avatar.Shape)
}

func TestSetupExplicitFile(t *testing.T) {
	fs := useMemFS(t)
	require.NoError(t, afero.WriteFile(fs, "/tmp/avatars.json", []byte(`{"avatar": {"upper_case": true, "shape": "oval"}}`), 0644))

	require.NoError(t, Setup("/tmp/avatars.json"))
	assert.True(t, GetConfig().Avatar.UpperCase)
	assert.Equal(t, "oval", GetConfig().Avatar.Shape)

	err := Setup("/tmp/missing.json")
	assert.Error(t, err)
}

func TestSetupErrors(t *testing.T) {
	fs := useMemFS(t)
	require.NoError(t, afero.WriteFile(fs, "/tmp/shape.yaml", []byte("avatar:\n  shape: hexagon\n"), 0644))
	err := Setup("/tmp/shape.yaml")
	assert.ErrorIs(t, err, ErrInvalidShape)

	viper.Reset()
	require.NoError(t, afero.WriteFile(fs, "/tmp/tmpl.yaml", []byte("avatar:\n  width: {{ .Oops \n"), 0644))
	err = Setup("/tmp/tmpl.yaml")
	assert.ErrorContains(t, err, "Unable to parse configuration file template")
}

func TestFindConfigFile(t *testing.T) {
	fs := useMemFS(t)
	_, err := FindConfigFile("cozy-avatar.toml")
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "/etc/cozy/cozy-avatar.toml", []byte(""), 0644))
	file, err := FindConfigFile("cozy-avatar.toml")
	require.NoError(t, err)
	assert.Equal(t, "/etc/cozy/cozy-avatar.toml", file)

	files, err := findConfigFiles(Filename)
	require.NoError(t, err)
	assert.Equal(t, []string{"/etc/cozy/cozy-avatar.toml"}, files)
}

func TestAvatarBuilder(t *testing.T) {
	cfg := UseTestConfig()
	a := cfg.Avatar
	a.Shape = "circle"
	a.Background = "teal"
	a.Width = 24
	a.Height = 24
	a.Density = 2
	a.FontScale = 1.5
	a.TextSize = 10
	a.UpperCase = true
	a.FirstCharOnly = true
	a.Bold = true

	b, err := a.Builder()
	require.NoError(t, err)
	av, err := b.SetText("bob").Build()
	require.NoError(t, err)
	assert.Equal(t, "B", av.Text())
	assert.Equal(t, avatar.OvalShape, av.Shape().Kind)
	assert.Equal(t, color.NRGBA{G: 0x80, B: 0x80, A: 0xff}, av.Background())
	assert.Equal(t, 48, av.IntrinsicWidth())
	assert.Equal(t, 30.0, av.TextSize(image.Rect(0, 0, 1, 1)))
	assert.Equal(t, avatar.Bold, av.Options().Typeface.Style)
}

func TestAvatarBuilderRandom(t *testing.T) {
	a := UseTestConfig().Avatar
	a.Random = true
	a.Palette = []string{"#010203"}
	a.Shape = "round"
	a.Radius = 5
	a.Italic = true

	b, err := a.Builder()
	require.NoError(t, err)
	av, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 0xff}, av.Background())
	assert.Equal(t, avatar.RoundRect(5), av.Shape())
	assert.Equal(t, avatar.Italic, av.Options().Typeface.Style)
}

func TestAvatarBuilderErrors(t *testing.T) {
	fs := useMemFS(t)

	a := UseTestConfig().Avatar
	a.Background = "not-a-color"
	_, err := a.Builder()
	assert.ErrorIs(t, err, avatar.ErrInvalidColor)

	a = UseTestConfig().Avatar
	a.Palette = []string{"#01020"}
	_, err = a.Builder()
	assert.ErrorIs(t, err, avatar.ErrInvalidColor)

	a = UseTestConfig().Avatar
	a.Shape = "star"
	_, err = a.Builder()
	assert.ErrorIs(t, err, ErrInvalidShape)

	a = UseTestConfig().Avatar
	a.Font = "/fonts/missing.ttf"
	_, err = a.Builder()
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "/fonts/broken.ttf", []byte("nope"), 0644))
	a.Font = "/fonts/broken.ttf"
	_, err = a.Builder()
	assert.ErrorIs(t, err, avatar.ErrInvalidFont)

	require.NoError(t, afero.WriteFile(fs, "/fonts/GoMono.ttf", gomono.TTF, 0644))
	a.Font = "/fonts/GoMono.ttf"
	b, err := a.Builder()
	require.NoError(t, err)
	assert.Equal(t, "GoMono", b.Options().Typeface.Family.Name)
}

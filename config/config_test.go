package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Miuzarte/FpsOverlay/fps"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		want    func(c *Config)
		wantErr error
	}{
		{
			name: "empty keeps defaults",
			data: "",
			want: func(*Config) {},
		},
		{
			name: "duration string",
			data: "sample_duration: 500ms\n",
			want: func(c *Config) { c.SampleDuration = Duration(500 * time.Millisecond) },
		},
		{
			name: "seconds",
			data: "sample_duration: 0.25\n",
			want: func(c *Config) { c.SampleDuration = Duration(250 * time.Millisecond) },
		},
		{
			name: "sample duration clamped high",
			data: "sample_duration: 5s\n",
			want: func(c *Config) { c.SampleDuration = Duration(fps.MaxSampleDuration) },
		},
		{
			name: "sample duration clamped low",
			data: "sample_duration: -1\n",
			want: func(c *Config) { c.SampleDuration = 0 },
		},
		{
			name: "everything",
			data: "sample_duration: 2s\nfont_size: 24\nshow_cpu: false\nheadless_fps: 144\nmetrics_addr: \":9100\"\nlog_level: debug\n",
			want: func(c *Config) {
				c.SampleDuration = Duration(2 * time.Second)
				c.FontSize = 24
				c.ShowCPU = false
				c.HeadlessFps = 144
				c.MetricsAddr = ":9100"
				c.LogLevel = "debug"
			},
		},
		{
			name: "non positive headless rate falls back",
			data: "headless_fps: 0\n",
			want: func(*Config) {},
		},
		{
			name:    "bad duration",
			data:    "sample_duration: soon\n",
			wantErr: ErrInvalidDuration,
		},
		{
			name:    "bad level",
			data:    "log_level: loud\n",
			wantErr: ErrInvalidLogLevel,
		},
		{
			name:    "bad font size",
			data:    "font_size: 0\n",
			wantErr: ErrInvalidFontSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse([]byte(tt.data))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			want := Default()
			tt.want(&want)
			assert.Equal(t, want, got)
		})
	}
}

func TestLevel(t *testing.T) {
	t.Parallel()

	c := Default()
	assert.Equal(t, zerolog.InfoLevel, c.Level())
	c.LogLevel = "warn"
	assert.Equal(t, zerolog.WarnLevel, c.Level())
	c.LogLevel = "nonsense"
	assert.Equal(t, zerolog.InfoLevel, c.Level())
}

func TestLoadAndSave(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, DEFAULT_PATH)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	c.SampleDuration = Duration(750 * time.Millisecond)
	c.MetricsAddr = "127.0.0.1:9100"
	require.NoError(t, c.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, loaded)
}

func TestWatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, DEFAULT_PATH)
	require.NoError(t, Default().Save(path))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c Config) { changes <- c })
	}()

	// other files in the directory are ignored
	require.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o664)
		err := os.WriteFile(path, []byte("sample_duration: 300ms\n"), 0o664)
		if err != nil {
			return false
		}
		select {
		case c := <-changes:
			return c.Sample() == 300*time.Millisecond
		case <-time.After(200 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop")
	}
}

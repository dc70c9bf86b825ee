package data_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeonchae62/REU-Project/pkg/data"
)

func TestLoader_Read(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		strict  bool
		want    []data.Reading
		wantErr error
	}{
		{
			name:  "header skipped",
			input: "timestamp,eda\n1000,0.5\n2000,0.75\n",
			want:  []data.Reading{{Micros: 1000, Value: 0.5}, {Micros: 2000, Value: 0.75}},
		},
		{
			name:  "extra columns ignored",
			input: "timestamp,eda,temp\n1000,0.5,31.2\n",
			want:  []data.Reading{{Micros: 1000, Value: 0.5}},
		},
		{
			name:  "malformed rows skipped",
			input: "timestamp,eda\n1000,0.5\nabc,0.1\n3000\n4000,1.5\n",
			want:  []data.Reading{{Micros: 1000, Value: 0.5}, {Micros: 4000, Value: 1.5}},
		},
		{
			name:    "strict stops at malformed row",
			input:   "timestamp,eda\n1000,0.5\nabc,0.1\n",
			strict:  true,
			wantErr: data.ErrMalformedRow,
		},
		{
			name:  "unparseable csv row skipped",
			input: "timestamp,eda\n1000,0.5\n20\"00,1\n3000,1.5\n",
			want:  []data.Reading{{Micros: 1000, Value: 0.5}, {Micros: 3000, Value: 1.5}},
		},
		{
			name:    "header only",
			input:   "timestamp,eda\n",
			wantErr: data.ErrNoReadings,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := data.NewLoader(nil)
			l.Strict = tt.strict

			got, err := l.Read(context.Background(), strings.NewReader(tt.input))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoader_FileBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eda.csv")
	require.NoError(t, os.WriteFile(path, []byte("t,v\n10,1\n20,2\n30,3\n"), 0o644))

	first, last, err := data.NewLoader(nil).FileBounds(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 10.0, first.Micros)
	assert.Equal(t, 30.0, last.Micros)
}

func TestLoader_ReadFileMissing(t *testing.T) {
	_, err := data.NewLoader(nil).ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoader_ReadFileDirectory(t *testing.T) {
	done := make(chan error, 1)
	go func() {
		_, err := data.NewLoader(nil).ReadFile(context.Background(), t.TempDir())
		done <- err
	}()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("reading a directory did not fail")
	}
}

func TestLoader_StrictReportsPhysicalLine(t *testing.T) {
	// the quoted note spans lines 2 and 3, so the bad row is on line 4
	input := "t,v,note\n1000,0.5,\"two\nlines\"\n2000,x,y\n"
	l := data.NewLoader(nil)
	l.Strict = true

	_, err := l.Read(context.Background(), strings.NewReader(input))
	require.ErrorIs(t, err, data.ErrMalformedRow)
	assert.Contains(t, err.Error(), "line 4:")
}

func TestLoader_StreamCancelled(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("t,v\n")
	for i := 0; i < 100; i++ {
		sb.WriteString("1,1\n")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := make(chan data.Reading)
	errc := data.NewLoader(nil).Stream(ctx, strings.NewReader(sb.String()), out)
	for range out {
	}
	assert.ErrorIs(t, <-errc, context.Canceled)
}

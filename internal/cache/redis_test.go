package cache

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWriteCommand(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	require.NoError(t, writeCommand(w, []string{"SET", "k", "v"}))
	require.NoError(t, w.Flush())
	require.Equal(t, "*3\r\n$3\r\nSET\r\n$1\r\nk\r\n$1\r\nv\r\n", buf.String())
}

func TestReadReply(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  interface{}
	}{
		{"simple string", "+OK\r\n", "OK"},
		{"integer", ":42\r\n", int64(42)},
		{"bulk string", "$5\r\nhello\r\n", []byte("hello")},
		{"null bulk", "$-1\r\n", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := readReply(bufio.NewReader(strings.NewReader(tc.input)))
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestReadReplyArray(t *testing.T) {
	input := "*2\r\n$1\r\n0\r\n*1\r\n$3\r\nfoo\r\n"
	got, err := readReply(bufio.NewReader(strings.NewReader(input)))
	require.NoError(t, err)

	parts, ok := got.([]interface{})
	require.True(t, ok)
	require.Len(t, parts, 2)
	require.Equal(t, []byte("0"), parts[0])

	keys, ok := parts[1].([]interface{})
	require.True(t, ok)
	require.Equal(t, []byte("foo"), keys[0])
}

func TestReadReplyError(t *testing.T) {
	_, err := readReply(bufio.NewReader(strings.NewReader("-ERR unknown command\r\n")))
	require.Error(t, err)
	require.True(t, isRedisError(err))
	require.Contains(t, err.Error(), "unknown command")
}

func TestFormatMillis(t *testing.T) {
	require.Equal(t, "1500", formatMillis(1500*time.Millisecond))
	require.Equal(t, "1", formatMillis(time.Microsecond))
}

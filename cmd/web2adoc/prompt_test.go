package main_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	main "github.com/fwojciec/web2adoc/cmd/web2adoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompt_Collect(t *testing.T) {
	t.Parallel()

	t.Run("X exits without URLs", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		urls, ok, err := main.NewPrompt(strings.NewReader("x\n"), &out).Collect(context.Background())

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, urls)
		assert.Equal(t, main.PromptWelcome, out.String())
	})

	t.Run("P returns URLs in entry order", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		in := "https://example.com/b\n  http://example.com/a  \np\n"
		urls, ok, err := main.NewPrompt(strings.NewReader(in), &out).Collect(context.Background())

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []string{"https://example.com/b", "http://example.com/a"}, urls)
		assert.Equal(t, main.PromptWelcome+main.PromptAnother+main.PromptAnother, out.String())
	})

	t.Run("P without URLs reprompts", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		urls, ok, err := main.NewPrompt(strings.NewReader("P\nhttps://example.com\nP\n"), &out).Collect(context.Background())

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []string{"https://example.com"}, urls)
		assert.Equal(t,
			main.PromptWelcome+"No URLs to process.\n"+main.PromptURL+main.PromptAnother,
			out.String())
	})

	t.Run("invalid input reprompts without changing state", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		in := "example.com\nftp://example.com\n\nhttps://example.com\nP\n"
		urls, ok, err := main.NewPrompt(strings.NewReader(in), &out).Collect(context.Background())

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []string{"https://example.com"}, urls)
		assert.Equal(t,
			main.PromptWelcome+main.PromptInvalid+main.PromptInvalid+main.PromptInvalid+main.PromptAnother,
			out.String())
	})

	t.Run("end of input exits cleanly", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		urls, ok, err := main.NewPrompt(strings.NewReader("https://example.com\n"), &out).Collect(context.Background())

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, urls)
	})

	t.Run("cancellation exits cleanly while waiting for input", func(t *testing.T) {
		t.Parallel()

		r, w := io.Pipe()
		defer w.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		var out bytes.Buffer
		_, ok, err := main.NewPrompt(r, &out).Collect(ctx)

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("read errors are returned", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		_, ok, err := main.NewPrompt(iotest.ErrReader(errors.New("broken pipe")), &out).Collect(context.Background())

		require.Error(t, err)
		assert.False(t, ok)
		assert.Contains(t, err.Error(), "broken pipe")
	})
}

func TestIsURL(t *testing.T) {
	t.Parallel()

	assert.True(t, main.IsURL("http://example.com"))
	assert.True(t, main.IsURL("https://example.com/a?b=c"))
	assert.False(t, main.IsURL("httpx://example.com"))
	assert.False(t, main.IsURL("example.com"))
	assert.False(t, main.IsURL("HTTP://example.com"))
}

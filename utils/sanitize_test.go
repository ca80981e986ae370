package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain text passes through", "hello world", "hello world"},
		{"inline tags are stripped", "hello <b>world</b>", "hello world"},
		{"script content is dropped entirely", "<script>alert(1)</script>", ""},
		{"surrounding whitespace is trimmed", "  padded  ", "padded"},
		{"markup-only input becomes empty", "<img src=x onerror=alert(1)>", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, SanitizeText(tc.in))
		})
	}
}

func TestRenderUserHTML(t *testing.T) {
	t.Run("markdown renders into the allowed subset", func(t *testing.T) {
		out := RenderUserHTML("# Heading\n\nhello **world**")
		require.Contains(t, out, "<h1>Heading</h1>")
		require.Contains(t, out, "<strong>world</strong>")
	})

	t.Run("inline html never reaches the rendered output", func(t *testing.T) {
		out := RenderUserHTML("before <script>boom()</script> after")
		require.NotContains(t, out, "<script>")
	})

	t.Run("links do not survive the policy", func(t *testing.T) {
		out := RenderUserHTML("[click](https://example.com)")
		require.NotContains(t, out, "<a")
		require.NotContains(t, out, "href")
	})
}

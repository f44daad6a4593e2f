package recommendation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureHTTPS(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "upgrades http", in: "http://books.google.com/cover?id=1", want: "https://books.google.com/cover?id=1"},
		{name: "keeps https", in: "https://books.google.com/cover?id=1", want: "https://books.google.com/cover?id=1"},
		{name: "empty", in: "", want: ""},
		{name: "only leading scheme", in: "ftp://host/http:x", want: "ftp://host/http:x"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			once := EnsureHTTPS(tt.in)
			require.Equal(t, tt.want, once)
			require.Equal(t, once, EnsureHTTPS(once))
		})
	}
}

func TestStoreLinks(t *testing.T) {
	links := StoreLinks("The Hitchhiker's Guide (Vol. 1)", "Douglas Adams")
	require.Equal(t, "https://www.amazon.com/s?k=The%20Hitchhiker's%20Guide%20(Vol.%201)%20Douglas%20Adams", links.Amazon)
	require.Equal(t, "https://www.barnesandnoble.com/s/The%20Hitchhiker's%20Guide%20(Vol.%201)", links.BarnesNoble)
	require.Equal(t, "https://bookshop.org/search?keywords=The%20Hitchhiker's%20Guide%20(Vol.%201)", links.Bookshop)
}

func TestStoreLinksWithoutAuthor(t *testing.T) {
	links := StoreLinks("C++ & Go", "")
	require.Equal(t, "https://www.amazon.com/s?k=C%2B%2B%20%26%20Go%20", links.Amazon)
	require.Equal(t, "https://www.barnesandnoble.com/s/C%2B%2B%20%26%20Go", links.BarnesNoble)
}

package whatsapp

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageLink(t *testing.T) {
	link := NewLinkBuilder("8801981500986").MessageLink("*New order*\nTotal: ৳1270 & more")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "api.whatsapp.com", u.Host)
	assert.Equal(t, "/send", u.Path)
	assert.Equal(t, "8801981500986", u.Query().Get("phone"))
	assert.Equal(t, "*New order*\nTotal: ৳1270 & more", u.Query().Get("text"))
}

package whatsapp

import "net/url"

const DefaultBaseURL = "https://api.whatsapp.com/send"

// LinkBuilder builds click-to-chat links to the shop's number.
type LinkBuilder struct {
	Phone   string
	BaseURL string
}

func NewLinkBuilder(phone string) *LinkBuilder {
	return &LinkBuilder{Phone: phone, BaseURL: DefaultBaseURL}
}

// MessageLink returns a link that opens a chat with text prefilled.
func (b *LinkBuilder) MessageLink(text string) string {
	q := url.Values{}
	q.Set("phone", b.Phone)
	q.Set("text", text)
	return b.BaseURL + "?" + q.Encode()
}

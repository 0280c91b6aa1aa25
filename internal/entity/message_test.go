package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreviewTextPrefersContent(t *testing.T) {
	msg := &Message{Content: "hello"}
	msg.SetAttachments([]Attachment{{Kind: "image", Url: "https://cdn/x.png"}})

	assert.Equal(t, "hello", msg.PreviewText())
}

func TestPreviewTextFallsBackToAttachmentLabel(t *testing.T) {
	cases := []struct {
		kind string
		want string
	}{
		{"image", "[Photo]"},
		{"audio", "[Voice message]"},
		{"video", "[Video]"},
		{"file", "[Attachment]"},
		{"something-else", "[Attachment]"},
	}

	for _, tc := range cases {
		msg := &Message{Content: "   "}
		msg.SetAttachments([]Attachment{{Kind: tc.kind, Url: "https://cdn/x"}})
		assert.Equal(t, tc.want, msg.PreviewText(), "kind %s", tc.kind)
	}
}

func TestPreviewTextEmptyMessage(t *testing.T) {
	msg := &Message{}
	assert.Equal(t, "", msg.PreviewText())
}

func TestPreviewTextTruncates(t *testing.T) {
	msg := &Message{Content: strings.Repeat("a", 250)}
	assert.Len(t, msg.PreviewText(), 100)
}

func TestTruncateTextKeepsRunesWhole(t *testing.T) {
	assert.Equal(t, "héllo", TruncateText("héllo", 10))
	assert.Equal(t, "hél", TruncateText("héllo", 3))
}

func TestIsTemporaryUrn(t *testing.T) {
	assert.True(t, IsTemporaryUrn("tmp_12345"))
	assert.False(t, IsTemporaryUrn("urn:li:msg:1"))
	assert.False(t, IsTemporaryUrn(""))
}

func TestAttachmentsRoundTrip(t *testing.T) {
	msg := &Message{}
	assert.Nil(t, msg.GetAttachments())

	msg.SetAttachments([]Attachment{{Kind: "file", Url: "https://cdn/doc.pdf", Name: "doc.pdf", ByteSize: 1024}})
	atts := msg.GetAttachments()
	assert.Len(t, atts, 1)
	assert.Equal(t, "doc.pdf", atts[0].Name)

	msg.SetAttachments(nil)
	assert.Nil(t, msg.GetAttachments())
}

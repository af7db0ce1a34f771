package feishu

// MessageKind selects the webhook payload shape. The set is closed; adding a
// kind requires a new builder branch.
type MessageKind string

const (
	// KindText is a plain text message.
	KindText MessageKind = "text"
	// KindPost is a rich text message with a title.
	KindPost MessageKind = "post"
)

// Kinds returns the supported message kinds.
func Kinds() []MessageKind {
	return []MessageKind{KindText, KindPost}
}

// Valid reports whether k is a supported message kind.
func (k MessageKind) Valid() bool {
	switch k {
	case KindText, KindPost:
		return true
	}
	return false
}

// Payload is the JSON body posted to a Feishu custom-bot webhook.
type Payload struct {
	MsgType string  `json:"msg_type"`
	Content Content `json:"content"`
}

// Content carries exactly one of the kind-specific bodies.
type Content struct {
	Text string `json:"text,omitempty"`
	Post *Post  `json:"post,omitempty"`
}

// Post wraps the locale-keyed rich text body. Only zh_cn is produced.
type Post struct {
	ZhCN PostBody `json:"zh_cn"`
}

// PostBody is a titled block of rich text lines.
type PostBody struct {
	Title   string          `json:"title"`
	Content [][]PostElement `json:"content"`
}

// PostElement is a single tagged element within a rich text line.
type PostElement struct {
	Tag  string `json:"tag"`
	Text string `json:"text"`
}

// BuildPayload assembles the provider payload for a message. Inputs are
// assumed validated by the caller; the builder itself cannot fail and
// performs no I/O.
func BuildPayload(message string, kind MessageKind, title string) Payload {
	if kind == KindPost {
		return Payload{
			MsgType: string(KindPost),
			Content: Content{
				Post: &Post{
					ZhCN: PostBody{
						Title:   title,
						Content: [][]PostElement{{{Tag: "text", Text: message}}},
					},
				},
			},
		}
	}
	return Payload{
		MsgType: string(KindText),
		Content: Content{Text: message},
	}
}
